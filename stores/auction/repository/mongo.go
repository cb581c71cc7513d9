package repository

import (
	bCtx "github.com/mintleaf-xyz/venue/base/ctx"
	"github.com/mintleaf-xyz/venue/domain"
	"github.com/mintleaf-xyz/venue/domain/marketplace"
	"github.com/mintleaf-xyz/venue/service/query"
)

func auctionSelector(id marketplace.AuctionId) query.Selector {
	return query.Selector{
		"contract":  id.Contract,
		"tokenId":   id.TokenId,
		"owner":     id.Owner,
		"auctionId": id.AuctionId,
	}
}

type auctionImpl struct {
	q query.Mongo
}

func NewAuctionRepo(q query.Mongo) marketplace.AuctionRepo {
	return &auctionImpl{q: q}
}

func (im *auctionImpl) FindOne(c bCtx.Ctx, id marketplace.AuctionId) (*marketplace.Auction, error) {
	res := &marketplace.Auction{}
	err := im.q.FindOne(c, domain.TableAuctions, auctionSelector(id.ToLower()), res)
	if err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		return nil, err
	}
	return res, nil
}

func (im *auctionImpl) FindAll(c bCtx.Ctx, optFns ...marketplace.FindAllOptionsFunc) ([]marketplace.Auction, error) {
	opts := marketplace.GetFindAllOptions(optFns...)
	selector := query.Selector{}
	if opts.Contract != nil {
		selector["contract"] = *opts.Contract
	}
	if opts.TokenId != nil {
		selector["tokenId"] = *opts.TokenId
	}
	if opts.Owner != nil {
		selector["owner"] = *opts.Owner
	}
	res := []marketplace.Auction{}
	if err := im.q.Search(c, domain.TableAuctions, int(opts.Offset), int(opts.Limit), opts.SortBy, selector, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (im *auctionImpl) Upsert(c bCtx.Ctx, auction *marketplace.Auction) error {
	return im.q.Upsert(c, domain.TableAuctions, auctionSelector(auction.AuctionId), auction)
}

func (im *auctionImpl) Remove(c bCtx.Ctx, id marketplace.AuctionId) error {
	err := im.q.Remove(c, domain.TableAuctions, auctionSelector(id.ToLower()))
	if err == query.ErrNotFound {
		return domain.ErrNotFound
	}
	return err
}

type bidImpl struct {
	q query.Mongo
}

func NewBidRepo(q query.Mongo) marketplace.BidRepo {
	return &bidImpl{q: q}
}

func (im *bidImpl) FindOne(c bCtx.Ctx, id marketplace.AuctionId) (*marketplace.Bid, error) {
	res := &marketplace.Bid{}
	err := im.q.FindOne(c, domain.TableBids, auctionSelector(id.ToLower()), res)
	if err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		return nil, err
	}
	return res, nil
}

func (im *bidImpl) Upsert(c bCtx.Ctx, bid *marketplace.Bid) error {
	return im.q.Upsert(c, domain.TableBids, auctionSelector(bid.AuctionId), bid)
}

func (im *bidImpl) Remove(c bCtx.Ctx, id marketplace.AuctionId) error {
	err := im.q.Remove(c, domain.TableBids, auctionSelector(id.ToLower()))
	if err == query.ErrNotFound {
		return domain.ErrNotFound
	}
	return err
}
