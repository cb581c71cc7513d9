package repository

import (
	bCtx "github.com/mintleaf-xyz/venue/base/ctx"
	"github.com/mintleaf-xyz/venue/domain"
	"github.com/mintleaf-xyz/venue/domain/marketplace"
	"github.com/mintleaf-xyz/venue/service/query"
)

func listingSelector(id marketplace.ListingId) query.Selector {
	return query.Selector{
		"contract":  id.Contract,
		"tokenId":   id.TokenId,
		"owner":     id.Owner,
		"listingId": id.ListingId,
	}
}

type impl struct {
	q query.Mongo
}

func New(q query.Mongo) marketplace.ListingRepo {
	return &impl{q: q}
}

func (im *impl) FindOne(c bCtx.Ctx, id marketplace.ListingId) (*marketplace.Listing, error) {
	res := &marketplace.Listing{}
	err := im.q.FindOne(c, domain.TableListings, listingSelector(id.ToLower()), res)
	if err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		return nil, err
	}
	return res, nil
}

func (im *impl) FindAll(c bCtx.Ctx, optFns ...marketplace.FindAllOptionsFunc) ([]marketplace.Listing, error) {
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
	res := []marketplace.Listing{}
	if err := im.q.Search(c, domain.TableListings, int(opts.Offset), int(opts.Limit), opts.SortBy, selector, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (im *impl) Upsert(c bCtx.Ctx, listing *marketplace.Listing) error {
	return im.q.Upsert(c, domain.TableListings, listingSelector(listing.ListingId), listing)
}

func (im *impl) Remove(c bCtx.Ctx, id marketplace.ListingId) error {
	err := im.q.Remove(c, domain.TableListings, listingSelector(id.ToLower()))
	if err == query.ErrNotFound {
		return domain.ErrNotFound
	}
	return err
}
