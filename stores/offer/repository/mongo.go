package repository

import (
	bCtx "github.com/mintleaf-xyz/venue/base/ctx"
	"github.com/mintleaf-xyz/venue/domain"
	"github.com/mintleaf-xyz/venue/domain/marketplace"
	"github.com/mintleaf-xyz/venue/service/query"
)

func offerSelector(id marketplace.OfferId) query.Selector {
	return query.Selector{
		"contract": id.Contract,
		"tokenId":  id.TokenId,
		"offeror":  id.Offeror,
	}
}

type impl struct {
	q query.Mongo
}

func New(q query.Mongo) marketplace.OfferRepo {
	return &impl{q: q}
}

func (im *impl) FindOne(c bCtx.Ctx, id marketplace.OfferId) (*marketplace.Offer, error) {
	res := &marketplace.Offer{}
	err := im.q.FindOne(c, domain.TableOffers, offerSelector(id.ToLower()), res)
	if err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		return nil, err
	}
	return res, nil
}

func (im *impl) FindAll(c bCtx.Ctx, optFns ...marketplace.FindAllOptionsFunc) ([]marketplace.Offer, error) {
	opts := marketplace.GetFindAllOptions(optFns...)
	selector := query.Selector{}
	if opts.Contract != nil {
		selector["contract"] = *opts.Contract
	}
	if opts.TokenId != nil {
		selector["tokenId"] = *opts.TokenId
	}
	if opts.Offeror != nil {
		selector["offeror"] = *opts.Offeror
	}
	res := []marketplace.Offer{}
	if err := im.q.Search(c, domain.TableOffers, int(opts.Offset), int(opts.Limit), opts.SortBy, selector, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (im *impl) Upsert(c bCtx.Ctx, offer *marketplace.Offer) error {
	return im.q.Upsert(c, domain.TableOffers, offerSelector(offer.OfferId), offer)
}

func (im *impl) Remove(c bCtx.Ctx, id marketplace.OfferId) error {
	err := im.q.Remove(c, domain.TableOffers, offerSelector(id.ToLower()))
	if err == query.ErrNotFound {
		return domain.ErrNotFound
	}
	return err
}
