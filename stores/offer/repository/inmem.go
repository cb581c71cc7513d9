package repository

import (
	"sync"

	bCtx "github.com/mintleaf-xyz/venue/base/ctx"
	"github.com/mintleaf-xyz/venue/domain"
	"github.com/mintleaf-xyz/venue/domain/marketplace"
)

type inMem struct {
	mu   sync.RWMutex
	data map[marketplace.OfferId]marketplace.Offer
}

// NewInMem backs the engine tests and local development runs
func NewInMem() marketplace.OfferRepo {
	return &inMem{data: map[marketplace.OfferId]marketplace.Offer{}}
}

func (im *inMem) FindOne(c bCtx.Ctx, id marketplace.OfferId) (*marketplace.Offer, error) {
	im.mu.RLock()
	defer im.mu.RUnlock()
	rec, ok := im.data[id.ToLower()]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &rec, nil
}

func (im *inMem) FindAll(c bCtx.Ctx, optFns ...marketplace.FindAllOptionsFunc) ([]marketplace.Offer, error) {
	opts := marketplace.GetFindAllOptions(optFns...)
	im.mu.RLock()
	defer im.mu.RUnlock()
	res := []marketplace.Offer{}
	for _, rec := range im.data {
		if opts.Contract != nil && !rec.Contract.Equals(*opts.Contract) {
			continue
		}
		if opts.TokenId != nil && rec.TokenId != *opts.TokenId {
			continue
		}
		if opts.Offeror != nil && !rec.Offeror.Equals(*opts.Offeror) {
			continue
		}
		res = append(res, rec)
	}
	return res, nil
}

func (im *inMem) Upsert(c bCtx.Ctx, offer *marketplace.Offer) error {
	im.mu.Lock()
	defer im.mu.Unlock()
	rec := *offer
	rec.OfferId = rec.OfferId.ToLower()
	im.data[rec.OfferId] = rec
	return nil
}

func (im *inMem) Remove(c bCtx.Ctx, id marketplace.OfferId) error {
	im.mu.Lock()
	defer im.mu.Unlock()
	id = id.ToLower()
	if _, ok := im.data[id]; !ok {
		return domain.ErrNotFound
	}
	delete(im.data, id)
	return nil
}
