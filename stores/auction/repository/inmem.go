package repository

import (
	"sync"

	bCtx "github.com/mintleaf-xyz/venue/base/ctx"
	"github.com/mintleaf-xyz/venue/domain"
	"github.com/mintleaf-xyz/venue/domain/marketplace"
)

type inMemAuctions struct {
	mu   sync.RWMutex
	data map[marketplace.AuctionId]marketplace.Auction
}

// NewInMemAuctionRepo backs the engine tests and local development runs
func NewInMemAuctionRepo() marketplace.AuctionRepo {
	return &inMemAuctions{data: map[marketplace.AuctionId]marketplace.Auction{}}
}

func (im *inMemAuctions) FindOne(c bCtx.Ctx, id marketplace.AuctionId) (*marketplace.Auction, error) {
	im.mu.RLock()
	defer im.mu.RUnlock()
	rec, ok := im.data[id.ToLower()]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &rec, nil
}

func (im *inMemAuctions) FindAll(c bCtx.Ctx, optFns ...marketplace.FindAllOptionsFunc) ([]marketplace.Auction, error) {
	opts := marketplace.GetFindAllOptions(optFns...)
	im.mu.RLock()
	defer im.mu.RUnlock()
	res := []marketplace.Auction{}
	for _, rec := range im.data {
		if opts.Contract != nil && !rec.Contract.Equals(*opts.Contract) {
			continue
		}
		if opts.TokenId != nil && rec.TokenId != *opts.TokenId {
			continue
		}
		if opts.Owner != nil && !rec.Owner.Equals(*opts.Owner) {
			continue
		}
		res = append(res, rec)
	}
	return res, nil
}

func (im *inMemAuctions) Upsert(c bCtx.Ctx, auction *marketplace.Auction) error {
	im.mu.Lock()
	defer im.mu.Unlock()
	rec := *auction
	rec.AuctionId = rec.AuctionId.ToLower()
	im.data[rec.AuctionId] = rec
	return nil
}

func (im *inMemAuctions) Remove(c bCtx.Ctx, id marketplace.AuctionId) error {
	im.mu.Lock()
	defer im.mu.Unlock()
	id = id.ToLower()
	if _, ok := im.data[id]; !ok {
		return domain.ErrNotFound
	}
	delete(im.data, id)
	return nil
}

type inMemBids struct {
	mu   sync.RWMutex
	data map[marketplace.AuctionId]marketplace.Bid
}

func NewInMemBidRepo() marketplace.BidRepo {
	return &inMemBids{data: map[marketplace.AuctionId]marketplace.Bid{}}
}

func (im *inMemBids) FindOne(c bCtx.Ctx, id marketplace.AuctionId) (*marketplace.Bid, error) {
	im.mu.RLock()
	defer im.mu.RUnlock()
	rec, ok := im.data[id.ToLower()]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &rec, nil
}

func (im *inMemBids) Upsert(c bCtx.Ctx, bid *marketplace.Bid) error {
	im.mu.Lock()
	defer im.mu.Unlock()
	rec := *bid
	rec.AuctionId = rec.AuctionId.ToLower()
	im.data[rec.AuctionId] = rec
	return nil
}

func (im *inMemBids) Remove(c bCtx.Ctx, id marketplace.AuctionId) error {
	im.mu.Lock()
	defer im.mu.Unlock()
	id = id.ToLower()
	if _, ok := im.data[id]; !ok {
		return domain.ErrNotFound
	}
	delete(im.data, id)
	return nil
}
