package repository

import (
	"sync"

	bCtx "github.com/mintleaf-xyz/venue/base/ctx"
	"github.com/mintleaf-xyz/venue/domain"
	"github.com/mintleaf-xyz/venue/domain/royalty"
)

type royaltyKey struct {
	contract domain.Address
	tokenId  domain.TokenId
	native   bool
}

type inMem struct {
	mu   sync.RWMutex
	data map[royaltyKey]royalty.Royalty
}

// NewInMem backs the engine tests and local development runs
func NewInMem() royalty.Repo {
	return &inMem{data: map[royaltyKey]royalty.Royalty{}}
}

func (im *inMem) findOne(key royaltyKey) (*royalty.Royalty, error) {
	im.mu.RLock()
	defer im.mu.RUnlock()
	rec, ok := im.data[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &rec, nil
}

func (im *inMem) FindDefault(c bCtx.Ctx, contract domain.Address) (*royalty.Royalty, error) {
	return im.findOne(royaltyKey{contract: contract.ToLower()})
}

func (im *inMem) FindToken(c bCtx.Ctx, contract domain.Address, tokenId domain.TokenId) (*royalty.Royalty, error) {
	return im.findOne(royaltyKey{contract: contract.ToLower(), tokenId: tokenId})
}

func (im *inMem) FindNative(c bCtx.Ctx, contract domain.Address) (*royalty.Royalty, error) {
	im.mu.RLock()
	defer im.mu.RUnlock()
	for key, rec := range im.data {
		if key.native && key.contract == contract.ToLower() {
			return &rec, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (im *inMem) Insert(c bCtx.Ctx, r *royalty.Royalty) error {
	im.mu.Lock()
	defer im.mu.Unlock()
	rec := *r
	rec.Contract = rec.Contract.ToLower()
	rec.Receiver = rec.Receiver.ToLower()
	key := royaltyKey{contract: rec.Contract, tokenId: rec.TokenId, native: rec.Native}
	if _, ok := im.data[key]; ok {
		return domain.ErrRoyaltyAlreadySet
	}
	im.data[key] = rec
	return nil
}
