package repository

import (
	"sort"
	"sync"

	bCtx "github.com/mintleaf-xyz/venue/base/ctx"
	"github.com/mintleaf-xyz/venue/domain"
	"github.com/mintleaf-xyz/venue/domain/paytoken"
)

type inMem struct {
	mu   sync.RWMutex
	data map[domain.Address]paytoken.PayToken
}

// NewInMem backs the engine tests and local development runs
func NewInMem() paytoken.Repo {
	return &inMem{data: map[domain.Address]paytoken.PayToken{}}
}

func (im *inMem) FindOne(c bCtx.Ctx, address domain.Address) (*paytoken.PayToken, error) {
	im.mu.RLock()
	defer im.mu.RUnlock()
	rec, ok := im.data[address.ToLower()]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &rec, nil
}

func (im *inMem) FindAll(c bCtx.Ctx) ([]paytoken.PayToken, error) {
	im.mu.RLock()
	defer im.mu.RUnlock()
	res := []paytoken.PayToken{}
	for _, rec := range im.data {
		res = append(res, rec)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Symbol < res[j].Symbol })
	return res, nil
}

func (im *inMem) Insert(c bCtx.Ctx, token *paytoken.PayToken) error {
	im.mu.Lock()
	defer im.mu.Unlock()
	rec := *token
	rec.Address = rec.Address.ToLower()
	if _, ok := im.data[rec.Address]; ok {
		return domain.ErrAlreadyExists
	}
	im.data[rec.Address] = rec
	return nil
}

func (im *inMem) Remove(c bCtx.Ctx, address domain.Address) error {
	im.mu.Lock()
	defer im.mu.Unlock()
	address = address.ToLower()
	if _, ok := im.data[address]; !ok {
		return domain.ErrNotFound
	}
	delete(im.data, address)
	return nil
}
