package repository

import (
	"sync"

	bCtx "github.com/mintleaf-xyz/venue/base/ctx"
	"github.com/mintleaf-xyz/venue/domain/marketplace"
)

type inMem struct {
	mu   sync.RWMutex
	data []marketplace.Activity
}

// NewInMem backs the engine tests and local development runs
func NewInMem() marketplace.ActivityRepo {
	return &inMem{}
}

func (im *inMem) Insert(c bCtx.Ctx, activity *marketplace.Activity) error {
	im.mu.Lock()
	defer im.mu.Unlock()
	rec := *activity
	rec.Contract = rec.Contract.ToLower()
	rec.From = rec.From.ToLower()
	rec.To = rec.To.ToLower()
	im.data = append(im.data, rec)
	return nil
}

func (im *inMem) FindAll(c bCtx.Ctx, optFns ...marketplace.FindAllOptionsFunc) ([]marketplace.Activity, error) {
	opts := marketplace.GetFindAllOptions(optFns...)
	im.mu.RLock()
	defer im.mu.RUnlock()
	res := []marketplace.Activity{}
	for _, rec := range im.data {
		if opts.Contract != nil && !rec.Contract.Equals(*opts.Contract) {
			continue
		}
		if opts.TokenId != nil && rec.TokenId != *opts.TokenId {
			continue
		}
		if len(opts.Types) > 0 && !containsType(opts.Types, rec.Type) {
			continue
		}
		res = append(res, rec)
	}
	return res, nil
}

func containsType(types []marketplace.ActivityType, t marketplace.ActivityType) bool {
	for _, v := range types {
		if v == t {
			return true
		}
	}
	return false
}
