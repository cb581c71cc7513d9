package repository

import (
	"sync"

	bCtx "github.com/mintleaf-xyz/venue/base/ctx"
	"github.com/mintleaf-xyz/venue/domain"
	"github.com/mintleaf-xyz/venue/domain/marketplace"
)

type inMem struct {
	mu       sync.RWMutex
	settings *marketplace.Settings
}

// NewInMem backs the engine tests and local development runs
func NewInMem() marketplace.SettingsRepo {
	return &inMem{}
}

func (im *inMem) Get(c bCtx.Ctx) (*marketplace.Settings, error) {
	im.mu.RLock()
	defer im.mu.RUnlock()
	if im.settings == nil {
		return nil, domain.ErrNotFound
	}
	rec := *im.settings
	return &rec, nil
}

func (im *inMem) Upsert(c bCtx.Ctx, settings *marketplace.Settings) error {
	im.mu.Lock()
	defer im.mu.Unlock()
	rec := *settings
	rec.Owner = rec.Owner.ToLower()
	rec.FeeRecipient = rec.FeeRecipient.ToLower()
	im.settings = &rec
	return nil
}
