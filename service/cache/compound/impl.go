package compound

import (
	"time"

	bCtx "github.com/mintleaf-xyz/venue/base/ctx"
	"github.com/mintleaf-xyz/venue/service/cache/provider"
)

type impl struct {
	local  provider.Provider
	shared provider.Provider
}

// NewCompound layers a local provider in front of a shared one. Reads fill
// the local layer on a shared hit, writes and deletes go to both.
func NewCompound(local, shared provider.Provider) provider.Provider {
	return &impl{local: local, shared: shared}
}

func (im *impl) Get(c bCtx.Ctx, key string) ([]byte, error) {
	if val, err := im.local.Get(c, key); err == nil {
		return val, nil
	}
	val, err := im.shared.Get(c, key)
	if err != nil {
		return nil, err
	}
	// keep the local fill short so shared invalidations converge quickly
	_ = im.local.Set(c, key, val, 10*time.Second)
	return val, nil
}

func (im *impl) Set(c bCtx.Ctx, key string, value []byte, expiration time.Duration) error {
	if err := im.shared.Set(c, key, value, expiration); err != nil {
		return err
	}
	return im.local.Set(c, key, value, expiration)
}

func (im *impl) Del(c bCtx.Ctx, key string) error {
	if err := im.shared.Del(c, key); err != nil {
		return err
	}
	return im.local.Del(c, key)
}
