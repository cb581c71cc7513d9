package primitive

import (
	"time"

	"github.com/coocood/freecache"

	bCtx "github.com/mintleaf-xyz/venue/base/ctx"
	"github.com/mintleaf-xyz/venue/service/cache/provider"
)

type impl struct {
	cache *freecache.Cache
}

// NewPrimitive builds an in-process provider backed by freecache
func NewPrimitive(sizeInMB int) provider.Provider {
	return &impl{cache: freecache.NewCache(sizeInMB * 1024 * 1024)}
}

func (im *impl) Get(c bCtx.Ctx, key string) ([]byte, error) {
	val, err := im.cache.Get([]byte(key))
	if err == freecache.ErrNotFound {
		return nil, provider.ErrNotFound
	} else if err != nil {
		return nil, err
	}
	return val, nil
}

func (im *impl) Set(c bCtx.Ctx, key string, value []byte, expiration time.Duration) error {
	return im.cache.Set([]byte(key), value, int(expiration/time.Second))
}

func (im *impl) Del(c bCtx.Ctx, key string) error {
	im.cache.Del([]byte(key))
	return nil
}
