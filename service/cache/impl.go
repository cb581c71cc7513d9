package cache

import (
	"encoding/json"
	"time"

	bCtx "github.com/mintleaf-xyz/venue/base/ctx"
	"github.com/mintleaf-xyz/venue/base/log"
	"github.com/mintleaf-xyz/venue/domain/keys"
	"github.com/mintleaf-xyz/venue/service/cache/provider"
)

type impl struct {
	ttl   time.Duration
	pfx   string
	cache provider.Provider
}

func New(cfg ServiceConfig) Service {
	return &impl{ttl: cfg.Ttl, pfx: cfg.Pfx, cache: cfg.Cache}
}

func (im *impl) key(key string) string {
	return keys.RedisKey(im.pfx, key)
}

func (im *impl) GetByFunc(c bCtx.Ctx, key string, container interface{}, getter Getter) error {
	err := im.Get(c, key, container)
	if err == nil {
		return nil
	}
	if err != ErrNotFound {
		c.WithFields(log.Fields{"key": key, "err": err}).Warn("cache get failed, falling through")
	}

	value, err := getter()
	if err != nil {
		return err
	}
	if err := im.Set(c, key, value); err != nil {
		c.WithFields(log.Fields{"key": key, "err": err}).Warn("cache fill failed")
	}

	// round-trip through json so container gets the same shape as a cache hit
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, container)
}

func (im *impl) Get(c bCtx.Ctx, key string, container interface{}) error {
	data, err := im.cache.Get(c, im.key(key))
	if err == provider.ErrNotFound {
		return ErrNotFound
	} else if err != nil {
		return err
	}
	return json.Unmarshal(data, container)
}

func (im *impl) Set(c bCtx.Ctx, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return im.cache.Set(c, im.key(key), data, im.ttl)
}

func (im *impl) Del(c bCtx.Ctx, key string) error {
	return im.cache.Del(c, im.key(key))
}
