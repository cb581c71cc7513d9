package redis

import (
	"time"

	bCtx "github.com/mintleaf-xyz/venue/base/ctx"
	"github.com/mintleaf-xyz/venue/service/cache/provider"
	"github.com/mintleaf-xyz/venue/service/redis"
)

type impl struct {
	redis redis.Service
}

// NewRedis builds a provider shared across instances via redis
func NewRedis(svc redis.Service) provider.Provider {
	return &impl{redis: svc}
}

func (im *impl) Get(c bCtx.Ctx, key string) ([]byte, error) {
	val, err := im.redis.Get(c, key)
	if err == redis.ErrNotFound {
		return nil, provider.ErrNotFound
	} else if err != nil {
		return nil, err
	}
	return val, nil
}

func (im *impl) Set(c bCtx.Ctx, key string, value []byte, expiration time.Duration) error {
	return im.redis.Set(c, key, value, expiration)
}

func (im *impl) Del(c bCtx.Ctx, key string) error {
	return im.redis.Del(c, key)
}
