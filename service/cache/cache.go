package cache

import (
	"errors"
	"time"

	bCtx "github.com/mintleaf-xyz/venue/base/ctx"
	"github.com/mintleaf-xyz/venue/service/cache/provider"
)

var ErrNotFound = errors.New("not found")

// Getter loads the value on a cache miss
type Getter func() (interface{}, error)

// Service is a typed cache over a byte-level provider. Values are
// serialized as json.
type Service interface {
	// GetByFunc returns the cached value for key, invoking getter to fill
	// the cache on a miss. container receives the decoded value.
	GetByFunc(c bCtx.Ctx, key string, container interface{}, getter Getter) error
	Get(c bCtx.Ctx, key string, container interface{}) error
	Set(c bCtx.Ctx, key string, value interface{}) error
	Del(c bCtx.Ctx, key string) error
}

type ServiceConfig struct {
	Ttl  time.Duration
	Pfx  string
	Cache provider.Provider
}
