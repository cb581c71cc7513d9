package redis

import (
	"errors"
	"time"

	bCtx "github.com/mintleaf-xyz/venue/base/ctx"
)

var ErrNotFound = errors.New("not found")

// Service exposes the subset of redis commands the venue uses. Keys are
// namespaced by domain/keys before they reach this layer.
type Service interface {
	Get(c bCtx.Ctx, key string) ([]byte, error)
	Set(c bCtx.Ctx, key string, value []byte, expiration time.Duration) error
	Del(c bCtx.Ctx, keys ...string) error
	Exists(c bCtx.Ctx, key string) (bool, error)
	IncrBy(c bCtx.Ctx, key string, amount int64) (int64, error)
}
