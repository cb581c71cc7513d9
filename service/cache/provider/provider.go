package provider

import (
	"errors"
	"time"

	bCtx "github.com/mintleaf-xyz/venue/base/ctx"
)

var ErrNotFound = errors.New("not found")

// Provider is a byte-level cache backend
type Provider interface {
	Get(c bCtx.Ctx, key string) ([]byte, error)
	Set(c bCtx.Ctx, key string, value []byte, expiration time.Duration) error
	Del(c bCtx.Ctx, key string) error
}
