package query

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson"

	bCtx "github.com/mintleaf-xyz/venue/base/ctx"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrDuplicateKey = errors.New("duplicate key")
)

type Doc = interface{}
type Selector = bson.M
type Update = interface{}

// Mongo is a thin query layer over the mongo driver. Callers address
// collections by table name and never touch driver types directly.
type Mongo interface {
	Insert(c bCtx.Ctx, table string, doc Doc) error
	FindOne(c bCtx.Ctx, table string, selector Selector, result Doc) error
	Count(c bCtx.Ctx, table string, selector Selector) (int, error)
	Upsert(c bCtx.Ctx, table string, selector Selector, doc Doc) error
	Search(c bCtx.Ctx, table string, offset, limit int, sort string, selector Selector, result interface{}) error
	Remove(c bCtx.Ctx, table string, selector Selector) error
	RemoveAll(c bCtx.Ctx, table string, selector Selector) (int, error)
	Patch(c bCtx.Ctx, table string, selector Selector, update Update) error
	Increment(c bCtx.Ctx, table string, selector Selector, result Doc, fieldAndAmounts map[string]int64) error
	RunWithTransaction(c bCtx.Ctx, fn func(bCtx.Ctx) error) error
}
