package paytoken

import (
	bCtx "github.com/mintleaf-xyz/venue/base/ctx"
	"github.com/mintleaf-xyz/venue/domain"
)

// PayToken is an allowlisted payment token
type PayToken struct {
	Address  domain.Address `json:"address" bson:"address"`
	Symbol   string         `json:"symbol" bson:"symbol"`
	Decimals int32          `json:"decimals" bson:"decimals"`
}

type Repo interface {
	FindOne(c bCtx.Ctx, address domain.Address) (*PayToken, error)
	FindAll(c bCtx.Ctx) ([]PayToken, error)
	Insert(c bCtx.Ctx, token *PayToken) error
	Remove(c bCtx.Ctx, address domain.Address) error
}

type UseCase interface {
	IsEnabled(c bCtx.Ctx, address domain.Address) (bool, error)
	FindOne(c bCtx.Ctx, address domain.Address) (*PayToken, error)
	FindAll(c bCtx.Ctx) ([]PayToken, error)

	// Add fails with domain.ErrAlreadyExists for a registered token,
	// Remove with domain.ErrNotFound for an unknown one. Both are gated
	// on the venue owner.
	Add(c bCtx.Ctx, caller domain.Address, token *PayToken) error
	Remove(c bCtx.Ctx, caller, address domain.Address) error
}
