package asset

import (
	"math/big"

	bCtx "github.com/mintleaf-xyz/venue/base/ctx"
	"github.com/mintleaf-xyz/venue/domain"
)

// Kind is resolved once at an engine's entry boundary and carried through
// the call chain instead of being re-probed per operation.
type Kind int

const (
	KindUnknown Kind = iota
	// KindUnique is a token with a single owner per id
	KindUnique
	// KindMulti is a balance-based token with per-holder amounts per id
	KindMulti
)

func (k Kind) String() string {
	switch k {
	case KindUnique:
		return "unique"
	case KindMulti:
		return "multi"
	}
	return "unknown"
}

// Contract is a registered asset contract and its probed kind
type Contract struct {
	Address domain.Address `json:"address" bson:"address"`
	Kind    Kind           `json:"kind" bson:"kind"`
}

// UniqueOwner records which account owns a unique token id
type UniqueOwner struct {
	Contract domain.Address `json:"contract" bson:"contract"`
	TokenId  domain.TokenId `json:"tokenId" bson:"tokenId"`
	Owner    domain.Address `json:"owner" bson:"owner"`
}

// MultiHolding records an account's balance of a multi token id.
// Balance is a non-negative integer in base units.
type MultiHolding struct {
	Contract domain.Address `json:"contract" bson:"contract"`
	TokenId  domain.TokenId `json:"tokenId" bson:"tokenId"`
	Owner    domain.Address `json:"owner" bson:"owner"`
	Balance  string         `json:"balance" bson:"balance"`
}

// OperatorApproval records that Owner allowed Operator to move any of
// their tokens on Contract
type OperatorApproval struct {
	Contract domain.Address `json:"contract" bson:"contract"`
	Owner    domain.Address `json:"owner" bson:"owner"`
	Operator domain.Address `json:"operator" bson:"operator"`
}

type ContractRepo interface {
	FindOne(c bCtx.Ctx, address domain.Address) (*Contract, error)
	Upsert(c bCtx.Ctx, contract *Contract) error
}

type HoldingRepo interface {
	// OwnerOf returns the owner of a unique token id
	OwnerOf(c bCtx.Ctx, contract domain.Address, tokenId domain.TokenId) (domain.Address, error)
	SetOwner(c bCtx.Ctx, contract domain.Address, tokenId domain.TokenId, owner domain.Address) error

	// BalanceOf returns a holder's multi token balance, zero when absent
	BalanceOf(c bCtx.Ctx, contract domain.Address, tokenId domain.TokenId, owner domain.Address) (*big.Int, error)
	SetBalance(c bCtx.Ctx, contract domain.Address, tokenId domain.TokenId, owner domain.Address, balance *big.Int) error

	IsApprovedForAll(c bCtx.Ctx, contract, owner, operator domain.Address) (bool, error)
	SetApprovalForAll(c bCtx.Ctx, contract, owner, operator domain.Address, approved bool) error
}

// Registrar introduces assets into the venue's book. Mint of a unique
// token fails with domain.ErrAlreadyExists once the id has an owner.
type Registrar interface {
	RegisterContract(c bCtx.Ctx, address domain.Address, kind Kind) error
	Mint(c bCtx.Ctx, contract domain.Address, tokenId domain.TokenId, to domain.Address, amount *big.Int) error
	SetApprovalForAll(c bCtx.Ctx, contract, owner, operator domain.Address, approved bool) error
}

// UseCase is the full asset surface, engines only need Adapter
type UseCase interface {
	Adapter
	Registrar
}

// Adapter gives the engines one uniform surface over both asset kinds
type Adapter interface {
	// DetectKind probes the contract's capabilities. Returns
	// domain.ErrUnsupportedAsset for unregistered contracts.
	DetectKind(c bCtx.Ctx, contract domain.Address) (Kind, error)

	// Holds reports whether owner holds at least amount of the token.
	// amount is forced to 1 for unique assets.
	Holds(c bCtx.Ctx, kind Kind, contract domain.Address, tokenId domain.TokenId, owner domain.Address, amount *big.Int) (bool, error)

	// IsApproved reports whether owner has approved operator to move
	// their tokens on the contract
	IsApproved(c bCtx.Ctx, contract, owner, operator domain.Address) (bool, error)

	// Transfer moves amount of the token from one account to another,
	// dispatching on kind. amount is ignored for unique assets.
	Transfer(c bCtx.Ctx, kind Kind, contract domain.Address, tokenId domain.TokenId, from, to domain.Address, amount *big.Int) error
}
