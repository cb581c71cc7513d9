package royalty

import (
	"math/big"

	bCtx "github.com/mintleaf-xyz/venue/base/ctx"
	"github.com/mintleaf-xyz/venue/domain"
)

// FractionDenominator expresses royalty fractions in basis points
const FractionDenominator = 10000

// Royalty is a receiver/fraction pair. TokenId is empty for a
// contract-wide default. Native marks contracts that publish their own
// royalty terms, which always win over registry entries.
type Royalty struct {
	Contract domain.Address `json:"contract" bson:"contract"`
	TokenId  domain.TokenId `json:"tokenId" bson:"tokenId"`
	Receiver domain.Address `json:"receiver" bson:"receiver"`
	Fraction int64          `json:"fraction" bson:"fraction"`
	Native   bool           `json:"native" bson:"native"`
}

type Repo interface {
	FindDefault(c bCtx.Ctx, contract domain.Address) (*Royalty, error)
	FindToken(c bCtx.Ctx, contract domain.Address, tokenId domain.TokenId) (*Royalty, error)
	FindNative(c bCtx.Ctx, contract domain.Address) (*Royalty, error)
	Insert(c bCtx.Ctx, r *Royalty) error
}

type UseCase interface {
	// RoyaltyInfo resolves the receiver and amount for a sale. Native
	// terms are checked first, then the token-level registry entry, then
	// the contract default. A zero amount with an empty receiver means
	// no royalty applies.
	RoyaltyInfo(c bCtx.Ctx, contract domain.Address, tokenId domain.TokenId, salePrice *big.Int) (domain.Address, *big.Int, error)

	// SetDefaultRoyalty registers a contract-wide fallback. Venue owner
	// only, rejected once any default exists for the contract.
	SetDefaultRoyalty(c bCtx.Ctx, caller, contract, receiver domain.Address, fraction int64) error

	// SetTokenRoyalty registers terms for one token id. The caller must
	// hold the token, and the entry is write-once.
	SetTokenRoyalty(c bCtx.Ctx, caller, contract domain.Address, tokenId domain.TokenId, receiver domain.Address, fraction int64) error
}
