package marketplace

import (
	"math/big"

	bCtx "github.com/mintleaf-xyz/venue/base/ctx"
	"github.com/mintleaf-xyz/venue/domain"
)

// SettleInput describes one completed sale to split and deliver. When
// Source is empty the price is already in venue escrow and payouts are
// pushed from it; otherwise funds are relayed directly out of Source's
// balance (the non escrowed offer path).
type SettleInput struct {
	PayToken domain.Address
	Contract domain.Address
	TokenId  domain.TokenId
	Price    *big.Int
	Seller   domain.Address
	Source   domain.Address
}

// SettleResult reports the realized split. Fee plus Royalty plus
// Proceeds always equals Price.
type SettleResult struct {
	Fee             *big.Int
	Royalty         *big.Int
	RoyaltyReceiver domain.Address
	Proceeds        *big.Int
}

// Settlement is the fee and royalty pipeline shared by all engines so
// every sale rounds and orders the split identically. The platform fee
// is taken first; the royalty is computed on the price net of fee.
type Settlement interface {
	Settle(c bCtx.Ctx, in SettleInput) (*SettleResult, error)
}
