package marketplace

import (
	"math/big"

	bCtx "github.com/mintleaf-xyz/venue/base/ctx"
	"github.com/mintleaf-xyz/venue/domain"
)

// Settings is the venue's mutable configuration. A single record is
// kept; FeeRate is per-mille of the sale price.
type Settings struct {
	Owner            domain.Address `json:"owner" bson:"owner"`
	FeeRecipient     domain.Address `json:"feeRecipient" bson:"feeRecipient"`
	FeeRate          int64          `json:"feeRate" bson:"feeRate"`
	MinBidIncrement  string         `json:"minBidIncrement" bson:"minBidIncrement"`
	EscrowOfferFunds bool           `json:"escrowOfferFunds" bson:"escrowOfferFunds"`
}

func (s *Settings) MinIncrement() *big.Int {
	return domain.MustAmount(s.MinBidIncrement)
}

type SettingsRepo interface {
	Get(c bCtx.Ctx) (*Settings, error)
	Upsert(c bCtx.Ctx, settings *Settings) error
}

// SettingsUseCase gates every setter on the venue owner and returns the
// previous value for auditability.
type SettingsUseCase interface {
	Get(c bCtx.Ctx) (*Settings, error)
	UpdateFeeRate(c bCtx.Ctx, caller domain.Address, rate int64) (int64, error)
	UpdateFeeRecipient(c bCtx.Ctx, caller, recipient domain.Address) (domain.Address, error)
	UpdateMinBidIncrement(c bCtx.Ctx, caller domain.Address, increment *big.Int) (*big.Int, error)
	UpdateOfferEscrow(c bCtx.Ctx, caller domain.Address, escrow bool) (bool, error)
	TransferOwnership(c bCtx.Ctx, caller, newOwner domain.Address) (domain.Address, error)
}
