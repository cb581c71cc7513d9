package usecase

import (
	"math/big"

	bCtx "github.com/mintleaf-xyz/venue/base/ctx"
	"github.com/mintleaf-xyz/venue/base/log"
	"github.com/mintleaf-xyz/venue/domain"
	"github.com/mintleaf-xyz/venue/domain/ledger"
	"github.com/mintleaf-xyz/venue/domain/marketplace"
	"github.com/mintleaf-xyz/venue/domain/royalty"
)

type SettlementUseCaseCfg struct {
	Ledger       ledger.UseCase
	Royalty      royalty.UseCase
	SettingsRepo marketplace.SettingsRepo
}

type impl struct {
	ledger       ledger.UseCase
	royalty      royalty.UseCase
	settingsRepo marketplace.SettingsRepo
}

func New(cfg *SettlementUseCaseCfg) marketplace.Settlement {
	return &impl{
		ledger:       cfg.Ledger,
		royalty:      cfg.Royalty,
		settingsRepo: cfg.SettingsRepo,
	}
}

// Settle takes the platform fee first, then the royalty on the price net
// of fee, then pays the seller the rest. Integer division truncates each
// cut, so the seller absorbs the rounding dust and the parts always sum
// back to the price.
func (im *impl) Settle(c bCtx.Ctx, in marketplace.SettleInput) (*marketplace.SettleResult, error) {
	if in.Price == nil || in.Price.Sign() <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	settings, err := im.settingsRepo.Get(c)
	if err != nil {
		return nil, err
	}

	fee := new(big.Int).Mul(in.Price, big.NewInt(settings.FeeRate))
	fee.Div(fee, big.NewInt(marketplace.FeeDenominator))

	afterFee := new(big.Int).Sub(in.Price, fee)
	royaltyReceiver, royaltyAmount, err := im.royalty.RoyaltyInfo(c, in.Contract, in.TokenId, afterFee)
	if err != nil {
		return nil, err
	}
	if royaltyAmount.Cmp(afterFee) > 0 {
		return nil, domain.ErrRoyaltyTooHigh
	}

	proceeds := new(big.Int).Sub(afterFee, royaltyAmount)

	if err := im.pay(c, in, settings.FeeRecipient, fee); err != nil {
		return nil, err
	}
	if err := im.pay(c, in, royaltyReceiver, royaltyAmount); err != nil {
		return nil, err
	}
	if err := im.pay(c, in, in.Seller, proceeds); err != nil {
		return nil, err
	}

	c.WithFields(log.Fields{
		"payToken": in.PayToken,
		"price":    in.Price.String(),
		"fee":      fee.String(),
		"royalty":  royaltyAmount.String(),
		"proceeds": proceeds.String(),
	}).Info("sale settled")

	return &marketplace.SettleResult{
		Fee:             fee,
		Royalty:         royaltyAmount,
		RoyaltyReceiver: royaltyReceiver,
		Proceeds:        proceeds,
	}, nil
}

func (im *impl) pay(c bCtx.Ctx, in marketplace.SettleInput, to domain.Address, amount *big.Int) error {
	if amount.Sign() == 0 {
		return nil
	}
	if in.Source.IsEmpty() {
		return im.ledger.Push(c, in.PayToken, to, amount)
	}
	return im.ledger.Relay(c, in.PayToken, in.Source, to, amount)
}
