package usecase

import (
	"math/big"

	bCtx "github.com/mintleaf-xyz/venue/base/ctx"
	"github.com/mintleaf-xyz/venue/domain"
	"github.com/mintleaf-xyz/venue/domain/marketplace"
)

type SettingsUseCaseCfg struct {
	Repo marketplace.SettingsRepo
}

type impl struct {
	repo marketplace.SettingsRepo
}

func New(cfg *SettingsUseCaseCfg) marketplace.SettingsUseCase {
	return &impl{repo: cfg.Repo}
}

func (im *impl) Get(c bCtx.Ctx) (*marketplace.Settings, error) {
	return im.repo.Get(c)
}

func (im *impl) UpdateFeeRate(c bCtx.Ctx, caller domain.Address, rate int64) (int64, error) {
	if rate < 0 || rate > marketplace.FeeDenominator {
		return 0, domain.ErrInvalidAmount
	}
	settings, err := im.owned(c, caller)
	if err != nil {
		return 0, err
	}
	prev := settings.FeeRate
	settings.FeeRate = rate
	if err := im.repo.Upsert(c, settings); err != nil {
		return 0, err
	}
	return prev, nil
}

func (im *impl) UpdateFeeRecipient(c bCtx.Ctx, caller, recipient domain.Address) (domain.Address, error) {
	settings, err := im.owned(c, caller)
	if err != nil {
		return "", err
	}
	prev := settings.FeeRecipient
	settings.FeeRecipient = recipient.ToLower()
	if err := im.repo.Upsert(c, settings); err != nil {
		return "", err
	}
	return prev, nil
}

func (im *impl) UpdateMinBidIncrement(c bCtx.Ctx, caller domain.Address, increment *big.Int) (*big.Int, error) {
	if increment.Sign() <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	settings, err := im.owned(c, caller)
	if err != nil {
		return nil, err
	}
	prev := settings.MinIncrement()
	settings.MinBidIncrement = increment.String()
	if err := im.repo.Upsert(c, settings); err != nil {
		return nil, err
	}
	return prev, nil
}

func (im *impl) UpdateOfferEscrow(c bCtx.Ctx, caller domain.Address, escrow bool) (bool, error) {
	settings, err := im.owned(c, caller)
	if err != nil {
		return false, err
	}
	prev := settings.EscrowOfferFunds
	settings.EscrowOfferFunds = escrow
	if err := im.repo.Upsert(c, settings); err != nil {
		return false, err
	}
	return prev, nil
}

func (im *impl) TransferOwnership(c bCtx.Ctx, caller, newOwner domain.Address) (domain.Address, error) {
	if newOwner.IsEmpty() {
		return "", domain.ErrInvalidAmount
	}
	settings, err := im.owned(c, caller)
	if err != nil {
		return "", err
	}
	prev := settings.Owner
	settings.Owner = newOwner.ToLower()
	if err := im.repo.Upsert(c, settings); err != nil {
		return "", err
	}
	return prev, nil
}

func (im *impl) owned(c bCtx.Ctx, caller domain.Address) (*marketplace.Settings, error) {
	settings, err := im.repo.Get(c)
	if err != nil {
		return nil, err
	}
	if !settings.Owner.Equals(caller) {
		return nil, domain.ErrUnauthorized
	}
	return settings, nil
}
