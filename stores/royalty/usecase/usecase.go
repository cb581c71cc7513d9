package usecase

import (
	"math/big"

	bCtx "github.com/mintleaf-xyz/venue/base/ctx"
	"github.com/mintleaf-xyz/venue/domain"
	"github.com/mintleaf-xyz/venue/domain/asset"
	"github.com/mintleaf-xyz/venue/domain/marketplace"
	"github.com/mintleaf-xyz/venue/domain/royalty"
)

type RoyaltyUseCaseCfg struct {
	Repo         royalty.Repo
	Asset        asset.Adapter
	SettingsRepo marketplace.SettingsRepo
}

type impl struct {
	repo         royalty.Repo
	asset        asset.Adapter
	settingsRepo marketplace.SettingsRepo
}

func New(cfg *RoyaltyUseCaseCfg) royalty.UseCase {
	return &impl{
		repo:         cfg.Repo,
		asset:        cfg.Asset,
		settingsRepo: cfg.SettingsRepo,
	}
}

func (im *impl) RoyaltyInfo(c bCtx.Ctx, contract domain.Address, tokenId domain.TokenId, salePrice *big.Int) (domain.Address, *big.Int, error) {
	r, err := im.resolve(c, contract, tokenId)
	if err == domain.ErrNotFound {
		return domain.EmptyAddress, big.NewInt(0), nil
	} else if err != nil {
		return "", nil, err
	}
	amount := new(big.Int).Mul(salePrice, big.NewInt(r.Fraction))
	amount.Div(amount, big.NewInt(royalty.FractionDenominator))
	return r.Receiver, amount, nil
}

func (im *impl) resolve(c bCtx.Ctx, contract domain.Address, tokenId domain.TokenId) (*royalty.Royalty, error) {
	if r, err := im.repo.FindNative(c, contract); err == nil {
		return r, nil
	} else if err != domain.ErrNotFound {
		return nil, err
	}
	if r, err := im.repo.FindToken(c, contract, tokenId); err == nil {
		return r, nil
	} else if err != domain.ErrNotFound {
		return nil, err
	}
	return im.repo.FindDefault(c, contract)
}

func (im *impl) SetDefaultRoyalty(c bCtx.Ctx, caller, contract, receiver domain.Address, fraction int64) error {
	if fraction < 0 || fraction > royalty.FractionDenominator {
		return domain.ErrRoyaltyTooHigh
	}
	settings, err := im.settingsRepo.Get(c)
	if err != nil {
		return err
	}
	if !settings.Owner.Equals(caller) {
		return domain.ErrUnauthorized
	}
	if _, err := im.repo.FindDefault(c, contract); err == nil {
		return domain.ErrRoyaltyAlreadySet
	} else if err != domain.ErrNotFound {
		return err
	}
	return im.repo.Insert(c, &royalty.Royalty{
		Contract: contract,
		Receiver: receiver,
		Fraction: fraction,
	})
}

func (im *impl) SetTokenRoyalty(c bCtx.Ctx, caller, contract domain.Address, tokenId domain.TokenId, receiver domain.Address, fraction int64) error {
	if fraction < 0 || fraction > royalty.FractionDenominator {
		return domain.ErrRoyaltyTooHigh
	}
	kind, err := im.asset.DetectKind(c, contract)
	if err != nil {
		return err
	}
	holds, err := im.asset.Holds(c, kind, contract, tokenId, caller, big.NewInt(1))
	if err != nil {
		return err
	}
	if !holds {
		return domain.ErrUnauthorized
	}
	// native terms win at resolution time, so registering on top of them
	// would silently do nothing
	if _, err := im.repo.FindNative(c, contract); err == nil {
		return domain.ErrRoyaltyAlreadySet
	} else if err != domain.ErrNotFound {
		return err
	}
	if _, err := im.repo.FindToken(c, contract, tokenId); err == nil {
		return domain.ErrRoyaltyAlreadySet
	} else if err != domain.ErrNotFound {
		return err
	}
	return im.repo.Insert(c, &royalty.Royalty{
		Contract: contract,
		TokenId:  tokenId,
		Receiver: receiver,
		Fraction: fraction,
	})
}
