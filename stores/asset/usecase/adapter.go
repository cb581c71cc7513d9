package usecase

import (
	"math/big"

	"golang.org/x/xerrors"

	bCtx "github.com/mintleaf-xyz/venue/base/ctx"
	"github.com/mintleaf-xyz/venue/domain"
	"github.com/mintleaf-xyz/venue/domain/asset"
)

type AdapterCfg struct {
	ContractRepo asset.ContractRepo
	HoldingRepo  asset.HoldingRepo
}

type impl struct {
	contractRepo asset.ContractRepo
	holdingRepo  asset.HoldingRepo
}

func NewAdapter(cfg *AdapterCfg) asset.UseCase {
	return &impl{
		contractRepo: cfg.ContractRepo,
		holdingRepo:  cfg.HoldingRepo,
	}
}

func (im *impl) RegisterContract(c bCtx.Ctx, address domain.Address, kind asset.Kind) error {
	if kind != asset.KindUnique && kind != asset.KindMulti {
		return domain.ErrUnsupportedAsset
	}
	if !address.IsValid() {
		return domain.ErrUnsupportedAsset
	}
	return im.contractRepo.Upsert(c, &asset.Contract{Address: address, Kind: kind})
}

func (im *impl) Mint(c bCtx.Ctx, contract domain.Address, tokenId domain.TokenId, to domain.Address, amount *big.Int) error {
	kind, err := im.DetectKind(c, contract)
	if err != nil {
		return err
	}
	switch kind {
	case asset.KindUnique:
		if _, err := im.holdingRepo.OwnerOf(c, contract, tokenId); err == nil {
			return domain.ErrAlreadyExists
		} else if err != domain.ErrNotFound {
			return err
		}
		return im.holdingRepo.SetOwner(c, contract, tokenId, to)
	case asset.KindMulti:
		if amount == nil || amount.Sign() <= 0 {
			return domain.ErrInvalidAmount
		}
		balance, err := im.holdingRepo.BalanceOf(c, contract, tokenId, to)
		if err != nil {
			return err
		}
		return im.holdingRepo.SetBalance(c, contract, tokenId, to, new(big.Int).Add(balance, amount))
	}
	return domain.ErrUnsupportedAsset
}

func (im *impl) SetApprovalForAll(c bCtx.Ctx, contract, owner, operator domain.Address, approved bool) error {
	return im.holdingRepo.SetApprovalForAll(c, contract, owner, operator, approved)
}

func (im *impl) DetectKind(c bCtx.Ctx, contract domain.Address) (asset.Kind, error) {
	rec, err := im.contractRepo.FindOne(c, contract)
	if err == domain.ErrNotFound {
		return asset.KindUnknown, domain.ErrUnsupportedAsset
	} else if err != nil {
		return asset.KindUnknown, err
	}
	if rec.Kind != asset.KindUnique && rec.Kind != asset.KindMulti {
		return asset.KindUnknown, domain.ErrUnsupportedAsset
	}
	return rec.Kind, nil
}

func (im *impl) Holds(c bCtx.Ctx, kind asset.Kind, contract domain.Address, tokenId domain.TokenId, owner domain.Address, amount *big.Int) (bool, error) {
	switch kind {
	case asset.KindUnique:
		current, err := im.holdingRepo.OwnerOf(c, contract, tokenId)
		if err == domain.ErrNotFound {
			return false, nil
		} else if err != nil {
			return false, err
		}
		return current.Equals(owner), nil
	case asset.KindMulti:
		balance, err := im.holdingRepo.BalanceOf(c, contract, tokenId, owner)
		if err != nil {
			return false, err
		}
		return balance.Cmp(amount) >= 0, nil
	}
	return false, domain.ErrUnsupportedAsset
}

func (im *impl) IsApproved(c bCtx.Ctx, contract, owner, operator domain.Address) (bool, error) {
	return im.holdingRepo.IsApprovedForAll(c, contract, owner, operator)
}

func (im *impl) Transfer(c bCtx.Ctx, kind asset.Kind, contract domain.Address, tokenId domain.TokenId, from, to domain.Address, amount *big.Int) error {
	switch kind {
	case asset.KindUnique:
		current, err := im.holdingRepo.OwnerOf(c, contract, tokenId)
		if err != nil {
			return err
		}
		if !current.Equals(from) {
			return xerrors.Errorf("transfer of token %s not held by %s: %w", tokenId, from, domain.ErrUnauthorized)
		}
		return im.holdingRepo.SetOwner(c, contract, tokenId, to)
	case asset.KindMulti:
		fromBalance, err := im.holdingRepo.BalanceOf(c, contract, tokenId, from)
		if err != nil {
			return err
		}
		if fromBalance.Cmp(amount) < 0 {
			return domain.ErrInsufficientFundsOrApproval
		}
		// a self transfer passes the balance check but must not touch
		// holdings, the credit would otherwise overwrite the debit and
		// mint tokens
		if from.Equals(to) {
			return nil
		}
		if err := im.holdingRepo.SetBalance(c, contract, tokenId, from, new(big.Int).Sub(fromBalance, amount)); err != nil {
			return err
		}
		toBalance, err := im.holdingRepo.BalanceOf(c, contract, tokenId, to)
		if err != nil {
			return err
		}
		return im.holdingRepo.SetBalance(c, contract, tokenId, to, new(big.Int).Add(toBalance, amount))
	}
	return domain.ErrUnsupportedAsset
}
