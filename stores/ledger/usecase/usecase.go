package usecase

import (
	"math/big"

	bCtx "github.com/mintleaf-xyz/venue/base/ctx"
	"github.com/mintleaf-xyz/venue/domain"
	"github.com/mintleaf-xyz/venue/domain/ledger"
)

type LedgerUseCaseCfg struct {
	Repo ledger.Repo
}

type impl struct {
	repo ledger.Repo
}

func New(cfg *LedgerUseCaseCfg) ledger.UseCase {
	return &impl{repo: cfg.Repo}
}

func (im *impl) BalanceOf(c bCtx.Ctx, token, account domain.Address) (*big.Int, error) {
	return im.repo.BalanceOf(c, token, account)
}

func (im *impl) AllowanceOf(c bCtx.Ctx, token, account, spender domain.Address) (*big.Int, error) {
	return im.repo.AllowanceOf(c, token, account, spender)
}

func (im *impl) Deposit(c bCtx.Ctx, token, account domain.Address, amount *big.Int) error {
	if amount.Sign() <= 0 {
		return domain.ErrInvalidAmount
	}
	balance, err := im.repo.BalanceOf(c, token, account)
	if err != nil {
		return err
	}
	return im.repo.SetBalance(c, token, account, new(big.Int).Add(balance, amount))
}

func (im *impl) Approve(c bCtx.Ctx, token, account, spender domain.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return domain.ErrInvalidAmount
	}
	return im.repo.SetAllowance(c, token, account, spender, amount)
}

func (im *impl) Pull(c bCtx.Ctx, token, from domain.Address, amount *big.Int) error {
	if amount.Sign() == 0 {
		return nil
	}
	return im.move(c, token, from, domain.VenueAddress, amount, true)
}

func (im *impl) Push(c bCtx.Ctx, token, to domain.Address, amount *big.Int) error {
	if amount.Sign() == 0 {
		return nil
	}
	return im.move(c, token, domain.VenueAddress, to, amount, false)
}

func (im *impl) Relay(c bCtx.Ctx, token, from, to domain.Address, amount *big.Int) error {
	if amount.Sign() == 0 {
		return nil
	}
	return im.move(c, token, from, to, amount, true)
}

// move debits from and credits to. When consumeAllowance is set the
// venue spends from's balance and the venue allowance is checked and
// reduced alongside it.
func (im *impl) move(c bCtx.Ctx, token, from, to domain.Address, amount *big.Int, consumeAllowance bool) error {
	if amount.Sign() < 0 {
		return domain.ErrInvalidAmount
	}
	balance, err := im.repo.BalanceOf(c, token, from)
	if err != nil {
		return err
	}
	if balance.Cmp(amount) < 0 {
		return domain.ErrInsufficientFundsOrApproval
	}
	if consumeAllowance {
		allowance, err := im.repo.AllowanceOf(c, token, from, domain.VenueAddress)
		if err != nil {
			return err
		}
		if allowance.Cmp(amount) < 0 {
			return domain.ErrInsufficientFundsOrApproval
		}
		if err := im.repo.SetAllowance(c, token, from, domain.VenueAddress, new(big.Int).Sub(allowance, amount)); err != nil {
			return err
		}
	}
	// a self move passes the checks but must not touch balances, the
	// credit would otherwise overwrite the debit and mint funds
	if from.Equals(to) {
		return nil
	}
	if err := im.repo.SetBalance(c, token, from, new(big.Int).Sub(balance, amount)); err != nil {
		return err
	}
	toBalance, err := im.repo.BalanceOf(c, token, to)
	if err != nil {
		return err
	}
	return im.repo.SetBalance(c, token, to, new(big.Int).Add(toBalance, amount))
}
