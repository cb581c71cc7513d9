package repository

import (
	"math/big"

	bCtx "github.com/mintleaf-xyz/venue/base/ctx"
	"github.com/mintleaf-xyz/venue/domain"
	"github.com/mintleaf-xyz/venue/domain/ledger"
	"github.com/mintleaf-xyz/venue/service/query"
)

type impl struct {
	q query.Mongo
}

func New(q query.Mongo) ledger.Repo {
	return &impl{q: q}
}

func (im *impl) BalanceOf(c bCtx.Ctx, token, account domain.Address) (*big.Int, error) {
	res := &ledger.Balance{}
	selector := query.Selector{"token": token.ToLower(), "account": account.ToLower()}
	err := im.q.FindOne(c, domain.TableBalances, selector, res)
	if err == query.ErrNotFound {
		return big.NewInt(0), nil
	} else if err != nil {
		return nil, err
	}
	return domain.MustAmount(res.Amount), nil
}

func (im *impl) SetBalance(c bCtx.Ctx, token, account domain.Address, amount *big.Int) error {
	selector := query.Selector{"token": token.ToLower(), "account": account.ToLower()}
	return im.q.Upsert(c, domain.TableBalances, selector, &ledger.Balance{
		Token:   token.ToLower(),
		Account: account.ToLower(),
		Amount:  amount.String(),
	})
}

func (im *impl) AllowanceOf(c bCtx.Ctx, token, account, spender domain.Address) (*big.Int, error) {
	res := &ledger.Allowance{}
	selector := query.Selector{"token": token.ToLower(), "account": account.ToLower(), "spender": spender.ToLower()}
	err := im.q.FindOne(c, domain.TableAllowances, selector, res)
	if err == query.ErrNotFound {
		return big.NewInt(0), nil
	} else if err != nil {
		return nil, err
	}
	return domain.MustAmount(res.Amount), nil
}

func (im *impl) SetAllowance(c bCtx.Ctx, token, account, spender domain.Address, amount *big.Int) error {
	selector := query.Selector{"token": token.ToLower(), "account": account.ToLower(), "spender": spender.ToLower()}
	return im.q.Upsert(c, domain.TableAllowances, selector, &ledger.Allowance{
		Token:   token.ToLower(),
		Account: account.ToLower(),
		Spender: spender.ToLower(),
		Amount:  amount.String(),
	})
}
