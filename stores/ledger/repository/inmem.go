package repository

import (
	"math/big"
	"sync"

	bCtx "github.com/mintleaf-xyz/venue/base/ctx"
	"github.com/mintleaf-xyz/venue/domain"
	"github.com/mintleaf-xyz/venue/domain/ledger"
)

type balanceKey struct {
	token   domain.Address
	account domain.Address
}

type allowanceKey struct {
	token   domain.Address
	account domain.Address
	spender domain.Address
}

// NewInMem backs the engine tests and local development runs
func NewInMem() ledger.Repo {
	return &inMem{
		balances:   map[balanceKey]*big.Int{},
		allowances: map[allowanceKey]*big.Int{},
	}
}

type inMem struct {
	mu         sync.RWMutex
	balances   map[balanceKey]*big.Int
	allowances map[allowanceKey]*big.Int
}

func (im *inMem) BalanceOf(c bCtx.Ctx, token, account domain.Address) (*big.Int, error) {
	im.mu.RLock()
	defer im.mu.RUnlock()
	v, ok := im.balances[balanceKey{token.ToLower(), account.ToLower()}]
	if !ok {
		return big.NewInt(0), nil
	}
	return new(big.Int).Set(v), nil
}

func (im *inMem) SetBalance(c bCtx.Ctx, token, account domain.Address, amount *big.Int) error {
	im.mu.Lock()
	defer im.mu.Unlock()
	im.balances[balanceKey{token.ToLower(), account.ToLower()}] = new(big.Int).Set(amount)
	return nil
}

func (im *inMem) AllowanceOf(c bCtx.Ctx, token, account, spender domain.Address) (*big.Int, error) {
	im.mu.RLock()
	defer im.mu.RUnlock()
	v, ok := im.allowances[allowanceKey{token.ToLower(), account.ToLower(), spender.ToLower()}]
	if !ok {
		return big.NewInt(0), nil
	}
	return new(big.Int).Set(v), nil
}

func (im *inMem) SetAllowance(c bCtx.Ctx, token, account, spender domain.Address, amount *big.Int) error {
	im.mu.Lock()
	defer im.mu.Unlock()
	im.allowances[allowanceKey{token.ToLower(), account.ToLower(), spender.ToLower()}] = new(big.Int).Set(amount)
	return nil
}
