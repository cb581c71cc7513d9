package repository

import (
	"math/big"
	"sync"

	bCtx "github.com/mintleaf-xyz/venue/base/ctx"
	"github.com/mintleaf-xyz/venue/domain"
	"github.com/mintleaf-xyz/venue/domain/asset"
)

// In-memory variants back the engine tests and local development runs
// where no mongo is available.

type inMemContracts struct {
	mu   sync.RWMutex
	data map[domain.Address]asset.Contract
}

func NewInMemContractRepo() asset.ContractRepo {
	return &inMemContracts{data: map[domain.Address]asset.Contract{}}
}

func (im *inMemContracts) FindOne(c bCtx.Ctx, address domain.Address) (*asset.Contract, error) {
	im.mu.RLock()
	defer im.mu.RUnlock()
	rec, ok := im.data[address.ToLower()]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &rec, nil
}

func (im *inMemContracts) Upsert(c bCtx.Ctx, contract *asset.Contract) error {
	im.mu.Lock()
	defer im.mu.Unlock()
	rec := *contract
	rec.Address = rec.Address.ToLower()
	im.data[rec.Address] = rec
	return nil
}

type uniqueKey struct {
	contract domain.Address
	tokenId  domain.TokenId
}

type holdingKey struct {
	contract domain.Address
	tokenId  domain.TokenId
	owner    domain.Address
}

type approvalKey struct {
	contract domain.Address
	owner    domain.Address
	operator domain.Address
}

type inMemHoldings struct {
	mu        sync.RWMutex
	owners    map[uniqueKey]domain.Address
	balances  map[holdingKey]*big.Int
	approvals map[approvalKey]bool
}

func NewInMemHoldingRepo() asset.HoldingRepo {
	return &inMemHoldings{
		owners:    map[uniqueKey]domain.Address{},
		balances:  map[holdingKey]*big.Int{},
		approvals: map[approvalKey]bool{},
	}
}

func (im *inMemHoldings) OwnerOf(c bCtx.Ctx, contract domain.Address, tokenId domain.TokenId) (domain.Address, error) {
	im.mu.RLock()
	defer im.mu.RUnlock()
	owner, ok := im.owners[uniqueKey{contract.ToLower(), tokenId}]
	if !ok {
		return "", domain.ErrNotFound
	}
	return owner, nil
}

func (im *inMemHoldings) SetOwner(c bCtx.Ctx, contract domain.Address, tokenId domain.TokenId, owner domain.Address) error {
	im.mu.Lock()
	defer im.mu.Unlock()
	im.owners[uniqueKey{contract.ToLower(), tokenId}] = owner.ToLower()
	return nil
}

func (im *inMemHoldings) BalanceOf(c bCtx.Ctx, contract domain.Address, tokenId domain.TokenId, owner domain.Address) (*big.Int, error) {
	im.mu.RLock()
	defer im.mu.RUnlock()
	balance, ok := im.balances[holdingKey{contract.ToLower(), tokenId, owner.ToLower()}]
	if !ok {
		return big.NewInt(0), nil
	}
	return new(big.Int).Set(balance), nil
}

func (im *inMemHoldings) SetBalance(c bCtx.Ctx, contract domain.Address, tokenId domain.TokenId, owner domain.Address, balance *big.Int) error {
	im.mu.Lock()
	defer im.mu.Unlock()
	key := holdingKey{contract.ToLower(), tokenId, owner.ToLower()}
	if balance.Sign() == 0 {
		delete(im.balances, key)
		return nil
	}
	im.balances[key] = new(big.Int).Set(balance)
	return nil
}

func (im *inMemHoldings) IsApprovedForAll(c bCtx.Ctx, contract, owner, operator domain.Address) (bool, error) {
	im.mu.RLock()
	defer im.mu.RUnlock()
	return im.approvals[approvalKey{contract.ToLower(), owner.ToLower(), operator.ToLower()}], nil
}

func (im *inMemHoldings) SetApprovalForAll(c bCtx.Ctx, contract, owner, operator domain.Address, approved bool) error {
	im.mu.Lock()
	defer im.mu.Unlock()
	key := approvalKey{contract.ToLower(), owner.ToLower(), operator.ToLower()}
	if !approved {
		delete(im.approvals, key)
		return nil
	}
	im.approvals[key] = true
	return nil
}
