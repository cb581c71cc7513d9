package repository

import (
	"math/big"

	bCtx "github.com/mintleaf-xyz/venue/base/ctx"
	"github.com/mintleaf-xyz/venue/domain"
	"github.com/mintleaf-xyz/venue/domain/asset"
	"github.com/mintleaf-xyz/venue/service/query"
)

type contractImpl struct {
	q query.Mongo
}

func NewContractRepo(q query.Mongo) asset.ContractRepo {
	return &contractImpl{q: q}
}

func (im *contractImpl) FindOne(c bCtx.Ctx, address domain.Address) (*asset.Contract, error) {
	res := &asset.Contract{}
	err := im.q.FindOne(c, domain.TableAssetContracts, query.Selector{"address": address.ToLower()}, res)
	if err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		return nil, err
	}
	return res, nil
}

func (im *contractImpl) Upsert(c bCtx.Ctx, contract *asset.Contract) error {
	contract.Address = contract.Address.ToLower()
	return im.q.Upsert(c, domain.TableAssetContracts, query.Selector{"address": contract.Address}, contract)
}

type holdingImpl struct {
	q query.Mongo
}

func NewHoldingRepo(q query.Mongo) asset.HoldingRepo {
	return &holdingImpl{q: q}
}

func (im *holdingImpl) OwnerOf(c bCtx.Ctx, contract domain.Address, tokenId domain.TokenId) (domain.Address, error) {
	res := &asset.UniqueOwner{}
	selector := query.Selector{"contract": contract.ToLower(), "tokenId": tokenId}
	err := im.q.FindOne(c, domain.TableUniqueOwners, selector, res)
	if err == query.ErrNotFound {
		return "", domain.ErrNotFound
	} else if err != nil {
		return "", err
	}
	return res.Owner, nil
}

func (im *holdingImpl) SetOwner(c bCtx.Ctx, contract domain.Address, tokenId domain.TokenId, owner domain.Address) error {
	selector := query.Selector{"contract": contract.ToLower(), "tokenId": tokenId}
	return im.q.Upsert(c, domain.TableUniqueOwners, selector, &asset.UniqueOwner{
		Contract: contract.ToLower(),
		TokenId:  tokenId,
		Owner:    owner.ToLower(),
	})
}

func (im *holdingImpl) BalanceOf(c bCtx.Ctx, contract domain.Address, tokenId domain.TokenId, owner domain.Address) (*big.Int, error) {
	res := &asset.MultiHolding{}
	selector := query.Selector{"contract": contract.ToLower(), "tokenId": tokenId, "owner": owner.ToLower()}
	err := im.q.FindOne(c, domain.TableMultiHoldings, selector, res)
	if err == query.ErrNotFound {
		return big.NewInt(0), nil
	} else if err != nil {
		return nil, err
	}
	return domain.MustAmount(res.Balance), nil
}

func (im *holdingImpl) SetBalance(c bCtx.Ctx, contract domain.Address, tokenId domain.TokenId, owner domain.Address, balance *big.Int) error {
	selector := query.Selector{"contract": contract.ToLower(), "tokenId": tokenId, "owner": owner.ToLower()}
	if balance.Sign() == 0 {
		err := im.q.Remove(c, domain.TableMultiHoldings, selector)
		if err == query.ErrNotFound {
			return nil
		}
		return err
	}
	return im.q.Upsert(c, domain.TableMultiHoldings, selector, &asset.MultiHolding{
		Contract: contract.ToLower(),
		TokenId:  tokenId,
		Owner:    owner.ToLower(),
		Balance:  balance.String(),
	})
}

func (im *holdingImpl) IsApprovedForAll(c bCtx.Ctx, contract, owner, operator domain.Address) (bool, error) {
	selector := query.Selector{"contract": contract.ToLower(), "owner": owner.ToLower(), "operator": operator.ToLower()}
	cnt, err := im.q.Count(c, domain.TableOperatorApprovals, selector)
	if err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (im *holdingImpl) SetApprovalForAll(c bCtx.Ctx, contract, owner, operator domain.Address, approved bool) error {
	selector := query.Selector{"contract": contract.ToLower(), "owner": owner.ToLower(), "operator": operator.ToLower()}
	if !approved {
		err := im.q.Remove(c, domain.TableOperatorApprovals, selector)
		if err == query.ErrNotFound {
			return nil
		}
		return err
	}
	return im.q.Upsert(c, domain.TableOperatorApprovals, selector, &asset.OperatorApproval{
		Contract: contract.ToLower(),
		Owner:    owner.ToLower(),
		Operator: operator.ToLower(),
	})
}
