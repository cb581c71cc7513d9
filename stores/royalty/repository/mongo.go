package repository

import (
	bCtx "github.com/mintleaf-xyz/venue/base/ctx"
	"github.com/mintleaf-xyz/venue/domain"
	"github.com/mintleaf-xyz/venue/domain/royalty"
	"github.com/mintleaf-xyz/venue/service/query"
)

type impl struct {
	q query.Mongo
}

func New(q query.Mongo) royalty.Repo {
	return &impl{q: q}
}

func (im *impl) findOne(c bCtx.Ctx, selector query.Selector) (*royalty.Royalty, error) {
	res := &royalty.Royalty{}
	err := im.q.FindOne(c, domain.TableRoyalties, selector, res)
	if err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		return nil, err
	}
	return res, nil
}

func (im *impl) FindDefault(c bCtx.Ctx, contract domain.Address) (*royalty.Royalty, error) {
	return im.findOne(c, query.Selector{"contract": contract.ToLower(), "tokenId": "", "native": false})
}

func (im *impl) FindToken(c bCtx.Ctx, contract domain.Address, tokenId domain.TokenId) (*royalty.Royalty, error) {
	return im.findOne(c, query.Selector{"contract": contract.ToLower(), "tokenId": tokenId, "native": false})
}

func (im *impl) FindNative(c bCtx.Ctx, contract domain.Address) (*royalty.Royalty, error) {
	return im.findOne(c, query.Selector{"contract": contract.ToLower(), "native": true})
}

func (im *impl) Insert(c bCtx.Ctx, r *royalty.Royalty) error {
	r.Contract = r.Contract.ToLower()
	r.Receiver = r.Receiver.ToLower()
	err := im.q.Insert(c, domain.TableRoyalties, r)
	if err == query.ErrDuplicateKey {
		return domain.ErrRoyaltyAlreadySet
	}
	return err
}
