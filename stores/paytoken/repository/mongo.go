package repository

import (
	bCtx "github.com/mintleaf-xyz/venue/base/ctx"
	"github.com/mintleaf-xyz/venue/domain"
	"github.com/mintleaf-xyz/venue/domain/paytoken"
	"github.com/mintleaf-xyz/venue/service/query"
)

type impl struct {
	q query.Mongo
}

func New(q query.Mongo) paytoken.Repo {
	return &impl{q: q}
}

func (im *impl) FindOne(c bCtx.Ctx, address domain.Address) (*paytoken.PayToken, error) {
	res := &paytoken.PayToken{}
	err := im.q.FindOne(c, domain.TablePayTokens, query.Selector{"address": address.ToLower()}, res)
	if err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		return nil, err
	}
	return res, nil
}

func (im *impl) FindAll(c bCtx.Ctx) ([]paytoken.PayToken, error) {
	res := []paytoken.PayToken{}
	if err := im.q.Search(c, domain.TablePayTokens, 0, 0, "symbol", query.Selector{}, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (im *impl) Insert(c bCtx.Ctx, token *paytoken.PayToken) error {
	token.Address = token.Address.ToLower()
	err := im.q.Insert(c, domain.TablePayTokens, token)
	if err == query.ErrDuplicateKey {
		return domain.ErrAlreadyExists
	}
	return err
}

func (im *impl) Remove(c bCtx.Ctx, address domain.Address) error {
	err := im.q.Remove(c, domain.TablePayTokens, query.Selector{"address": address.ToLower()})
	if err == query.ErrNotFound {
		return domain.ErrNotFound
	}
	return err
}
