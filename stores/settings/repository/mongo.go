package repository

import (
	bCtx "github.com/mintleaf-xyz/venue/base/ctx"
	"github.com/mintleaf-xyz/venue/domain"
	"github.com/mintleaf-xyz/venue/domain/marketplace"
	"github.com/mintleaf-xyz/venue/service/query"
)

// The venue keeps exactly one settings record, so the collection is
// addressed with an empty selector.
type impl struct {
	q query.Mongo
}

func New(q query.Mongo) marketplace.SettingsRepo {
	return &impl{q: q}
}

func (im *impl) Get(c bCtx.Ctx) (*marketplace.Settings, error) {
	res := &marketplace.Settings{}
	err := im.q.FindOne(c, domain.TableSettings, query.Selector{}, res)
	if err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		return nil, err
	}
	return res, nil
}

func (im *impl) Upsert(c bCtx.Ctx, settings *marketplace.Settings) error {
	settings.Owner = settings.Owner.ToLower()
	settings.FeeRecipient = settings.FeeRecipient.ToLower()
	return im.q.Upsert(c, domain.TableSettings, query.Selector{}, settings)
}
