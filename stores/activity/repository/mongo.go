package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	bCtx "github.com/mintleaf-xyz/venue/base/ctx"
	"github.com/mintleaf-xyz/venue/domain"
	"github.com/mintleaf-xyz/venue/domain/marketplace"
	"github.com/mintleaf-xyz/venue/service/query"
)

type impl struct {
	q query.Mongo
}

func New(q query.Mongo) marketplace.ActivityRepo {
	return &impl{q: q}
}

func (im *impl) Insert(c bCtx.Ctx, activity *marketplace.Activity) error {
	activity.Contract = activity.Contract.ToLower()
	activity.From = activity.From.ToLower()
	activity.To = activity.To.ToLower()
	return im.q.Insert(c, domain.TableActivities, activity)
}

func (im *impl) FindAll(c bCtx.Ctx, optFns ...marketplace.FindAllOptionsFunc) ([]marketplace.Activity, error) {
	opts := marketplace.GetFindAllOptions(optFns...)
	selector := query.Selector{}
	if opts.Contract != nil {
		selector["contract"] = *opts.Contract
	}
	if opts.TokenId != nil {
		selector["tokenId"] = *opts.TokenId
	}
	if opts.Owner != nil {
		selector["from"] = *opts.Owner
	}
	if len(opts.Types) > 0 {
		selector["type"] = bson.M{"$in": opts.Types}
	}
	sortBy := opts.SortBy
	if sortBy == "" {
		sortBy = "-time"
	}
	res := []marketplace.Activity{}
	if err := im.q.Search(c, domain.TableActivities, int(opts.Offset), int(opts.Limit), sortBy, selector, &res); err != nil {
		return nil, err
	}
	return res, nil
}
