package usecase

import (
	"fmt"

	bCtx "github.com/mintleaf-xyz/venue/base/ctx"
	"github.com/mintleaf-xyz/venue/domain/keys"
	"github.com/mintleaf-xyz/venue/domain/marketplace"
	"github.com/mintleaf-xyz/venue/service/cache"
)

type ActivityUseCaseCfg struct {
	ActivityRepo marketplace.ActivityRepo

	// Cache is optional, reads go straight to the repo without it
	Cache cache.Service
}

type impl struct {
	activityRepo marketplace.ActivityRepo
	cache        cache.Service
}

func New(cfg *ActivityUseCaseCfg) marketplace.ActivityUseCase {
	return &impl{
		activityRepo: cfg.ActivityRepo,
		cache:        cfg.Cache,
	}
}

func (im *impl) FindAll(c bCtx.Ctx, opts ...marketplace.FindAllOptionsFunc) ([]marketplace.Activity, error) {
	if im.cache == nil {
		return im.activityRepo.FindAll(c, opts...)
	}

	res := []marketplace.Activity{}
	err := im.cache.GetByFunc(c, cacheKey(opts...), &res, func() (interface{}, error) {
		return im.activityRepo.FindAll(c, opts...)
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func cacheKey(opts ...marketplace.FindAllOptionsFunc) string {
	o := marketplace.GetFindAllOptions(opts...)
	raw := fmt.Sprintf("%v:%v:%v:%v:%v:%d:%d:%s", o.Contract, o.TokenId, o.Owner, o.Offeror, o.Types, o.Offset, o.Limit, o.SortBy)
	return keys.CustomKey("activities", keys.MD5(raw))
}
