package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	bCtx "github.com/mintleaf-xyz/venue/base/ctx"
	"github.com/mintleaf-xyz/venue/base/delivery"
	"github.com/mintleaf-xyz/venue/domain"
	"github.com/mintleaf-xyz/venue/domain/marketplace"
)

type handler struct {
	activity marketplace.ActivityUseCase
}

// New attaches the activity feed endpoint
func New(e *echo.Echo, uc marketplace.ActivityUseCase) {
	h := &handler{activity: uc}

	e.GET("/activities", h.list)
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)
	p := &struct {
		Contract string `query:"contract"`
		TokenId  string `query:"tokenId"`
		Owner    string `query:"owner"`
		Types    string `query:"types"`
		Offset   int32  `query:"offset"`
		Limit    int32  `query:"limit"`
		SortBy   string `query:"sortBy"`
	}{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	opts := []marketplace.FindAllOptionsFunc{}
	if p.Contract != "" {
		opts = append(opts, marketplace.WithContract(domain.Address(p.Contract)))
	}
	if p.TokenId != "" {
		opts = append(opts, marketplace.WithTokenId(domain.TokenId(p.TokenId)))
	}
	if p.Owner != "" {
		opts = append(opts, marketplace.WithOwner(domain.Address(p.Owner)))
	}
	if p.Types != "" {
		types := []marketplace.ActivityType{}
		for _, t := range strings.Split(p.Types, ",") {
			types = append(types, marketplace.ActivityType(t))
		}
		opts = append(opts, marketplace.WithTypes(types...))
	}
	if p.Limit > 0 {
		opts = append(opts, marketplace.WithPagination(p.Offset, p.Limit))
	}
	if p.SortBy != "" {
		opts = append(opts, marketplace.WithSort(p.SortBy))
	}

	activities, err := h.activity.FindAll(ctx, opts...)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, activities)
}
