package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	bCtx "github.com/mintleaf-xyz/venue/base/ctx"
	"github.com/mintleaf-xyz/venue/base/delivery"
	"github.com/mintleaf-xyz/venue/domain"
	"github.com/mintleaf-xyz/venue/domain/royalty"
)

type handler struct {
	royalty royalty.UseCase
}

// New attaches the royalty registry endpoints
func New(e *echo.Echo, uc royalty.UseCase) {
	h := &handler{royalty: uc}

	g := e.Group("/royalties")
	g.GET("", h.info)
	g.POST("/default", h.setDefault)
	g.POST("/token", h.setToken)
}

func (h *handler) info(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)
	p := &struct {
		Contract  string `query:"contract" validate:"required"`
		TokenId   string `query:"tokenId" validate:"required"`
		SalePrice string `query:"salePrice" validate:"required"`
	}{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	salePrice, ok := domain.ParseAmount(p.SalePrice)
	if !ok {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrInvalidAmount)
	}
	receiver, amount, err := h.royalty.RoyaltyInfo(ctx, domain.Address(p.Contract), domain.TokenId(p.TokenId), salePrice)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, map[string]interface{}{
		"receiver": receiver,
		"amount":   amount.String(),
	})
}

func (h *handler) setDefault(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)
	p := &struct {
		Caller   string `json:"caller" validate:"required"`
		Contract string `json:"contract" validate:"required"`
		Receiver string `json:"receiver" validate:"required"`
		Fraction int64  `json:"fraction"`
	}{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := h.royalty.SetDefaultRoyalty(ctx, domain.Address(p.Caller), domain.Address(p.Contract), domain.Address(p.Receiver), p.Fraction); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, "ok")
}

func (h *handler) setToken(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)
	p := &struct {
		Caller   string `json:"caller" validate:"required"`
		Contract string `json:"contract" validate:"required"`
		TokenId  string `json:"tokenId" validate:"required"`
		Receiver string `json:"receiver" validate:"required"`
		Fraction int64  `json:"fraction"`
	}{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := h.royalty.SetTokenRoyalty(ctx, domain.Address(p.Caller), domain.Address(p.Contract), domain.TokenId(p.TokenId), domain.Address(p.Receiver), p.Fraction); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, "ok")
}
