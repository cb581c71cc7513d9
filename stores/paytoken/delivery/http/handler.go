package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	bCtx "github.com/mintleaf-xyz/venue/base/ctx"
	"github.com/mintleaf-xyz/venue/base/delivery"
	"github.com/mintleaf-xyz/venue/domain"
	"github.com/mintleaf-xyz/venue/domain/paytoken"
)

type handler struct {
	paytoken paytoken.UseCase
}

// New attaches the payment token endpoints
func New(e *echo.Echo, uc paytoken.UseCase) {
	h := &handler{paytoken: uc}

	g := e.Group("/paytokens")
	g.GET("", h.list)
	g.POST("", h.add)
	g.POST("/remove", h.remove)
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)
	tokens, err := h.paytoken.FindAll(ctx)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, tokens)
}

func (h *handler) add(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)
	p := &struct {
		Caller   string `json:"caller" validate:"required"`
		Address  string `json:"address" validate:"required"`
		Symbol   string `json:"symbol" validate:"required"`
		Decimals int32  `json:"decimals"`
	}{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	token := &paytoken.PayToken{
		Address:  domain.Address(p.Address),
		Symbol:   p.Symbol,
		Decimals: p.Decimals,
	}
	if err := h.paytoken.Add(ctx, domain.Address(p.Caller), token); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, "ok")
}

func (h *handler) remove(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)
	p := &struct {
		Caller  string `json:"caller" validate:"required"`
		Address string `json:"address" validate:"required"`
	}{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := h.paytoken.Remove(ctx, domain.Address(p.Caller), domain.Address(p.Address)); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}
