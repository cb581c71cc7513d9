package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	bCtx "github.com/mintleaf-xyz/venue/base/ctx"
	"github.com/mintleaf-xyz/venue/base/delivery"
	"github.com/mintleaf-xyz/venue/domain"
	"github.com/mintleaf-xyz/venue/domain/marketplace"
)

type handler struct {
	settings marketplace.SettingsUseCase
}

// New attaches the venue settings endpoints
func New(e *echo.Echo, uc marketplace.SettingsUseCase) {
	h := &handler{settings: uc}

	g := e.Group("/settings")
	g.GET("", h.get)
	g.POST("/fee-rate", h.updateFeeRate)
	g.POST("/fee-recipient", h.updateFeeRecipient)
	g.POST("/min-bid-increment", h.updateMinBidIncrement)
	g.POST("/offer-escrow", h.updateOfferEscrow)
	g.POST("/ownership", h.transferOwnership)
}

func (h *handler) get(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)
	settings, err := h.settings.Get(ctx)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, settings)
}

func (h *handler) updateFeeRate(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)
	p := &struct {
		Caller string `json:"caller" validate:"required"`
		Rate   int64  `json:"rate"`
	}{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	prev, err := h.settings.UpdateFeeRate(ctx, domain.Address(p.Caller), p.Rate)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, map[string]interface{}{"previous": prev})
}

func (h *handler) updateFeeRecipient(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)
	p := &struct {
		Caller    string `json:"caller" validate:"required"`
		Recipient string `json:"recipient" validate:"required"`
	}{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	prev, err := h.settings.UpdateFeeRecipient(ctx, domain.Address(p.Caller), domain.Address(p.Recipient))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, map[string]interface{}{"previous": prev})
}

func (h *handler) updateMinBidIncrement(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)
	p := &struct {
		Caller    string `json:"caller" validate:"required"`
		Increment string `json:"increment" validate:"required"`
	}{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	increment, ok := domain.ParseAmount(p.Increment)
	if !ok {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrInvalidAmount)
	}
	prev, err := h.settings.UpdateMinBidIncrement(ctx, domain.Address(p.Caller), increment)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, map[string]interface{}{"previous": prev.String()})
}

func (h *handler) updateOfferEscrow(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)
	p := &struct {
		Caller string `json:"caller" validate:"required"`
		Escrow bool   `json:"escrow"`
	}{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	prev, err := h.settings.UpdateOfferEscrow(ctx, domain.Address(p.Caller), p.Escrow)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, map[string]interface{}{"previous": prev})
}

func (h *handler) transferOwnership(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)
	p := &struct {
		Caller   string `json:"caller" validate:"required"`
		NewOwner string `json:"newOwner" validate:"required"`
	}{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	prev, err := h.settings.TransferOwnership(ctx, domain.Address(p.Caller), domain.Address(p.NewOwner))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, map[string]interface{}{"previous": prev})
}
