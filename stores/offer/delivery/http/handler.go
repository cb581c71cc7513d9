package http

import (
	"math/big"
	"net/http"

	"github.com/labstack/echo/v4"

	bCtx "github.com/mintleaf-xyz/venue/base/ctx"
	"github.com/mintleaf-xyz/venue/base/delivery"
	"github.com/mintleaf-xyz/venue/domain"
	"github.com/mintleaf-xyz/venue/domain/marketplace"
)

type handler struct {
	offer marketplace.OfferUseCase
}

// New attaches the offer endpoints
func New(e *echo.Echo, offer marketplace.OfferUseCase) {
	h := &handler{offer: offer}

	g := e.Group("/offers")
	g.POST("", h.create)
	g.GET("", h.get)
	g.POST("/cancel", h.cancel)
	g.POST("/accept", h.accept)
}

type offerKeyParams struct {
	Contract string `json:"contract" query:"contract" validate:"required"`
	TokenId  string `json:"tokenId" query:"tokenId" validate:"required"`
	Offeror  string `json:"offeror" query:"offeror" validate:"required"`
}

func (p *offerKeyParams) toId() marketplace.OfferId {
	return marketplace.OfferId{
		Contract: domain.Address(p.Contract),
		TokenId:  domain.TokenId(p.TokenId),
		Offeror:  domain.Address(p.Offeror),
	}
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)
	p := &struct {
		offerKeyParams
		Amount     string `json:"amount"`
		PayToken   string `json:"payToken" validate:"required"`
		Price      string `json:"price" validate:"required"`
		Expiration int64  `json:"expiration" validate:"required"`
	}{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	var amount *big.Int
	if p.Amount != "" {
		parsed, ok := domain.ParseAmount(p.Amount)
		if !ok {
			return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrInvalidAmount)
		}
		amount = parsed
	}
	price, ok := domain.ParseAmount(p.Price)
	if !ok {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrInvalidAmount)
	}
	if err := h.offer.CreateOffer(ctx, p.toId(), amount, domain.Address(p.PayToken), price, p.Expiration); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, "ok")
}

func (h *handler) get(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)
	p := &offerKeyParams{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	offer, err := h.offer.GetOffer(ctx, p.toId())
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, offer)
}

func (h *handler) cancel(c echo.Context) error {
	return h.callerAction(c, h.offer.CancelOffer)
}

func (h *handler) accept(c echo.Context) error {
	return h.callerAction(c, h.offer.AcceptOffer)
}

func (h *handler) callerAction(c echo.Context, fn func(bCtx.Ctx, domain.Address, marketplace.OfferId) error) error {
	ctx := c.Get("ctx").(bCtx.Ctx)
	p := &struct {
		offerKeyParams
		Caller string `json:"caller" validate:"required"`
	}{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := fn(ctx, domain.Address(p.Caller), p.toId()); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}
