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
	listing marketplace.ListingUseCase
}

// New attaches the listing endpoints
func New(e *echo.Echo, listing marketplace.ListingUseCase) {
	h := &handler{listing: listing}

	g := e.Group("/listings")
	g.POST("", h.create)
	g.GET("", h.get)
	g.POST("/update", h.update)
	g.POST("/cancel", h.cancel)
	g.POST("/buy", h.buy)
}

type listingKeyParams struct {
	Contract  string `json:"contract" query:"contract" validate:"required"`
	TokenId   string `json:"tokenId" query:"tokenId" validate:"required"`
	Owner     string `json:"owner" query:"owner" validate:"required"`
	ListingId string `json:"listingId" query:"listingId"`
}

func (p *listingKeyParams) toId() marketplace.ListingId {
	return marketplace.ListingId{
		Contract:  domain.Address(p.Contract),
		TokenId:   domain.TokenId(p.TokenId),
		Owner:     domain.Address(p.Owner),
		ListingId: p.ListingId,
	}
}

// parseOptionalAmount treats empty strings as absent so unique flows
// can omit amount fields entirely.
func parseOptionalAmount(s string) (*big.Int, bool) {
	if s == "" {
		return nil, true
	}
	return domain.ParseAmount(s)
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)
	p := &struct {
		listingKeyParams
		Amount    string `json:"amount"`
		UnitSize  string `json:"unitSize"`
		UnitPrice string `json:"unitPrice" validate:"required"`
		PayToken  string `json:"payToken" validate:"required"`
		StartTime int64  `json:"startTime" validate:"required"`
	}{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	amount, ok := parseOptionalAmount(p.Amount)
	if !ok {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrInvalidAmount)
	}
	unitSize, ok := parseOptionalAmount(p.UnitSize)
	if !ok {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrInvalidAmount)
	}
	unitPrice, ok := domain.ParseAmount(p.UnitPrice)
	if !ok {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrInvalidAmount)
	}
	if err := h.listing.CreateListing(ctx, p.toId(), amount, unitSize, unitPrice, domain.Address(p.PayToken), p.StartTime); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, "ok")
}

func (h *handler) get(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)
	p := &listingKeyParams{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	listing, err := h.listing.GetListing(ctx, p.toId())
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, listing)
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)
	p := &struct {
		listingKeyParams
		Caller    string `json:"caller" validate:"required"`
		PayToken  string `json:"payToken" validate:"required"`
		UnitPrice string `json:"unitPrice" validate:"required"`
	}{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	unitPrice, ok := domain.ParseAmount(p.UnitPrice)
	if !ok {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrInvalidAmount)
	}
	if err := h.listing.UpdateListing(ctx, domain.Address(p.Caller), p.toId(), domain.Address(p.PayToken), unitPrice); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) cancel(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)
	p := &struct {
		listingKeyParams
		Caller string `json:"caller" validate:"required"`
	}{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := h.listing.CancelListing(ctx, domain.Address(p.Caller), p.toId()); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) buy(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)
	p := &struct {
		listingKeyParams
		Buyer            string `json:"buyer" validate:"required"`
		Amount           string `json:"amount"`
		ExpectedPrice    string `json:"expectedPrice" validate:"required"`
		ExpectedPayToken string `json:"expectedPayToken" validate:"required"`
	}{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	amount, ok := parseOptionalAmount(p.Amount)
	if !ok {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrInvalidAmount)
	}
	expectedPrice, ok := domain.ParseAmount(p.ExpectedPrice)
	if !ok {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrInvalidAmount)
	}
	if err := h.listing.Buy(ctx, domain.Address(p.Buyer), p.toId(), amount, expectedPrice, domain.Address(p.ExpectedPayToken)); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}
