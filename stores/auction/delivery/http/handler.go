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
	auction marketplace.AuctionUseCase
}

// New attaches the auction endpoints
func New(e *echo.Echo, auction marketplace.AuctionUseCase) {
	h := &handler{auction: auction}

	g := e.Group("/auctions")
	g.POST("", h.create)
	g.GET("", h.get)
	g.GET("/highest-bid", h.getHighestBid)
	g.POST("/bid", h.placeBid)
	g.POST("/withdraw-bid", h.withdrawBid)
	g.POST("/reserve-price", h.updateReservePrice)
	g.POST("/cancel", h.cancel)
	g.POST("/finish", h.finish)
	g.POST("/finish-below-reserve", h.finishBelowReserve)
}

type auctionKeyParams struct {
	Contract  string `json:"contract" query:"contract" validate:"required"`
	TokenId   string `json:"tokenId" query:"tokenId" validate:"required"`
	Owner     string `json:"owner" query:"owner" validate:"required"`
	AuctionId string `json:"auctionId" query:"auctionId"`
}

func (p *auctionKeyParams) toId() marketplace.AuctionId {
	return marketplace.AuctionId{
		Contract:  domain.Address(p.Contract),
		TokenId:   domain.TokenId(p.TokenId),
		Owner:     domain.Address(p.Owner),
		AuctionId: p.AuctionId,
	}
}

func parseAmount(s string) (*big.Int, bool) {
	if s == "" {
		return nil, true
	}
	return domain.ParseAmount(s)
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)
	p := &struct {
		auctionKeyParams
		Amount        string `json:"amount"`
		PayToken      string `json:"payToken" validate:"required"`
		ReservePrice  string `json:"reservePrice" validate:"required"`
		StartTime     int64  `json:"startTime" validate:"required"`
		EndTime       int64  `json:"endTime" validate:"required"`
		MinBidReserve bool   `json:"minBidReserve"`
	}{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	amount, ok := parseAmount(p.Amount)
	if !ok {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrInvalidAmount)
	}
	reserve, ok := domain.ParseAmount(p.ReservePrice)
	if !ok {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrInvalidAmount)
	}
	if err := h.auction.CreateAuction(ctx, p.toId(), amount, domain.Address(p.PayToken), reserve, p.StartTime, p.EndTime, p.MinBidReserve); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, "ok")
}

func (h *handler) get(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)
	p := &auctionKeyParams{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	auction, err := h.auction.GetAuction(ctx, p.toId())
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, auction)
}

func (h *handler) getHighestBid(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)
	p := &auctionKeyParams{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	bid, err := h.auction.GetHighestBid(ctx, p.toId())
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, bid)
}

func (h *handler) placeBid(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)
	p := &struct {
		auctionKeyParams
		Bidder string `json:"bidder" validate:"required"`
		Amount string `json:"amount" validate:"required"`
	}{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	amount, ok := domain.ParseAmount(p.Amount)
	if !ok {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrInvalidAmount)
	}
	if err := h.auction.PlaceBid(ctx, domain.Address(p.Bidder), p.toId(), amount); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

type callerParams struct {
	auctionKeyParams
	Caller string `json:"caller" validate:"required"`
}

func (h *handler) withdrawBid(c echo.Context) error {
	return h.callerAction(c, h.auction.WithdrawBid)
}

func (h *handler) cancel(c echo.Context) error {
	return h.callerAction(c, h.auction.CancelAuction)
}

func (h *handler) finish(c echo.Context) error {
	return h.callerAction(c, h.auction.FinishAuction)
}

func (h *handler) finishBelowReserve(c echo.Context) error {
	return h.callerAction(c, h.auction.FinishAuctionBelowReservePrice)
}

func (h *handler) callerAction(c echo.Context, fn func(bCtx.Ctx, domain.Address, marketplace.AuctionId) error) error {
	ctx := c.Get("ctx").(bCtx.Ctx)
	p := &callerParams{}
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

func (h *handler) updateReservePrice(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)
	p := &struct {
		callerParams
		ReservePrice string `json:"reservePrice" validate:"required"`
	}{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	reserve, ok := domain.ParseAmount(p.ReservePrice)
	if !ok {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrInvalidAmount)
	}
	if err := h.auction.UpdateReservePrice(ctx, domain.Address(p.Caller), p.toId(), reserve); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}
