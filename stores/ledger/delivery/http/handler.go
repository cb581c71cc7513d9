package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	bCtx "github.com/mintleaf-xyz/venue/base/ctx"
	"github.com/mintleaf-xyz/venue/base/delivery"
	"github.com/mintleaf-xyz/venue/domain"
	"github.com/mintleaf-xyz/venue/domain/ledger"
	"github.com/mintleaf-xyz/venue/domain/paytoken"
)

type handler struct {
	ledger   ledger.UseCase
	paytoken paytoken.UseCase
}

// New attaches the fund ledger endpoints. Deposit and approve mirror
// the token operations users perform before trading.
func New(e *echo.Echo, uc ledger.UseCase, ptUC paytoken.UseCase) {
	h := &handler{ledger: uc, paytoken: ptUC}

	g := e.Group("/ledger")
	g.GET("/balance", h.balance)
	g.GET("/allowance", h.allowance)
	g.POST("/deposit", h.deposit)
	g.POST("/approve", h.approve)
}

func (h *handler) balance(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)
	p := &struct {
		Token   string `query:"token" validate:"required"`
		Account string `query:"account" validate:"required"`
	}{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	amount, err := h.ledger.BalanceOf(ctx, domain.Address(p.Token), domain.Address(p.Account))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	res := map[string]string{"amount": amount.String()}
	if token, err := h.paytoken.FindOne(ctx, domain.Address(p.Token)); err == nil {
		res["displayAmount"] = domain.AmountToDisplay(amount, token.Decimals)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) allowance(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)
	p := &struct {
		Token   string `query:"token" validate:"required"`
		Account string `query:"account" validate:"required"`
		Spender string `query:"spender"`
	}{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	spender := domain.Address(p.Spender)
	if spender.IsEmpty() {
		spender = domain.VenueAddress
	}
	amount, err := h.ledger.AllowanceOf(ctx, domain.Address(p.Token), domain.Address(p.Account), spender)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, map[string]string{"amount": amount.String()})
}

func (h *handler) deposit(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)
	p := &struct {
		Token   string `json:"token" validate:"required"`
		Account string `json:"account" validate:"required"`
		Amount  string `json:"amount" validate:"required"`
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
	if err := h.ledger.Deposit(ctx, domain.Address(p.Token), domain.Address(p.Account), amount); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) approve(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)
	p := &struct {
		Token   string `json:"token" validate:"required"`
		Account string `json:"account" validate:"required"`
		Spender string `json:"spender"`
		Amount  string `json:"amount" validate:"required"`
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
	spender := domain.Address(p.Spender)
	if spender.IsEmpty() {
		spender = domain.VenueAddress
	}
	if err := h.ledger.Approve(ctx, domain.Address(p.Token), domain.Address(p.Account), spender, amount); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}
