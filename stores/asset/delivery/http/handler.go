package http

import (
	"math/big"
	"net/http"

	"github.com/labstack/echo/v4"

	bCtx "github.com/mintleaf-xyz/venue/base/ctx"
	"github.com/mintleaf-xyz/venue/base/delivery"
	"github.com/mintleaf-xyz/venue/domain"
	"github.com/mintleaf-xyz/venue/domain/asset"
)

type handler struct {
	asset asset.UseCase
}

// New attaches the asset book endpoints
func New(e *echo.Echo, uc asset.UseCase) {
	h := &handler{asset: uc}

	g := e.Group("/assets")
	g.POST("/contracts", h.registerContract)
	g.GET("/kind", h.kind)
	g.POST("/mint", h.mint)
	g.POST("/approval", h.setApproval)
}

func (h *handler) registerContract(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)
	p := &struct {
		Address string `json:"address" validate:"required"`
		Kind    string `json:"kind" validate:"required,oneof=unique multi"`
	}{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	kind := asset.KindUnique
	if p.Kind == "multi" {
		kind = asset.KindMulti
	}
	if err := h.asset.RegisterContract(ctx, domain.Address(p.Address), kind); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, "ok")
}

func (h *handler) kind(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)
	p := &struct {
		Contract string `query:"contract" validate:"required"`
	}{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	kind, err := h.asset.DetectKind(ctx, domain.Address(p.Contract))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, map[string]string{"kind": kind.String()})
}

func (h *handler) mint(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)
	p := &struct {
		Contract string `json:"contract" validate:"required"`
		TokenId  string `json:"tokenId" validate:"required"`
		To       string `json:"to" validate:"required"`
		Amount   string `json:"amount"`
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
	if err := h.asset.Mint(ctx, domain.Address(p.Contract), domain.TokenId(p.TokenId), domain.Address(p.To), amount); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, "ok")
}

func (h *handler) setApproval(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)
	p := &struct {
		Contract string `json:"contract" validate:"required"`
		Owner    string `json:"owner" validate:"required"`
		Operator string `json:"operator"`
		Approved bool   `json:"approved"`
	}{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	operator := domain.Address(p.Operator)
	if operator.IsEmpty() {
		operator = domain.VenueAddress
	}
	if err := h.asset.SetApprovalForAll(ctx, domain.Address(p.Contract), domain.Address(p.Owner), operator, p.Approved); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}
