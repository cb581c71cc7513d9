package delivery

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mintleaf-xyz/venue/domain"
	"github.com/mintleaf-xyz/venue/service/query"
)

type JsonResponse struct {
	Data   interface{} `json:"data,omitempty"`
	Status string      `json:"status"`
}

// MakeJsonResp maps domain errors onto http statuses. Success wraps the
// payload, failure carries the reason in status.
func MakeJsonResp(c echo.Context, httpStatus int, data interface{}) error {
	if err, ok := data.(error); ok {
		return c.JSON(statusOf(err, httpStatus), JsonResponse{Status: err.Error()})
	}
	return c.JSON(httpStatus, JsonResponse{Data: data, Status: "success"})
}

func statusOf(err error, fallback int) int {
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, query.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAlreadyExists), errors.Is(err, domain.ErrAssetInEscrow):
		return http.StatusConflict
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrInvalidTiming),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrPaymentTokenRejected),
		errors.Is(err, domain.ErrInsufficientFundsOrApproval),
		errors.Is(err, domain.ErrPriceBelowThreshold),
		errors.Is(err, domain.ErrUnsupportedAsset),
		errors.Is(err, domain.ErrRoyaltyTooHigh),
		errors.Is(err, domain.ErrRoyaltyAlreadySet):
		return http.StatusBadRequest
	}
	if fallback >= http.StatusBadRequest {
		return fallback
	}
	return http.StatusInternalServerError
}
