package domain

import "errors"

// Every mutating entry point checks its preconditions before touching any
// state, so a returned error always means nothing happened.
var (
	ErrNotFound                    = errors.New("not found")
	ErrAlreadyExists               = errors.New("already exists")
	ErrUnauthorized                = errors.New("unauthorized")
	ErrInvalidTiming               = errors.New("invalid timing")
	ErrInvalidAmount               = errors.New("invalid amount")
	ErrPaymentTokenRejected        = errors.New("payment token not enabled")
	ErrInsufficientFundsOrApproval = errors.New("insufficient balance or allowance")
	ErrPriceBelowThreshold         = errors.New("price below required threshold")
	ErrUnsupportedAsset            = errors.New("unsupported asset contract")
	ErrRoyaltyTooHigh              = errors.New("royalty too high")
	ErrRoyaltyAlreadySet           = errors.New("royalty already set")
	ErrAssetInEscrow               = errors.New("asset already in escrow")
)
