package ledger

import (
	"math/big"

	bCtx "github.com/mintleaf-xyz/venue/base/ctx"
	"github.com/mintleaf-xyz/venue/domain"
)

// Balance is an account's payment token balance in base units
type Balance struct {
	Token   domain.Address `json:"token" bson:"token"`
	Account domain.Address `json:"account" bson:"account"`
	Amount  string         `json:"amount" bson:"amount"`
}

// Allowance is what Account lets Spender move on their behalf
type Allowance struct {
	Token   domain.Address `json:"token" bson:"token"`
	Account domain.Address `json:"account" bson:"account"`
	Spender domain.Address `json:"spender" bson:"spender"`
	Amount  string         `json:"amount" bson:"amount"`
}

type Repo interface {
	BalanceOf(c bCtx.Ctx, token, account domain.Address) (*big.Int, error)
	SetBalance(c bCtx.Ctx, token, account domain.Address, amount *big.Int) error
	AllowanceOf(c bCtx.Ctx, token, account, spender domain.Address) (*big.Int, error)
	SetAllowance(c bCtx.Ctx, token, account, spender domain.Address, amount *big.Int) error
}

// UseCase moves payment token amounts between holders and venue escrow.
// All three movers are no-ops for amount zero.
type UseCase interface {
	BalanceOf(c bCtx.Ctx, token, account domain.Address) (*big.Int, error)
	AllowanceOf(c bCtx.Ctx, token, account, spender domain.Address) (*big.Int, error)

	// Deposit credits an account and Approve grants the venue spending
	// power. These mirror the token contract operations users perform
	// before interacting with the venue.
	Deposit(c bCtx.Ctx, token, account domain.Address, amount *big.Int) error
	Approve(c bCtx.Ctx, token, account, spender domain.Address, amount *big.Int) error

	// Pull moves amount from the holder into venue escrow, consuming
	// allowance. Fails with domain.ErrInsufficientFundsOrApproval when
	// either the balance or the allowance is short.
	Pull(c bCtx.Ctx, token, from domain.Address, amount *big.Int) error

	// Push moves amount out of venue escrow to the recipient
	Push(c bCtx.Ctx, token, to domain.Address, amount *big.Int) error

	// Relay moves amount holder to holder without touching escrow,
	// consuming the sender's venue allowance
	Relay(c bCtx.Ctx, token, from, to domain.Address, amount *big.Int) error
}
