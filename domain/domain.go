package domain

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// Address is a lower-cased hex contract or account address
type Address string

func (a Address) ToLower() Address {
	return Address(strings.ToLower(string(a)))
}

func (a Address) ToLowerStr() string {
	return strings.ToLower(string(a))
}

func (a Address) IsValid() bool {
	return common.IsHexAddress(string(a))
}

func (a Address) Equals(b Address) bool {
	return strings.EqualFold(string(a), string(b))
}

func (a Address) IsEmpty() bool {
	return a == "" || a.Equals(EmptyAddress)
}

// TokenId is the decimal string form of an asset's token id
type TokenId string

const EmptyAddress = Address("0x0000000000000000000000000000000000000000")

// VenueAddress is the escrow identity funds and assets are parked under
const VenueAddress = Address("0x000000000000000000000000000000000000e5c0")

type SortDir int

const (
	SortDirAsc  SortDir = 1
	SortDirDesc SortDir = -1
)

const (
	TableAuctions          = "auctions"
	TableBids              = "bids"
	TableListings          = "listings"
	TableOffers            = "offers"
	TablePayTokens         = "pay_tokens"
	TableRoyalties         = "royalties"
	TableBalances          = "balances"
	TableAllowances        = "allowances"
	TableAssetContracts    = "asset_contracts"
	TableUniqueOwners      = "unique_owners"
	TableMultiHoldings     = "multi_holdings"
	TableOperatorApprovals = "operator_approvals"
	TableActivities        = "activities"
	TableSettings          = "settings"
)

// ParseAmount parses a non-negative integer amount in base units
func ParseAmount(s string) (*big.Int, bool) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok || v.Sign() < 0 {
		return nil, false
	}
	return v, true
}

// MustAmount is for values this service wrote itself
func MustAmount(s string) *big.Int {
	v, ok := ParseAmount(s)
	if !ok {
		panic("malformed stored amount: " + s)
	}
	return v
}

// AmountToDisplay renders a base-unit amount with the token's decimals
func AmountToDisplay(amount *big.Int, decimals int32) string {
	return decimal.NewFromBigInt(amount, -decimals).String()
}
