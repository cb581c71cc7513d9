package marketplace

import (
	"time"

	"github.com/mintleaf-xyz/venue/domain"
)

// Timing bounds every auction must satisfy at creation
const (
	MinAuctionDuration = 5 * time.Minute
	MaxAuctionDuration = 30 * 24 * time.Hour

	// A winning bid (>= reserve) can only be withdrawn this long after
	// the auction end, protecting the seller's settlement window.
	HighestBidWithdrawDelay = 12 * time.Hour
)

// FeeDenominator expresses the platform fee rate in per-mille
const FeeDenominator = 1000

// FindAllOptions narrows repo scans. Nil fields are not filtered on.
type FindAllOptions struct {
	Contract *domain.Address
	TokenId  *domain.TokenId
	Owner    *domain.Address
	Offeror  *domain.Address
	Types    []ActivityType
	Offset   int32
	Limit    int32
	SortBy   string
}

type FindAllOptionsFunc func(*FindAllOptions)

func GetFindAllOptions(opts ...FindAllOptionsFunc) FindAllOptions {
	res := FindAllOptions{}
	for _, opt := range opts {
		opt(&res)
	}
	return res
}

func WithContract(contract domain.Address) FindAllOptionsFunc {
	return func(o *FindAllOptions) {
		contract = contract.ToLower()
		o.Contract = &contract
	}
}

func WithTokenId(tokenId domain.TokenId) FindAllOptionsFunc {
	return func(o *FindAllOptions) {
		o.TokenId = &tokenId
	}
}

func WithOwner(owner domain.Address) FindAllOptionsFunc {
	return func(o *FindAllOptions) {
		owner = owner.ToLower()
		o.Owner = &owner
	}
}

func WithOfferor(offeror domain.Address) FindAllOptionsFunc {
	return func(o *FindAllOptions) {
		offeror = offeror.ToLower()
		o.Offeror = &offeror
	}
}

func WithTypes(types ...ActivityType) FindAllOptionsFunc {
	return func(o *FindAllOptions) {
		o.Types = types
	}
}

func WithPagination(offset, limit int32) FindAllOptionsFunc {
	return func(o *FindAllOptions) {
		o.Offset = offset
		o.Limit = limit
	}
}

func WithSort(sortBy string) FindAllOptionsFunc {
	return func(o *FindAllOptions) {
		o.SortBy = sortBy
	}
}
