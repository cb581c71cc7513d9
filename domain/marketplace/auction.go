package marketplace

import (
	"math/big"

	bCtx "github.com/mintleaf-xyz/venue/base/ctx"
	"github.com/mintleaf-xyz/venue/domain"
	"github.com/mintleaf-xyz/venue/domain/asset"
)

// AuctionId locates one auction. AuctionId (the field) is caller
// supplied and only meaningful for multi assets, where one owner can run
// several auctions over the same token id. Unique assets carry at most
// one live auction per token.
type AuctionId struct {
	Contract  domain.Address `json:"contract" bson:"contract"`
	TokenId   domain.TokenId `json:"tokenId" bson:"tokenId"`
	Owner     domain.Address `json:"owner" bson:"owner"`
	AuctionId string         `json:"auctionId" bson:"auctionId"`
}

func (id AuctionId) ToLower() AuctionId {
	id.Contract = id.Contract.ToLower()
	id.Owner = id.Owner.ToLower()
	return id
}

// Auction is a timed English auction over an escrowed asset. Amounts are
// decimal strings in base units.
type Auction struct {
	AuctionId     `bson:",inline"`
	Kind          asset.Kind     `json:"kind" bson:"kind"`
	Amount        string         `json:"amount" bson:"amount"`
	PayToken      domain.Address `json:"payToken" bson:"payToken"`
	ReservePrice  string         `json:"reservePrice" bson:"reservePrice"`
	MinBidReserve bool           `json:"minBidReserve" bson:"minBidReserve"`
	StartTime     int64          `json:"startTime" bson:"startTime"`
	EndTime       int64          `json:"endTime" bson:"endTime"`
}

// Exists follows the zero-start-time absence convention
func (a *Auction) Exists() bool {
	return a != nil && a.StartTime > 0
}

func (a *Auction) Reserve() *big.Int {
	return domain.MustAmount(a.ReservePrice)
}

func (a *Auction) AssetAmount() *big.Int {
	return domain.MustAmount(a.Amount)
}

// Bid is the current highest bid of an auction, keyed identically
type Bid struct {
	AuctionId `bson:",inline"`
	Bidder    domain.Address `json:"bidder" bson:"bidder"`
	Amount    string         `json:"amount" bson:"amount"`
	Time      int64          `json:"time" bson:"time"`
}

func (b *Bid) Exists() bool {
	if b == nil || b.Amount == "" {
		return false
	}
	v, ok := domain.ParseAmount(b.Amount)
	return ok && v.Sign() > 0
}

func (b *Bid) BidAmount() *big.Int {
	return domain.MustAmount(b.Amount)
}

type AuctionRepo interface {
	FindOne(c bCtx.Ctx, id AuctionId) (*Auction, error)
	FindAll(c bCtx.Ctx, opts ...FindAllOptionsFunc) ([]Auction, error)
	Upsert(c bCtx.Ctx, auction *Auction) error
	Remove(c bCtx.Ctx, id AuctionId) error
}

type BidRepo interface {
	FindOne(c bCtx.Ctx, id AuctionId) (*Bid, error)
	Upsert(c bCtx.Ctx, bid *Bid) error
	Remove(c bCtx.Ctx, id AuctionId) error
}

// AuctionUseCase is the auction state machine. Every mutating call
// checks all preconditions before touching any state, and commits state
// before moving funds or assets.
type AuctionUseCase interface {
	CreateAuction(c bCtx.Ctx, id AuctionId, amount *big.Int, payToken domain.Address, reservePrice *big.Int, startTime, endTime int64, minBidReserve bool) error
	PlaceBid(c bCtx.Ctx, bidder domain.Address, id AuctionId, amount *big.Int) error
	WithdrawBid(c bCtx.Ctx, caller domain.Address, id AuctionId) error
	UpdateReservePrice(c bCtx.Ctx, caller domain.Address, id AuctionId, reservePrice *big.Int) error
	CancelAuction(c bCtx.Ctx, caller domain.Address, id AuctionId) error
	FinishAuction(c bCtx.Ctx, caller domain.Address, id AuctionId) error
	FinishAuctionBelowReservePrice(c bCtx.Ctx, caller domain.Address, id AuctionId) error
	GetAuction(c bCtx.Ctx, id AuctionId) (*Auction, error)
	GetHighestBid(c bCtx.Ctx, id AuctionId) (*Bid, error)
}
