package marketplace

import (
	"math/big"

	bCtx "github.com/mintleaf-xyz/venue/base/ctx"
	"github.com/mintleaf-xyz/venue/domain"
	"github.com/mintleaf-xyz/venue/domain/asset"
)

// ListingId locates one fixed price listing. ListingId (the field)
// disambiguates several listings by the same owner over one multi token
// id, mirroring AuctionId.
type ListingId struct {
	Contract  domain.Address `json:"contract" bson:"contract"`
	TokenId   domain.TokenId `json:"tokenId" bson:"tokenId"`
	Owner     domain.Address `json:"owner" bson:"owner"`
	ListingId string         `json:"listingId" bson:"listingId"`
}

func (id ListingId) ToLower() ListingId {
	id.Contract = id.Contract.ToLower()
	id.Owner = id.Owner.ToLower()
	return id
}

// Listing sells an escrowed token amount at UnitPrice per token,
// purchasable only in multiples of UnitSize. Unique assets always carry
// amount, size and remaining of one.
type Listing struct {
	ListingId   `bson:",inline"`
	Kind        asset.Kind     `json:"kind" bson:"kind"`
	PayToken    domain.Address `json:"payToken" bson:"payToken"`
	UnitPrice   string         `json:"unitPrice" bson:"unitPrice"`
	UnitSize    string         `json:"unitSize" bson:"unitSize"`
	TokenAmount string         `json:"tokenAmount" bson:"tokenAmount"`
	Remaining   string         `json:"remaining" bson:"remaining"`
	StartTime   int64          `json:"startTime" bson:"startTime"`
}

func (l *Listing) Exists() bool {
	return l != nil && l.StartTime > 0
}

func (l *Listing) Price() *big.Int {
	return domain.MustAmount(l.UnitPrice)
}

func (l *Listing) Size() *big.Int {
	return domain.MustAmount(l.UnitSize)
}

func (l *Listing) RemainingAmount() *big.Int {
	return domain.MustAmount(l.Remaining)
}

type ListingRepo interface {
	FindOne(c bCtx.Ctx, id ListingId) (*Listing, error)
	FindAll(c bCtx.Ctx, opts ...FindAllOptionsFunc) ([]Listing, error)
	Upsert(c bCtx.Ctx, listing *Listing) error
	Remove(c bCtx.Ctx, id ListingId) error
}

type ListingUseCase interface {
	CreateListing(c bCtx.Ctx, id ListingId, amount, unitSize, unitPrice *big.Int, payToken domain.Address, startTime int64) error
	// UpdateListing changes price and payment token only, never the
	// escrowed amount
	UpdateListing(c bCtx.Ctx, caller domain.Address, id ListingId, payToken domain.Address, unitPrice *big.Int) error
	CancelListing(c bCtx.Ctx, caller domain.Address, id ListingId) error
	// Buy purchases amount tokens, a multiple of the listing's unit
	// size, at its current terms. expectedPrice and expectedPayToken
	// must match the stored listing exactly so a buyer can never be
	// caught by a concurrent update.
	Buy(c bCtx.Ctx, buyer domain.Address, id ListingId, amount *big.Int, expectedPrice *big.Int, expectedPayToken domain.Address) error
	GetListing(c bCtx.Ctx, id ListingId) (*Listing, error)
}
