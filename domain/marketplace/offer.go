package marketplace

import (
	"math/big"

	bCtx "github.com/mintleaf-xyz/venue/base/ctx"
	"github.com/mintleaf-xyz/venue/domain"
	"github.com/mintleaf-xyz/venue/domain/asset"
)

// OfferId locates one buyer offer. An offeror holds at most one live
// offer per token.
type OfferId struct {
	Contract domain.Address `json:"contract" bson:"contract"`
	TokenId  domain.TokenId `json:"tokenId" bson:"tokenId"`
	Offeror  domain.Address `json:"offeror" bson:"offeror"`
}

func (id OfferId) ToLower() OfferId {
	id.Contract = id.Contract.ToLower()
	id.Offeror = id.Offeror.ToLower()
	return id
}

// Offer is a buyer initiated bid on a token the offeror does not hold.
// Escrowed records whether the price was pulled into escrow at creation.
// The flag is stamped once and decides the settlement path for the
// offer's whole lifetime, regardless of later venue setting changes.
type Offer struct {
	OfferId    `bson:",inline"`
	Kind       asset.Kind     `json:"kind" bson:"kind"`
	PayToken   domain.Address `json:"payToken" bson:"payToken"`
	Price      string         `json:"price" bson:"price"`
	Amount     string         `json:"amount" bson:"amount"`
	Expiration int64          `json:"expiration" bson:"expiration"`
	Escrowed   bool           `json:"escrowed" bson:"escrowed"`
}

func (o *Offer) Exists() bool {
	return o != nil && o.Expiration > 0
}

func (o *Offer) OfferPrice() *big.Int {
	return domain.MustAmount(o.Price)
}

func (o *Offer) AssetAmount() *big.Int {
	return domain.MustAmount(o.Amount)
}

type OfferRepo interface {
	FindOne(c bCtx.Ctx, id OfferId) (*Offer, error)
	FindAll(c bCtx.Ctx, opts ...FindAllOptionsFunc) ([]Offer, error)
	Upsert(c bCtx.Ctx, offer *Offer) error
	Remove(c bCtx.Ctx, id OfferId) error
}

type OfferUseCase interface {
	CreateOffer(c bCtx.Ctx, id OfferId, amount *big.Int, payToken domain.Address, price *big.Int, expiration int64) error
	CancelOffer(c bCtx.Ctx, caller domain.Address, id OfferId) error
	// AcceptOffer is called by the current asset holder. Expired offers
	// can still be cancelled but never accepted.
	AcceptOffer(c bCtx.Ctx, caller domain.Address, id OfferId) error
	GetOffer(c bCtx.Ctx, id OfferId) (*Offer, error)
}
