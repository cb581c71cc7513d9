package marketplace

import (
	bCtx "github.com/mintleaf-xyz/venue/base/ctx"
	"github.com/mintleaf-xyz/venue/domain"
)

type ActivityType string

const (
	ActivityAuctionCreated       ActivityType = "auctionCreated"
	ActivityBidPlaced            ActivityType = "bidPlaced"
	ActivityBidWithdrawn         ActivityType = "bidWithdrawn"
	ActivityBidRefunded          ActivityType = "bidRefunded"
	ActivityReservePriceUpdated  ActivityType = "reservePriceUpdated"
	ActivityAuctionCancelled     ActivityType = "auctionCancelled"
	ActivityAuctionResulted      ActivityType = "auctionResulted"
	ActivityListingCreated       ActivityType = "listingCreated"
	ActivityListingUpdated       ActivityType = "listingUpdated"
	ActivityListingCancelled     ActivityType = "listingCancelled"
	ActivityItemSold             ActivityType = "itemSold"
	ActivityOfferCreated         ActivityType = "offerCreated"
	ActivityOfferCancelled       ActivityType = "offerCancelled"
	ActivityOfferAccepted        ActivityType = "offerAccepted"
)

// Activity is the notification record every completed state transition
// appends. From/To carry the parties the transition moved value between.
type Activity struct {
	Id       string         `json:"id" bson:"id"`
	Type     ActivityType   `json:"type" bson:"type"`
	Contract domain.Address `json:"contract" bson:"contract"`
	TokenId  domain.TokenId `json:"tokenId" bson:"tokenId"`
	From     domain.Address `json:"from,omitempty" bson:"from,omitempty"`
	To       domain.Address `json:"to,omitempty" bson:"to,omitempty"`
	PayToken domain.Address `json:"payToken,omitempty" bson:"payToken,omitempty"`
	Price    string         `json:"price,omitempty" bson:"price,omitempty"`
	Amount   string         `json:"amount,omitempty" bson:"amount,omitempty"`
	Time     int64          `json:"time" bson:"time"`
}

type ActivityRepo interface {
	Insert(c bCtx.Ctx, activity *Activity) error
	FindAll(c bCtx.Ctx, opts ...FindAllOptionsFunc) ([]Activity, error)
}

// ActivityUseCase serves the activity feed. Reads are cache-backed, the
// feed tolerates short staleness.
type ActivityUseCase interface {
	FindAll(c bCtx.Ctx, opts ...FindAllOptionsFunc) ([]Activity, error)
}
