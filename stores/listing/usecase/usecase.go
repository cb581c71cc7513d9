package usecase

import (
	"math/big"
	"sync"
	"time"

	"github.com/google/uuid"

	bCtx "github.com/mintleaf-xyz/venue/base/ctx"
	"github.com/mintleaf-xyz/venue/base/log"
	"github.com/mintleaf-xyz/venue/domain"
	"github.com/mintleaf-xyz/venue/domain/asset"
	"github.com/mintleaf-xyz/venue/domain/ledger"
	"github.com/mintleaf-xyz/venue/domain/marketplace"
	"github.com/mintleaf-xyz/venue/domain/paytoken"
)

var nowFn = time.Now

type ListingUseCaseCfg struct {
	ListingRepo  marketplace.ListingRepo
	Asset        asset.Adapter
	Ledger       ledger.UseCase
	PayToken     paytoken.UseCase
	Settlement   marketplace.Settlement
	ActivityRepo marketplace.ActivityRepo
}

type impl struct {
	mu           sync.Mutex
	listingRepo  marketplace.ListingRepo
	asset        asset.Adapter
	ledger       ledger.UseCase
	payToken     paytoken.UseCase
	settlement   marketplace.Settlement
	activityRepo marketplace.ActivityRepo
}

func New(cfg *ListingUseCaseCfg) marketplace.ListingUseCase {
	return &impl{
		listingRepo:  cfg.ListingRepo,
		asset:        cfg.Asset,
		ledger:       cfg.Ledger,
		payToken:     cfg.PayToken,
		settlement:   cfg.Settlement,
		activityRepo: cfg.ActivityRepo,
	}
}

func (im *impl) CreateListing(c bCtx.Ctx, id marketplace.ListingId, amount, unitSize, unitPrice *big.Int, payToken domain.Address, startTime int64) error {
	im.mu.Lock()
	defer im.mu.Unlock()
	id = id.ToLower()

	kind, err := im.asset.DetectKind(c, id.Contract)
	if err != nil {
		return err
	}
	if kind == asset.KindUnique {
		amount = big.NewInt(1)
		unitSize = big.NewInt(1)
	}
	if amount == nil || amount.Sign() <= 0 || unitSize == nil || unitSize.Sign() <= 0 {
		return domain.ErrInvalidAmount
	}
	if new(big.Int).Mod(amount, unitSize).Sign() != 0 {
		return domain.ErrInvalidAmount
	}
	if unitPrice == nil || unitPrice.Sign() <= 0 {
		return domain.ErrInvalidAmount
	}
	if startTime < nowFn().Unix() {
		return domain.ErrInvalidTiming
	}
	if enabled, err := im.payToken.IsEnabled(c, payToken); err != nil {
		return err
	} else if !enabled {
		return domain.ErrPaymentTokenRejected
	}

	if holds, err := im.asset.Holds(c, kind, id.Contract, id.TokenId, id.Owner, amount); err != nil {
		return err
	} else if !holds {
		return domain.ErrInsufficientFundsOrApproval
	}
	if approved, err := im.asset.IsApproved(c, id.Contract, id.Owner, domain.VenueAddress); err != nil {
		return err
	} else if !approved {
		return domain.ErrInsufficientFundsOrApproval
	}

	existing, err := im.listingRepo.FindOne(c, id)
	if err != nil && err != domain.ErrNotFound {
		return err
	}
	if existing.Exists() {
		return domain.ErrAlreadyExists
	}

	listing := &marketplace.Listing{
		ListingId:   id,
		Kind:        kind,
		PayToken:    payToken.ToLower(),
		UnitPrice:   unitPrice.String(),
		UnitSize:    unitSize.String(),
		TokenAmount: amount.String(),
		Remaining:   amount.String(),
		StartTime:   startTime,
	}
	if err := im.listingRepo.Upsert(c, listing); err != nil {
		return err
	}
	if err := im.asset.Transfer(c, kind, id.Contract, id.TokenId, id.Owner, domain.VenueAddress, amount); err != nil {
		return err
	}

	im.emit(c, &marketplace.Activity{
		Type:     marketplace.ActivityListingCreated,
		Contract: id.Contract,
		TokenId:  id.TokenId,
		From:     id.Owner,
		PayToken: listing.PayToken,
		Price:    listing.UnitPrice,
		Amount:   listing.TokenAmount,
	})
	return nil
}

func (im *impl) UpdateListing(c bCtx.Ctx, caller domain.Address, id marketplace.ListingId, payToken domain.Address, unitPrice *big.Int) error {
	im.mu.Lock()
	defer im.mu.Unlock()
	id = id.ToLower()

	listing, err := im.listingRepo.FindOne(c, id)
	if err != nil {
		return err
	}
	if !listing.Exists() {
		return domain.ErrNotFound
	}
	if !id.Owner.Equals(caller) {
		return domain.ErrUnauthorized
	}
	if unitPrice == nil || unitPrice.Sign() <= 0 {
		return domain.ErrInvalidAmount
	}
	if enabled, err := im.payToken.IsEnabled(c, payToken); err != nil {
		return err
	} else if !enabled {
		return domain.ErrPaymentTokenRejected
	}

	listing.PayToken = payToken.ToLower()
	listing.UnitPrice = unitPrice.String()
	if err := im.listingRepo.Upsert(c, listing); err != nil {
		return err
	}

	im.emit(c, &marketplace.Activity{
		Type:     marketplace.ActivityListingUpdated,
		Contract: id.Contract,
		TokenId:  id.TokenId,
		From:     id.Owner,
		PayToken: listing.PayToken,
		Price:    listing.UnitPrice,
	})
	return nil
}

func (im *impl) CancelListing(c bCtx.Ctx, caller domain.Address, id marketplace.ListingId) error {
	im.mu.Lock()
	defer im.mu.Unlock()
	id = id.ToLower()

	listing, err := im.listingRepo.FindOne(c, id)
	if err != nil {
		return err
	}
	if !listing.Exists() {
		return domain.ErrNotFound
	}
	if !id.Owner.Equals(caller) {
		return domain.ErrUnauthorized
	}

	if err := im.listingRepo.Remove(c, id); err != nil {
		return err
	}
	if err := im.asset.Transfer(c, listing.Kind, id.Contract, id.TokenId, domain.VenueAddress, id.Owner, listing.RemainingAmount()); err != nil {
		return err
	}

	im.emit(c, &marketplace.Activity{
		Type:     marketplace.ActivityListingCancelled,
		Contract: id.Contract,
		TokenId:  id.TokenId,
		From:     id.Owner,
		Amount:   listing.Remaining,
	})
	return nil
}

func (im *impl) Buy(c bCtx.Ctx, buyer domain.Address, id marketplace.ListingId, amount *big.Int, expectedPrice *big.Int, expectedPayToken domain.Address) error {
	im.mu.Lock()
	defer im.mu.Unlock()
	id = id.ToLower()
	buyer = buyer.ToLower()

	listing, err := im.listingRepo.FindOne(c, id)
	if err != nil {
		return err
	}
	if !listing.Exists() {
		return domain.ErrNotFound
	}
	if nowFn().Unix() < listing.StartTime {
		return domain.ErrInvalidTiming
	}
	if buyer.Equals(id.Owner) {
		return domain.ErrUnauthorized
	}
	// the buyer restates the terms they saw, so a front-run price or
	// token change fails the purchase instead of repricing it
	if expectedPrice == nil || expectedPrice.Cmp(listing.Price()) != 0 || !expectedPayToken.Equals(listing.PayToken) {
		return domain.ErrInvalidAmount
	}
	if amount == nil || amount.Sign() <= 0 {
		return domain.ErrInvalidAmount
	}
	if new(big.Int).Mod(amount, listing.Size()).Sign() != 0 {
		return domain.ErrInvalidAmount
	}
	tokenAmount := amount
	if tokenAmount.Cmp(listing.RemainingAmount()) > 0 {
		return domain.ErrInvalidAmount
	}

	basePrice := new(big.Int).Mul(tokenAmount, listing.Price())
	if err := im.ledger.Pull(c, listing.PayToken, buyer, basePrice); err != nil {
		return err
	}

	remaining := new(big.Int).Sub(listing.RemainingAmount(), tokenAmount)
	if remaining.Sign() == 0 {
		if err := im.listingRepo.Remove(c, id); err != nil {
			return err
		}
	} else {
		listing.Remaining = remaining.String()
		if err := im.listingRepo.Upsert(c, listing); err != nil {
			return err
		}
	}

	if _, err := im.settlement.Settle(c, marketplace.SettleInput{
		PayToken: listing.PayToken,
		Contract: id.Contract,
		TokenId:  id.TokenId,
		Price:    basePrice,
		Seller:   id.Owner,
	}); err != nil {
		return err
	}
	if err := im.asset.Transfer(c, listing.Kind, id.Contract, id.TokenId, domain.VenueAddress, buyer, tokenAmount); err != nil {
		return err
	}

	im.emit(c, &marketplace.Activity{
		Type:     marketplace.ActivityItemSold,
		Contract: id.Contract,
		TokenId:  id.TokenId,
		From:     id.Owner,
		To:       buyer,
		PayToken: listing.PayToken,
		Price:    basePrice.String(),
		Amount:   tokenAmount.String(),
	})
	return nil
}

func (im *impl) GetListing(c bCtx.Ctx, id marketplace.ListingId) (*marketplace.Listing, error) {
	listing, err := im.listingRepo.FindOne(c, id.ToLower())
	if err != nil {
		return nil, err
	}
	if !listing.Exists() {
		return nil, domain.ErrNotFound
	}
	return listing, nil
}

func (im *impl) emit(c bCtx.Ctx, activity *marketplace.Activity) {
	activity.Id = uuid.New().String()
	activity.Time = nowFn().Unix()
	if err := im.activityRepo.Insert(c, activity); err != nil {
		c.WithFields(log.Fields{"type": activity.Type, "err": err}).Warn("activity insert failed")
	}
}
