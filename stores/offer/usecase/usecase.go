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

type OfferUseCaseCfg struct {
	OfferRepo    marketplace.OfferRepo
	ListingRepo  marketplace.ListingRepo
	Asset        asset.Adapter
	Ledger       ledger.UseCase
	PayToken     paytoken.UseCase
	Settlement   marketplace.Settlement
	SettingsRepo marketplace.SettingsRepo
	ActivityRepo marketplace.ActivityRepo
}

type impl struct {
	mu           sync.Mutex
	offerRepo    marketplace.OfferRepo
	listingRepo  marketplace.ListingRepo
	asset        asset.Adapter
	ledger       ledger.UseCase
	payToken     paytoken.UseCase
	settlement   marketplace.Settlement
	settingsRepo marketplace.SettingsRepo
	activityRepo marketplace.ActivityRepo
}

func New(cfg *OfferUseCaseCfg) marketplace.OfferUseCase {
	return &impl{
		offerRepo:    cfg.OfferRepo,
		listingRepo:  cfg.ListingRepo,
		asset:        cfg.Asset,
		ledger:       cfg.Ledger,
		payToken:     cfg.PayToken,
		settlement:   cfg.Settlement,
		settingsRepo: cfg.SettingsRepo,
		activityRepo: cfg.ActivityRepo,
	}
}

func (im *impl) CreateOffer(c bCtx.Ctx, id marketplace.OfferId, amount *big.Int, payToken domain.Address, price *big.Int, expiration int64) error {
	im.mu.Lock()
	defer im.mu.Unlock()
	id = id.ToLower()

	kind, err := im.asset.DetectKind(c, id.Contract)
	if err != nil {
		return err
	}
	if kind == asset.KindUnique {
		amount = big.NewInt(1)
	} else if amount == nil || amount.Sign() <= 0 {
		return domain.ErrInvalidAmount
	}
	if price == nil || price.Sign() <= 0 {
		return domain.ErrInvalidAmount
	}
	if expiration < nowFn().Unix() {
		return domain.ErrInvalidTiming
	}
	if enabled, err := im.payToken.IsEnabled(c, payToken); err != nil {
		return err
	} else if !enabled {
		return domain.ErrPaymentTokenRejected
	}

	// no point bidding on a unique token the venue already custodies
	// for an auction, the offer could never be accepted
	if kind == asset.KindUnique {
		holder, err := im.asset.Holds(c, kind, id.Contract, id.TokenId, domain.VenueAddress, big.NewInt(1))
		if err != nil {
			return err
		}
		if holder {
			return domain.ErrAssetInEscrow
		}
	}

	existing, err := im.offerRepo.FindOne(c, id)
	if err != nil && err != domain.ErrNotFound {
		return err
	}
	if existing.Exists() {
		return domain.ErrAlreadyExists
	}

	settings, err := im.settingsRepo.Get(c)
	if err != nil {
		return err
	}

	// funds are checked before the record is written so the pull below
	// cannot fail on an offer that already exists
	if settings.EscrowOfferFunds {
		balance, err := im.ledger.BalanceOf(c, payToken.ToLower(), id.Offeror)
		if err != nil {
			return err
		}
		allowance, err := im.ledger.AllowanceOf(c, payToken.ToLower(), id.Offeror, domain.VenueAddress)
		if err != nil {
			return err
		}
		if balance.Cmp(price) < 0 || allowance.Cmp(price) < 0 {
			return domain.ErrInsufficientFundsOrApproval
		}
	}

	offer := &marketplace.Offer{
		OfferId:    id,
		Kind:       kind,
		PayToken:   payToken.ToLower(),
		Price:      price.String(),
		Amount:     amount.String(),
		Expiration: expiration,
		Escrowed:   settings.EscrowOfferFunds,
	}
	if err := im.offerRepo.Upsert(c, offer); err != nil {
		return err
	}
	if offer.Escrowed {
		// only a storage fault can fail the pull here, remove the record
		// so no unfunded escrow offer survives one
		if err := im.ledger.Pull(c, offer.PayToken, id.Offeror, price); err != nil {
			if rerr := im.offerRepo.Remove(c, id); rerr != nil {
				c.WithField("err", rerr).Error("offer rollback failed")
			}
			return err
		}
	}

	im.emit(c, &marketplace.Activity{
		Type:     marketplace.ActivityOfferCreated,
		Contract: id.Contract,
		TokenId:  id.TokenId,
		From:     id.Offeror,
		PayToken: offer.PayToken,
		Price:    offer.Price,
		Amount:   offer.Amount,
	})
	return nil
}

func (im *impl) CancelOffer(c bCtx.Ctx, caller domain.Address, id marketplace.OfferId) error {
	im.mu.Lock()
	defer im.mu.Unlock()
	id = id.ToLower()

	offer, err := im.offerRepo.FindOne(c, id)
	if err != nil {
		return err
	}
	if !offer.Exists() {
		return domain.ErrNotFound
	}
	if !id.Offeror.Equals(caller) {
		return domain.ErrUnauthorized
	}

	if err := im.offerRepo.Remove(c, id); err != nil {
		return err
	}
	if offer.Escrowed {
		if err := im.ledger.Push(c, offer.PayToken, id.Offeror, offer.OfferPrice()); err != nil {
			return err
		}
	}

	im.emit(c, &marketplace.Activity{
		Type:     marketplace.ActivityOfferCancelled,
		Contract: id.Contract,
		TokenId:  id.TokenId,
		From:     id.Offeror,
		PayToken: offer.PayToken,
		Price:    offer.Price,
	})
	return nil
}

func (im *impl) AcceptOffer(c bCtx.Ctx, caller domain.Address, id marketplace.OfferId) error {
	im.mu.Lock()
	defer im.mu.Unlock()
	id = id.ToLower()
	caller = caller.ToLower()

	offer, err := im.offerRepo.FindOne(c, id)
	if err != nil {
		return err
	}
	if !offer.Exists() {
		return domain.ErrNotFound
	}
	// expired offers stay cancellable but are never acceptable
	if nowFn().Unix() > offer.Expiration {
		return domain.ErrInvalidTiming
	}

	// the seller may have part or all of the amount escrowed in their own
	// listings, those count as held since accepting reclaims them
	listings, err := im.listingRepo.FindAll(c,
		marketplace.WithContract(id.Contract),
		marketplace.WithTokenId(id.TokenId),
		marketplace.WithOwner(caller),
	)
	if err != nil {
		return err
	}
	amount := offer.AssetAmount()
	if held, err := im.sellerHolds(c, offer, caller, listings, amount); err != nil {
		return err
	} else if !held {
		return domain.ErrUnauthorized
	}
	if approved, err := im.asset.IsApproved(c, id.Contract, caller, domain.VenueAddress); err != nil {
		return err
	} else if !approved {
		return domain.ErrInsufficientFundsOrApproval
	}

	if err := im.offerRepo.Remove(c, id); err != nil {
		return err
	}
	// the sold amount leaves any live listing the seller kept up
	if err := im.dropListings(c, id, caller, listings); err != nil {
		return err
	}

	in := marketplace.SettleInput{
		PayToken: offer.PayToken,
		Contract: id.Contract,
		TokenId:  id.TokenId,
		Price:    offer.OfferPrice(),
		Seller:   caller,
	}
	if !offer.Escrowed {
		in.Source = id.Offeror
	}
	if _, err := im.settlement.Settle(c, in); err != nil {
		return err
	}
	if err := im.asset.Transfer(c, offer.Kind, id.Contract, id.TokenId, caller, id.Offeror, amount); err != nil {
		return err
	}

	im.emit(c, &marketplace.Activity{
		Type:     marketplace.ActivityOfferAccepted,
		Contract: id.Contract,
		TokenId:  id.TokenId,
		From:     caller,
		To:       id.Offeror,
		PayToken: offer.PayToken,
		Price:    offer.Price,
		Amount:   offer.Amount,
	})
	return nil
}

func (im *impl) sellerHolds(c bCtx.Ctx, offer *marketplace.Offer, seller domain.Address, listings []marketplace.Listing, amount *big.Int) (bool, error) {
	if holds, err := im.asset.Holds(c, offer.Kind, offer.Contract, offer.TokenId, seller, amount); err != nil {
		return false, err
	} else if holds {
		return true, nil
	}
	if offer.Kind == asset.KindUnique {
		return len(listings) > 0, nil
	}
	listed := big.NewInt(0)
	for i := range listings {
		listed.Add(listed, listings[i].RemainingAmount())
	}
	needed := new(big.Int).Sub(amount, listed)
	if needed.Sign() <= 0 {
		return true, nil
	}
	return im.asset.Holds(c, offer.Kind, offer.Contract, offer.TokenId, seller, needed)
}

func (im *impl) dropListings(c bCtx.Ctx, id marketplace.OfferId, seller domain.Address, listings []marketplace.Listing) error {
	for i := range listings {
		listing := listings[i]
		if err := im.listingRepo.Remove(c, listing.ListingId); err != nil {
			return err
		}
		// escrowed remainder goes back to the seller before the sale
		if err := im.asset.Transfer(c, listing.Kind, id.Contract, id.TokenId, domain.VenueAddress, seller, listing.RemainingAmount()); err != nil {
			return err
		}
	}
	return nil
}

func (im *impl) GetOffer(c bCtx.Ctx, id marketplace.OfferId) (*marketplace.Offer, error) {
	offer, err := im.offerRepo.FindOne(c, id.ToLower())
	if err != nil {
		return nil, err
	}
	if !offer.Exists() {
		return nil, domain.ErrNotFound
	}
	return offer, nil
}

func (im *impl) emit(c bCtx.Ctx, activity *marketplace.Activity) {
	activity.Id = uuid.New().String()
	activity.Time = nowFn().Unix()
	if err := im.activityRepo.Insert(c, activity); err != nil {
		c.WithFields(log.Fields{"type": activity.Type, "err": err}).Warn("activity insert failed")
	}
}
