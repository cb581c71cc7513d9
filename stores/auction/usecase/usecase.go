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

type AuctionUseCaseCfg struct {
	AuctionRepo  marketplace.AuctionRepo
	BidRepo      marketplace.BidRepo
	Asset        asset.Adapter
	Ledger       ledger.UseCase
	PayToken     paytoken.UseCase
	Settlement   marketplace.Settlement
	SettingsRepo marketplace.SettingsRepo
	ActivityRepo marketplace.ActivityRepo
}

type impl struct {
	mu           sync.Mutex
	auctionRepo  marketplace.AuctionRepo
	bidRepo      marketplace.BidRepo
	asset        asset.Adapter
	ledger       ledger.UseCase
	payToken     paytoken.UseCase
	settlement   marketplace.Settlement
	settingsRepo marketplace.SettingsRepo
	activityRepo marketplace.ActivityRepo
}

func New(cfg *AuctionUseCaseCfg) marketplace.AuctionUseCase {
	return &impl{
		auctionRepo:  cfg.AuctionRepo,
		bidRepo:      cfg.BidRepo,
		asset:        cfg.Asset,
		ledger:       cfg.Ledger,
		payToken:     cfg.PayToken,
		settlement:   cfg.Settlement,
		settingsRepo: cfg.SettingsRepo,
		activityRepo: cfg.ActivityRepo,
	}
}

func (im *impl) CreateAuction(c bCtx.Ctx, id marketplace.AuctionId, amount *big.Int, payToken domain.Address, reservePrice *big.Int, startTime, endTime int64, minBidReserve bool) error {
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
	if reservePrice == nil || reservePrice.Sign() < 0 {
		return domain.ErrInvalidAmount
	}

	now := nowFn().Unix()
	duration := time.Duration(endTime-startTime) * time.Second
	if startTime < now || duration < marketplace.MinAuctionDuration || duration > marketplace.MaxAuctionDuration {
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

	if err := im.requireNoLiveAuction(c, kind, id); err != nil {
		return err
	}

	auction := &marketplace.Auction{
		AuctionId:     id,
		Kind:          kind,
		Amount:        amount.String(),
		PayToken:      payToken.ToLower(),
		ReservePrice:  reservePrice.String(),
		MinBidReserve: minBidReserve,
		StartTime:     startTime,
		EndTime:       endTime,
	}
	if err := im.auctionRepo.Upsert(c, auction); err != nil {
		return err
	}
	if err := im.asset.Transfer(c, kind, id.Contract, id.TokenId, id.Owner, domain.VenueAddress, amount); err != nil {
		return err
	}

	im.emit(c, &marketplace.Activity{
		Type:     marketplace.ActivityAuctionCreated,
		Contract: id.Contract,
		TokenId:  id.TokenId,
		From:     id.Owner,
		PayToken: auction.PayToken,
		Price:    auction.ReservePrice,
		Amount:   auction.Amount,
	})
	return nil
}

// requireNoLiveAuction enforces at most one live auction per token for
// unique assets and per full key for multi assets
func (im *impl) requireNoLiveAuction(c bCtx.Ctx, kind asset.Kind, id marketplace.AuctionId) error {
	if kind == asset.KindUnique {
		existing, err := im.auctionRepo.FindAll(c,
			marketplace.WithContract(id.Contract),
			marketplace.WithTokenId(id.TokenId),
		)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return domain.ErrAlreadyExists
		}
		return nil
	}
	auction, err := im.auctionRepo.FindOne(c, id)
	if err != nil && err != domain.ErrNotFound {
		return err
	}
	if auction.Exists() {
		return domain.ErrAlreadyExists
	}
	return nil
}

func (im *impl) PlaceBid(c bCtx.Ctx, bidder domain.Address, id marketplace.AuctionId, amount *big.Int) error {
	im.mu.Lock()
	defer im.mu.Unlock()
	id = id.ToLower()
	bidder = bidder.ToLower()

	auction, err := im.auctionRepo.FindOne(c, id)
	if err != nil {
		return err
	}
	if !auction.Exists() {
		return domain.ErrNotFound
	}
	now := nowFn().Unix()
	if now < auction.StartTime || now >= auction.EndTime {
		return domain.ErrInvalidTiming
	}
	if bidder.Equals(id.Owner) {
		return domain.ErrUnauthorized
	}
	if amount == nil || amount.Sign() <= 0 {
		return domain.ErrInvalidAmount
	}
	if auction.MinBidReserve && amount.Cmp(auction.Reserve()) < 0 {
		return domain.ErrPriceBelowThreshold
	}

	settings, err := im.settingsRepo.Get(c)
	if err != nil {
		return err
	}
	prev, err := im.bidRepo.FindOne(c, id)
	if err != nil && err != domain.ErrNotFound {
		return err
	}
	threshold := big.NewInt(0)
	if prev.Exists() {
		threshold = prev.BidAmount()
	}
	threshold = new(big.Int).Add(threshold, settings.MinIncrement())
	if amount.Cmp(threshold) < 0 {
		return domain.ErrPriceBelowThreshold
	}

	if err := im.ledger.Pull(c, auction.PayToken, bidder, amount); err != nil {
		return err
	}
	if err := im.bidRepo.Upsert(c, &marketplace.Bid{
		AuctionId: id,
		Bidder:    bidder,
		Amount:    amount.String(),
		Time:      now,
	}); err != nil {
		return err
	}
	// refund strictly after the new bid is committed
	if prev.Exists() {
		if err := im.ledger.Push(c, auction.PayToken, prev.Bidder, prev.BidAmount()); err != nil {
			return err
		}
		im.emit(c, &marketplace.Activity{
			Type:     marketplace.ActivityBidRefunded,
			Contract: id.Contract,
			TokenId:  id.TokenId,
			To:       prev.Bidder,
			PayToken: auction.PayToken,
			Price:    prev.Amount,
		})
	}

	im.emit(c, &marketplace.Activity{
		Type:     marketplace.ActivityBidPlaced,
		Contract: id.Contract,
		TokenId:  id.TokenId,
		From:     bidder,
		To:       id.Owner,
		PayToken: auction.PayToken,
		Price:    amount.String(),
	})
	return nil
}

func (im *impl) WithdrawBid(c bCtx.Ctx, caller domain.Address, id marketplace.AuctionId) error {
	im.mu.Lock()
	defer im.mu.Unlock()
	id = id.ToLower()

	auction, err := im.auctionRepo.FindOne(c, id)
	if err != nil {
		return err
	}
	if !auction.Exists() {
		return domain.ErrNotFound
	}
	bid, err := im.bidRepo.FindOne(c, id)
	if err != nil {
		return err
	}
	if !bid.Exists() {
		return domain.ErrNotFound
	}
	if !bid.Bidder.Equals(caller) {
		return domain.ErrUnauthorized
	}

	now := nowFn().Unix()
	if now < auction.EndTime {
		return domain.ErrInvalidTiming
	}
	// a bid that met the reserve settles the auction unless the seller
	// abandons it, so hold it through the withdraw delay
	if bid.BidAmount().Cmp(auction.Reserve()) >= 0 {
		delay := int64(marketplace.HighestBidWithdrawDelay / time.Second)
		if now < auction.EndTime+delay {
			return domain.ErrInvalidTiming
		}
	}

	if err := im.bidRepo.Remove(c, id); err != nil {
		return err
	}
	if err := im.ledger.Push(c, auction.PayToken, bid.Bidder, bid.BidAmount()); err != nil {
		return err
	}

	im.emit(c, &marketplace.Activity{
		Type:     marketplace.ActivityBidWithdrawn,
		Contract: id.Contract,
		TokenId:  id.TokenId,
		From:     bid.Bidder,
		PayToken: auction.PayToken,
		Price:    bid.Amount,
	})
	return nil
}

func (im *impl) UpdateReservePrice(c bCtx.Ctx, caller domain.Address, id marketplace.AuctionId, reservePrice *big.Int) error {
	im.mu.Lock()
	defer im.mu.Unlock()
	id = id.ToLower()

	auction, err := im.auctionRepo.FindOne(c, id)
	if err != nil {
		return err
	}
	if !auction.Exists() {
		return domain.ErrNotFound
	}
	if !id.Owner.Equals(caller) {
		return domain.ErrUnauthorized
	}
	// the reserve can only move in the bidders' favor
	if reservePrice == nil || reservePrice.Sign() < 0 || reservePrice.Cmp(auction.Reserve()) >= 0 {
		return domain.ErrInvalidAmount
	}

	prev := auction.ReservePrice
	auction.ReservePrice = reservePrice.String()
	if err := im.auctionRepo.Upsert(c, auction); err != nil {
		return err
	}

	im.emit(c, &marketplace.Activity{
		Type:     marketplace.ActivityReservePriceUpdated,
		Contract: id.Contract,
		TokenId:  id.TokenId,
		From:     id.Owner,
		PayToken: auction.PayToken,
		Price:    auction.ReservePrice,
		Amount:   prev,
	})
	return nil
}

func (im *impl) CancelAuction(c bCtx.Ctx, caller domain.Address, id marketplace.AuctionId) error {
	im.mu.Lock()
	defer im.mu.Unlock()
	id = id.ToLower()

	auction, err := im.auctionRepo.FindOne(c, id)
	if err != nil {
		return err
	}
	if !auction.Exists() {
		return domain.ErrNotFound
	}
	if !id.Owner.Equals(caller) {
		return domain.ErrUnauthorized
	}
	bid, err := im.bidRepo.FindOne(c, id)
	if err != nil && err != domain.ErrNotFound {
		return err
	}
	// once a binding bid exists the seller cannot back out
	if bid.Exists() && bid.BidAmount().Cmp(auction.Reserve()) >= 0 {
		return domain.ErrInvalidTiming
	}

	if err := im.auctionRepo.Remove(c, id); err != nil {
		return err
	}
	if bid.Exists() {
		if err := im.bidRepo.Remove(c, id); err != nil {
			return err
		}
		if err := im.ledger.Push(c, auction.PayToken, bid.Bidder, bid.BidAmount()); err != nil {
			return err
		}
	}
	if err := im.asset.Transfer(c, auction.Kind, id.Contract, id.TokenId, domain.VenueAddress, id.Owner, auction.AssetAmount()); err != nil {
		return err
	}

	im.emit(c, &marketplace.Activity{
		Type:     marketplace.ActivityAuctionCancelled,
		Contract: id.Contract,
		TokenId:  id.TokenId,
		From:     id.Owner,
		PayToken: auction.PayToken,
		Amount:   auction.Amount,
	})
	return nil
}

func (im *impl) FinishAuction(c bCtx.Ctx, caller domain.Address, id marketplace.AuctionId) error {
	im.mu.Lock()
	defer im.mu.Unlock()
	id = id.ToLower()

	auction, bid, err := im.finishable(c, id)
	if err != nil {
		return err
	}
	if !id.Owner.Equals(caller) && !bid.Bidder.Equals(caller) {
		return domain.ErrUnauthorized
	}
	if bid.BidAmount().Cmp(auction.Reserve()) < 0 {
		return domain.ErrPriceBelowThreshold
	}
	return im.result(c, auction, bid)
}

func (im *impl) FinishAuctionBelowReservePrice(c bCtx.Ctx, caller domain.Address, id marketplace.AuctionId) error {
	im.mu.Lock()
	defer im.mu.Unlock()
	id = id.ToLower()

	auction, bid, err := im.finishable(c, id)
	if err != nil {
		return err
	}
	// only the seller can accept an under-reserve bid
	if !id.Owner.Equals(caller) {
		return domain.ErrUnauthorized
	}
	if bid.BidAmount().Cmp(auction.Reserve()) >= 0 {
		return domain.ErrInvalidAmount
	}
	return im.result(c, auction, bid)
}

func (im *impl) finishable(c bCtx.Ctx, id marketplace.AuctionId) (*marketplace.Auction, *marketplace.Bid, error) {
	auction, err := im.auctionRepo.FindOne(c, id)
	if err != nil {
		return nil, nil, err
	}
	if !auction.Exists() {
		return nil, nil, domain.ErrNotFound
	}
	bid, err := im.bidRepo.FindOne(c, id)
	if err != nil {
		return nil, nil, err
	}
	if !bid.Exists() {
		return nil, nil, domain.ErrNotFound
	}
	if nowFn().Unix() < auction.EndTime {
		return nil, nil, domain.ErrInvalidTiming
	}
	return auction, bid, nil
}

// result deletes both records, settles the winning bid out of escrow and
// hands the asset to the winner
func (im *impl) result(c bCtx.Ctx, auction *marketplace.Auction, bid *marketplace.Bid) error {
	id := auction.AuctionId
	if err := im.auctionRepo.Remove(c, id); err != nil {
		return err
	}
	if err := im.bidRepo.Remove(c, id); err != nil {
		return err
	}
	if _, err := im.settlement.Settle(c, marketplace.SettleInput{
		PayToken: auction.PayToken,
		Contract: id.Contract,
		TokenId:  id.TokenId,
		Price:    bid.BidAmount(),
		Seller:   id.Owner,
	}); err != nil {
		return err
	}
	if err := im.asset.Transfer(c, auction.Kind, id.Contract, id.TokenId, domain.VenueAddress, bid.Bidder, auction.AssetAmount()); err != nil {
		return err
	}

	im.emit(c, &marketplace.Activity{
		Type:     marketplace.ActivityAuctionResulted,
		Contract: id.Contract,
		TokenId:  id.TokenId,
		From:     id.Owner,
		To:       bid.Bidder,
		PayToken: auction.PayToken,
		Price:    bid.Amount,
		Amount:   auction.Amount,
	})
	return nil
}

func (im *impl) GetAuction(c bCtx.Ctx, id marketplace.AuctionId) (*marketplace.Auction, error) {
	auction, err := im.auctionRepo.FindOne(c, id.ToLower())
	if err != nil {
		return nil, err
	}
	if !auction.Exists() {
		return nil, domain.ErrNotFound
	}
	return auction, nil
}

func (im *impl) GetHighestBid(c bCtx.Ctx, id marketplace.AuctionId) (*marketplace.Bid, error) {
	bid, err := im.bidRepo.FindOne(c, id.ToLower())
	if err != nil {
		return nil, err
	}
	if !bid.Exists() {
		return nil, domain.ErrNotFound
	}
	return bid, nil
}

func (im *impl) emit(c bCtx.Ctx, activity *marketplace.Activity) {
	activity.Id = uuid.New().String()
	activity.Time = nowFn().Unix()
	if err := im.activityRepo.Insert(c, activity); err != nil {
		c.WithFields(log.Fields{"type": activity.Type, "err": err}).Warn("activity insert failed")
	}
}
