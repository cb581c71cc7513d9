package usecase

import (
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	bCtx "github.com/mintleaf-xyz/venue/base/ctx"
	"github.com/mintleaf-xyz/venue/domain"
	"github.com/mintleaf-xyz/venue/domain/asset"
	"github.com/mintleaf-xyz/venue/domain/ledger"
	"github.com/mintleaf-xyz/venue/domain/marketplace"
	"github.com/mintleaf-xyz/venue/domain/paytoken"
	activityRepo "github.com/mintleaf-xyz/venue/stores/activity/repository"
	assetRepo "github.com/mintleaf-xyz/venue/stores/asset/repository"
	assetUC "github.com/mintleaf-xyz/venue/stores/asset/usecase"
	auctionRepo "github.com/mintleaf-xyz/venue/stores/auction/repository"
	ledgerRepo "github.com/mintleaf-xyz/venue/stores/ledger/repository"
	ledgerUC "github.com/mintleaf-xyz/venue/stores/ledger/usecase"
	paytokenRepo "github.com/mintleaf-xyz/venue/stores/paytoken/repository"
	paytokenUC "github.com/mintleaf-xyz/venue/stores/paytoken/usecase"
	royaltyRepo "github.com/mintleaf-xyz/venue/stores/royalty/repository"
	royaltyUC "github.com/mintleaf-xyz/venue/stores/royalty/usecase"
	settingsRepo "github.com/mintleaf-xyz/venue/stores/settings/repository"
	settlementUC "github.com/mintleaf-xyz/venue/stores/settlement/usecase"
)

const (
	nftAddr     = domain.Address("0x00000000000000000000000000000000000000a1")
	multiAddr   = domain.Address("0x00000000000000000000000000000000000000a2")
	payAddr     = domain.Address("0x00000000000000000000000000000000000000b1")
	seller      = domain.Address("0x00000000000000000000000000000000000000c1")
	bidderOne   = domain.Address("0x00000000000000000000000000000000000000c2")
	bidderTwo   = domain.Address("0x00000000000000000000000000000000000000c3")
	venueOwner  = domain.Address("0x00000000000000000000000000000000000000d1")
	feeWallet   = domain.Address("0x00000000000000000000000000000000000000d2")
	royaltyAddr = domain.Address("0x00000000000000000000000000000000000000d3")
)

const tokenOne = domain.TokenId("1")

type AuctionUseCaseTestSuite struct {
	suite.Suite

	ctx     bCtx.Ctx
	now     time.Time
	assets  asset.UseCase
	funds   ledger.UseCase
	tokens  paytoken.UseCase
	bids    marketplace.BidRepo
	storage marketplace.AuctionRepo
	au      marketplace.AuctionUseCase
}

func TestAuctionUseCaseTestSuite(t *testing.T) {
	suite.Run(t, new(AuctionUseCaseTestSuite))
}

func (s *AuctionUseCaseTestSuite) SetupTest() {
	s.ctx = bCtx.Background()
	s.now = time.Unix(1700000000, 0)
	nowFn = func() time.Time { return s.now }

	s.assets = assetUC.NewAdapter(&assetUC.AdapterCfg{
		ContractRepo: assetRepo.NewInMemContractRepo(),
		HoldingRepo:  assetRepo.NewInMemHoldingRepo(),
	})
	s.funds = ledgerUC.New(&ledgerUC.LedgerUseCaseCfg{Repo: ledgerRepo.NewInMem()})

	settings := settingsRepo.NewInMem()
	s.Require().NoError(settings.Upsert(s.ctx, &marketplace.Settings{
		Owner:           venueOwner,
		FeeRecipient:    feeWallet,
		FeeRate:         25,
		MinBidIncrement: "1",
	}))

	tokenRepo := paytokenRepo.NewInMem()
	s.Require().NoError(tokenRepo.Insert(s.ctx, &paytoken.PayToken{Address: payAddr, Symbol: "WETH", Decimals: 18}))
	s.tokens = paytokenUC.New(&paytokenUC.PayTokenUseCaseCfg{Repo: tokenRepo, SettingsRepo: settings})

	royalties := royaltyUC.New(&royaltyUC.RoyaltyUseCaseCfg{
		Repo:         royaltyRepo.NewInMem(),
		Asset:        s.assets,
		SettingsRepo: settings,
	})
	settlement := settlementUC.New(&settlementUC.SettlementUseCaseCfg{
		Ledger:       s.funds,
		Royalty:      royalties,
		SettingsRepo: settings,
	})

	s.storage = auctionRepo.NewInMemAuctionRepo()
	s.bids = auctionRepo.NewInMemBidRepo()
	s.au = New(&AuctionUseCaseCfg{
		AuctionRepo:  s.storage,
		BidRepo:      s.bids,
		Asset:        s.assets,
		Ledger:       s.funds,
		PayToken:     s.tokens,
		Settlement:   settlement,
		SettingsRepo: settings,
		ActivityRepo: activityRepo.NewInMem(),
	})

	s.Require().NoError(s.assets.RegisterContract(s.ctx, nftAddr, asset.KindUnique))
	s.Require().NoError(s.assets.RegisterContract(s.ctx, multiAddr, asset.KindMulti))
	s.Require().NoError(s.assets.Mint(s.ctx, nftAddr, tokenOne, seller, nil))
	s.Require().NoError(s.assets.Mint(s.ctx, multiAddr, tokenOne, seller, big.NewInt(100)))
	s.Require().NoError(s.assets.SetApprovalForAll(s.ctx, nftAddr, seller, domain.VenueAddress, true))
	s.Require().NoError(s.assets.SetApprovalForAll(s.ctx, multiAddr, seller, domain.VenueAddress, true))

	for _, account := range []domain.Address{bidderOne, bidderTwo} {
		s.Require().NoError(s.funds.Deposit(s.ctx, payAddr, account, big.NewInt(10000)))
		s.Require().NoError(s.funds.Approve(s.ctx, payAddr, account, domain.VenueAddress, big.NewInt(10000)))
	}
}

func (s *AuctionUseCaseTestSuite) advance(d time.Duration) {
	s.now = s.now.Add(d)
}

func (s *AuctionUseCaseTestSuite) uniqueId() marketplace.AuctionId {
	return marketplace.AuctionId{Contract: nftAddr, TokenId: tokenOne, Owner: seller, AuctionId: "1"}
}

func (s *AuctionUseCaseTestSuite) createUnique(reserve int64, minBidReserve bool) marketplace.AuctionId {
	id := s.uniqueId()
	start := s.now.Unix()
	s.Require().NoError(s.au.CreateAuction(s.ctx, id, nil, payAddr, big.NewInt(reserve), start, start+3600, minBidReserve))
	return id
}

func (s *AuctionUseCaseTestSuite) balance(account domain.Address) int64 {
	v, err := s.funds.BalanceOf(s.ctx, payAddr, account)
	s.Require().NoError(err)
	return v.Int64()
}

func (s *AuctionUseCaseTestSuite) TestCreateEscrowsAsset() {
	s.createUnique(100, false)

	owner, err := s.assets.Holds(s.ctx, asset.KindUnique, nftAddr, tokenOne, domain.VenueAddress, big.NewInt(1))
	s.Require().NoError(err)
	s.True(owner)
}

func (s *AuctionUseCaseTestSuite) TestCreateRejectsBadDuration() {
	id := s.uniqueId()
	start := s.now.Unix()

	err := s.au.CreateAuction(s.ctx, id, nil, payAddr, big.NewInt(100), start, start+60, false)
	s.ErrorIs(err, domain.ErrInvalidTiming)

	err = s.au.CreateAuction(s.ctx, id, nil, payAddr, big.NewInt(100), start, start+31*24*3600, false)
	s.ErrorIs(err, domain.ErrInvalidTiming)
}

func (s *AuctionUseCaseTestSuite) TestCreateRejectsUnknownPayToken() {
	id := s.uniqueId()
	start := s.now.Unix()
	err := s.au.CreateAuction(s.ctx, id, nil, domain.Address("0x00000000000000000000000000000000000000ff"), big.NewInt(100), start, start+3600, false)
	s.ErrorIs(err, domain.ErrPaymentTokenRejected)
}

func (s *AuctionUseCaseTestSuite) TestCreateRejectsNonHolder() {
	id := s.uniqueId()
	id.Owner = bidderOne
	start := s.now.Unix()
	err := s.au.CreateAuction(s.ctx, id, nil, payAddr, big.NewInt(100), start, start+3600, false)
	s.ErrorIs(err, domain.ErrInsufficientFundsOrApproval)
}

func (s *AuctionUseCaseTestSuite) TestCreateRejectsDuplicate() {
	s.createUnique(100, false)
	id := s.uniqueId()
	id.AuctionId = "2"
	start := s.now.Unix()
	err := s.au.CreateAuction(s.ctx, id, nil, payAddr, big.NewInt(100), start, start+3600, false)
	s.ErrorIs(err, domain.ErrAlreadyExists)
}

func (s *AuctionUseCaseTestSuite) TestCreateMultiNeedsAmount() {
	id := marketplace.AuctionId{Contract: multiAddr, TokenId: tokenOne, Owner: seller, AuctionId: "1"}
	start := s.now.Unix()
	err := s.au.CreateAuction(s.ctx, id, big.NewInt(0), payAddr, big.NewInt(100), start, start+3600, false)
	s.ErrorIs(err, domain.ErrInvalidAmount)

	s.Require().NoError(s.au.CreateAuction(s.ctx, id, big.NewInt(40), payAddr, big.NewInt(100), start, start+3600, false))
	escrowed, err := s.assets.Holds(s.ctx, asset.KindMulti, multiAddr, tokenOne, domain.VenueAddress, big.NewInt(40))
	s.Require().NoError(err)
	s.True(escrowed)
}

func (s *AuctionUseCaseTestSuite) TestPlaceBidPullsFunds() {
	id := s.createUnique(100, false)
	s.Require().NoError(s.au.PlaceBid(s.ctx, bidderOne, id, big.NewInt(50)))

	s.EqualValues(9950, s.balance(bidderOne))
	bid, err := s.au.GetHighestBid(s.ctx, id)
	s.Require().NoError(err)
	s.Equal("50", bid.Amount)
}

func (s *AuctionUseCaseTestSuite) TestPlaceBidRefundsPrevious() {
	id := s.createUnique(100, false)
	s.Require().NoError(s.au.PlaceBid(s.ctx, bidderOne, id, big.NewInt(50)))
	s.Require().NoError(s.au.PlaceBid(s.ctx, bidderTwo, id, big.NewInt(80)))

	s.EqualValues(10000, s.balance(bidderOne))
	s.EqualValues(9920, s.balance(bidderTwo))
	bid, err := s.au.GetHighestBid(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(bidderTwo, bid.Bidder)
}

func (s *AuctionUseCaseTestSuite) TestPlaceBidRejectsOwner() {
	id := s.createUnique(100, false)
	err := s.au.PlaceBid(s.ctx, seller, id, big.NewInt(50))
	s.ErrorIs(err, domain.ErrUnauthorized)
}

func (s *AuctionUseCaseTestSuite) TestPlaceBidRejectsEqualBid() {
	id := s.createUnique(100, false)
	s.Require().NoError(s.au.PlaceBid(s.ctx, bidderOne, id, big.NewInt(50)))
	err := s.au.PlaceBid(s.ctx, bidderTwo, id, big.NewInt(50))
	s.ErrorIs(err, domain.ErrPriceBelowThreshold)
}

func (s *AuctionUseCaseTestSuite) TestPlaceBidRespectsReserveFloor() {
	id := s.createUnique(100, true)
	err := s.au.PlaceBid(s.ctx, bidderOne, id, big.NewInt(99))
	s.ErrorIs(err, domain.ErrPriceBelowThreshold)
	s.NoError(s.au.PlaceBid(s.ctx, bidderOne, id, big.NewInt(100)))
}

func (s *AuctionUseCaseTestSuite) TestPlaceBidOutsideWindow() {
	id := s.uniqueId()
	start := s.now.Unix() + 600
	s.Require().NoError(s.au.CreateAuction(s.ctx, id, nil, payAddr, big.NewInt(100), start, start+3600, false))

	err := s.au.PlaceBid(s.ctx, bidderOne, id, big.NewInt(50))
	s.ErrorIs(err, domain.ErrInvalidTiming)

	s.advance(2 * time.Hour)
	err = s.au.PlaceBid(s.ctx, bidderOne, id, big.NewInt(50))
	s.ErrorIs(err, domain.ErrInvalidTiming)
}

func (s *AuctionUseCaseTestSuite) TestPlaceBidInsufficientFunds() {
	id := s.createUnique(100, false)
	err := s.au.PlaceBid(s.ctx, bidderOne, id, big.NewInt(20000))
	s.ErrorIs(err, domain.ErrInsufficientFundsOrApproval)
}

func (s *AuctionUseCaseTestSuite) TestWithdrawBidBeforeEnd() {
	id := s.createUnique(100, false)
	s.Require().NoError(s.au.PlaceBid(s.ctx, bidderOne, id, big.NewInt(50)))
	err := s.au.WithdrawBid(s.ctx, bidderOne, id)
	s.ErrorIs(err, domain.ErrInvalidTiming)
}

func (s *AuctionUseCaseTestSuite) TestWithdrawBelowReserveBidAfterEnd() {
	id := s.createUnique(100, false)
	s.Require().NoError(s.au.PlaceBid(s.ctx, bidderOne, id, big.NewInt(50)))
	s.advance(2 * time.Hour)

	s.Require().NoError(s.au.WithdrawBid(s.ctx, bidderOne, id))
	s.EqualValues(10000, s.balance(bidderOne))
	_, err := s.au.GetHighestBid(s.ctx, id)
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *AuctionUseCaseTestSuite) TestWithdrawWinningBidNeedsCooldown() {
	id := s.createUnique(100, false)
	s.Require().NoError(s.au.PlaceBid(s.ctx, bidderOne, id, big.NewInt(150)))
	s.advance(2 * time.Hour)

	err := s.au.WithdrawBid(s.ctx, bidderOne, id)
	s.ErrorIs(err, domain.ErrInvalidTiming)

	s.advance(12 * time.Hour)
	s.NoError(s.au.WithdrawBid(s.ctx, bidderOne, id))
	s.EqualValues(10000, s.balance(bidderOne))
}

func (s *AuctionUseCaseTestSuite) TestWithdrawBidWrongCaller() {
	id := s.createUnique(100, false)
	s.Require().NoError(s.au.PlaceBid(s.ctx, bidderOne, id, big.NewInt(50)))
	s.advance(2 * time.Hour)
	err := s.au.WithdrawBid(s.ctx, bidderTwo, id)
	s.ErrorIs(err, domain.ErrUnauthorized)
}

func (s *AuctionUseCaseTestSuite) TestUpdateReservePriceDecreaseOnly() {
	id := s.createUnique(100, false)

	err := s.au.UpdateReservePrice(s.ctx, seller, id, big.NewInt(150))
	s.ErrorIs(err, domain.ErrInvalidAmount)

	s.Require().NoError(s.au.UpdateReservePrice(s.ctx, seller, id, big.NewInt(80)))
	auction, err := s.au.GetAuction(s.ctx, id)
	s.Require().NoError(err)
	s.Equal("80", auction.ReservePrice)

	err = s.au.UpdateReservePrice(s.ctx, bidderOne, id, big.NewInt(10))
	s.ErrorIs(err, domain.ErrUnauthorized)
}

func (s *AuctionUseCaseTestSuite) TestCancelReturnsAssetAndRefunds() {
	id := s.createUnique(100, false)
	s.Require().NoError(s.au.PlaceBid(s.ctx, bidderOne, id, big.NewInt(50)))

	s.Require().NoError(s.au.CancelAuction(s.ctx, seller, id))
	s.EqualValues(10000, s.balance(bidderOne))
	back, err := s.assets.Holds(s.ctx, asset.KindUnique, nftAddr, tokenOne, seller, big.NewInt(1))
	s.Require().NoError(err)
	s.True(back)
}

func (s *AuctionUseCaseTestSuite) TestCancelBlockedByBindingBid() {
	id := s.createUnique(100, false)
	s.Require().NoError(s.au.PlaceBid(s.ctx, bidderOne, id, big.NewInt(120)))
	err := s.au.CancelAuction(s.ctx, seller, id)
	s.ErrorIs(err, domain.ErrInvalidTiming)
}

func (s *AuctionUseCaseTestSuite) TestCancelTwiceFails() {
	id := s.createUnique(100, false)
	s.Require().NoError(s.au.CancelAuction(s.ctx, seller, id))
	err := s.au.CancelAuction(s.ctx, seller, id)
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *AuctionUseCaseTestSuite) TestFinishAuctionSettles() {
	id := s.createUnique(100, false)
	s.Require().NoError(s.au.PlaceBid(s.ctx, bidderOne, id, big.NewInt(1000)))
	s.advance(2 * time.Hour)

	s.Require().NoError(s.au.FinishAuction(s.ctx, seller, id))

	// fee 2.5% of 1000
	s.EqualValues(25, s.balance(feeWallet))
	s.EqualValues(975, s.balance(seller))
	won, err := s.assets.Holds(s.ctx, asset.KindUnique, nftAddr, tokenOne, bidderOne, big.NewInt(1))
	s.Require().NoError(err)
	s.True(won)

	_, err = s.au.GetAuction(s.ctx, id)
	s.ErrorIs(err, domain.ErrNotFound)
	_, err = s.au.GetHighestBid(s.ctx, id)
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *AuctionUseCaseTestSuite) TestFinishAuctionBeforeEnd() {
	id := s.createUnique(100, false)
	s.Require().NoError(s.au.PlaceBid(s.ctx, bidderOne, id, big.NewInt(1000)))
	err := s.au.FinishAuction(s.ctx, seller, id)
	s.ErrorIs(err, domain.ErrInvalidTiming)
}

func (s *AuctionUseCaseTestSuite) TestFinishAuctionBelowReserveRejected() {
	id := s.createUnique(100, false)
	s.Require().NoError(s.au.PlaceBid(s.ctx, bidderOne, id, big.NewInt(50)))
	s.advance(2 * time.Hour)
	err := s.au.FinishAuction(s.ctx, seller, id)
	s.ErrorIs(err, domain.ErrPriceBelowThreshold)
}

func (s *AuctionUseCaseTestSuite) TestFinishAuctionByWinner() {
	id := s.createUnique(100, false)
	s.Require().NoError(s.au.PlaceBid(s.ctx, bidderOne, id, big.NewInt(500)))
	s.advance(2 * time.Hour)
	s.NoError(s.au.FinishAuction(s.ctx, bidderOne, id))
}

func (s *AuctionUseCaseTestSuite) TestFinishAuctionByStranger() {
	id := s.createUnique(100, false)
	s.Require().NoError(s.au.PlaceBid(s.ctx, bidderOne, id, big.NewInt(500)))
	s.advance(2 * time.Hour)
	err := s.au.FinishAuction(s.ctx, bidderTwo, id)
	s.ErrorIs(err, domain.ErrUnauthorized)
}

// The under reserve flow: two bids, owner accepts the losing reserve,
// displaced bidder made whole, winner takes the asset.
func (s *AuctionUseCaseTestSuite) TestFinishBelowReservePrice() {
	id := s.createUnique(100, false)
	s.Require().NoError(s.au.PlaceBid(s.ctx, bidderOne, id, big.NewInt(50)))
	s.Require().NoError(s.au.PlaceBid(s.ctx, bidderTwo, id, big.NewInt(80)))
	s.advance(time.Hour)

	// owner only
	err := s.au.FinishAuctionBelowReservePrice(s.ctx, bidderTwo, id)
	s.ErrorIs(err, domain.ErrUnauthorized)

	s.Require().NoError(s.au.FinishAuctionBelowReservePrice(s.ctx, seller, id))

	s.EqualValues(10000, s.balance(bidderOne))
	s.EqualValues(9920, s.balance(bidderTwo))
	// fee 2.5% of 80 truncates to 2
	s.EqualValues(2, s.balance(feeWallet))
	s.EqualValues(78, s.balance(seller))
	won, err := s.assets.Holds(s.ctx, asset.KindUnique, nftAddr, tokenOne, bidderTwo, big.NewInt(1))
	s.Require().NoError(err)
	s.True(won)
}

func (s *AuctionUseCaseTestSuite) TestFinishBelowReserveWithWinningBid() {
	id := s.createUnique(100, false)
	s.Require().NoError(s.au.PlaceBid(s.ctx, bidderOne, id, big.NewInt(150)))
	s.advance(2 * time.Hour)
	err := s.au.FinishAuctionBelowReservePrice(s.ctx, seller, id)
	s.ErrorIs(err, domain.ErrInvalidAmount)
}

func (s *AuctionUseCaseTestSuite) TestEscrowConservation() {
	multiId := marketplace.AuctionId{Contract: multiAddr, TokenId: tokenOne, Owner: seller, AuctionId: "a"}
	start := s.now.Unix()
	s.Require().NoError(s.au.CreateAuction(s.ctx, multiId, big.NewInt(30), payAddr, big.NewInt(10), start, start+3600, false))

	otherId := multiId
	otherId.AuctionId = "b"
	s.Require().NoError(s.au.CreateAuction(s.ctx, otherId, big.NewInt(20), payAddr, big.NewInt(10), start, start+3600, false))

	escrowed, err := s.assets.Holds(s.ctx, asset.KindMulti, multiAddr, tokenOne, domain.VenueAddress, big.NewInt(50))
	s.Require().NoError(err)
	s.True(escrowed)

	s.Require().NoError(s.au.CancelAuction(s.ctx, seller, otherId))
	escrowed, err = s.assets.Holds(s.ctx, asset.KindMulti, multiAddr, tokenOne, domain.VenueAddress, big.NewInt(30))
	s.Require().NoError(err)
	s.True(escrowed)
	over, err := s.assets.Holds(s.ctx, asset.KindMulti, multiAddr, tokenOne, domain.VenueAddress, big.NewInt(31))
	s.Require().NoError(err)
	s.False(over)
}
