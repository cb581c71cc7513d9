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
	"github.com/mintleaf-xyz/venue/domain/royalty"
	activityRepo "github.com/mintleaf-xyz/venue/stores/activity/repository"
	assetRepo "github.com/mintleaf-xyz/venue/stores/asset/repository"
	assetUC "github.com/mintleaf-xyz/venue/stores/asset/usecase"
	ledgerRepo "github.com/mintleaf-xyz/venue/stores/ledger/repository"
	ledgerUC "github.com/mintleaf-xyz/venue/stores/ledger/usecase"
	listingRepo "github.com/mintleaf-xyz/venue/stores/listing/repository"
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
	buyer       = domain.Address("0x00000000000000000000000000000000000000c2")
	venueOwner  = domain.Address("0x00000000000000000000000000000000000000d1")
	feeWallet   = domain.Address("0x00000000000000000000000000000000000000d2")
	royaltyAddr = domain.Address("0x00000000000000000000000000000000000000d3")
)

const tokenOne = domain.TokenId("1")

type ListingUseCaseTestSuite struct {
	suite.Suite

	ctx       bCtx.Ctx
	now       time.Time
	assets    asset.UseCase
	funds     ledger.UseCase
	royalties royalty.UseCase
	lu        marketplace.ListingUseCase
}

func TestListingUseCaseTestSuite(t *testing.T) {
	suite.Run(t, new(ListingUseCaseTestSuite))
}

func (s *ListingUseCaseTestSuite) SetupTest() {
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
	tokens := paytokenUC.New(&paytokenUC.PayTokenUseCaseCfg{Repo: tokenRepo, SettingsRepo: settings})

	royalties := royaltyUC.New(&royaltyUC.RoyaltyUseCaseCfg{
		Repo:         royaltyRepo.NewInMem(),
		Asset:        s.assets,
		SettingsRepo: settings,
	})
	s.royalties = royalties
	settlement := settlementUC.New(&settlementUC.SettlementUseCaseCfg{
		Ledger:       s.funds,
		Royalty:      royalties,
		SettingsRepo: settings,
	})

	s.lu = New(&ListingUseCaseCfg{
		ListingRepo:  listingRepo.NewInMem(),
		Asset:        s.assets,
		Ledger:       s.funds,
		PayToken:     tokens,
		Settlement:   settlement,
		ActivityRepo: activityRepo.NewInMem(),
	})

	s.Require().NoError(s.assets.RegisterContract(s.ctx, nftAddr, asset.KindUnique))
	s.Require().NoError(s.assets.RegisterContract(s.ctx, multiAddr, asset.KindMulti))
	s.Require().NoError(s.assets.Mint(s.ctx, nftAddr, tokenOne, seller, nil))
	s.Require().NoError(s.assets.Mint(s.ctx, multiAddr, tokenOne, seller, big.NewInt(100)))
	s.Require().NoError(s.assets.SetApprovalForAll(s.ctx, nftAddr, seller, domain.VenueAddress, true))
	s.Require().NoError(s.assets.SetApprovalForAll(s.ctx, multiAddr, seller, domain.VenueAddress, true))

	s.Require().NoError(s.funds.Deposit(s.ctx, payAddr, buyer, big.NewInt(10000)))
	s.Require().NoError(s.funds.Approve(s.ctx, payAddr, buyer, domain.VenueAddress, big.NewInt(10000)))
}

func (s *ListingUseCaseTestSuite) balance(account domain.Address) int64 {
	v, err := s.funds.BalanceOf(s.ctx, payAddr, account)
	s.Require().NoError(err)
	return v.Int64()
}

func (s *ListingUseCaseTestSuite) multiId() marketplace.ListingId {
	return marketplace.ListingId{Contract: multiAddr, TokenId: tokenOne, Owner: seller, ListingId: "1"}
}

func (s *ListingUseCaseTestSuite) createMulti() marketplace.ListingId {
	id := s.multiId()
	s.Require().NoError(s.lu.CreateListing(s.ctx, id, big.NewInt(100), big.NewInt(10), big.NewInt(5), payAddr, s.now.Unix()))
	return id
}

func (s *ListingUseCaseTestSuite) TestCreateRejectsIndivisibleAmount() {
	id := s.multiId()
	err := s.lu.CreateListing(s.ctx, id, big.NewInt(95), big.NewInt(10), big.NewInt(5), payAddr, s.now.Unix())
	s.ErrorIs(err, domain.ErrInvalidAmount)
}

func (s *ListingUseCaseTestSuite) TestCreateRejectsPastStart() {
	id := s.multiId()
	err := s.lu.CreateListing(s.ctx, id, big.NewInt(100), big.NewInt(10), big.NewInt(5), payAddr, s.now.Unix()-10)
	s.ErrorIs(err, domain.ErrInvalidTiming)
}

func (s *ListingUseCaseTestSuite) TestCreateRejectsUnknownPayToken() {
	id := s.multiId()
	other := domain.Address("0x00000000000000000000000000000000000000ff")
	err := s.lu.CreateListing(s.ctx, id, big.NewInt(100), big.NewInt(10), big.NewInt(5), other, s.now.Unix())
	s.ErrorIs(err, domain.ErrPaymentTokenRejected)
}

func (s *ListingUseCaseTestSuite) TestCreateEscrowsFullAmount() {
	s.createMulti()
	escrowed, err := s.assets.Holds(s.ctx, asset.KindMulti, multiAddr, tokenOne, domain.VenueAddress, big.NewInt(100))
	s.Require().NoError(err)
	s.True(escrowed)
}

func (s *ListingUseCaseTestSuite) TestCreateRejectsDuplicate() {
	s.createMulti()
	id := s.multiId()
	err := s.lu.CreateListing(s.ctx, id, big.NewInt(10), big.NewInt(10), big.NewInt(5), payAddr, s.now.Unix())
	s.ErrorIs(err, domain.ErrAlreadyExists)
}

// Partial fill: 100 tokens at 5 each in units of 10, buying 30 leaves 70
// and pays the seller 150 less fee.
func (s *ListingUseCaseTestSuite) TestBuyPartialFill() {
	id := s.createMulti()

	s.Require().NoError(s.lu.Buy(s.ctx, buyer, id, big.NewInt(30), big.NewInt(5), payAddr))

	listing, err := s.lu.GetListing(s.ctx, id)
	s.Require().NoError(err)
	s.Equal("70", listing.Remaining)
	s.Equal("100", listing.TokenAmount)

	holds, err := s.assets.Holds(s.ctx, asset.KindMulti, multiAddr, tokenOne, buyer, big.NewInt(30))
	s.Require().NoError(err)
	s.True(holds)

	// base 150, fee 2.5% truncated to 3
	s.EqualValues(9850, s.balance(buyer))
	s.EqualValues(3, s.balance(feeWallet))
	s.EqualValues(147, s.balance(seller))
}

func (s *ListingUseCaseTestSuite) TestBuyExactingRemainderDeletes() {
	id := s.createMulti()
	s.Require().NoError(s.lu.Buy(s.ctx, buyer, id, big.NewInt(100), big.NewInt(5), payAddr))
	_, err := s.lu.GetListing(s.ctx, id)
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *ListingUseCaseTestSuite) TestBuyRejectsIndivisibleAmount() {
	id := s.createMulti()
	err := s.lu.Buy(s.ctx, buyer, id, big.NewInt(25), big.NewInt(5), payAddr)
	s.ErrorIs(err, domain.ErrInvalidAmount)
}

func (s *ListingUseCaseTestSuite) TestBuyRejectsOverRemaining() {
	id := s.createMulti()
	err := s.lu.Buy(s.ctx, buyer, id, big.NewInt(110), big.NewInt(5), payAddr)
	s.ErrorIs(err, domain.ErrInvalidAmount)
}

func (s *ListingUseCaseTestSuite) TestBuyRejectsStaleTerms() {
	id := s.createMulti()
	s.Require().NoError(s.lu.UpdateListing(s.ctx, seller, id, payAddr, big.NewInt(9)))

	err := s.lu.Buy(s.ctx, buyer, id, big.NewInt(10), big.NewInt(5), payAddr)
	s.ErrorIs(err, domain.ErrInvalidAmount)
	s.NoError(s.lu.Buy(s.ctx, buyer, id, big.NewInt(10), big.NewInt(9), payAddr))
}

func (s *ListingUseCaseTestSuite) TestBuyBeforeStart() {
	id := s.multiId()
	s.Require().NoError(s.lu.CreateListing(s.ctx, id, big.NewInt(100), big.NewInt(10), big.NewInt(5), payAddr, s.now.Unix()+600))
	err := s.lu.Buy(s.ctx, buyer, id, big.NewInt(10), big.NewInt(5), payAddr)
	s.ErrorIs(err, domain.ErrInvalidTiming)
}

func (s *ListingUseCaseTestSuite) TestBuyAppliesRoyalty() {
	s.Require().NoError(s.royalties.SetDefaultRoyalty(s.ctx, venueOwner, multiAddr, royaltyAddr, 1000))
	id := s.createMulti()

	s.Require().NoError(s.lu.Buy(s.ctx, buyer, id, big.NewInt(30), big.NewInt(5), payAddr))

	// base 150, fee 3, royalty 10% of 147 truncated to 14
	s.EqualValues(3, s.balance(feeWallet))
	s.EqualValues(14, s.balance(royaltyAddr))
	s.EqualValues(133, s.balance(seller))
}

func (s *ListingUseCaseTestSuite) TestCancelReturnsRemaining() {
	id := s.createMulti()
	s.Require().NoError(s.lu.Buy(s.ctx, buyer, id, big.NewInt(30), big.NewInt(5), payAddr))
	s.Require().NoError(s.lu.CancelListing(s.ctx, seller, id))

	back, err := s.assets.Holds(s.ctx, asset.KindMulti, multiAddr, tokenOne, seller, big.NewInt(70))
	s.Require().NoError(err)
	s.True(back)

	err = s.lu.CancelListing(s.ctx, seller, id)
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *ListingUseCaseTestSuite) TestUniqueListingForcesSingleUnit() {
	id := marketplace.ListingId{Contract: nftAddr, TokenId: tokenOne, Owner: seller, ListingId: "1"}
	s.Require().NoError(s.lu.CreateListing(s.ctx, id, big.NewInt(5), big.NewInt(3), big.NewInt(500), payAddr, s.now.Unix()))

	listing, err := s.lu.GetListing(s.ctx, id)
	s.Require().NoError(err)
	s.Equal("1", listing.TokenAmount)
	s.Equal("1", listing.UnitSize)

	s.Require().NoError(s.lu.Buy(s.ctx, buyer, id, big.NewInt(1), big.NewInt(500), payAddr))
	owned, err := s.assets.Holds(s.ctx, asset.KindUnique, nftAddr, tokenOne, buyer, big.NewInt(1))
	s.Require().NoError(err)
	s.True(owned)
}
