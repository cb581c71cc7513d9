package usecase

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/suite"

	bCtx "github.com/mintleaf-xyz/venue/base/ctx"
	"github.com/mintleaf-xyz/venue/domain"
	"github.com/mintleaf-xyz/venue/domain/asset"
	"github.com/mintleaf-xyz/venue/domain/ledger"
	"github.com/mintleaf-xyz/venue/domain/marketplace"
	"github.com/mintleaf-xyz/venue/domain/royalty"
	assetRepo "github.com/mintleaf-xyz/venue/stores/asset/repository"
	assetUC "github.com/mintleaf-xyz/venue/stores/asset/usecase"
	ledgerRepo "github.com/mintleaf-xyz/venue/stores/ledger/repository"
	ledgerUC "github.com/mintleaf-xyz/venue/stores/ledger/usecase"
	royaltyRepo "github.com/mintleaf-xyz/venue/stores/royalty/repository"
	royaltyUC "github.com/mintleaf-xyz/venue/stores/royalty/usecase"
	settingsRepo "github.com/mintleaf-xyz/venue/stores/settings/repository"
)

const (
	nftAddr     = domain.Address("0x00000000000000000000000000000000000000a1")
	payAddr     = domain.Address("0x00000000000000000000000000000000000000b1")
	sellerAddr  = domain.Address("0x00000000000000000000000000000000000000c1")
	buyerAddr   = domain.Address("0x00000000000000000000000000000000000000c2")
	venueOwner  = domain.Address("0x00000000000000000000000000000000000000d1")
	feeWallet   = domain.Address("0x00000000000000000000000000000000000000d2")
	royaltyAddr = domain.Address("0x00000000000000000000000000000000000000d3")
)

type SettlementTestSuite struct {
	suite.Suite

	ctx       bCtx.Ctx
	funds     ledger.UseCase
	royalties royalty.UseCase
	settings  marketplace.SettingsRepo
	st        marketplace.Settlement
}

func TestSettlementTestSuite(t *testing.T) {
	suite.Run(t, new(SettlementTestSuite))
}

func (s *SettlementTestSuite) SetupTest() {
	s.ctx = bCtx.Background()
	s.funds = ledgerUC.New(&ledgerUC.LedgerUseCaseCfg{Repo: ledgerRepo.NewInMem()})

	assets := assetUC.NewAdapter(&assetUC.AdapterCfg{
		ContractRepo: assetRepo.NewInMemContractRepo(),
		HoldingRepo:  assetRepo.NewInMemHoldingRepo(),
	})
	s.Require().NoError(assets.RegisterContract(s.ctx, nftAddr, asset.KindUnique))

	s.settings = settingsRepo.NewInMem()
	s.Require().NoError(s.settings.Upsert(s.ctx, &marketplace.Settings{
		Owner:           venueOwner,
		FeeRecipient:    feeWallet,
		FeeRate:         25,
		MinBidIncrement: "1",
	}))

	s.royalties = royaltyUC.New(&royaltyUC.RoyaltyUseCaseCfg{
		Repo:         royaltyRepo.NewInMem(),
		Asset:        assets,
		SettingsRepo: s.settings,
	})
	s.st = New(&SettlementUseCaseCfg{
		Ledger:       s.funds,
		Royalty:      s.royalties,
		SettingsRepo: s.settings,
	})
}

func (s *SettlementTestSuite) balance(account domain.Address) int64 {
	v, err := s.funds.BalanceOf(s.ctx, payAddr, account)
	s.Require().NoError(err)
	return v.Int64()
}

func (s *SettlementTestSuite) escrow(amount int64) {
	s.Require().NoError(s.funds.Deposit(s.ctx, payAddr, domain.VenueAddress, big.NewInt(amount)))
}

func (s *SettlementTestSuite) TestSplitSumsToPrice() {
	s.Require().NoError(s.royalties.SetDefaultRoyalty(s.ctx, venueOwner, nftAddr, royaltyAddr, 500))
	s.escrow(1000)

	res, err := s.st.Settle(s.ctx, marketplace.SettleInput{
		PayToken: payAddr,
		Contract: nftAddr,
		TokenId:  "1",
		Price:    big.NewInt(1000),
		Seller:   sellerAddr,
	})
	s.Require().NoError(err)

	// fee 25, royalty 5% of 975 truncated to 48, seller takes the rest
	s.EqualValues(25, res.Fee.Int64())
	s.EqualValues(48, res.Royalty.Int64())
	s.EqualValues(927, res.Proceeds.Int64())
	total := new(big.Int).Add(res.Fee, res.Royalty)
	total.Add(total, res.Proceeds)
	s.EqualValues(1000, total.Int64())

	s.EqualValues(25, s.balance(feeWallet))
	s.EqualValues(48, s.balance(royaltyAddr))
	s.EqualValues(927, s.balance(sellerAddr))
	s.EqualValues(0, s.balance(domain.VenueAddress))
}

func (s *SettlementTestSuite) TestTinyPriceTruncatesToZeroFee() {
	s.escrow(10)
	res, err := s.st.Settle(s.ctx, marketplace.SettleInput{
		PayToken: payAddr,
		Contract: nftAddr,
		TokenId:  "1",
		Price:    big.NewInt(10),
		Seller:   sellerAddr,
	})
	s.Require().NoError(err)

	// 2.5% of 10 truncates to zero
	s.EqualValues(0, res.Fee.Int64())
	s.EqualValues(10, res.Proceeds.Int64())
	s.EqualValues(10, s.balance(sellerAddr))
}

func (s *SettlementTestSuite) TestNoRoyaltyConfigured() {
	s.escrow(1000)
	res, err := s.st.Settle(s.ctx, marketplace.SettleInput{
		PayToken: payAddr,
		Contract: nftAddr,
		TokenId:  "1",
		Price:    big.NewInt(1000),
		Seller:   sellerAddr,
	})
	s.Require().NoError(err)
	s.EqualValues(0, res.Royalty.Int64())
	s.EqualValues(975, res.Proceeds.Int64())
}

func (s *SettlementTestSuite) TestRelayPathPullsFromSource() {
	s.Require().NoError(s.funds.Deposit(s.ctx, payAddr, buyerAddr, big.NewInt(1000)))
	s.Require().NoError(s.funds.Approve(s.ctx, payAddr, buyerAddr, domain.VenueAddress, big.NewInt(1000)))

	_, err := s.st.Settle(s.ctx, marketplace.SettleInput{
		PayToken: payAddr,
		Contract: nftAddr,
		TokenId:  "1",
		Price:    big.NewInt(1000),
		Seller:   sellerAddr,
		Source:   buyerAddr,
	})
	s.Require().NoError(err)

	s.EqualValues(0, s.balance(buyerAddr))
	s.EqualValues(25, s.balance(feeWallet))
	s.EqualValues(975, s.balance(sellerAddr))
}

func (s *SettlementTestSuite) TestRelayPathInsufficientAllowance() {
	s.Require().NoError(s.funds.Deposit(s.ctx, payAddr, buyerAddr, big.NewInt(1000)))
	s.Require().NoError(s.funds.Approve(s.ctx, payAddr, buyerAddr, domain.VenueAddress, big.NewInt(10)))

	_, err := s.st.Settle(s.ctx, marketplace.SettleInput{
		PayToken: payAddr,
		Contract: nftAddr,
		TokenId:  "1",
		Price:    big.NewInt(1000),
		Seller:   sellerAddr,
		Source:   buyerAddr,
	})
	s.ErrorIs(err, domain.ErrInsufficientFundsOrApproval)
}

func (s *SettlementTestSuite) TestRejectsZeroPrice() {
	_, err := s.st.Settle(s.ctx, marketplace.SettleInput{
		PayToken: payAddr,
		Contract: nftAddr,
		TokenId:  "1",
		Price:    big.NewInt(0),
		Seller:   sellerAddr,
	})
	s.ErrorIs(err, domain.ErrInvalidAmount)
}
