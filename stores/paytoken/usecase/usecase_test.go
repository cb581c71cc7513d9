package usecase

import (
	"testing"

	"github.com/stretchr/testify/suite"

	bCtx "github.com/mintleaf-xyz/venue/base/ctx"
	"github.com/mintleaf-xyz/venue/domain"
	"github.com/mintleaf-xyz/venue/domain/marketplace"
	"github.com/mintleaf-xyz/venue/domain/paytoken"
	paytokenRepo "github.com/mintleaf-xyz/venue/stores/paytoken/repository"
	settingsRepo "github.com/mintleaf-xyz/venue/stores/settings/repository"
)

const (
	wethAddr   = domain.Address("0x00000000000000000000000000000000000000b1")
	usdcAddr   = domain.Address("0x00000000000000000000000000000000000000b2")
	venueOwner = domain.Address("0x00000000000000000000000000000000000000d1")
	stranger   = domain.Address("0x00000000000000000000000000000000000000c1")
)

type PayTokenUseCaseTestSuite struct {
	suite.Suite

	ctx bCtx.Ctx
	pu  paytoken.UseCase
}

func TestPayTokenUseCaseTestSuite(t *testing.T) {
	suite.Run(t, new(PayTokenUseCaseTestSuite))
}

func (s *PayTokenUseCaseTestSuite) SetupTest() {
	s.ctx = bCtx.Background()
	settings := settingsRepo.NewInMem()
	s.Require().NoError(settings.Upsert(s.ctx, &marketplace.Settings{
		Owner:           venueOwner,
		FeeRecipient:    venueOwner,
		FeeRate:         25,
		MinBidIncrement: "1",
	}))
	s.pu = New(&PayTokenUseCaseCfg{Repo: paytokenRepo.NewInMem(), SettingsRepo: settings})
}

func (s *PayTokenUseCaseTestSuite) TestAddAndEnable() {
	enabled, err := s.pu.IsEnabled(s.ctx, wethAddr)
	s.Require().NoError(err)
	s.False(enabled)

	s.Require().NoError(s.pu.Add(s.ctx, venueOwner, &paytoken.PayToken{Address: wethAddr, Symbol: "WETH", Decimals: 18}))
	enabled, err = s.pu.IsEnabled(s.ctx, wethAddr)
	s.Require().NoError(err)
	s.True(enabled)
}

func (s *PayTokenUseCaseTestSuite) TestAddDuplicate() {
	s.Require().NoError(s.pu.Add(s.ctx, venueOwner, &paytoken.PayToken{Address: wethAddr, Symbol: "WETH", Decimals: 18}))
	err := s.pu.Add(s.ctx, venueOwner, &paytoken.PayToken{Address: wethAddr, Symbol: "WETH", Decimals: 18})
	s.ErrorIs(err, domain.ErrAlreadyExists)
}

func (s *PayTokenUseCaseTestSuite) TestAddOwnerGated() {
	err := s.pu.Add(s.ctx, stranger, &paytoken.PayToken{Address: wethAddr, Symbol: "WETH", Decimals: 18})
	s.ErrorIs(err, domain.ErrUnauthorized)
}

func (s *PayTokenUseCaseTestSuite) TestRemove() {
	s.Require().NoError(s.pu.Add(s.ctx, venueOwner, &paytoken.PayToken{Address: wethAddr, Symbol: "WETH", Decimals: 18}))
	s.Require().NoError(s.pu.Remove(s.ctx, venueOwner, wethAddr))

	enabled, err := s.pu.IsEnabled(s.ctx, wethAddr)
	s.Require().NoError(err)
	s.False(enabled)

	err = s.pu.Remove(s.ctx, venueOwner, wethAddr)
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *PayTokenUseCaseTestSuite) TestFindAllSorted() {
	s.Require().NoError(s.pu.Add(s.ctx, venueOwner, &paytoken.PayToken{Address: wethAddr, Symbol: "WETH", Decimals: 18}))
	s.Require().NoError(s.pu.Add(s.ctx, venueOwner, &paytoken.PayToken{Address: usdcAddr, Symbol: "USDC", Decimals: 6}))

	all, err := s.pu.FindAll(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 2)
	s.Equal("USDC", all[0].Symbol)
	s.Equal("WETH", all[1].Symbol)
}
