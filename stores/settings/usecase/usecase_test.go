package usecase

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/suite"

	bCtx "github.com/mintleaf-xyz/venue/base/ctx"
	"github.com/mintleaf-xyz/venue/domain"
	"github.com/mintleaf-xyz/venue/domain/marketplace"
	settingsRepo "github.com/mintleaf-xyz/venue/stores/settings/repository"
)

const (
	venueOwner = domain.Address("0x00000000000000000000000000000000000000d1")
	feeWallet  = domain.Address("0x00000000000000000000000000000000000000d2")
	stranger   = domain.Address("0x00000000000000000000000000000000000000c1")
	newOwner   = domain.Address("0x00000000000000000000000000000000000000c2")
)

type SettingsUseCaseTestSuite struct {
	suite.Suite

	ctx bCtx.Ctx
	su  marketplace.SettingsUseCase
}

func TestSettingsUseCaseTestSuite(t *testing.T) {
	suite.Run(t, new(SettingsUseCaseTestSuite))
}

func (s *SettingsUseCaseTestSuite) SetupTest() {
	s.ctx = bCtx.Background()
	repo := settingsRepo.NewInMem()
	s.Require().NoError(repo.Upsert(s.ctx, &marketplace.Settings{
		Owner:           venueOwner,
		FeeRecipient:    feeWallet,
		FeeRate:         25,
		MinBidIncrement: "1",
	}))
	s.su = New(&SettingsUseCaseCfg{Repo: repo})
}

func (s *SettingsUseCaseTestSuite) TestUpdateFeeRateReturnsPrevious() {
	prev, err := s.su.UpdateFeeRate(s.ctx, venueOwner, 50)
	s.Require().NoError(err)
	s.EqualValues(25, prev)

	settings, err := s.su.Get(s.ctx)
	s.Require().NoError(err)
	s.EqualValues(50, settings.FeeRate)
}

func (s *SettingsUseCaseTestSuite) TestUpdateFeeRateBounds() {
	_, err := s.su.UpdateFeeRate(s.ctx, venueOwner, 1001)
	s.ErrorIs(err, domain.ErrInvalidAmount)
	_, err = s.su.UpdateFeeRate(s.ctx, venueOwner, -1)
	s.ErrorIs(err, domain.ErrInvalidAmount)
}

func (s *SettingsUseCaseTestSuite) TestSettersOwnerGated() {
	_, err := s.su.UpdateFeeRate(s.ctx, stranger, 50)
	s.ErrorIs(err, domain.ErrUnauthorized)
	_, err = s.su.UpdateFeeRecipient(s.ctx, stranger, stranger)
	s.ErrorIs(err, domain.ErrUnauthorized)
	_, err = s.su.UpdateMinBidIncrement(s.ctx, stranger, big.NewInt(5))
	s.ErrorIs(err, domain.ErrUnauthorized)
	_, err = s.su.UpdateOfferEscrow(s.ctx, stranger, true)
	s.ErrorIs(err, domain.ErrUnauthorized)
	_, err = s.su.TransferOwnership(s.ctx, stranger, stranger)
	s.ErrorIs(err, domain.ErrUnauthorized)
}

func (s *SettingsUseCaseTestSuite) TestUpdateMinBidIncrement() {
	prev, err := s.su.UpdateMinBidIncrement(s.ctx, venueOwner, big.NewInt(10))
	s.Require().NoError(err)
	s.EqualValues(1, prev.Int64())

	_, err = s.su.UpdateMinBidIncrement(s.ctx, venueOwner, big.NewInt(0))
	s.ErrorIs(err, domain.ErrInvalidAmount)
}

func (s *SettingsUseCaseTestSuite) TestTransferOwnership() {
	prev, err := s.su.TransferOwnership(s.ctx, venueOwner, newOwner)
	s.Require().NoError(err)
	s.Equal(venueOwner, prev)

	// old owner lost control
	_, err = s.su.UpdateFeeRate(s.ctx, venueOwner, 50)
	s.ErrorIs(err, domain.ErrUnauthorized)
	_, err = s.su.UpdateFeeRate(s.ctx, newOwner, 50)
	s.NoError(err)
}

func (s *SettingsUseCaseTestSuite) TestUpdateOfferEscrow() {
	prev, err := s.su.UpdateOfferEscrow(s.ctx, venueOwner, true)
	s.Require().NoError(err)
	s.False(prev)

	prev, err = s.su.UpdateOfferEscrow(s.ctx, venueOwner, false)
	s.Require().NoError(err)
	s.True(prev)
}
