package usecase

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/suite"

	bCtx "github.com/mintleaf-xyz/venue/base/ctx"
	"github.com/mintleaf-xyz/venue/domain"
	"github.com/mintleaf-xyz/venue/domain/ledger"
	ledgerRepo "github.com/mintleaf-xyz/venue/stores/ledger/repository"
)

const (
	payAddr = domain.Address("0x00000000000000000000000000000000000000b1")
	alice   = domain.Address("0x00000000000000000000000000000000000000c1")
	bob     = domain.Address("0x00000000000000000000000000000000000000c2")
)

type LedgerUseCaseTestSuite struct {
	suite.Suite

	ctx bCtx.Ctx
	lu  ledger.UseCase
}

func TestLedgerUseCaseTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerUseCaseTestSuite))
}

func (s *LedgerUseCaseTestSuite) SetupTest() {
	s.ctx = bCtx.Background()
	s.lu = New(&LedgerUseCaseCfg{Repo: ledgerRepo.NewInMem()})
}

func (s *LedgerUseCaseTestSuite) balance(account domain.Address) int64 {
	v, err := s.lu.BalanceOf(s.ctx, payAddr, account)
	s.Require().NoError(err)
	return v.Int64()
}

func (s *LedgerUseCaseTestSuite) TestDepositAccumulates() {
	s.Require().NoError(s.lu.Deposit(s.ctx, payAddr, alice, big.NewInt(100)))
	s.Require().NoError(s.lu.Deposit(s.ctx, payAddr, alice, big.NewInt(50)))
	s.EqualValues(150, s.balance(alice))
}

func (s *LedgerUseCaseTestSuite) TestDepositRejectsNonPositive() {
	err := s.lu.Deposit(s.ctx, payAddr, alice, big.NewInt(0))
	s.ErrorIs(err, domain.ErrInvalidAmount)
}

func (s *LedgerUseCaseTestSuite) TestPullConsumesAllowance() {
	s.Require().NoError(s.lu.Deposit(s.ctx, payAddr, alice, big.NewInt(100)))
	s.Require().NoError(s.lu.Approve(s.ctx, payAddr, alice, domain.VenueAddress, big.NewInt(60)))

	s.Require().NoError(s.lu.Pull(s.ctx, payAddr, alice, big.NewInt(40)))
	s.EqualValues(60, s.balance(alice))
	s.EqualValues(40, s.balance(domain.VenueAddress))

	remaining, err := s.lu.AllowanceOf(s.ctx, payAddr, alice, domain.VenueAddress)
	s.Require().NoError(err)
	s.EqualValues(20, remaining.Int64())

	err = s.lu.Pull(s.ctx, payAddr, alice, big.NewInt(30))
	s.ErrorIs(err, domain.ErrInsufficientFundsOrApproval)
}

func (s *LedgerUseCaseTestSuite) TestPullWithoutBalance() {
	s.Require().NoError(s.lu.Approve(s.ctx, payAddr, alice, domain.VenueAddress, big.NewInt(100)))
	err := s.lu.Pull(s.ctx, payAddr, alice, big.NewInt(40))
	s.ErrorIs(err, domain.ErrInsufficientFundsOrApproval)
}

func (s *LedgerUseCaseTestSuite) TestPushFromEscrow() {
	s.Require().NoError(s.lu.Deposit(s.ctx, payAddr, domain.VenueAddress, big.NewInt(100)))
	s.Require().NoError(s.lu.Push(s.ctx, payAddr, bob, big.NewInt(70)))
	s.EqualValues(70, s.balance(bob))
	s.EqualValues(30, s.balance(domain.VenueAddress))
}

func (s *LedgerUseCaseTestSuite) TestRelayBypassesEscrow() {
	s.Require().NoError(s.lu.Deposit(s.ctx, payAddr, alice, big.NewInt(100)))
	s.Require().NoError(s.lu.Approve(s.ctx, payAddr, alice, domain.VenueAddress, big.NewInt(100)))

	s.Require().NoError(s.lu.Relay(s.ctx, payAddr, alice, bob, big.NewInt(100)))
	s.EqualValues(0, s.balance(alice))
	s.EqualValues(100, s.balance(bob))
	s.EqualValues(0, s.balance(domain.VenueAddress))
}

func (s *LedgerUseCaseTestSuite) TestSelfRelayConservesFunds() {
	s.Require().NoError(s.lu.Deposit(s.ctx, payAddr, alice, big.NewInt(100)))
	s.Require().NoError(s.lu.Approve(s.ctx, payAddr, alice, domain.VenueAddress, big.NewInt(100)))

	s.Require().NoError(s.lu.Relay(s.ctx, payAddr, alice, alice, big.NewInt(60)))
	s.EqualValues(100, s.balance(alice))
	s.EqualValues(0, s.balance(domain.VenueAddress))

	// the self move still spends allowance and still checks funds
	remaining, err := s.lu.AllowanceOf(s.ctx, payAddr, alice, domain.VenueAddress)
	s.Require().NoError(err)
	s.EqualValues(40, remaining.Int64())

	err = s.lu.Relay(s.ctx, payAddr, alice, alice, big.NewInt(200))
	s.ErrorIs(err, domain.ErrInsufficientFundsOrApproval)
}

func (s *LedgerUseCaseTestSuite) TestZeroAmountMovesAreNoops() {
	s.NoError(s.lu.Pull(s.ctx, payAddr, alice, big.NewInt(0)))
	s.NoError(s.lu.Push(s.ctx, payAddr, alice, big.NewInt(0)))
	s.NoError(s.lu.Relay(s.ctx, payAddr, alice, bob, big.NewInt(0)))
}
