package asset

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/suite"

	"github.com/numengames/numinia-core/internal/testutil"
)

type transferCall struct {
	to      common.Address
	tokenID *big.Int
	amount  *big.Int
}

type fakeTransferrer struct {
	calls []transferCall
	hash  common.Hash
	err   error
}

func (f *fakeTransferrer) SafeTransferFrom(ctx context.Context, to common.Address, tokenID, amount *big.Int) (common.Hash, error) {
	f.calls = append(f.calls, transferCall{to: to, tokenID: tokenID, amount: amount})
	return f.hash, f.err
}

type ServiceSuite struct {
	suite.Suite
	transferrer *fakeTransferrer
	service     *Service
	ctx         context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

const wallet = "0x1234567890AbcdEF1234567890aBcdef12345678"

func (s *ServiceSuite) SetupTest() {
	s.transferrer = &fakeTransferrer{hash: common.HexToHash("0xabc")}
	s.service = New(s.transferrer, Config{
		Options: map[string]int64{"default": 1, "gold": 42},
		Amount:  1,
	}, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) TestDeliverSendsConfiguredToken() {
	delivery, err := s.service.Deliver(s.ctx, wallet, "gold")
	s.Require().NoError(err)

	s.Equal(common.HexToHash("0xabc").Hex(), delivery.TxHash)
	s.Equal(int64(42), delivery.TokenID)
	s.Require().Len(s.transferrer.calls, 1)
	call := s.transferrer.calls[0]
	s.Equal(common.HexToAddress(wallet), call.to)
	s.Equal(int64(42), call.tokenID.Int64())
	s.Equal(int64(1), call.amount.Int64())
}

func (s *ServiceSuite) TestDeliverRejectsInvalidWallet() {
	for _, w := range []string{"", "0x123", "not-a-wallet"} {
		_, err := s.service.Deliver(s.ctx, w, "default")
		s.ErrorIs(err, ErrInvalidWallet, w)
	}
	s.Empty(s.transferrer.calls)
}

func (s *ServiceSuite) TestDeliverRejectsUnknownOption() {
	_, err := s.service.Deliver(s.ctx, wallet, "platinum")
	s.ErrorIs(err, ErrUnknownDeliverOption)
	s.Empty(s.transferrer.calls)
}

func (s *ServiceSuite) TestDeliverSurfacesTransferFailure() {
	s.transferrer.err = errors.New("insufficient funds")

	_, err := s.service.Deliver(s.ctx, wallet, "default")
	s.ErrorIs(err, ErrTransferFailed)
	s.Contains(err.Error(), "insufficient funds")
}

func (s *ServiceSuite) TestDeliverDisabledWithoutTransferrer() {
	service := New(nil, Config{Options: map[string]int64{"default": 1}}, testutil.NopLogger())

	_, err := service.Deliver(s.ctx, wallet, "default")
	s.ErrorIs(err, ErrDeliveryDisabled)
}
