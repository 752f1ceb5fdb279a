package player

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/numengames/numinia-core/internal/dependencies/mocks"
	"github.com/numengames/numinia-core/internal/model"
	"github.com/numengames/numinia-core/internal/storage/memory"
	"github.com/numengames/numinia-core/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	ids     *mocks.MockIDGenerator
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.ids = mocks.NewMockIDGenerator()
	s.service = New(s.storage, s.clock, s.ids, testutil.NopLogger())
	s.ctx = context.Background()
}

// FindByPlatformID tests

func (s *ServiceSuite) TestFindByPlatformIDAbsentReturnsNil() {
	for _, platform := range model.Platforms() {
		player, err := s.service.FindByPlatformID(s.ctx, platform, "nobody")
		s.Require().NoError(err, platform.String())
		s.Nil(player, platform.String())
	}
}

func (s *ServiceSuite) TestFindByPlatformIDUsesPlatformField() {
	s.ids.Queue("p-1")
	_, err := s.service.CreateFromExternalPlatform(s.ctx, model.PlatformOncyber, "abc-123", "Alice")
	s.Require().NoError(err)

	player, err := s.service.FindByPlatformID(s.ctx, model.PlatformOncyber, "abc-123")
	s.Require().NoError(err)
	s.Require().NotNil(player)
	s.Equal(model.PlayerID("p-1"), player.ID)

	// same id under another platform is a different player
	player, err = s.service.FindByPlatformID(s.ctx, model.PlatformHyperfy, "abc-123")
	s.Require().NoError(err)
	s.Nil(player)
}

func (s *ServiceSuite) TestFindByPlatformIDSubstrataUsesInternalID() {
	s.ids.Queue("p-1")
	_, err := s.service.CreateFromExternalPlatform(s.ctx, model.PlatformHyperfy, "hf-1", "Alice")
	s.Require().NoError(err)

	player, err := s.service.FindByPlatformID(s.ctx, model.PlatformSubstrata, "p-1")
	s.Require().NoError(err)
	s.Require().NotNil(player)
	s.Equal("hf-1", player.HyperfyID)
}

func (s *ServiceSuite) TestFindByPlatformIDInvalidPlatform() {
	_, err := s.service.FindByPlatformID(s.ctx, model.Platform(0), "x")
	s.ErrorIs(err, model.ErrInvalidPlatform)
}

// CreateFromExternalPlatform tests

func (s *ServiceSuite) TestCreateFromExternalPlatformSetsFields() {
	s.ids.Queue("p-1")
	player, err := s.service.CreateFromExternalPlatform(s.ctx, model.PlatformOncyber, "abc-123", "  Alice  ")
	s.Require().NoError(err)

	s.Equal(model.PlayerID("p-1"), player.ID)
	s.Equal("abc-123", player.OncyberID)
	s.Empty(player.HyperfyID)
	s.Equal("Alice", player.Name)
	s.True(player.IsActive)
	s.False(player.IsBlocked)
	s.Equal(s.clock.Now(), player.LastConnectionAt)

	stored, err := s.storage.GetPlayer(s.ctx, "p-1")
	s.Require().NoError(err)
	s.Equal("abc-123", stored.OncyberID)
}

func (s *ServiceSuite) TestCreateFromExternalPlatformConflict() {
	_, err := s.service.CreateFromExternalPlatform(s.ctx, model.PlatformOncyber, "abc-123", "Alice")
	s.Require().NoError(err)

	_, err = s.service.CreateFromExternalPlatform(s.ctx, model.PlatformOncyber, "abc-123", "Bob")
	s.Require().Error(err)
	s.ErrorIs(err, model.ErrPlayerExists)

	var exists *model.PlayerExistsError
	s.Require().True(errors.As(err, &exists))
	s.Equal(model.PlatformOncyber, exists.Platform)
	s.Equal("abc-123", exists.ExternalID)
	s.Contains(err.Error(), "abc-123")
	s.Contains(err.Error(), "oncyber")
}

func (s *ServiceSuite) TestCreateFromExternalPlatformSameIDOtherPlatform() {
	_, err := s.service.CreateFromExternalPlatform(s.ctx, model.PlatformOncyber, "shared", "Alice")
	s.Require().NoError(err)

	player, err := s.service.CreateFromExternalPlatform(s.ctx, model.PlatformHyperfy, "shared", "Alice")
	s.Require().NoError(err)
	s.Equal("shared", player.HyperfyID)
}

func (s *ServiceSuite) TestCreateFromExternalPlatformSubstrataRejected() {
	_, err := s.service.CreateFromExternalPlatform(s.ctx, model.PlatformSubstrata, "whatever", "Alice")
	s.ErrorIs(err, model.ErrInvalidPlatform)
}

// Wallet tests

func (s *ServiceSuite) TestCreateWithWalletIfNotExistsIsIdempotent() {
	wallet := "0x1234567890abcdef1234567890abcdef12345678"

	s.Require().NoError(s.service.CreateWithWalletIfNotExists(s.ctx, wallet, "Alice"))
	s.Require().NoError(s.service.CreateWithWalletIfNotExists(s.ctx, wallet, "Renamed"))

	player, err := s.service.FindByWallet(s.ctx, wallet)
	s.Require().NoError(err)
	s.Require().NotNil(player)
	s.Equal("Alice", player.Name)
}

func (s *ServiceSuite) TestFindByWalletAbsent() {
	player, err := s.service.FindByWallet(s.ctx, "0xnobody")
	s.Require().NoError(err)
	s.Nil(player)
}

func (s *ServiceSuite) TestWalletPlayersAreSeparateFromPlatformPlayers() {
	s.Require().NoError(s.service.CreateWithWalletIfNotExists(s.ctx, "0xabc", "Alice"))

	player, err := s.service.FindByPlatformID(s.ctx, model.PlatformOncyber, "0xabc")
	s.Require().NoError(err)
	s.Nil(player)
}

// staleIndexStore misses existing players on the pre-create lookups, so the
// duplicate only surfaces from CreatePlayer.
type staleIndexStore struct {
	*memory.Storage
}

func (staleIndexStore) FindPlayerByExternalID(context.Context, model.ExternalIDField, string) (*model.Player, error) {
	return nil, model.ErrPlayerNotFound
}

func (staleIndexStore) PlayerExistsByWallet(context.Context, string) (bool, error) {
	return false, nil
}

func (s *ServiceSuite) TestCreateFromExternalPlatformLostRaceIsTypedConflict() {
	service := New(staleIndexStore{s.storage}, s.clock, s.ids, testutil.NopLogger())

	s.ids.Queue("p-1", "p-2")
	_, err := service.CreateFromExternalPlatform(s.ctx, model.PlatformOncyber, "abc-123", "Alice")
	s.Require().NoError(err)

	_, err = service.CreateFromExternalPlatform(s.ctx, model.PlatformOncyber, "abc-123", "Alice again")
	var exists *model.PlayerExistsError
	s.Require().ErrorAs(err, &exists)
	s.Equal(model.PlatformOncyber, exists.Platform)
	s.Equal("abc-123", exists.ExternalID)
}

func (s *ServiceSuite) TestCreateWithWalletLostRaceIsNoop() {
	service := New(staleIndexStore{s.storage}, s.clock, s.ids, testutil.NopLogger())

	s.ids.Queue("p-1", "p-2")
	s.Require().NoError(service.CreateWithWalletIfNotExists(s.ctx, "0xabc", "Alice"))
	s.Require().NoError(service.CreateWithWalletIfNotExists(s.ctx, "0xabc", "Bob"))

	player, err := s.service.FindByWallet(s.ctx, "0xabc")
	s.Require().NoError(err)
	s.Require().NotNil(player)
	s.Equal(model.PlayerID("p-1"), player.ID)
	s.Equal("Alice", player.Name)
}
