package factory

import (
	"context"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/suite"

	"github.com/numengames/numinia-core/internal/model"
	"github.com/numengames/numinia-core/internal/services/reward"
	"github.com/numengames/numinia-core/internal/services/score"
	"github.com/numengames/numinia-core/internal/services/session"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestAppWith(TestOptions{DeliverOptions: map[string]int64{"default": 1, "badge": 7}})
	s.ctx = context.Background()
}

// Test: a visitor arrives from oncyber, plays a game and collects a reward
func (s *IntegrationSuite) TestPlayerJourney() {
	s.app.MockIDs.Queue("player-1", "session-1", "game-1", "score-1", "reward-1", "grant-1")

	// Step 1: the player is unknown, then created from the platform
	found, err := s.app.PlayerService.GetPlayerInfo(s.ctx, model.PlatformOncyber, "oc-42")
	s.Require().NoError(err)
	s.Nil(found)

	p, err := s.app.PlayerService.CreateFromExternalPlatform(s.ctx, model.PlatformOncyber, "oc-42", "  Ada ")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("player-1"), p.ID)
	s.Equal("Ada", p.Name)

	// Step 2: a session opens and closes
	pid := p.ID
	sid, err := s.app.SessionService.Start(s.ctx, session.StartParams{
		Platform:  "oncyber",
		SpaceName: "lobby",
		PlayerID:  &pid,
	})
	s.Require().NoError(err)
	s.Equal(model.SessionID("session-1"), sid)

	s.app.MockClock.Advance(5 * time.Minute)
	s.Require().NoError(s.app.SessionService.End(s.ctx, sid))

	stored, err := s.app.Storage.GetSession(s.ctx, sid)
	s.Require().NoError(err)
	s.Require().NotNil(stored.EndAt)
	s.Equal(5*time.Minute, stored.EndAt.Sub(stored.StartAt))
	s.False(stored.IsAnonymous)

	// Step 3: the game catalog gains an entry and a score is posted
	_, err = s.app.ScoreService.CreateGame(s.ctx, score.CreateGameParams{Name: "maze", IsActive: true})
	s.Require().NoError(err)

	record, err := s.app.ScoreService.SubmitScore(s.ctx, "maze", "", 120, 33.5)
	s.Require().NoError(err)
	s.Nil(record.PlayerID)

	scores, err := s.app.ScoreService.ListScores(s.ctx, "maze")
	s.Require().NoError(err)
	s.Len(scores, 1)

	// Step 4: a reward is granted and visible on the player
	rw, err := s.app.RewardService.CreateReward(s.ctx, reward.CreateRewardParams{
		TokenID:         "7",
		Blockchain:      "optimism",
		ContractAddress: "0x0000000000000000000000000000000000000001",
		Name:            "Badge",
		IsActive:        true,
	})
	s.Require().NoError(err)

	_, err = s.app.RewardService.InsertPlayerReward(s.ctx, p.ID, rw.ID)
	s.Require().NoError(err)

	views, err := s.app.RewardService.GetRewardsByPlayerID(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Require().Len(views, 1)
	s.Require().NotNil(views[0].Reward)
	s.Equal("Badge", views[0].Reward.Name)

	// Step 5: the reward token is delivered on chain
	wallet := "0x00000000000000000000000000000000000000aa"
	delivery, err := s.app.AssetService.Deliver(s.ctx, wallet, "badge")
	s.Require().NoError(err)
	s.NotEmpty(delivery.TxHash)

	calls := s.app.Transfers.Calls()
	s.Require().Len(calls, 1)
	s.Equal(common.HexToAddress(wallet), calls[0].To)
	s.Equal(int64(7), calls[0].TokenID)
	s.Equal(int64(1), calls[0].Amount)
}

// Test: a score posted with a wallet is attributed to the wallet's player
func (s *IntegrationSuite) TestScoreAttributedToWalletPlayer() {
	s.app.MockIDs.Queue("player-1")
	wallet := "0x00000000000000000000000000000000000000bb"

	s.Require().NoError(s.app.PlayerService.CreateWithWalletIfNotExists(s.ctx, wallet, "Grace"))
	s.Require().NoError(s.app.PlayerService.CreateWithWalletIfNotExists(s.ctx, wallet, "Grace again"))

	_, err := s.app.ScoreService.CreateGame(s.ctx, score.CreateGameParams{Name: "race", IsActive: true})
	s.Require().NoError(err)

	record, err := s.app.ScoreService.SubmitScore(s.ctx, "race", wallet, 10, 1.5)
	s.Require().NoError(err)
	s.Require().NotNil(record.PlayerID)
	s.Equal(model.PlayerID("player-1"), *record.PlayerID)
}

// Test: creating the same external player twice is a conflict
func (s *IntegrationSuite) TestDuplicateExternalPlayer() {
	_, err := s.app.PlayerService.CreateFromExternalPlatform(s.ctx, model.PlatformHyperfy, "hf-1", "Linus")
	s.Require().NoError(err)

	_, err = s.app.PlayerService.CreateFromExternalPlatform(s.ctx, model.PlatformHyperfy, "hf-1", "Linus")
	s.ErrorIs(err, model.ErrPlayerExists)

	var exists *model.PlayerExistsError
	s.Require().ErrorAs(err, &exists)
	s.Equal("hf-1", exists.ExternalID)
}

func (s *IntegrationSuite) TestNewRejectsUnknownStorage() {
	_, err := New(s.ctx, Config{StorageType: "mongo"})
	s.Error(err)
}

func (s *IntegrationSuite) TestNewDefaultsToMemory() {
	app, err := New(s.ctx, Config{})
	s.Require().NoError(err)
	defer func() { s.NoError(app.Close()) }()

	s.NoError(app.Storage.Ping(s.ctx))
	_, err = app.AssetService.Deliver(s.ctx, "0x00000000000000000000000000000000000000aa", "default")
	s.Error(err)
}
