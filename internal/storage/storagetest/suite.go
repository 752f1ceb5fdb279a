// Package storagetest holds the behaviour every storage backend must share.
// Backends run it from their own tests with a constructor for a fresh, empty
// store.
package storagetest

import (
	"context"
	"fmt"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/numengames/numinia-core/internal/model"
	"github.com/numengames/numinia-core/internal/storage"
)

// Suite exercises a storage.Storage implementation
type Suite struct {
	suite.Suite

	// NewStorage returns an empty store. It is called before every test.
	NewStorage func() storage.Storage

	Store storage.Storage
	Ctx   context.Context
}

var baseTime = time.Date(2024, 3, 14, 15, 9, 26, 535_000_000, time.UTC)

func (s *Suite) SetupTest() {
	s.Require().NotNil(s.NewStorage, "NewStorage must be set")
	s.Store = s.NewStorage()
	s.Ctx = context.Background()
}

func (s *Suite) TearDownTest() {
	if s.Store != nil {
		_ = s.Store.Close()
	}
}

func (s *Suite) TestPing() {
	s.NoError(s.Store.Ping(s.Ctx))
}

// Player tests

func (s *Suite) TestCreateAndGetPlayer() {
	player := &model.Player{
		ID:               "8a4c6f0e-0000-4000-8000-000000000001",
		OncyberID:        "oncyber-1",
		Name:             "Alice",
		IsActive:         true,
		LastConnectionAt: baseTime,
		CreatedAt:        baseTime,
	}
	s.Require().NoError(s.Store.CreatePlayer(s.Ctx, player))

	got, err := s.Store.GetPlayer(s.Ctx, player.ID)
	s.Require().NoError(err)
	s.Equal(player.ID, got.ID)
	s.Equal("oncyber-1", got.OncyberID)
	s.Empty(got.HyperfyID)
	s.Empty(got.WalletAddress)
	s.Equal("Alice", got.Name)
	s.True(got.IsActive)
	s.False(got.IsBlocked)
	s.True(baseTime.Equal(got.CreatedAt))
	s.True(baseTime.Equal(got.LastConnectionAt))
}

func (s *Suite) TestGetPlayerNotFound() {
	_, err := s.Store.GetPlayer(s.Ctx, "missing")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *Suite) TestFindPlayerByExternalID() {
	s.Require().NoError(s.Store.CreatePlayer(s.Ctx, &model.Player{
		ID: "p-oncyber", OncyberID: "shared-id", CreatedAt: baseTime,
	}))
	s.Require().NoError(s.Store.CreatePlayer(s.Ctx, &model.Player{
		ID: "p-hyperfy", HyperfyID: "shared-id", CreatedAt: baseTime,
	}))

	got, err := s.Store.FindPlayerByExternalID(s.Ctx, model.FieldOncyberID, "shared-id")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("p-oncyber"), got.ID)

	got, err = s.Store.FindPlayerByExternalID(s.Ctx, model.FieldHyperfyID, "shared-id")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("p-hyperfy"), got.ID)

	_, err = s.Store.FindPlayerByExternalID(s.Ctx, model.FieldHyperfyID, "other")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *Suite) TestCreatePlayerDuplicateExternalID() {
	s.Require().NoError(s.Store.CreatePlayer(s.Ctx, &model.Player{
		ID: "p-1", OncyberID: "dup", CreatedAt: baseTime,
	}))

	err := s.Store.CreatePlayer(s.Ctx, &model.Player{
		ID: "p-2", OncyberID: "dup", CreatedAt: baseTime,
	})
	s.ErrorIs(err, model.ErrPlayerExists)

	_, err = s.Store.GetPlayer(s.Ctx, "p-2")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *Suite) TestWalletPlayers() {
	exists, err := s.Store.PlayerExistsByWallet(s.Ctx, "0xabc")
	s.Require().NoError(err)
	s.False(exists)

	s.Require().NoError(s.Store.CreatePlayer(s.Ctx, &model.Player{
		ID: "p-wallet", WalletAddress: "0xabc", Name: "Bob", CreatedAt: baseTime,
	}))

	exists, err = s.Store.PlayerExistsByWallet(s.Ctx, "0xabc")
	s.Require().NoError(err)
	s.True(exists)

	got, err := s.Store.FindPlayerByWallet(s.Ctx, "0xabc")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("p-wallet"), got.ID)
	s.Equal("Bob", got.Name)

	err = s.Store.CreatePlayer(s.Ctx, &model.Player{
		ID: "p-wallet-2", WalletAddress: "0xabc", CreatedAt: baseTime,
	})
	s.ErrorIs(err, model.ErrPlayerExists)

	_, err = s.Store.FindPlayerByWallet(s.Ctx, "0xdef")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *Suite) TestPlayersWithoutIdentityDoNotCollide() {
	s.Require().NoError(s.Store.CreatePlayer(s.Ctx, &model.Player{ID: "p-a", CreatedAt: baseTime}))
	s.Require().NoError(s.Store.CreatePlayer(s.Ctx, &model.Player{ID: "p-b", CreatedAt: baseTime}))
}

// Session tests

func (s *Suite) TestSessionLifecycle() {
	pid := model.PlayerID("p-1")
	session := &model.Session{
		ID:        "s-1",
		PlayerID:  &pid,
		Platform:  "desktop",
		UserAgent: "Mozilla/5.0",
		SpaceName: "lobby",
		StartAt:   baseTime,
	}
	s.Require().NoError(s.Store.CreateSession(s.Ctx, session))

	got, err := s.Store.GetSession(s.Ctx, "s-1")
	s.Require().NoError(err)
	s.Require().NotNil(got.PlayerID)
	s.Equal(pid, *got.PlayerID)
	s.False(got.IsAnonymous)
	s.Equal("desktop", got.Platform)
	s.Equal("Mozilla/5.0", got.UserAgent)
	s.Equal("lobby", got.SpaceName)
	s.True(baseTime.Equal(got.StartAt))
	s.Nil(got.EndAt)

	endAt := baseTime.Add(90 * time.Second)
	ended, err := s.Store.EndSession(s.Ctx, "s-1", endAt)
	s.Require().NoError(err)
	s.Require().NotNil(ended.EndAt)
	s.True(endAt.Equal(*ended.EndAt))

	got, err = s.Store.GetSession(s.Ctx, "s-1")
	s.Require().NoError(err)
	s.Require().NotNil(got.EndAt)
	s.True(endAt.Equal(*got.EndAt))
}

func (s *Suite) TestEndSessionTwiceOverwritesEndTime() {
	s.Require().NoError(s.Store.CreateSession(s.Ctx, &model.Session{
		ID: "s-1", IsAnonymous: true, StartAt: baseTime,
	}))

	_, err := s.Store.EndSession(s.Ctx, "s-1", baseTime.Add(time.Minute))
	s.Require().NoError(err)
	later := baseTime.Add(2 * time.Minute)
	ended, err := s.Store.EndSession(s.Ctx, "s-1", later)
	s.Require().NoError(err)
	s.True(later.Equal(*ended.EndAt))
}

func (s *Suite) TestAnonymousSession() {
	s.Require().NoError(s.Store.CreateSession(s.Ctx, &model.Session{
		ID: "s-anon", IsAnonymous: true, StartAt: baseTime,
	}))

	got, err := s.Store.GetSession(s.Ctx, "s-anon")
	s.Require().NoError(err)
	s.True(got.IsAnonymous)
	s.Nil(got.PlayerID)
}

func (s *Suite) TestSessionNotFound() {
	_, err := s.Store.GetSession(s.Ctx, "missing")
	s.ErrorIs(err, model.ErrSessionNotFound)

	_, err = s.Store.EndSession(s.Ctx, "missing", baseTime)
	s.ErrorIs(err, model.ErrSessionNotFound)
}

// Game and score tests

func (s *Suite) TestSaveAndGetGameByName() {
	game := &model.Game{
		ID:          "g-1",
		Name:        "maze",
		Origin:      "oncyber",
		Mode:        "solo",
		Difficulty:  3,
		AverageTime: 120,
		IsActive:    true,
		CreatedAt:   baseTime,
	}
	s.Require().NoError(s.Store.SaveGame(s.Ctx, game))

	got, err := s.Store.GetGameByName(s.Ctx, "maze")
	s.Require().NoError(err)
	s.Equal(game.ID, got.ID)
	s.Equal("oncyber", got.Origin)
	s.Equal("solo", got.Mode)
	s.Equal(3, got.Difficulty)
	s.Equal(120, got.AverageTime)
	s.True(got.IsActive)

	_, err = s.Store.GetGameByName(s.Ctx, "unknown")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *Suite) TestSaveGameDuplicateName() {
	s.Require().NoError(s.Store.SaveGame(s.Ctx, &model.Game{ID: "g-1", Name: "maze", CreatedAt: baseTime}))

	err := s.Store.SaveGame(s.Ctx, &model.Game{ID: "g-2", Name: "maze", CreatedAt: baseTime})
	s.ErrorIs(err, model.ErrGameExists)

	got, err := s.Store.GetGameByName(s.Ctx, "maze")
	s.Require().NoError(err)
	s.Equal(model.GameID("g-1"), got.ID)
}

func (s *Suite) TestGameScores() {
	s.Require().NoError(s.Store.SaveGame(s.Ctx, &model.Game{ID: "g-1", Name: "maze", CreatedAt: baseTime}))
	s.Require().NoError(s.Store.SaveGame(s.Ctx, &model.Game{ID: "g-2", Name: "race", CreatedAt: baseTime}))

	pid := model.PlayerID("p-1")
	for i := 0; i < 3; i++ {
		s.Require().NoError(s.Store.AppendGameScore(s.Ctx, &model.GameScore{
			ID:        model.GameScoreID(fmt.Sprintf("sc-%d", i)),
			GameID:    "g-1",
			PlayerID:  &pid,
			Score:     float64(10 * (i + 1)),
			Timer:     12.5,
			CreatedAt: baseTime.Add(time.Duration(i) * time.Second),
		}))
	}
	s.Require().NoError(s.Store.AppendGameScore(s.Ctx, &model.GameScore{
		ID: "sc-anon", GameID: "g-2", Score: 1, CreatedAt: baseTime,
	}))

	scores, err := s.Store.ListGameScores(s.Ctx, "g-1")
	s.Require().NoError(err)
	s.Require().Len(scores, 3)
	for i, sc := range scores {
		s.Equal(model.GameScoreID(fmt.Sprintf("sc-%d", i)), sc.ID)
		s.Equal(float64(10*(i+1)), sc.Score)
		s.Equal(12.5, sc.Timer)
		s.Require().NotNil(sc.PlayerID)
		s.Equal(pid, *sc.PlayerID)
	}

	scores, err = s.Store.ListGameScores(s.Ctx, "g-2")
	s.Require().NoError(err)
	s.Require().Len(scores, 1)
	s.Nil(scores[0].PlayerID)

	scores, err = s.Store.ListGameScores(s.Ctx, "g-none")
	s.Require().NoError(err)
	s.Empty(scores)
}

// Reward tests

func (s *Suite) TestRewards() {
	rewards, err := s.Store.ListRewards(s.Ctx)
	s.Require().NoError(err)
	s.Empty(rewards)

	first := &model.Reward{
		ID:              "r-1",
		TokenID:         "7",
		Blockchain:      "optimism",
		ContractAddress: "0x1111111111111111111111111111111111111111",
		Name:            "Badge",
		Type:            "badge",
		ImageURL:        "https://example.com/badge.png",
		IsActive:        true,
		CreatedAt:       baseTime,
	}
	second := &model.Reward{ID: "r-2", Name: "Cape", CreatedAt: baseTime.Add(time.Second)}
	s.Require().NoError(s.Store.SaveReward(s.Ctx, first))
	s.Require().NoError(s.Store.SaveReward(s.Ctx, second))

	got, err := s.Store.GetReward(s.Ctx, "r-1")
	s.Require().NoError(err)
	s.Equal("7", got.TokenID)
	s.Equal("optimism", got.Blockchain)
	s.Equal(first.ContractAddress, got.ContractAddress)
	s.Equal("Badge", got.Name)
	s.Equal("badge", got.Type)
	s.Equal(first.ImageURL, got.ImageURL)
	s.True(got.IsActive)

	rewards, err = s.Store.ListRewards(s.Ctx)
	s.Require().NoError(err)
	s.Require().Len(rewards, 2)
	s.Equal(model.RewardID("r-1"), rewards[0].ID)
	s.Equal(model.RewardID("r-2"), rewards[1].ID)

	_, err = s.Store.GetReward(s.Ctx, "missing")
	s.ErrorIs(err, model.ErrRewardNotFound)
}

func (s *Suite) TestPlayerRewards() {
	for i, rid := range []model.RewardID{"r-1", "r-2", "r-1"} {
		s.Require().NoError(s.Store.AppendPlayerReward(s.Ctx, &model.PlayerReward{
			ID:        model.PlayerRewardID(fmt.Sprintf("pr-%d", i)),
			PlayerID:  "p-1",
			RewardID:  rid,
			CreatedAt: baseTime.Add(time.Duration(i) * time.Second),
		}))
	}

	grants, err := s.Store.ListPlayerRewards(s.Ctx, "p-1")
	s.Require().NoError(err)
	s.Require().Len(grants, 3)
	s.Equal(model.RewardID("r-1"), grants[0].RewardID)
	s.Equal(model.RewardID("r-2"), grants[1].RewardID)
	s.Equal(model.RewardID("r-1"), grants[2].RewardID)

	grants, err = s.Store.ListPlayerRewards(s.Ctx, "p-2")
	s.Require().NoError(err)
	s.Empty(grants)
}
