package score

import (
	"context"
	"log/slog"
	"strings"

	"github.com/numengames/numinia-core/internal/dependencies/clock"
	"github.com/numengames/numinia-core/internal/dependencies/idgen"
	"github.com/numengames/numinia-core/internal/model"
	"github.com/numengames/numinia-core/internal/storage"
)

// PlayerFinder resolves wallet-keyed players
type PlayerFinder interface {
	FindByWallet(ctx context.Context, walletAddress string) (*model.Player, error)
}

// SetScoreParams is a score to record against a game
type SetScoreParams struct {
	GameID   model.GameID
	PlayerID *model.PlayerID
	Score    float64
	Timer    float64
}

// CreateGameParams is a catalog entry to add
type CreateGameParams struct {
	Name        string
	Origin      string
	Mode        string
	Difficulty  int
	AverageTime int
	IsActive    bool
}

// Service records game scores
type Service struct {
	storage storage.Storage
	players PlayerFinder
	clock   clock.Clock
	ids     idgen.Generator
	logger  *slog.Logger
}

// New creates a new score Service
func New(storage storage.Storage, players PlayerFinder, clock clock.Clock, ids idgen.Generator, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		players: players,
		clock:   clock,
		ids:     ids,
		logger:  logger.With(slog.String("component", "score")),
	}
}

// GetGameByName returns the game with exactly this name
func (s *Service) GetGameByName(ctx context.Context, name string) (*model.Game, error) {
	return s.storage.GetGameByName(ctx, name)
}

// SetScore appends a score record. Scores are never deduplicated.
func (s *Service) SetScore(ctx context.Context, params SetScoreParams) (*model.GameScore, error) {
	record := &model.GameScore{
		ID:        model.GameScoreID(s.ids.NewID()),
		GameID:    params.GameID,
		Score:     params.Score,
		Timer:     params.Timer,
		CreatedAt: s.clock.Now(),
	}
	if params.PlayerID != nil {
		pid := *params.PlayerID
		record.PlayerID = &pid
	}

	if err := s.storage.AppendGameScore(ctx, record); err != nil {
		s.logger.Error("failed to save score",
			slog.String("game_id", string(params.GameID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}
	return record, nil
}

// SubmitScore records a score for the named game. The wallet, when given and
// owned by a player, attaches the score to that player; otherwise the score
// is anonymous.
func (s *Service) SubmitScore(ctx context.Context, gameName, walletID string, score, timer float64) (*model.GameScore, error) {
	game, err := s.storage.GetGameByName(ctx, gameName)
	if err != nil {
		return nil, err
	}

	params := SetScoreParams{GameID: game.ID, Score: score, Timer: timer}
	if walletID != "" {
		player, err := s.players.FindByWallet(ctx, walletID)
		if err != nil {
			return nil, err
		}
		if player != nil {
			params.PlayerID = &player.ID
		}
	}

	record, err := s.SetScore(ctx, params)
	if err != nil {
		return nil, err
	}

	s.logger.Info("score recorded",
		slog.String("game", game.Name),
		slog.Float64("score", score),
		slog.Bool("anonymous", record.PlayerID == nil),
	)
	return record, nil
}

// CreateGame adds a catalog game. Names are unique.
func (s *Service) CreateGame(ctx context.Context, params CreateGameParams) (*model.Game, error) {
	game := &model.Game{
		ID:          model.GameID(s.ids.NewID()),
		Name:        strings.TrimSpace(params.Name),
		Origin:      params.Origin,
		Mode:        params.Mode,
		Difficulty:  params.Difficulty,
		AverageTime: params.AverageTime,
		IsActive:    params.IsActive,
		CreatedAt:   s.clock.Now(),
	}
	if err := s.storage.SaveGame(ctx, game); err != nil {
		return nil, err
	}

	s.logger.Info("game created",
		slog.String("game_id", string(game.ID)),
		slog.String("name", game.Name),
	)
	return game, nil
}

// ListScores returns the named game's scores, oldest first
func (s *Service) ListScores(ctx context.Context, gameName string) ([]*model.GameScore, error) {
	game, err := s.storage.GetGameByName(ctx, gameName)
	if err != nil {
		return nil, err
	}
	return s.storage.ListGameScores(ctx, game.ID)
}
