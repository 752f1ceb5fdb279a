package storage

import (
	"context"
	"time"

	"github.com/numengames/numinia-core/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Ping checks the backend is reachable
	Ping(ctx context.Context) error
	Close() error

	// Player operations
	CreatePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	FindPlayerByExternalID(ctx context.Context, field model.ExternalIDField, externalID string) (*model.Player, error)
	FindPlayerByWallet(ctx context.Context, wallet string) (*model.Player, error)
	PlayerExistsByWallet(ctx context.Context, wallet string) (bool, error)

	// Session operations
	CreateSession(ctx context.Context, session *model.Session) error
	GetSession(ctx context.Context, id model.SessionID) (*model.Session, error)
	EndSession(ctx context.Context, id model.SessionID, endAt time.Time) (*model.Session, error)

	// Game and score operations
	SaveGame(ctx context.Context, game *model.Game) error
	GetGameByName(ctx context.Context, name string) (*model.Game, error)
	AppendGameScore(ctx context.Context, score *model.GameScore) error
	ListGameScores(ctx context.Context, gameID model.GameID) ([]*model.GameScore, error)

	// Reward operations
	SaveReward(ctx context.Context, reward *model.Reward) error
	GetReward(ctx context.Context, id model.RewardID) (*model.Reward, error)
	ListRewards(ctx context.Context) ([]*model.Reward, error)
	AppendPlayerReward(ctx context.Context, pr *model.PlayerReward) error
	ListPlayerRewards(ctx context.Context, playerID model.PlayerID) ([]*model.PlayerReward, error)
}
