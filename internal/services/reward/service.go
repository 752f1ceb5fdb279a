package reward

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/numengames/numinia-core/internal/dependencies/clock"
	"github.com/numengames/numinia-core/internal/dependencies/idgen"
	"github.com/numengames/numinia-core/internal/model"
	"github.com/numengames/numinia-core/internal/storage"
)

// CreateRewardParams is a catalog entry to add
type CreateRewardParams struct {
	TokenID         string
	Blockchain      string
	ContractAddress string
	Name            string
	Type            string
	ImageURL        string
	IsActive        bool
}

// PlayerRewardView is a grant with its catalog entry populated.
// Reward is nil when the catalog entry no longer exists.
type PlayerRewardView struct {
	ID        model.PlayerRewardID
	PlayerID  model.PlayerID
	RewardID  model.RewardID
	Reward    *model.Reward
	CreatedAt time.Time
}

// Service manages the reward catalog and grants
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	ids     idgen.Generator
	logger  *slog.Logger
}

// New creates a new reward Service
func New(storage storage.Storage, clock clock.Clock, ids idgen.Generator, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		ids:     ids,
		logger:  logger.With(slog.String("component", "reward")),
	}
}

// ListRewards returns the catalog
func (s *Service) ListRewards(ctx context.Context) ([]*model.Reward, error) {
	return s.storage.ListRewards(ctx)
}

// CreateReward adds a catalog entry
func (s *Service) CreateReward(ctx context.Context, params CreateRewardParams) (*model.Reward, error) {
	reward := &model.Reward{
		ID:              model.RewardID(s.ids.NewID()),
		TokenID:         params.TokenID,
		Blockchain:      params.Blockchain,
		ContractAddress: params.ContractAddress,
		Name:            params.Name,
		Type:            params.Type,
		ImageURL:        params.ImageURL,
		IsActive:        params.IsActive,
		CreatedAt:       s.clock.Now(),
	}
	if err := s.storage.SaveReward(ctx, reward); err != nil {
		return nil, err
	}

	s.logger.Info("reward created",
		slog.String("reward_id", string(reward.ID)),
		slog.String("name", reward.Name),
	)
	return reward, nil
}

// InsertPlayerReward records a grant. Neither id is checked for existence
// and the same reward may be granted more than once.
func (s *Service) InsertPlayerReward(ctx context.Context, playerID model.PlayerID, rewardID model.RewardID) (*model.PlayerReward, error) {
	grant := &model.PlayerReward{
		ID:        model.PlayerRewardID(s.ids.NewID()),
		PlayerID:  playerID,
		RewardID:  rewardID,
		CreatedAt: s.clock.Now(),
	}
	if err := s.storage.AppendPlayerReward(ctx, grant); err != nil {
		s.logger.Error("failed to grant reward",
			slog.String("player_id", string(playerID)),
			slog.String("reward_id", string(rewardID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Info("reward granted",
		slog.String("player_id", string(playerID)),
		slog.String("reward_id", string(rewardID)),
	)
	return grant, nil
}

// GetRewardsByPlayerID returns a player's grants, oldest first, each with
// its catalog entry.
func (s *Service) GetRewardsByPlayerID(ctx context.Context, playerID model.PlayerID) ([]PlayerRewardView, error) {
	grants, err := s.storage.ListPlayerRewards(ctx, playerID)
	if err != nil {
		return nil, err
	}

	cache := make(map[model.RewardID]*model.Reward)
	views := make([]PlayerRewardView, 0, len(grants))
	for _, g := range grants {
		reward, seen := cache[g.RewardID]
		if !seen {
			reward, err = s.storage.GetReward(ctx, g.RewardID)
			if err != nil {
				if !errors.Is(err, model.ErrRewardNotFound) {
					return nil, err
				}
				reward = nil
			}
			cache[g.RewardID] = reward
		}
		views = append(views, PlayerRewardView{
			ID:        g.ID,
			PlayerID:  g.PlayerID,
			RewardID:  g.RewardID,
			Reward:    reward,
			CreatedAt: g.CreatedAt,
		})
	}
	return views, nil
}
