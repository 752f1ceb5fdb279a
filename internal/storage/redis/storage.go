package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/numengames/numinia-core/internal/model"
	"github.com/numengames/numinia-core/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// Records are stored as JSON documents; uniqueness is enforced with SETNX
// index keys.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) CreatePlayer(ctx context.Context, player *model.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}

	var indexKeys []string
	for _, field := range []model.ExternalIDField{model.FieldOncyberID, model.FieldHyperfyID} {
		if id := player.ExternalID(field); id != "" {
			indexKeys = append(indexKeys, externalIDIndexKey(field, id))
		}
	}
	if player.WalletAddress != "" {
		indexKeys = append(indexKeys, walletIndexKey(player.WalletAddress))
	}

	docKey := playerKey(player.ID)
	watched := make([]string, 0, len(indexKeys)+1)
	watched = append(watched, indexKeys...)
	watched = append(watched, docKey)

	// The index keys and the document are written in one MULTI; a concurrent
	// write to any of them aborts it.
	err = s.client.Watch(ctx, func(tx *redis.Tx) error {
		n, err := tx.Exists(ctx, watched...).Result()
		if err != nil {
			return err
		}
		if n > 0 {
			return model.ErrPlayerExists
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			for _, key := range indexKeys {
				pipe.Set(ctx, key, string(player.ID), 0)
			}
			pipe.Set(ctx, docKey, data, 0)
			return nil
		})
		return err
	}, watched...)
	if errors.Is(err, redis.TxFailedErr) {
		return model.ErrPlayerExists
	}
	return err
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	var player model.Player
	if err := s.getJSON(ctx, playerKey(id), &player, model.ErrPlayerNotFound); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *Storage) FindPlayerByExternalID(ctx context.Context, field model.ExternalIDField, externalID string) (*model.Player, error) {
	return s.playerByIndex(ctx, externalIDIndexKey(field, externalID))
}

func (s *Storage) FindPlayerByWallet(ctx context.Context, wallet string) (*model.Player, error) {
	return s.playerByIndex(ctx, walletIndexKey(wallet))
}

func (s *Storage) PlayerExistsByWallet(ctx context.Context, wallet string) (bool, error) {
	n, err := s.client.Exists(ctx, walletIndexKey(wallet)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Storage) playerByIndex(ctx context.Context, indexKey string) (*model.Player, error) {
	id, err := s.client.Get(ctx, indexKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}
	return s.GetPlayer(ctx, model.PlayerID(id))
}

// Session operations

func (s *Storage) CreateSession(ctx context.Context, session *model.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKey(session.ID), data, 0).Err()
}

func (s *Storage) GetSession(ctx context.Context, id model.SessionID) (*model.Session, error) {
	var session model.Session
	if err := s.getJSON(ctx, sessionKey(id), &session, model.ErrSessionNotFound); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *Storage) EndSession(ctx context.Context, id model.SessionID, endAt time.Time) (*model.Session, error) {
	key := sessionKey(id)
	var ended *model.Session

	// Optimistic update so a concurrent end does not lose the document
	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		var session model.Session
		if err := getJSONWith(ctx, tx, key, &session, model.ErrSessionNotFound); err != nil {
			return err
		}
		session.EndAt = &endAt
		data, err := json.Marshal(&session)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			return nil
		})
		if err == nil {
			ended = &session
		}
		return err
	}, key)
	if err != nil {
		return nil, err
	}
	return ended, nil
}

// Game and score operations

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	data, err := json.Marshal(game)
	if err != nil {
		return err
	}

	nameKey := gameNameIndexKey(game.Name)
	err = s.client.Watch(ctx, func(tx *redis.Tx) error {
		owner, err := tx.Get(ctx, nameKey).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if err == nil && model.GameID(owner) != game.ID {
			return model.ErrGameExists
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, nameKey, string(game.ID), 0)
			pipe.Set(ctx, gameKey(game.ID), data, 0)
			return nil
		})
		return err
	}, nameKey)
	if errors.Is(err, redis.TxFailedErr) {
		return model.ErrGameExists
	}
	return err
}

func (s *Storage) GetGameByName(ctx context.Context, name string) (*model.Game, error) {
	id, err := s.client.Get(ctx, gameNameIndexKey(name)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrGameNotFound
		}
		return nil, err
	}

	var game model.Game
	if err := s.getJSON(ctx, gameKey(model.GameID(id)), &game, model.ErrGameNotFound); err != nil {
		return nil, err
	}
	return &game, nil
}

func (s *Storage) AppendGameScore(ctx context.Context, score *model.GameScore) error {
	data, err := json.Marshal(score)
	if err != nil {
		return err
	}
	return s.client.RPush(ctx, gameScoresKey(score.GameID), data).Err()
}

func (s *Storage) ListGameScores(ctx context.Context, gameID model.GameID) ([]*model.GameScore, error) {
	return listJSON[model.GameScore](ctx, s.client, gameScoresKey(gameID))
}

// Reward operations

func (s *Storage) SaveReward(ctx context.Context, reward *model.Reward) error {
	data, err := json.Marshal(reward)
	if err != nil {
		return err
	}

	created, err := s.client.SetNX(ctx, rewardKey(reward.ID), data, 0).Result()
	if err != nil {
		return err
	}
	if created {
		return s.client.RPush(ctx, rewardsIndexKey(), string(reward.ID)).Err()
	}
	return s.client.Set(ctx, rewardKey(reward.ID), data, 0).Err()
}

func (s *Storage) GetReward(ctx context.Context, id model.RewardID) (*model.Reward, error) {
	var reward model.Reward
	if err := s.getJSON(ctx, rewardKey(id), &reward, model.ErrRewardNotFound); err != nil {
		return nil, err
	}
	return &reward, nil
}

func (s *Storage) ListRewards(ctx context.Context) ([]*model.Reward, error) {
	ids, err := s.client.LRange(ctx, rewardsIndexKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*model.Reward{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = rewardKey(model.RewardID(id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	rewards := make([]*model.Reward, 0, len(values))
	for _, v := range values {
		str, ok := v.(string)
		if !ok {
			continue
		}
		var reward model.Reward
		if err := json.Unmarshal([]byte(str), &reward); err != nil {
			return nil, err
		}
		rewards = append(rewards, &reward)
	}
	return rewards, nil
}

func (s *Storage) AppendPlayerReward(ctx context.Context, pr *model.PlayerReward) error {
	data, err := json.Marshal(pr)
	if err != nil {
		return err
	}
	return s.client.RPush(ctx, playerRewardsKey(pr.PlayerID), data).Err()
}

func (s *Storage) ListPlayerRewards(ctx context.Context, playerID model.PlayerID) ([]*model.PlayerReward, error) {
	return listJSON[model.PlayerReward](ctx, s.client, playerRewardsKey(playerID))
}

// helpers

func (s *Storage) getJSON(ctx context.Context, key string, dst any, notFound error) error {
	return getJSONWith(ctx, s.client, key, dst, notFound)
}

func getJSONWith(ctx context.Context, c redis.Cmdable, key string, dst any, notFound error) error {
	data, err := c.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return notFound
		}
		return err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func listJSON[T any](ctx context.Context, c redis.Cmdable, key string) ([]*T, error) {
	items, err := c.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]*T, 0, len(items))
	for _, item := range items {
		var v T
		if err := json.Unmarshal([]byte(item), &v); err != nil {
			return nil, fmt.Errorf("decode %s: %w", key, err)
		}
		out = append(out, &v)
	}
	return out, nil
}
