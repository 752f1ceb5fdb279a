package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/numengames/numinia-core/internal/model"
	"github.com/numengames/numinia-core/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// Records are copied on the way in and out so callers never share state
// with the store.
type Storage struct {
	mu sync.RWMutex

	players       map[model.PlayerID]model.Player
	externalIndex map[externalKey]model.PlayerID
	walletIndex   map[string]model.PlayerID

	sessions map[model.SessionID]model.Session

	games       map[model.GameID]model.Game
	gameByName  map[string]model.GameID
	scores      map[model.GameID][]model.GameScore
	rewards     map[model.RewardID]model.Reward
	rewardOrder []model.RewardID
	grants      map[model.PlayerID][]model.PlayerReward
}

type externalKey struct {
	field model.ExternalIDField
	id    string
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players:       make(map[model.PlayerID]model.Player),
		externalIndex: make(map[externalKey]model.PlayerID),
		walletIndex:   make(map[string]model.PlayerID),
		sessions:      make(map[model.SessionID]model.Session),
		games:         make(map[model.GameID]model.Game),
		gameByName:    make(map[string]model.GameID),
		scores:        make(map[model.GameID][]model.GameScore),
		rewards:       make(map[model.RewardID]model.Reward),
		grants:        make(map[model.PlayerID][]model.PlayerReward),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) Ping(ctx context.Context) error { return nil }

func (s *Storage) Close() error { return nil }

// Player operations

func (s *Storage) CreatePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := playerExternalKeys(player)
	for _, k := range keys {
		if _, taken := s.externalIndex[k]; taken {
			return model.ErrPlayerExists
		}
	}
	if player.WalletAddress != "" {
		if _, taken := s.walletIndex[player.WalletAddress]; taken {
			return model.ErrPlayerExists
		}
	}
	if _, taken := s.players[player.ID]; taken {
		return model.ErrPlayerExists
	}

	s.players[player.ID] = *player
	for _, k := range keys {
		s.externalIndex[k] = player.ID
	}
	if player.WalletAddress != "" {
		s.walletIndex[player.WalletAddress] = player.ID
	}
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getPlayerLocked(id)
}

func (s *Storage) FindPlayerByExternalID(ctx context.Context, field model.ExternalIDField, externalID string) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.externalIndex[externalKey{field, externalID}]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return s.getPlayerLocked(id)
}

func (s *Storage) FindPlayerByWallet(ctx context.Context, wallet string) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.walletIndex[wallet]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return s.getPlayerLocked(id)
}

func (s *Storage) PlayerExistsByWallet(ctx context.Context, wallet string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.walletIndex[wallet]
	return ok, nil
}

func (s *Storage) getPlayerLocked(id model.PlayerID) (*model.Player, error) {
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return &player, nil
}

func playerExternalKeys(p *model.Player) []externalKey {
	var keys []externalKey
	for _, field := range []model.ExternalIDField{model.FieldOncyberID, model.FieldHyperfyID} {
		if id := p.ExternalID(field); id != "" {
			keys = append(keys, externalKey{field, id})
		}
	}
	return keys
}

// Session operations

func (s *Storage) CreateSession(ctx context.Context, session *model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = copySession(*session)
	return nil
}

func (s *Storage) GetSession(ctx context.Context, id model.SessionID) (*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	out := copySession(session)
	return &out, nil
}

func (s *Storage) EndSession(ctx context.Context, id model.SessionID, endAt time.Time) (*model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	session.EndAt = &endAt
	s.sessions[id] = session
	out := copySession(session)
	return &out, nil
}

func copySession(in model.Session) model.Session {
	if in.PlayerID != nil {
		pid := *in.PlayerID
		in.PlayerID = &pid
	}
	if in.EndAt != nil {
		end := *in.EndAt
		in.EndAt = &end
	}
	return in
}

// Game and score operations

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.gameByName[game.Name]; ok && existing != game.ID {
		return model.ErrGameExists
	}
	if old, ok := s.games[game.ID]; ok && old.Name != game.Name {
		delete(s.gameByName, old.Name)
	}
	s.games[game.ID] = *game
	s.gameByName[game.Name] = game.ID
	return nil
}

func (s *Storage) GetGameByName(ctx context.Context, name string) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.gameByName[name]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	game := s.games[id]
	return &game, nil
}

func (s *Storage) AppendGameScore(ctx context.Context, score *model.GameScore) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := *score
	if rec.PlayerID != nil {
		pid := *rec.PlayerID
		rec.PlayerID = &pid
	}
	s.scores[score.GameID] = append(s.scores[score.GameID], rec)
	return nil
}

func (s *Storage) ListGameScores(ctx context.Context, gameID model.GameID) ([]*model.GameScore, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := s.scores[gameID]
	out := make([]*model.GameScore, len(records))
	for i := range records {
		rec := records[i]
		out[i] = &rec
	}
	return out, nil
}

// Reward operations

func (s *Storage) SaveReward(ctx context.Context, reward *model.Reward) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rewards[reward.ID]; !ok {
		s.rewardOrder = append(s.rewardOrder, reward.ID)
	}
	s.rewards[reward.ID] = *reward
	return nil
}

func (s *Storage) GetReward(ctx context.Context, id model.RewardID) (*model.Reward, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	reward, ok := s.rewards[id]
	if !ok {
		return nil, model.ErrRewardNotFound
	}
	return &reward, nil
}

func (s *Storage) ListRewards(ctx context.Context) ([]*model.Reward, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.Reward, 0, len(s.rewardOrder))
	for _, id := range s.rewardOrder {
		reward := s.rewards[id]
		out = append(out, &reward)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Storage) AppendPlayerReward(ctx context.Context, pr *model.PlayerReward) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.grants[pr.PlayerID] = append(s.grants[pr.PlayerID], *pr)
	return nil
}

func (s *Storage) ListPlayerRewards(ctx context.Context, playerID model.PlayerID) ([]*model.PlayerReward, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := s.grants[playerID]
	out := make([]*model.PlayerReward, len(records))
	for i := range records {
		rec := records[i]
		out[i] = &rec
	}
	return out, nil
}
