package response

import (
	"time"

	"github.com/numengames/numinia-core/internal/model"
	"github.com/numengames/numinia-core/internal/services/reward"
)

// PlayerInfo is the public view of a player
type PlayerInfo struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
}

// PlayerInfoFromModel converts a model.Player
func PlayerInfoFromModel(p *model.Player) PlayerInfo {
	return PlayerInfo{
		PlayerID:   string(p.ID),
		PlayerName: p.Name,
	}
}

// PlayerResponse wraps a player lookup. Player is null and Message is set
// when nobody matched.
type PlayerResponse struct {
	Player  *PlayerInfo `json:"player"`
	Message string      `json:"message,omitempty"`
}

// SessionStarted is the response for a started session
type SessionStarted struct {
	SessionID string `json:"sessionId"`
}

// Score represents a score record
type Score struct {
	ID        string    `json:"id"`
	GameID    string    `json:"gameId"`
	PlayerID  *string   `json:"playerId"`
	Score     float64   `json:"score"`
	Timer     float64   `json:"timer"`
	CreatedAt time.Time `json:"createdAt"`
}

// ScoreFromModel converts a model.GameScore
func ScoreFromModel(s *model.GameScore) Score {
	var playerID *string
	if s.PlayerID != nil {
		pid := string(*s.PlayerID)
		playerID = &pid
	}
	return Score{
		ID:        string(s.ID),
		GameID:    string(s.GameID),
		PlayerID:  playerID,
		Score:     s.Score,
		Timer:     s.Timer,
		CreatedAt: s.CreatedAt,
	}
}

// ScoresFromModel converts a slice of model.GameScore
func ScoresFromModel(scores []*model.GameScore) []Score {
	return mapSlice(scores, ScoreFromModel)
}

// Game represents a catalog game
type Game struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Origin      string    `json:"origin,omitempty"`
	Mode        string    `json:"mode,omitempty"`
	Difficulty  int       `json:"difficulty"`
	AverageTime int       `json:"averageTime"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

// GameFromModel converts a model.Game
func GameFromModel(g *model.Game) Game {
	return Game{
		ID:          string(g.ID),
		Name:        g.Name,
		Origin:      g.Origin,
		Mode:        g.Mode,
		Difficulty:  g.Difficulty,
		AverageTime: g.AverageTime,
		IsActive:    g.IsActive,
		CreatedAt:   g.CreatedAt,
	}
}

// Reward represents a catalog reward
type Reward struct {
	ID              string `json:"id"`
	TokenID         string `json:"tokenId"`
	Blockchain      string `json:"blockchain"`
	ContractAddress string `json:"contractAddress"`
	Name            string `json:"name"`
	Type            string `json:"type"`
	ImageURL        string `json:"imageUrl"`
	IsActive        bool   `json:"isActive"`
}

// RewardFromModel converts a model.Reward
func RewardFromModel(r *model.Reward) Reward {
	return Reward{
		ID:              string(r.ID),
		TokenID:         r.TokenID,
		Blockchain:      r.Blockchain,
		ContractAddress: r.ContractAddress,
		Name:            r.Name,
		Type:            r.Type,
		ImageURL:        r.ImageURL,
		IsActive:        r.IsActive,
	}
}

// RewardsFromModel converts a slice of model.Reward
func RewardsFromModel(rewards []*model.Reward) []Reward {
	return mapSlice(rewards, RewardFromModel)
}

// PlayerReward is a grant with its catalog entry
type PlayerReward struct {
	ID        string    `json:"id"`
	PlayerID  string    `json:"playerId"`
	RewardID  string    `json:"rewardId"`
	Reward    *Reward   `json:"reward"`
	CreatedAt time.Time `json:"createdAt"`
}

// PlayerRewardsFromViews converts reward service views
func PlayerRewardsFromViews(views []reward.PlayerRewardView) []PlayerReward {
	out := make([]PlayerReward, len(views))
	for i, v := range views {
		var r *Reward
		if v.Reward != nil {
			converted := RewardFromModel(v.Reward)
			r = &converted
		}
		out[i] = PlayerReward{
			ID:        string(v.ID),
			PlayerID:  string(v.PlayerID),
			RewardID:  string(v.RewardID),
			Reward:    r,
			CreatedAt: v.CreatedAt,
		}
	}
	return out
}

// Grant is the response for a granted reward
type Grant struct {
	ID       string `json:"id"`
	PlayerID string `json:"playerId"`
	RewardID string `json:"rewardId"`
}

// GrantFromModel converts a model.PlayerReward
func GrantFromModel(pr *model.PlayerReward) Grant {
	return Grant{
		ID:       string(pr.ID),
		PlayerID: string(pr.PlayerID),
		RewardID: string(pr.RewardID),
	}
}

// Delivery is the response for a delivered asset
type Delivery struct {
	TxHash string `json:"txHash"`
}

// Health is the monitoring response
type Health struct {
	Status string `json:"status"`
}
