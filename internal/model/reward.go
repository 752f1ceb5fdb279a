package model

import "time"

// RewardID identifies a catalog reward
type RewardID string

// Reward is a catalog entry for an on-chain reward
type Reward struct {
	ID              RewardID
	TokenID         string
	Blockchain      string
	ContractAddress string
	Name            string
	Type            string
	ImageURL        string
	IsActive        bool
	CreatedAt       time.Time
}

// PlayerRewardID identifies a reward grant
type PlayerRewardID string

// PlayerReward records that a player was granted a reward. Append-only.
type PlayerReward struct {
	ID        PlayerRewardID
	PlayerID  PlayerID
	RewardID  RewardID
	CreatedAt time.Time
}
