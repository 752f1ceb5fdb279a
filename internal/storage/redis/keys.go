package redis

import (
	"fmt"

	"github.com/numengames/numinia-core/internal/model"
)

// Key prefix for all numinia data
const keyPrefix = "numinia"

func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// externalIDIndexKey maps a platform external id to a player id
func externalIDIndexKey(field model.ExternalIDField, externalID string) string {
	return fmt.Sprintf("%s:idx:player:%s:%s", keyPrefix, field, externalID)
}

// walletIndexKey maps a wallet address to a player id
func walletIndexKey(wallet string) string {
	return fmt.Sprintf("%s:idx:player:wallet:%s", keyPrefix, wallet)
}

func sessionKey(id model.SessionID) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, id)
}

func gameKey(id model.GameID) string {
	return fmt.Sprintf("%s:game:%s", keyPrefix, id)
}

// gameNameIndexKey maps a game name to its id
func gameNameIndexKey(name string) string {
	return fmt.Sprintf("%s:idx:game:name:%s", keyPrefix, name)
}

// gameScoresKey is the LIST of score records for a game, oldest first
func gameScoresKey(id model.GameID) string {
	return fmt.Sprintf("%s:game_scores:%s", keyPrefix, id)
}

func rewardKey(id model.RewardID) string {
	return fmt.Sprintf("%s:reward:%s", keyPrefix, id)
}

// rewardsIndexKey is the LIST of reward ids in insertion order
func rewardsIndexKey() string {
	return fmt.Sprintf("%s:idx:rewards", keyPrefix)
}

// playerRewardsKey is the LIST of reward grants for a player, oldest first
func playerRewardsKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player_rewards:%s", keyPrefix, id)
}
