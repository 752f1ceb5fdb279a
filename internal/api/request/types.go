package request

// CreateExternalPlayerRequest is the request body for creating a player from
// an external platform
type CreateExternalPlayerRequest struct {
	ID         string `json:"id"`
	Platform   string `json:"platform"`
	PlayerName string `json:"playerName"`
}

// CreateWalletPlayerRequest is the request body for creating a wallet player
type CreateWalletPlayerRequest struct {
	WalletID string `json:"walletId"`
	UserName string `json:"userName"`
}

// StartSessionRequest is the request body for starting a play session
type StartSessionRequest struct {
	Platform  string `json:"platform"`
	SpaceName string `json:"spaceName"`
	UserAgent string `json:"userAgent,omitempty"`
	PlayerID  string `json:"playerId,omitempty"`
}

// EndSessionRequest is the request body for ending a play session
type EndSessionRequest struct {
	SessionID string `json:"sessionId"`
}

// SubmitScoreRequest is the request body for recording a score
type SubmitScoreRequest struct {
	Name     string   `json:"name"`
	Score    *float64 `json:"score"`
	Timer    *float64 `json:"timer"`
	WalletID string   `json:"walletId,omitempty"`
}

// CreateGameRequest is the request body for adding a catalog game
type CreateGameRequest struct {
	Name        string `json:"name"`
	Origin      string `json:"origin,omitempty"`
	Mode        string `json:"mode,omitempty"`
	Difficulty  int    `json:"difficulty,omitempty"`
	AverageTime int    `json:"averageTime,omitempty"`
	IsActive    *bool  `json:"isActive,omitempty"`
}

// CreateRewardRequest is the request body for adding a catalog reward
type CreateRewardRequest struct {
	TokenID         string `json:"tokenId"`
	Blockchain      string `json:"blockchain"`
	ContractAddress string `json:"contractAddress"`
	Name            string `json:"name"`
	Type            string `json:"type,omitempty"`
	ImageURL        string `json:"imageUrl,omitempty"`
	IsActive        *bool  `json:"isActive,omitempty"`
}

// GrantRewardRequest is the request body for granting a reward to a player
type GrantRewardRequest struct {
	RewardID string `json:"rewardId"`
}

// DeliverAssetRequest is the request body for delivering an on-chain asset
type DeliverAssetRequest struct {
	WalletID      string `json:"walletId"`
	DeliverOption string `json:"deliverOption"`
}

// DiscordWebhookRequest is the request body for the discord relay endpoints.
// Text is required by the chat endpoint only.
type DiscordWebhookRequest struct {
	SpaceName string   `json:"spaceName"`
	SpaceURL  string   `json:"spaceUrl"`
	Season    *float64 `json:"season"`
	UserName  string   `json:"userName,omitempty"`
	WalletID  string   `json:"walletId,omitempty"`
	Text      string   `json:"text,omitempty"`
}
