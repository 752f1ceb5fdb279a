package handler

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/numengames/numinia-core/internal/api/request"
	"github.com/numengames/numinia-core/internal/api/response"
	"github.com/numengames/numinia-core/internal/dependencies/idgen"
	"github.com/numengames/numinia-core/internal/model"
	"github.com/numengames/numinia-core/internal/services/reward"
)

// RewardHandler handles reward catalog and grant endpoints
type RewardHandler struct {
	rewards *reward.Service
}

// NewRewardHandler creates a new reward handler
func NewRewardHandler(rewards *reward.Service) *RewardHandler {
	return &RewardHandler{
		rewards: rewards,
	}
}

// List handles GET /api/v1/reward/list
func (h *RewardHandler) List(w http.ResponseWriter, r *http.Request) {
	rewards, err := h.rewards.ListRewards(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.List(w, http.StatusOK, response.RewardsFromModel(rewards))
}

// Create handles POST /api/v1/reward
func (h *RewardHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateRewardRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	params := reward.CreateRewardParams{
		TokenID:         strings.TrimSpace(req.TokenID),
		Blockchain:      strings.TrimSpace(req.Blockchain),
		ContractAddress: strings.TrimSpace(req.ContractAddress),
		Name:            strings.TrimSpace(req.Name),
		Type:            strings.TrimSpace(req.Type),
		ImageURL:        strings.TrimSpace(req.ImageURL),
		IsActive:        true,
	}
	if req.IsActive != nil {
		params.IsActive = *req.IsActive
	}
	switch {
	case params.TokenID == "":
		WriteError(w, NewInvalidRequestError(`"tokenId" is required`))
		return
	case params.Blockchain == "":
		WriteError(w, NewInvalidRequestError(`"blockchain" is required`))
		return
	case params.ContractAddress == "":
		WriteError(w, NewInvalidRequestError(`"contractAddress" is required`))
		return
	case params.Name == "":
		WriteError(w, NewInvalidRequestError(`"name" is required`))
		return
	}

	created, err := h.rewards.CreateReward(r.Context(), params)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.RewardFromModel(created))
}

// GetByPlayer handles GET /api/v1/reward/{playerId}
func (h *RewardHandler) GetByPlayer(w http.ResponseWriter, r *http.Request) {
	playerID, ok := playerIDParam(w, r)
	if !ok {
		return
	}

	views, err := h.rewards.GetRewardsByPlayerID(r.Context(), playerID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.List(w, http.StatusOK, response.PlayerRewardsFromViews(views))
}

// Grant handles POST /api/v1/reward/{playerId}
func (h *RewardHandler) Grant(w http.ResponseWriter, r *http.Request) {
	playerID, ok := playerIDParam(w, r)
	if !ok {
		return
	}

	var req request.GrantRewardRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}
	rewardID := strings.TrimSpace(req.RewardID)
	if rewardID == "" {
		WriteError(w, NewInvalidRequestError(`"rewardId" is required`))
		return
	}
	if !idgen.Valid(rewardID) {
		WriteError(w, NewInvalidRequestError(`"rewardId" is not a valid id`))
		return
	}

	grant, err := h.rewards.InsertPlayerReward(r.Context(), playerID, model.RewardID(rewardID))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.GrantFromModel(grant))
}

func playerIDParam(w http.ResponseWriter, r *http.Request) (model.PlayerID, bool) {
	id := strings.TrimSpace(mux.Vars(r)["playerId"])
	if !idgen.Valid(id) {
		WriteError(w, NewInvalidRequestError(`"playerId" is not a valid id`))
		return "", false
	}
	return model.PlayerID(id), true
}
