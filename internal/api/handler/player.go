package handler

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/numengames/numinia-core/internal/api/request"
	"github.com/numengames/numinia-core/internal/api/response"
	"github.com/numengames/numinia-core/internal/model"
	"github.com/numengames/numinia-core/internal/services/player"
)

// PlayerHandler handles player-related endpoints
type PlayerHandler struct {
	players *player.Service
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(players *player.Service) *PlayerHandler {
	return &PlayerHandler{
		players: players,
	}
}

// GetInfo handles GET /api/v1/player/{platform}/{id}
func (h *PlayerHandler) GetInfo(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	platform, err := model.ParsePlatform(vars["platform"])
	if err != nil {
		WriteError(w, NewInvalidRequestError(`"platform" must be one of [oncyber, hyperfy, substrata]`))
		return
	}
	id := strings.TrimSpace(vars["id"])
	if id == "" {
		WriteError(w, NewInvalidRequestError(`"id" is required`))
		return
	}

	p, err := h.players.GetPlayerInfo(r.Context(), platform, id)
	if err != nil {
		WriteError(w, err)
		return
	}
	if p == nil {
		response.JSON(w, http.StatusOK, response.PlayerResponse{Message: "Player not found"})
		return
	}

	info := response.PlayerInfoFromModel(p)
	response.JSON(w, http.StatusOK, response.PlayerResponse{Player: &info})
}

// CreateExternal handles POST /api/v1/player/external
func (h *PlayerHandler) CreateExternal(w http.ResponseWriter, r *http.Request) {
	var req request.CreateExternalPlayerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	id := strings.TrimSpace(req.ID)
	name := strings.TrimSpace(req.PlayerName)
	if id == "" {
		WriteError(w, NewInvalidRequestError(`"id" is required`))
		return
	}
	if strings.TrimSpace(req.Platform) == "" {
		WriteError(w, NewInvalidRequestError(`"platform" is required`))
		return
	}
	if name == "" {
		WriteError(w, NewInvalidRequestError(`"playerName" is required`))
		return
	}
	platform, err := model.ParsePlatform(req.Platform)
	if err != nil {
		WriteError(w, err)
		return
	}

	p, err := h.players.CreateFromExternalPlatform(r.Context(), platform, id, name)
	if err != nil {
		WriteError(w, err)
		return
	}

	info := response.PlayerInfoFromModel(p)
	response.JSON(w, http.StatusCreated, response.PlayerResponse{Player: &info})
}

// CreateWithWallet handles POST /api/v1/player/create
func (h *PlayerHandler) CreateWithWallet(w http.ResponseWriter, r *http.Request) {
	var req request.CreateWalletPlayerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	wallet := strings.TrimSpace(req.WalletID)
	name := strings.TrimSpace(req.UserName)
	if wallet == "" {
		WriteError(w, NewInvalidRequestError(`"walletId" is required`))
		return
	}
	if name == "" {
		WriteError(w, NewInvalidRequestError(`"userName" is required`))
		return
	}

	if err := h.players.CreateWithWalletIfNotExists(r.Context(), wallet, name); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}
