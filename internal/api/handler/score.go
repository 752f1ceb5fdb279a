package handler

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/numengames/numinia-core/internal/api/request"
	"github.com/numengames/numinia-core/internal/api/response"
	"github.com/numengames/numinia-core/internal/services/score"
)

// ScoreHandler handles score and game catalog endpoints
type ScoreHandler struct {
	scores *score.Service
}

// NewScoreHandler creates a new score handler
func NewScoreHandler(scores *score.Service) *ScoreHandler {
	return &ScoreHandler{
		scores: scores,
	}
}

// Submit handles POST /api/v1/score
func (h *ScoreHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req request.SubmitScoreRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		WriteError(w, NewInvalidRequestError(`"name" is required`))
		return
	}
	if req.Score == nil {
		WriteError(w, NewInvalidRequestError(`"score" is required`))
		return
	}
	if req.Timer == nil {
		WriteError(w, NewInvalidRequestError(`"timer" is required`))
		return
	}

	record, err := h.scores.SubmitScore(r.Context(), name, strings.TrimSpace(req.WalletID), *req.Score, *req.Timer)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.ScoreFromModel(record))
}

// List handles GET /api/v1/score/{name}
func (h *ScoreHandler) List(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(mux.Vars(r)["name"])

	scores, err := h.scores.ListScores(r.Context(), name)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.List(w, http.StatusOK, response.ScoresFromModel(scores))
}

// CreateGame handles POST /api/v1/score/game
func (h *ScoreHandler) CreateGame(w http.ResponseWriter, r *http.Request) {
	var req request.CreateGameRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		WriteError(w, NewInvalidRequestError(`"name" is required`))
		return
	}
	if req.Difficulty < 0 || req.AverageTime < 0 {
		WriteError(w, NewInvalidRequestError(`"difficulty" and "averageTime" must not be negative`))
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	game, err := h.scores.CreateGame(r.Context(), score.CreateGameParams{
		Name:        req.Name,
		Origin:      strings.TrimSpace(req.Origin),
		Mode:        strings.TrimSpace(req.Mode),
		Difficulty:  req.Difficulty,
		AverageTime: req.AverageTime,
		IsActive:    isActive,
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.GameFromModel(game))
}
