package handler

import (
	"net/http"
	"strings"

	"github.com/numengames/numinia-core/internal/api/request"
	"github.com/numengames/numinia-core/internal/api/response"
	"github.com/numengames/numinia-core/internal/dependencies/idgen"
	"github.com/numengames/numinia-core/internal/model"
	"github.com/numengames/numinia-core/internal/services/session"
)

// SessionHandler handles play session endpoints
type SessionHandler struct {
	sessions *session.Service
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessions *session.Service) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
	}
}

// Start handles POST /api/v1/player-session/start
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req request.StartSessionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	params := session.StartParams{
		Platform:  strings.TrimSpace(req.Platform),
		SpaceName: strings.TrimSpace(req.SpaceName),
		UserAgent: strings.TrimSpace(req.UserAgent),
	}
	if params.Platform == "" {
		WriteError(w, NewInvalidRequestError(`"platform" is required`))
		return
	}
	if params.SpaceName == "" {
		WriteError(w, NewInvalidRequestError(`"spaceName" is required`))
		return
	}
	if pid := strings.TrimSpace(req.PlayerID); pid != "" {
		if !idgen.Valid(pid) {
			WriteError(w, NewInvalidRequestError(`"playerId" is not a valid id`))
			return
		}
		playerID := model.PlayerID(pid)
		params.PlayerID = &playerID
	}

	id, err := h.sessions.Start(r.Context(), params)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.SessionStarted{SessionID: string(id)})
}

// End handles POST /api/v1/player-session/end
func (h *SessionHandler) End(w http.ResponseWriter, r *http.Request) {
	var req request.EndSessionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	id := strings.TrimSpace(req.SessionID)
	if id == "" {
		WriteError(w, NewInvalidRequestError(`"sessionId" is required`))
		return
	}
	if !idgen.Valid(id) {
		WriteError(w, NewInvalidRequestError(`"sessionId" is not a valid id`))
		return
	}

	if err := h.sessions.End(r.Context(), model.SessionID(id)); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}
