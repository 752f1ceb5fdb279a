package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/numengames/numinia-core/internal/model"
	"github.com/numengames/numinia-core/internal/services/asset"
	"github.com/numengames/numinia-core/internal/services/discord"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeInvalidPlatform    = "INVALID_PLATFORM"
	CodeInvalidWallet      = "INVALID_WALLET"
	CodeUnknownDeliver     = "UNKNOWN_DELIVER_OPTION"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodePlayerNotFound     = "PLAYER_NOT_FOUND"
	CodePlayerExists       = "PLAYER_EXISTS"
	CodeSessionNotFound    = "SESSION_NOT_FOUND"
	CodeGameNotFound       = "GAME_NOT_FOUND"
	CodeGameExists         = "GAME_EXISTS"
	CodeRewardNotFound     = "REWARD_NOT_FOUND"
	CodeNotFound           = "NOT_FOUND"
	CodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
	CodeUpstreamError      = "UPSTREAM_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// causeRecorder is implemented by the request-logging response writer
type causeRecorder interface {
	RecordError(err error)
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	var own *httpError
	if rec, ok := w.(causeRecorder); ok && he.status >= http.StatusInternalServerError && !errors.As(err, &own) {
		rec.RecordError(err)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// Status returns the HTTP status an error maps to
func Status(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	var exists *model.PlayerExistsError
	if errors.As(err, &exists) {
		return &httpError{http.StatusConflict, APIError{CodePlayerExists, exists.Error()}}
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrInvalidPlatform):
		return &httpError{http.StatusUnprocessableEntity, APIError{CodeInvalidPlatform, err.Error()}}
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrPlayerExists):
		return &httpError{http.StatusConflict, APIError{CodePlayerExists, "Player already exists"}}
	case errors.Is(err, model.ErrSessionNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeSessionNotFound, "Session not found"}}
	case errors.Is(err, model.ErrGameNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeGameNotFound, "Game not found"}}
	case errors.Is(err, model.ErrGameExists):
		return &httpError{http.StatusConflict, APIError{CodeGameExists, "A game with this name already exists"}}
	case errors.Is(err, model.ErrRewardNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeRewardNotFound, "Reward not found"}}

	// Map asset delivery errors
	case errors.Is(err, asset.ErrInvalidWallet):
		return &httpError{http.StatusUnprocessableEntity, APIError{CodeInvalidWallet, "walletId must be a hex address"}}
	case errors.Is(err, asset.ErrUnknownDeliverOption):
		return &httpError{http.StatusUnprocessableEntity, APIError{CodeUnknownDeliver, "deliverOption is not configured"}}
	case errors.Is(err, asset.ErrTransferFailed):
		return &httpError{http.StatusBadGateway, APIError{CodeUpstreamError, "Asset transfer failed"}}
	case errors.Is(err, asset.ErrDeliveryDisabled):
		return &httpError{http.StatusServiceUnavailable, APIError{CodeServiceUnavailable, "Asset delivery is not configured"}}

	// Map notification errors
	case errors.Is(err, discord.ErrNotificationFailed):
		return &httpError{http.StatusBadGateway, APIError{CodeUpstreamError, "Discord notification failed"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates a validation error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusUnprocessableEntity, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewNotFoundError creates an error for unmatched routes
func NewNotFoundError() error {
	return &httpError{http.StatusNotFound, APIError{CodeNotFound, "Not found"}}
}

// NewMethodNotAllowedError creates an error for a route hit with the wrong method
func NewMethodNotAllowedError() error {
	return &httpError{http.StatusMethodNotAllowed, APIError{CodeMethodNotAllowed, "Method not allowed"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
