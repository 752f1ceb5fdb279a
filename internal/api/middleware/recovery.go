package middleware

import (
	"log/slog"
	"net/http"

	"github.com/numengames/numinia-core/internal/api/apierr"
	"github.com/numengames/numinia-core/internal/middleware"
)

// Recovery turns handler panics into a JSON INTERNAL_ERROR and drops the
// keep-alive connection the panicking handler was using.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, func(w http.ResponseWriter, _ *http.Request, _ any) {
		w.Header().Set("Connection", "close")
		apierr.WriteError(w, apierr.NewInternalError())
	})
}

// Logging logs one line per API request
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Logging(logger)
}
