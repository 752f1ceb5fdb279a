package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/numengames/numinia-core/internal/testutil"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAPIKey(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	tests := []struct {
		name   string
		hash   string
		setup  func(r *http.Request)
		status int
	}{
		{
			name:   "header key",
			hash:   string(hash),
			setup:  func(r *http.Request) { r.Header.Set(APIKeyHeader, "s3cret") },
			status: http.StatusNoContent,
		},
		{
			name:   "bearer key",
			hash:   string(hash),
			setup:  func(r *http.Request) { r.Header.Set("Authorization", "Bearer s3cret") },
			status: http.StatusNoContent,
		},
		{
			name:   "wrong key",
			hash:   string(hash),
			setup:  func(r *http.Request) { r.Header.Set(APIKeyHeader, "nope") },
			status: http.StatusUnauthorized,
		},
		{
			name:   "missing key",
			hash:   string(hash),
			setup:  func(*http.Request) {},
			status: http.StatusUnauthorized,
		},
		{
			name:   "no hash configured",
			hash:   "",
			setup:  func(r *http.Request) { r.Header.Set(APIKeyHeader, "s3cret") },
			status: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			tt.setup(req)
			rec := httptest.NewRecorder()

			APIKey(tt.hash)(okHandler()).ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestRecoveryAnswersJSON(t *testing.T) {
	panicking := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})
	rec := httptest.NewRecorder()

	Recovery(testutil.NopLogger())(panicking).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "INTERNAL_ERROR")
	assert.Equal(t, "close", rec.Header().Get("Connection"))
}
