package cli

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientDoDecodesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.Header.Get("X-API-Key"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error":{"code":"INVALID_REQUEST","message":"score is required"}}`))
	}))
	defer srv.Close()

	err := NewClient(srv.URL+"/", "secret").Post("/api/v1/score", map[string]any{}, nil)
	require.Error(t, err)
	assert.Equal(t, "score is required (INVALID_REQUEST)", err.Error())
}

func TestClientProbeKeepsDegradedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"status":"degraded"}`))
	}))
	defer srv.Close()

	var result HealthResult
	status, err := NewClient(srv.URL, "").Probe("/api/v1/monit/health", &result)
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "degraded", result.Status)
}

func TestHealthCommandFailsWhenDegraded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"status":"degraded"}`))
	}))
	defer srv.Close()

	root := NewRootCmd()
	root.SetArgs([]string{"health", "--server", srv.URL, "-o", "json"})

	var err error
	got := captureStdout(t, func() { err = root.Execute() })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "degraded")
	assert.JSONEq(t, `{"status":"degraded"}`, got)
}
