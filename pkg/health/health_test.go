package health

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func probe(t *testing.T, endpoint http.HandlerFunc) (int, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	endpoint(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestReadyEndpoint_GatedOnReadyFlag(t *testing.T) {
	s := New()

	code, body := probe(t, s.ReadyEndpoint)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "unavailable", body["status"])

	s.SetReady(true)
	code, body = probe(t, s.ReadyEndpoint)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])
}

func TestReadyEndpoint_FailingCheck(t *testing.T) {
	s := New()
	s.SetReady(true)
	s.AddReadinessCheck("db", time.Second, func(context.Context) error {
		return errors.New("connection refused")
	})

	code, body := probe(t, s.ReadyEndpoint)

	assert.Equal(t, http.StatusServiceUnavailable, code)
	checks := body["checks"].(map[string]any)
	assert.Equal(t, "connection refused", checks["db"])
}

func TestLiveEndpoint_IgnoresReadyFlag(t *testing.T) {
	s := New()
	s.AddLivenessCheck("goroutines", time.Second, GoroutineCountCheck(100000))

	code, body := probe(t, s.LiveEndpoint)

	assert.Equal(t, http.StatusOK, code)
	checks := body["checks"].(map[string]any)
	assert.Equal(t, "ok", checks["goroutines"])
}

func TestGoroutineCountCheck(t *testing.T) {
	assert.NoError(t, GoroutineCountCheck(1_000_000)(context.Background()))
	assert.Error(t, GoroutineCountCheck(0)(context.Background()))
}
