package health

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/scienceol/chemcheck/internal/config"
	"github.com/scienceol/chemcheck/pkg/common/code"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	g := gin.New()
	g.GET("/health", Health)
	g.GET("/live", Live)
	g.GET("/ready", Ready)
	return g
}

func get(t *testing.T, g *gin.Engine, path string) (int, map[string]any) {
	t.Helper()
	w := httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	body := map[string]any{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestHealthAndLive(t *testing.T) {
	g := newEngine()
	for _, path := range []string{"/health", "/live"} {
		status, body := get(t, g, path)
		assert.Equal(t, http.StatusOK, status, path)
		assert.Equal(t, "ok", body["status"], path)
	}
}

func TestReady_RedisDisabled(t *testing.T) {
	config.Global().Redis.Enable = false

	status, body := get(t, newEngine(), "/ready")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ready", body["status"])
	assert.Equal(t, "disabled", body["checks"].(map[string]any)["redis"])
}

func TestReady_RedisNotInitialized(t *testing.T) {
	config.Global().Redis.Enable = true
	t.Cleanup(func() { config.Global().Redis.Enable = false })

	status, body := get(t, newEngine(), "/ready")
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "not_ready", body["status"])
	assert.Equal(t, code.RedisNotInitErr.Error(), body["checks"].(map[string]any)["redis"])
}
