package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/scienceol/chemcheck/pkg/common"
	"github.com/scienceol/chemcheck/pkg/common/code"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	g := gin.New()
	closeWS := NewRouter(ctx, g)
	defer closeWS()

	routes := map[string]bool{}
	for _, r := range g.Routes() {
		routes[r.Method+" "+r.Path] = true
	}
	for _, want := range []string{
		"GET /api/health",
		"GET /api/health/live",
		"GET /api/health/ready",
		"GET /api/v1/compound/resolve",
		"POST /api/v1/compound/validate",
		"GET /api/v1/ws/compound",
		"GET /api/v1/notify/sse",
		"GET /api/swagger/*any",
	} {
		assert.True(t, routes[want], want)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "http://client.test")
	g.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx, cancel := context.WithCancel(context.Background())
	g := gin.New()
	closeWS := NewRouter(ctx, g)
	t.Cleanup(func() {
		closeWS()
		cancel()
	})
	return g
}

func TestSwaggerDoc(t *testing.T) {
	g := newTestRouter(t)

	w := httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/swagger/doc.json", nil))
	require.Equal(t, http.StatusOK, w.Code)

	doc := struct {
		BasePath string                    `json:"basePath"`
		Paths    map[string]map[string]any `json:"paths"`
	}{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Equal(t, "/api", doc.BasePath)
	assert.Contains(t, doc.Paths["/v1/compound/resolve"], "get")
	assert.Contains(t, doc.Paths["/v1/compound/validate"], "post")
}

func TestPanicReplied(t *testing.T) {
	g := newTestRouter(t)
	g.GET("/api/boom", func(*gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/boom", nil))
	require.Equal(t, http.StatusOK, w.Code)

	resp := &common.Resp{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), resp))
	assert.Equal(t, code.InternalErr, resp.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, code.InternalErr.Error(), resp.Error.Msg)
}
