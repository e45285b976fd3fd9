package logger

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestInitWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chemcheck.log")
	Init(&LogConfig{
		Path:       path,
		LogLevel:   "info",
		ServiceEnv: ServiceEnv{Platform: "chemcheck", Service: "test", Env: "test"},
	})

	ctx := context.Background()
	Debugf(ctx, "hidden %s", "debug")
	Infof(ctx, "resolved %s", "water")
	Close()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "resolved water")
	assert.Contains(t, string(data), `"service":"test"`)
	assert.NotContains(t, string(data), "hidden debug")
}

func TestLogWithWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "access.log")
	Init(&LogConfig{Path: path, LogLevel: "debug", ServiceEnv: ServiceEnv{Env: "test"}})

	gin.SetMode(gin.TestMode)
	g := gin.New()
	g.Use(LogWithWriter())
	g.GET("/ping", func(ctx *gin.Context) { ctx.String(http.StatusTeapot, "pong") })

	w := httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping?x=1", nil))
	assert.Equal(t, http.StatusTeapot, w.Code)
	Close()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "GET /ping?x=1 status: 418")
}

func TestTraceIDOnEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.log")
	Init(&LogConfig{Path: path, LogLevel: "info", ServiceEnv: ServiceEnv{Env: "test"}})

	tp := sdktrace.NewTracerProvider()
	defer func() { _ = tp.Shutdown(context.Background()) }()
	ctx, span := tp.Tracer("test").Start(context.Background(), "resolve")
	Infof(ctx, "inside %s", "span")
	span.End()
	Infof(context.Background(), "outside span")
	Close()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"trace_id":"`+span.SpanContext().TraceID().String()+`"`)
	assert.Contains(t, lines[0], `"span_id":"`+span.SpanContext().SpanID().String()+`"`)
	assert.NotContains(t, lines[1], "trace_id")
}
