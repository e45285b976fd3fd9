package logger

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type ServiceEnv struct {
	Platform string
	Service  string
	Env      string
}

type LogConfig struct {
	Path     string
	LogLevel string
	ServiceEnv
}

var (
	base   = zap.NewNop()
	sugar  = otelzap.New(base).Sugar()
	rotate *lumberjack.Logger
)

// Init replaces the no-op logger. Entries go to a rotated JSON file; in the
// dev env errors are mirrored to stderr so they are not buried in the file
// while the CLI owns stdout.
func Init(conf *LogConfig) {
	level, err := zapcore.ParseLevel(conf.LogLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}

	rotate = &lumberjack.Logger{
		Filename:   conf.Path,
		MaxSize:    100,
		MaxBackups: 7,
		MaxAge:     30,
		Compress:   true,
	}

	encConf := zap.NewProductionEncoderConfig()
	encConf.EncodeTime = zapcore.ISO8601TimeEncoder
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewJSONEncoder(encConf), zapcore.AddSync(rotate), level),
	}

	if conf.Env == "dev" {
		consoleConf := zap.NewDevelopmentEncoderConfig()
		consoleConf.EncodeLevel = zapcore.CapitalColorLevelEncoder
		consoleLevel := zapcore.ErrorLevel
		if level > consoleLevel {
			consoleLevel = level
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(consoleConf),
			zapcore.Lock(os.Stderr),
			consoleLevel,
		))
	}

	base = zap.New(zapcore.NewTee(cores...),
		zap.AddCaller(),
		zap.AddCallerSkip(1),
		zap.Fields(
			zap.String("platform", conf.Platform),
			zap.String("service", conf.Service),
			zap.String("env", conf.Env),
		),
	)
	sugar = otelzap.New(base, otelzap.WithMinLevel(level)).Sugar()
}

func Close() {
	_ = base.Sync()
	if rotate != nil {
		_ = rotate.Close()
	}
}

// traceFields puts the ids of the active span on the entry so file logs
// can be joined with exported traces.
func traceFields(ctx context.Context) []any {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return nil
	}
	return []any{"trace_id", sc.TraceID().String(), "span_id", sc.SpanID().String()}
}

func Debugf(ctx context.Context, format string, args ...any) {
	sugar.Ctx(ctx).Debugw(fmt.Sprintf(format, args...), traceFields(ctx)...)
}

func Infof(ctx context.Context, format string, args ...any) {
	sugar.Ctx(ctx).Infow(fmt.Sprintf(format, args...), traceFields(ctx)...)
}

func Warnf(ctx context.Context, format string, args ...any) {
	sugar.Ctx(ctx).Warnw(fmt.Sprintf(format, args...), traceFields(ctx)...)
}

func Errorf(ctx context.Context, format string, args ...any) {
	sugar.Ctx(ctx).Errorw(fmt.Sprintf(format, args...), traceFields(ctx)...)
}

func Fatalf(ctx context.Context, format string, args ...any) {
	sugar.Ctx(ctx).Fatalw(fmt.Sprintf(format, args...), traceFields(ctx)...)
}

// LogWithWriter logs one line per HTTP request.
func LogWithWriter() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		path := ctx.Request.URL.Path
		if raw := ctx.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		ctx.Next()

		status := ctx.Writer.Status()
		latency := time.Since(start)
		if len(ctx.Errors) > 0 {
			Errorf(ctx, "%s %s status: %d latency: %s client: %s errors: %s",
				ctx.Request.Method, path, status, latency, ctx.ClientIP(), ctx.Errors.String())
			return
		}
		Infof(ctx, "%s %s status: %d latency: %s client: %s",
			ctx.Request.Method, path, status, latency, ctx.ClientIP())
	}
}
