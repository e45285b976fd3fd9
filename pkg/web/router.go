package web

import (
	"context"
	"fmt"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	_ "github.com/scienceol/chemcheck/docs"
	"github.com/scienceol/chemcheck/internal/config"
	"github.com/scienceol/chemcheck/pkg/common"
	"github.com/scienceol/chemcheck/pkg/common/code"
	compoundImpl "github.com/scienceol/chemcheck/pkg/core/compound/compound"
	"github.com/scienceol/chemcheck/pkg/core/notify/events"
	validateImpl "github.com/scienceol/chemcheck/pkg/core/validate/validate"
	"github.com/scienceol/chemcheck/pkg/middleware/logger"
	compoundView "github.com/scienceol/chemcheck/pkg/web/views/compound"
	"github.com/scienceol/chemcheck/pkg/web/views/health"
	"github.com/scienceol/chemcheck/pkg/web/views/sse"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// NewRouter installs every route and returns a func releasing the open
// websocket sessions.
func NewRouter(ctx context.Context, g *gin.Engine) context.CancelFunc {
	installMiddleware(g)
	return installURL(ctx, g)
}

func installMiddleware(g *gin.Engine) {
	g.ContextWithFallback = true
	server := config.Global().Server
	g.Use(gin.CustomRecovery(func(ctx *gin.Context, recovered any) {
		logger.Errorf(ctx, "%s %s panic: %v", ctx.Request.Method, ctx.Request.URL.Path, recovered)
		common.ReplyErr(ctx, code.InternalErr)
		ctx.Abort()
	}))
	g.Use(cors.Default())
	g.Use(otelgin.Middleware(fmt.Sprintf("%s-%s", server.Platform, server.Service)))
	g.Use(logger.LogWithWriter())
}

func installURL(ctx context.Context, g *gin.Engine) context.CancelFunc {
	api := g.Group("/api")
	api.GET("/health", health.Health)
	api.GET("/health/live", health.Live)
	api.GET("/health/ready", health.Ready)
	api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	msgCenter := events.NewEvents()
	compoundSvc := compoundImpl.New(msgCenter)
	cHandle := compoundView.NewCompoundHandle(compoundSvc, validateImpl.New(compoundSvc))
	hub := sse.NewHub(ctx, msgCenter)

	{
		v1 := api.Group("/v1")

		compoundRouter := v1.Group("/compound")
		compoundRouter.GET("/resolve", cHandle.Resolve)
		compoundRouter.POST("/validate", cHandle.Validate)

		wsRouter := v1.Group("/ws")
		wsRouter.GET("/compound", cHandle.Connect)

		notifyRouter := v1.Group("/notify")
		notifyRouter.GET("/sse", hub.Notify)
	}

	return func() {
		cHandle.Close(ctx)
	}
}
