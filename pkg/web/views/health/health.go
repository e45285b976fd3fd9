package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/scienceol/chemcheck/internal/config"
	"github.com/scienceol/chemcheck/pkg/common/code"
	"github.com/scienceol/chemcheck/pkg/middleware/redis"
)

// Health is a simple health check.
// @Summary	Service health
// @Tags		health
// @Produce	json
// @Success	200	{object}	map[string]any
// @Router		/health [get]
func Health(g *gin.Context) {
	g.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Live is a lightweight liveness probe.
// @Summary	Liveness
// @Tags		health
// @Produce	json
// @Success	200	{object}	map[string]any
// @Router		/health/live [get]
func Live(g *gin.Context) {
	g.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready verifies the downstream dependencies this deployment was started
// with. PubChem is not probed; it is an outside service.
// @Summary	Readiness of backing services
// @Tags		health
// @Produce	json
// @Success	200	{object}	map[string]any
// @Failure	503	{object}	map[string]any
// @Router		/health/ready [get]
func Ready(g *gin.Context) {
	checks := gin.H{}
	healthy := true

	if config.Global().Redis.Enable {
		if rc := redis.GetClient(); rc != nil {
			if err := rc.Ping(g.Request.Context()).Err(); err != nil {
				checks["redis"] = "unhealthy"
				healthy = false
			} else {
				checks["redis"] = "ok"
			}
		} else {
			checks["redis"] = code.RedisNotInitErr.Error()
			healthy = false
		}
	} else {
		checks["redis"] = "disabled"
	}

	status := http.StatusOK
	msg := "ready"
	if !healthy {
		status = http.StatusServiceUnavailable
		msg = "not_ready"
	}

	g.JSON(status, gin.H{
		"status": msg,
		"checks": checks,
	})
}
