// Package health exposes liveness and readiness probes.
package health

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/example/storefront/config"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// Controller reports service health. Both dependencies may be nil, in
// which case their checks are skipped.
type Controller struct {
	config    *config.Config
	db        *sql.DB
	redis     *redis.Client
	startTime time.Time
}

func NewController(cfg *config.Config, db *sql.DB, redisClient *redis.Client) *Controller {
	return &Controller{
		config:    cfg,
		db:        db,
		redis:     redisClient,
		startTime: time.Now(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/health", c.Health)
	router.GET("/health/live", c.Liveness)
	router.GET("/health/ready", c.Readiness)
}

type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

type HealthResponse struct {
	Status    string           `json:"status"`
	Version   string           `json:"version"`
	Uptime    string           `json:"uptime"`
	Timestamp string           `json:"timestamp"`
	Checks    map[string]Check `json:"checks,omitempty"`
}

func (c *Controller) checkDatabase(ctx *gin.Context) Check {
	start := time.Now()
	if err := c.db.PingContext(ctx.Request.Context()); err != nil {
		return Check{Status: "unhealthy", Message: err.Error()}
	}
	return Check{Status: "healthy", Latency: time.Since(start).String()}
}

func (c *Controller) checkRedis(ctx *gin.Context) Check {
	start := time.Now()
	if err := c.redis.Ping(ctx.Request.Context()).Err(); err != nil {
		return Check{Status: "unhealthy", Message: err.Error()}
	}
	return Check{Status: "healthy", Latency: time.Since(start).String()}
}

// Health GET /health
func (c *Controller) Health(ctx *gin.Context) {
	checks := make(map[string]Check)
	overallStatus := "healthy"

	if c.db != nil {
		check := c.checkDatabase(ctx)
		checks["database"] = check
		if check.Status != "healthy" {
			overallStatus = "unhealthy"
		}
	}
	if c.redis != nil {
		check := c.checkRedis(ctx)
		checks["redis"] = check
		if check.Status != "healthy" {
			overallStatus = "unhealthy"
		}
	}

	status := http.StatusOK
	if overallStatus != "healthy" {
		status = http.StatusServiceUnavailable
	}

	ctx.JSON(status, HealthResponse{
		Status:    overallStatus,
		Version:   c.config.App.Version,
		Uptime:    time.Since(c.startTime).String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
	})
}

// Liveness GET /health/live
func (c *Controller) Liveness(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "alive"})
}

// Readiness GET /health/ready
func (c *Controller) Readiness(ctx *gin.Context) {
	if c.db != nil {
		if err := c.db.PingContext(ctx.Request.Context()); err != nil {
			ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "reason": "database"})
			return
		}
	}
	if c.redis != nil {
		if err := c.redis.Ping(ctx.Request.Context()).Err(); err != nil {
			ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "reason": "redis"})
			return
		}
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "ready"})
}
