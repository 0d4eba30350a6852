// Package api assembles the HTTP surface: middleware chain, route groups
// and controllers.
package api

import (
	"github.com/example/storefront/api/account"
	"github.com/example/storefront/api/basket"
	"github.com/example/storefront/api/catalog"
	"github.com/example/storefront/api/health"
	"github.com/example/storefront/api/middleware"
	"github.com/example/storefront/api/order"
	"github.com/example/storefront/config"
	infrasession "github.com/example/storefront/infrastructure/session"

	"github.com/gin-gonic/gin"
)

// Router owns the gin engine and the middleware chain.
type Router struct {
	engine            *gin.Engine
	config            *config.Config
	auth              infrasession.AuthSessions
	healthController  *health.Controller
	catalogController *catalog.Controller
	basketController  *basket.Controller
	orderController   *order.Controller
	accountController *account.Controller
}

func NewRouter(
	cfg *config.Config,
	auth infrasession.AuthSessions,
	healthController *health.Controller,
	catalogController *catalog.Controller,
	basketController *basket.Controller,
	orderController *order.Controller,
	accountController *account.Controller,
) *Router {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Middleware order matters: the request id must exist before anything
	// logs, and the session must be resolved before any handler runs.
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Recovery())
	engine.Use(middleware.Logging())
	engine.Use(middleware.CORS(&cfg.CORS))
	engine.Use(middleware.RateLimit(&cfg.Server.RateLimit))
	engine.Use(middleware.Session(&cfg.Session, auth))

	return &Router{
		engine:            engine,
		config:            cfg,
		auth:              auth,
		healthController:  healthController,
		catalogController: catalogController,
		basketController:  basketController,
		orderController:   orderController,
		accountController: accountController,
	}
}

// SetupRoutes registers all route groups.
func (r *Router) SetupRoutes() {
	apiGroup := r.engine.Group("/api")
	{
		r.healthController.RegisterRoutes(apiGroup)
		r.catalogController.RegisterRoutes(apiGroup)
		r.basketController.RegisterRoutes(apiGroup)
		r.orderController.RegisterRoutes(apiGroup)
		r.accountController.RegisterRoutes(apiGroup)
	}

	r.engine.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"name":    r.config.App.Name,
			"version": r.config.App.Version,
			"env":     r.config.App.Env,
			"health":  "/api/health",
		})
	})
}

// GetEngine returns the gin engine.
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
