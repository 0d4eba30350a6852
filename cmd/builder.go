// Package cmd assembles the application: configuration, logging,
// storage, services, controllers and the HTTP server.
package cmd

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/example/storefront/api"
	apiaccount "github.com/example/storefront/api/account"
	apibasket "github.com/example/storefront/api/basket"
	apicatalog "github.com/example/storefront/api/catalog"
	"github.com/example/storefront/api/health"
	apiorder "github.com/example/storefront/api/order"
	accountapp "github.com/example/storefront/application/account"
	basketapp "github.com/example/storefront/application/basket"
	catalogapp "github.com/example/storefront/application/catalog"
	orderapp "github.com/example/storefront/application/order"
	"github.com/example/storefront/config"
	"github.com/example/storefront/domain/order"
	"github.com/example/storefront/domain/shared"
	"github.com/example/storefront/infrastructure/persistence/mysql"
	infrasession "github.com/example/storefront/infrastructure/session"
	"github.com/example/storefront/pkg/logger"

	"go.uber.org/zap"
)

const startupTimeout = 10 * time.Second

// Build wires the full application from configuration. Everything talks
// to real MySQL and Redis; tests assemble their own graph from mocks.
func Build(cfg *config.Config) (*App, error) {
	if err := logger.Init(logger.Config{
		Level:    cfg.Log.Level,
		Format:   cfg.Log.Format,
		Output:   cfg.Log.Output,
		FilePath: cfg.Log.FilePath,
	}, cfg.App.Env); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("Starting application",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("env", cfg.App.Env))

	db, err := mysql.Connect(&cfg.Database)
	if err != nil {
		return nil, err
	}
	if cfg.IsDevelopment() {
		if err := mysql.AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("failed to migrate schema: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()
	redisClient, err := infrasession.NewRedisClient(ctx, &cfg.Redis)
	if err != nil {
		return nil, err
	}

	sessionStore := infrasession.NewRedisStore(redisClient, cfg.Session.TTL)
	authSessions := infrasession.NewRedisAuthSessions(redisClient, cfg.Session.TTL)

	catalogRepo := mysql.NewCatalogRepository(db)
	basketRepo := mysql.NewBasketRepository(db)
	orderRepo := mysql.NewOrderRepository(db)
	userRepo := mysql.NewUserRepository(db)
	credentials := mysql.NewCredentialRepository(db)
	uow := mysql.NewUnitOfWork(db)

	tariff := order.Tariff{
		CostOrdinary:          shared.NewMoney(cfg.Delivery.CostOrdinary),
		CostExpress:           shared.NewMoney(cfg.Delivery.CostExpress),
		FreeDeliveryThreshold: shared.NewMoney(cfg.Delivery.FreeDeliveryThreshold),
	}

	catalogService := catalogapp.NewService(catalogRepo)
	basketService := basketapp.NewService(catalogRepo, basketRepo, sessionStore)
	orderService := orderapp.NewService(orderRepo, basketRepo, catalogRepo, userRepo, sessionStore, uow, tariff)
	accountService := accountapp.NewService(userRepo, credentials, orderService, basketService)

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	router := api.NewRouter(
		cfg,
		authSessions,
		health.NewController(cfg, sqlDB, redisClient),
		apicatalog.NewController(catalogService),
		apibasket.NewController(basketService),
		apiorder.NewController(orderService),
		apiaccount.NewController(accountService, authSessions),
	)
	router.SetupRoutes()

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router.GetEngine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return &App{
		config: cfg,
		router: router,
		server: server,
		redis:  redisClient,
		db:     sqlDB,
	}, nil
}
