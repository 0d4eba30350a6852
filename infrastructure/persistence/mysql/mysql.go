// Package mysql implements the repositories on GORM/MySQL. Persistence
// objects live in the po subpackage and carry no business logic; GORM
// associations are not used so aggregate boundaries stay explicit.
package mysql

import (
	"fmt"
	"time"

	"github.com/example/storefront/config"
	"github.com/example/storefront/infrastructure/persistence/mysql/po"
	"github.com/example/storefront/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	defaultMaxOpenConns    = 25
	defaultMaxIdleConns    = 10
	defaultConnMaxLifetime = 10 * time.Minute
)

// DSN builds the MySQL connection string from configuration.
func DSN(cfg *config.DatabaseConfig) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&loc=Local&charset=utf8mb4&collation=utf8mb4_unicode_ci",
		cfg.Username, cfg.Password, cfg.Host, cfg.Port, cfg.Database)
}

func parseLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "debug", "info":
		return gormlogger.Info
	case "error":
		return gormlogger.Error
	case "silent":
		return gormlogger.Silent
	default:
		return gormlogger.Warn
	}
}

// Connect opens the database and configures the connection pool.
func Connect(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(DSN(cfg)), &gorm.Config{
		Logger: logger.NewGormAdapter(parseLogLevel(cfg.LogLevel)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpen := cfg.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = defaultMaxOpenConns
	}
	maxIdle := cfg.MaxIdleConns
	if maxIdle <= 0 {
		maxIdle = defaultMaxIdleConns
	}
	if maxIdle > maxOpen {
		maxIdle = maxOpen
	}
	lifetime := cfg.ConnMaxLifetime
	if lifetime <= 0 {
		lifetime = defaultConnMaxLifetime
	}

	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetConnMaxLifetime(lifetime)

	logger.Info("database connected",
		zap.String("host", cfg.Host),
		zap.String("database", cfg.Database),
		zap.Int("max_open_conns", maxOpen),
	)

	return db, nil
}

// AutoMigrate creates or updates the schema. Development only; production
// schemas are managed by migrations.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&po.UserPO{},
		&po.CredentialPO{},
		&po.CategoryPO{},
		&po.TagPO{},
		&po.ProductPO{},
		&po.ProductTagPO{},
		&po.ProductImagePO{},
		&po.SpecificationPO{},
		&po.ReviewPO{},
		&po.SalePO{},
		&po.BasketLinePO{},
		&po.OrderPO{},
		&po.OrderLinePO{},
		&po.PaymentPO{},
	)
}
