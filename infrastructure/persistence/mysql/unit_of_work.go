package mysql

import (
	"context"
	"fmt"

	"github.com/example/storefront/domain/shared"
	"github.com/example/storefront/infrastructure/persistence"
	"github.com/example/storefront/infrastructure/persistence/retry"

	"gorm.io/gorm"
)

// UnitOfWork runs a business function inside a single database
// transaction. Repositories pick the transaction up from the context, so
// multi-aggregate writes (order creation draining the basket) commit or
// roll back together. Deadlocked transactions are retried.
type UnitOfWork struct {
	db          *gorm.DB
	retryConfig retry.Config
}

func NewUnitOfWork(db *gorm.DB) *UnitOfWork {
	return &UnitOfWork{db: db, retryConfig: retry.DefaultConfig}
}

func (u *UnitOfWork) SetRetryConfig(config retry.Config) {
	u.retryConfig = config
}

func (u *UnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	executeOnce := func(ctx context.Context) error {
		tx := u.db.WithContext(ctx).Begin()
		if tx.Error != nil {
			return fmt.Errorf("failed to begin transaction: %w", tx.Error)
		}

		txCtx := persistence.ContextWithTx(ctx, tx)
		if err := fn(txCtx); err != nil {
			tx.Rollback()
			return err
		}

		if err := tx.Commit().Error; err != nil {
			return fmt.Errorf("failed to commit transaction: %w", err)
		}
		return nil
	}

	return retry.Execute(ctx, u.retryConfig, executeOnce)
}

var _ shared.UnitOfWork = (*UnitOfWork)(nil)
