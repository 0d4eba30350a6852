// Package persistence carries the ambient transaction between the unit of
// work and the repositories.
package persistence

import (
	"context"

	"gorm.io/gorm"
)

type txKey struct{}

// TxFromContext returns the GORM transaction from the context, nil when the
// operation runs outside a unit of work.
func TxFromContext(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return nil
}

// ContextWithTx attaches a GORM transaction to the context.
func ContextWithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}
