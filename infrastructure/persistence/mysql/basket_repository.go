package mysql

import (
	"context"
	"errors"

	"github.com/example/storefront/domain/basket"
	"github.com/example/storefront/domain/shared"
	"github.com/example/storefront/infrastructure/persistence"
	"github.com/example/storefront/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BasketRepository stores authenticated users' basket lines. One row per
// (user, product); quantity changes are applied atomically in SQL so
// concurrent adds from two tabs never lose an increment.
type BasketRepository struct {
	db *gorm.DB
}

func NewBasketRepository(db *gorm.DB) *BasketRepository {
	return &BasketRepository{db: db}
}

func (r *BasketRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// AddQuantity inserts the line or increments the existing one. Maps to
// INSERT ... ON DUPLICATE KEY UPDATE quantity = quantity + ?.
func (r *BasketRepository) AddQuantity(ctx context.Context, userID, productID string, quantity int) error {
	line := po.BasketLinePO{UserID: userID, ProductID: productID, Quantity: quantity}
	return r.getDB(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity": gorm.Expr("quantity + ?", quantity),
		}),
	}).Create(&line).Error
}

// RemoveQuantity decrements the line and deletes it once the quantity
// reaches zero.
func (r *BasketRepository) RemoveQuantity(ctx context.Context, userID, productID string, quantity int) error {
	db := r.getDB(ctx)

	var line po.BasketLinePO
	err := db.Where("user_id = ? AND product_id = ?", userID, productID).Take(&line).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return shared.NewNotFoundError("basket line")
		}
		return err
	}

	if line.Quantity-quantity <= 0 {
		return db.Where("user_id = ? AND product_id = ?", userID, productID).
			Delete(&po.BasketLinePO{}).Error
	}
	return db.Model(&po.BasketLinePO{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Update("quantity", gorm.Expr("quantity - ?", quantity)).Error
}

func (r *BasketRepository) ListByUser(ctx context.Context, userID string) ([]basket.Line, error) {
	var rows []po.BasketLinePO
	err := r.getDB(ctx).Where("user_id = ?", userID).Find(&rows).Error
	if err != nil {
		return nil, err
	}

	lines := make([]basket.Line, len(rows))
	for i := range rows {
		lines[i] = rows[i].ToDomain()
	}
	return lines, nil
}

// ClearByUser deletes all of the user's lines and returns what was
// deleted, so order creation can snapshot them in the same transaction.
func (r *BasketRepository) ClearByUser(ctx context.Context, userID string) ([]basket.Line, error) {
	db := r.getDB(ctx)

	var rows []po.BasketLinePO
	if err := db.Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		return nil, err
	}
	if err := db.Where("user_id = ?", userID).Delete(&po.BasketLinePO{}).Error; err != nil {
		return nil, err
	}

	lines := make([]basket.Line, len(rows))
	for i := range rows {
		lines[i] = rows[i].ToDomain()
	}
	return lines, nil
}

var _ basket.Repository = (*BasketRepository)(nil)
