package mysql

import (
	"context"
	"errors"

	"github.com/example/storefront/domain/order"
	"github.com/example/storefront/domain/shared"
	"github.com/example/storefront/infrastructure/persistence"
	"github.com/example/storefront/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// OrderRepository persists the order aggregate. Lines are written with a
// delete-then-insert so Save stays idempotent for updates; callers that
// need atomicity run Save inside the unit of work.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *OrderRepository) Save(ctx context.Context, o *order.Order) error {
	db := r.getDB(ctx)

	orderPO, linePOs := po.FromOrder(o)
	if err := db.Save(orderPO).Error; err != nil {
		return err
	}

	if err := db.Where("order_id = ?", o.ID()).Delete(&po.OrderLinePO{}).Error; err != nil {
		return err
	}
	if len(linePOs) > 0 {
		if err := db.Create(&linePOs).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	db := r.getDB(ctx)

	var orderPO po.OrderPO
	err := db.Where("id = ? AND is_deleted = ?", id, false).Take(&orderPO).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("order")
		}
		return nil, err
	}

	var linePOs []po.OrderLinePO
	if err := db.Where("order_id = ?", id).Find(&linePOs).Error; err != nil {
		return nil, err
	}

	return orderPO.ToDomain(linePOs), nil
}

func (r *OrderRepository) FindByUser(ctx context.Context, userID string) ([]*order.Order, error) {
	db := r.getDB(ctx)

	var orderPOs []po.OrderPO
	err := db.Where("user_id = ? AND is_deleted = ?", userID, false).
		Order("created_at DESC").
		Find(&orderPOs).Error
	if err != nil {
		return nil, err
	}
	if len(orderPOs) == 0 {
		return nil, nil
	}

	ids := make([]string, len(orderPOs))
	for i := range orderPOs {
		ids[i] = orderPOs[i].ID
	}

	var linePOs []po.OrderLinePO
	if err := db.Where("order_id IN ?", ids).Find(&linePOs).Error; err != nil {
		return nil, err
	}
	linesByOrder := make(map[string][]po.OrderLinePO, len(orderPOs))
	for _, lp := range linePOs {
		linesByOrder[lp.OrderID] = append(linesByOrder[lp.OrderID], lp)
	}

	orders := make([]*order.Order, len(orderPOs))
	for i := range orderPOs {
		orders[i] = orderPOs[i].ToDomain(linesByOrder[orderPOs[i].ID])
	}
	return orders, nil
}

func (r *OrderRepository) SavePayment(ctx context.Context, p *order.Payment) error {
	return r.getDB(ctx).Create(po.FromPayment(p)).Error
}

var _ order.Repository = (*OrderRepository)(nil)
