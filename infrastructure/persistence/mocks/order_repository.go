package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/example/storefront/domain/order"
	"github.com/example/storefront/domain/shared"
)

// MockOrderRepository stores order snapshots so that mutations made after
// Save do not leak into the stored state, same isolation a database gives.
type MockOrderRepository struct {
	mu       sync.RWMutex
	orders   map[string]order.Snapshot
	payments map[string][]*order.Payment
}

func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders:   make(map[string]order.Snapshot),
		payments: make(map[string][]*order.Payment),
	}
}

func (r *MockOrderRepository) Save(ctx context.Context, o *order.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[o.ID()] = o.ToSnapshot()
	return nil
}

func (r *MockOrderRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot, ok := r.orders[id]
	if !ok || snapshot.IsDeleted {
		return nil, shared.NewNotFoundError("order")
	}
	return order.Rebuild(snapshot), nil
}

func (r *MockOrderRepository) FindByUser(ctx context.Context, userID string) ([]*order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var orders []*order.Order
	for _, snapshot := range r.orders {
		if snapshot.UserID == userID && !snapshot.IsDeleted {
			orders = append(orders, order.Rebuild(snapshot))
		}
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt().After(orders[j].CreatedAt())
	})
	return orders, nil
}

func (r *MockOrderRepository) SavePayment(ctx context.Context, p *order.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *p
	r.payments[p.OrderID] = append(r.payments[p.OrderID], &clone)
	return nil
}

// Payments returns stored payment attempts for assertions.
func (r *MockOrderRepository) Payments(orderID string) []*order.Payment {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.payments[orderID]
}

var _ order.Repository = (*MockOrderRepository)(nil)
