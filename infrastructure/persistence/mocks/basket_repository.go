package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/example/storefront/domain/basket"
	"github.com/example/storefront/domain/shared"
)

type basketKey struct {
	userID    string
	productID string
}

// MockBasketRepository keeps basket lines in a map keyed by
// (user, product), matching the database unique key.
type MockBasketRepository struct {
	mu    sync.Mutex
	lines map[basketKey]int
}

func NewMockBasketRepository() *MockBasketRepository {
	return &MockBasketRepository{lines: make(map[basketKey]int)}
}

func (r *MockBasketRepository) AddQuantity(ctx context.Context, userID, productID string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines[basketKey{userID, productID}] += quantity
	return nil
}

func (r *MockBasketRepository) RemoveQuantity(ctx context.Context, userID, productID string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := basketKey{userID, productID}
	current, ok := r.lines[key]
	if !ok {
		return shared.NewNotFoundError("basket line")
	}
	if current-quantity <= 0 {
		delete(r.lines, key)
		return nil
	}
	r.lines[key] = current - quantity
	return nil
}

func (r *MockBasketRepository) ListByUser(ctx context.Context, userID string) ([]basket.Line, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.collect(userID), nil
}

func (r *MockBasketRepository) ClearByUser(ctx context.Context, userID string) ([]basket.Line, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	lines := r.collect(userID)
	for _, line := range lines {
		delete(r.lines, basketKey{line.UserID, line.ProductID})
	}
	return lines, nil
}

func (r *MockBasketRepository) collect(userID string) []basket.Line {
	var lines []basket.Line
	for key, quantity := range r.lines {
		if key.userID == userID {
			lines = append(lines, basket.Line{UserID: key.userID, ProductID: key.productID, Quantity: quantity})
		}
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].ProductID < lines[j].ProductID })
	return lines
}

var _ basket.Repository = (*MockBasketRepository)(nil)
