package session

import (
	"context"
	"sync"

	"github.com/example/storefront/domain/session"
)

// MemoryStore is the in-process session store for tests. No TTL.
type MemoryStore struct {
	mu            sync.RWMutex
	baskets       map[string][]session.BasketEntry
	pendingOrders map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		baskets:       make(map[string][]session.BasketEntry),
		pendingOrders: make(map[string]string),
	}
}

func (s *MemoryStore) Basket(ctx context.Context, sessionID string) ([]session.BasketEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]session.BasketEntry(nil), s.baskets[sessionID]...), nil
}

func (s *MemoryStore) SaveBasket(ctx context.Context, sessionID string, entries []session.BasketEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(entries) == 0 {
		delete(s.baskets, sessionID)
		return nil
	}
	s.baskets[sessionID] = append([]session.BasketEntry(nil), entries...)
	return nil
}

func (s *MemoryStore) ClearBasket(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.baskets, sessionID)
	return nil
}

func (s *MemoryStore) PendingOrder(ctx context.Context, sessionID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pendingOrders[sessionID], nil
}

func (s *MemoryStore) SavePendingOrder(ctx context.Context, sessionID, orderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingOrders[sessionID] = orderID
	return nil
}

func (s *MemoryStore) ClearPendingOrder(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pendingOrders, sessionID)
	return nil
}

var _ session.Store = (*MemoryStore)(nil)
