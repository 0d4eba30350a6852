package mocks

import (
	"context"
	"sync"

	"github.com/example/storefront/domain/shared"
)

// MockCredentials stores passwords in plain text. Tests only.
type MockCredentials struct {
	mu        sync.RWMutex
	passwords map[string]string
}

func NewMockCredentials() *MockCredentials {
	return &MockCredentials{passwords: make(map[string]string)}
}

func (c *MockCredentials) Register(ctx context.Context, userID, password string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.passwords[userID] = password
	return nil
}

func (c *MockCredentials) Verify(ctx context.Context, userID, password string) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	stored, ok := c.passwords[userID]
	return ok && stored == password, nil
}

func (c *MockCredentials) Update(ctx context.Context, userID, current, next string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	stored, ok := c.passwords[userID]
	if !ok || stored != current {
		return shared.NewValidationError("credentials", "currentPassword", "current password is incorrect")
	}
	c.passwords[userID] = next
	return nil
}
