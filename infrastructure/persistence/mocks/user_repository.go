package mocks

import (
	"context"
	"sync"

	"github.com/example/storefront/domain/account"
	"github.com/example/storefront/domain/shared"
)

type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]account.User
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{users: make(map[string]account.User)}
}

func (r *MockUserRepository) Save(ctx context.Context, user *account.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = *user
	return nil
}

func (r *MockUserRepository) FindByID(ctx context.Context, id string) (*account.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, shared.NewNotFoundError("user")
	}
	return &user, nil
}

func (r *MockUserRepository) FindByUsername(ctx context.Context, username string) (*account.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Username == username {
			u := user
			return &u, nil
		}
	}
	return nil, shared.NewNotFoundError("user")
}

func (r *MockUserRepository) EmailTaken(ctx context.Context, email, excludeUserID string) (bool, error) {
	if email == "" {
		return false, nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Email == email && user.ID != excludeUserID {
			return true, nil
		}
	}
	return false, nil
}

func (r *MockUserRepository) PhoneTaken(ctx context.Context, phone, excludeUserID string) (bool, error) {
	if phone == "" {
		return false, nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Phone == phone && user.ID != excludeUserID {
			return true, nil
		}
	}
	return false, nil
}

var _ account.Repository = (*MockUserRepository)(nil)
