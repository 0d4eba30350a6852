package mocks

import (
	"context"

	"github.com/example/storefront/domain/shared"
)

// MockUnitOfWork runs the business function without a real transaction.
// The in-memory repositories have no transactional isolation, so rollback
// semantics are not simulated.
type MockUnitOfWork struct{}

func NewMockUnitOfWork() *MockUnitOfWork { return &MockUnitOfWork{} }

func (u *MockUnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

var _ shared.UnitOfWork = (*MockUnitOfWork)(nil)
