package shared

import "context"

// UnitOfWork runs a function inside a single transaction boundary. The
// transaction is carried in the context so repositories join it
// transparently; fn returning an error rolls everything back.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(ctx context.Context) error) error
}
