package order

import "context"

// Repository persists orders with their line snapshots and payments.
type Repository interface {
	// Save creates or updates the order and its lines as one unit. When
	// called inside a unit of work it joins the ambient transaction.
	Save(ctx context.Context, o *Order) error
	// FindByID loads an order with lines, shared.ErrNotFound when unknown.
	FindByID(ctx context.Context, id string) (*Order, error)
	// FindByUser returns the user's non-deleted orders, newest first.
	FindByUser(ctx context.Context, userID string) ([]*Order, error)
	SavePayment(ctx context.Context, p *Payment) error
}
