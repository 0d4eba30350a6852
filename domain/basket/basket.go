// Package basket holds the persisted basket lines of authenticated users.
// Anonymous baskets live in the session store and share only the view type.
package basket

import (
	"context"

	"github.com/example/storefront/domain/catalog"
	"github.com/example/storefront/domain/shared"
)

// Line is one (user, product) pair with a quantity. The repository enforces
// uniqueness on the pair; repeated adds increment the quantity.
type Line struct {
	UserID    string
	ProductID string
	Quantity  int
}

// Item is a basket line joined with live product data, the shape returned
// to clients. Price is the current line total (live unit price × quantity);
// it is not a snapshot until the basket becomes an order.
type Item struct {
	Product  catalog.ProductSummary
	Quantity int
	Price    shared.Money
}

// Repository persists basket lines. AddQuantity must be a single atomic
// upsert on the (user, product) key so concurrent adds from the same user
// cannot lose updates.
type Repository interface {
	// AddQuantity inserts the line or increments the existing quantity.
	AddQuantity(ctx context.Context, userID, productID string, quantity int) error
	// RemoveQuantity decrements the line, deleting it when the remaining
	// quantity would be zero or less. shared.ErrNotFound when no line exists.
	RemoveQuantity(ctx context.Context, userID, productID string, quantity int) error
	ListByUser(ctx context.Context, userID string) ([]Line, error)
	// ClearByUser deletes all lines of a user, returning the deleted lines.
	ClearByUser(ctx context.Context, userID string) ([]Line, error)
}
