// Package session models the per-request owner context and the session
// store that carries anonymous state between requests.
//
// The store has exactly two typed slots per session: the anonymous basket
// and the pending anonymous order id. Nothing else lives in the session, and
// every operation that touches anonymous state receives the session context
// explicitly rather than reading ambient storage.
package session

import "context"

// Context identifies the owner of a basket or order for one request: an
// authenticated user, an anonymous session, or both right after sign-in.
type Context struct {
	SessionID string
	UserID    string
}

// Authenticated reports whether the request has a signed-in user.
func (c Context) Authenticated() bool { return c.UserID != "" }

// BasketEntry is one line of the anonymous session basket.
type BasketEntry struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// Store persists the two session slots. Implementations: redis for the
// service, in-memory for tests. A missing slot is returned as the zero value
// with no error.
type Store interface {
	Basket(ctx context.Context, sessionID string) ([]BasketEntry, error)
	SaveBasket(ctx context.Context, sessionID string, entries []BasketEntry) error
	ClearBasket(ctx context.Context, sessionID string) error

	PendingOrder(ctx context.Context, sessionID string) (string, error)
	SavePendingOrder(ctx context.Context, sessionID, orderID string) error
	ClearPendingOrder(ctx context.Context, sessionID string) error
}
