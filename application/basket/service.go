// Package basket orchestrates basket reads and mutations for both owner
// kinds: authenticated users (database lines) and anonymous sessions
// (session store entries).
package basket

import (
	"context"
	"errors"

	appcatalog "github.com/example/storefront/application/catalog"
	"github.com/example/storefront/domain/basket"
	"github.com/example/storefront/domain/catalog"
	"github.com/example/storefront/domain/session"
	"github.com/example/storefront/domain/shared"
	apperrors "github.com/example/storefront/pkg/errors"
)

// Service keeps the two basket representations behind one API. The owner
// context decides which storage a call touches.
type Service struct {
	catalogRepo catalog.Repository
	basketRepo  basket.Repository
	sessions    session.Store
}

func NewService(catalogRepo catalog.Repository, basketRepo basket.Repository, sessions session.Store) *Service {
	return &Service{catalogRepo: catalogRepo, basketRepo: basketRepo, sessions: sessions}
}

// ItemResponse is one basket line joined with live product data. Price is
// the current line total in minor units, not a snapshot.
type ItemResponse struct {
	Product  appcatalog.ProductResponse `json:"product"`
	Quantity int                        `json:"quantity"`
	Price    int64                      `json:"price"`
}

type entry struct {
	productID string
	quantity  int
}

// resolve joins raw lines with live products. Missing or soft-deleted
// products are skipped silently: a product withdrawn from the catalog
// disappears from the basket view instead of failing the whole read.
func (s *Service) resolve(ctx context.Context, entries []entry) ([]ItemResponse, error) {
	if len(entries) == 0 {
		return []ItemResponse{}, nil
	}

	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.productID
	}
	products, err := s.catalogRepo.FindProducts(ctx, ids)
	if err != nil {
		return nil, err
	}

	items := make([]ItemResponse, 0, len(entries))
	for _, e := range entries {
		product, ok := products[e.productID]
		if !ok {
			continue
		}
		linePrice, err := product.Price.MulInt(e.quantity)
		if err != nil {
			return nil, err
		}
		items = append(items, ItemResponse{
			Product:  appcatalog.FromSummary(*product),
			Quantity: e.quantity,
			Price:    linePrice.Amount(),
		})
	}
	return items, nil
}

func (s *Service) entriesFor(ctx context.Context, owner session.Context) ([]entry, error) {
	if owner.Authenticated() {
		lines, err := s.basketRepo.ListByUser(ctx, owner.UserID)
		if err != nil {
			return nil, err
		}
		entries := make([]entry, len(lines))
		for i, line := range lines {
			entries[i] = entry{productID: line.ProductID, quantity: line.Quantity}
		}
		return entries, nil
	}

	stored, err := s.sessions.Basket(ctx, owner.SessionID)
	if err != nil {
		return nil, err
	}
	entries := make([]entry, len(stored))
	for i, e := range stored {
		entries[i] = entry{productID: e.ProductID, quantity: e.Quantity}
	}
	return entries, nil
}

// Get returns the owner's basket joined with live product data.
func (s *Service) Get(ctx context.Context, owner session.Context) ([]ItemResponse, error) {
	entries, err := s.entriesFor(ctx, owner)
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, entries)
}

// Add puts quantity units of a product into the owner's basket and
// returns the updated view. Unknown products are rejected.
func (s *Service) Add(ctx context.Context, owner session.Context, productID string, quantity int) ([]ItemResponse, error) {
	if quantity < 1 {
		return nil, apperrors.Validation("invalid quantity", map[string]string{
			"count": "count must be at least 1",
		})
	}
	if _, err := s.catalogRepo.FindProduct(ctx, productID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, apperrors.ProductNotFound()
		}
		return nil, err
	}

	if owner.Authenticated() {
		if err := s.basketRepo.AddQuantity(ctx, owner.UserID, productID, quantity); err != nil {
			return nil, err
		}
		return s.Get(ctx, owner)
	}

	stored, err := s.sessions.Basket(ctx, owner.SessionID)
	if err != nil {
		return nil, err
	}
	merged := false
	for i := range stored {
		if stored[i].ProductID == productID {
			stored[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		stored = append(stored, session.BasketEntry{ProductID: productID, Quantity: quantity})
	}
	if err := s.sessions.SaveBasket(ctx, owner.SessionID, stored); err != nil {
		return nil, err
	}
	return s.Get(ctx, owner)
}

// Remove takes quantity units of a product out of the owner's basket and
// returns the updated view. Lines drop to zero, never below. The product id
// must resolve on both paths; only a real product absent from an anonymous
// basket is a no-op.
func (s *Service) Remove(ctx context.Context, owner session.Context, productID string, quantity int) ([]ItemResponse, error) {
	if quantity < 1 {
		return nil, apperrors.Validation("invalid quantity", map[string]string{
			"count": "count must be at least 1",
		})
	}
	if _, err := s.catalogRepo.FindProduct(ctx, productID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, apperrors.ProductNotFound()
		}
		return nil, err
	}

	if owner.Authenticated() {
		err := s.basketRepo.RemoveQuantity(ctx, owner.UserID, productID, quantity)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, apperrors.NotFound("basket line not found")
			}
			return nil, err
		}
		return s.Get(ctx, owner)
	}

	stored, err := s.sessions.Basket(ctx, owner.SessionID)
	if err != nil {
		return nil, err
	}
	for i := range stored {
		if stored[i].ProductID != productID {
			continue
		}
		stored[i].Quantity -= quantity
		if stored[i].Quantity <= 0 {
			stored = append(stored[:i], stored[i+1:]...)
		}
		break
	}
	if err := s.sessions.SaveBasket(ctx, owner.SessionID, stored); err != nil {
		return nil, err
	}
	return s.Get(ctx, owner)
}

// MergeSessionIntoUser folds the anonymous session basket into the user's
// database basket after sign-in, then clears the session slot.
func (s *Service) MergeSessionIntoUser(ctx context.Context, sessionID, userID string) error {
	stored, err := s.sessions.Basket(ctx, sessionID)
	if err != nil {
		return err
	}
	for _, e := range stored {
		if e.Quantity < 1 {
			continue
		}
		if err := s.basketRepo.AddQuantity(ctx, userID, e.ProductID, e.Quantity); err != nil {
			return err
		}
	}
	return s.sessions.ClearBasket(ctx, sessionID)
}
