package catalog

import "context"

// Repository is the catalog store. List-style methods exclude soft-deleted
// products; FindProduct returns a soft-deleted product only to internal
// callers that pass includeDeleted.
type Repository interface {
	// FindProduct resolves a live product by id, shared.ErrNotFound when the
	// id is unknown or the product is soft-deleted.
	FindProduct(ctx context.Context, id string) (*ProductSummary, error)
	// FindProducts resolves a batch of ids; missing or deleted ids are
	// silently absent from the result map.
	FindProducts(ctx context.Context, ids []string) (map[string]*ProductSummary, error)
	SaveProduct(ctx context.Context, p *Product) error

	// List returns a filtered, sorted page of products plus the total count.
	List(ctx context.Context, filter Filter, page Page) ([]ProductSummary, int64, error)
	Popular(ctx context.Context, limit int) ([]ProductSummary, error)
	Limited(ctx context.Context, maxStock, limit int) ([]ProductSummary, error)
	Banners(ctx context.Context, limit int) ([]ProductSummary, error)

	Categories(ctx context.Context) ([]Category, error)
	Tags(ctx context.Context) ([]Tag, error)

	Specifications(ctx context.Context, productID string) ([]Specification, error)
	Reviews(ctx context.Context, productID string) ([]Review, error)
	SaveReview(ctx context.Context, r *Review) error

	Sales(ctx context.Context, page Page) ([]Sale, int64, error)
}
