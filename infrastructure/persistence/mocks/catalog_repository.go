// Package mocks provides in-memory repository implementations for tests
// and local development without a database.
package mocks

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/example/storefront/domain/catalog"
	"github.com/example/storefront/domain/shared"

	"github.com/google/uuid"
)

// MockCatalogRepository keeps products, reviews and the rest of the
// catalog in maps. Filtering and sorting mirror the SQL implementation.
type MockCatalogRepository struct {
	mu             sync.RWMutex
	products       map[string]*catalog.Product
	categories     map[string]catalog.Category
	tags           map[string]catalog.Tag
	specifications map[string][]catalog.Specification
	reviews        map[string][]catalog.Review
	sales          []catalog.Sale
}

func NewMockCatalogRepository() *MockCatalogRepository {
	return &MockCatalogRepository{
		products:       make(map[string]*catalog.Product),
		categories:     make(map[string]catalog.Category),
		tags:           make(map[string]catalog.Tag),
		specifications: make(map[string][]catalog.Specification),
		reviews:        make(map[string][]catalog.Review),
	}
}

// AddCategory seeds a category.
func (r *MockCatalogRepository) AddCategory(c catalog.Category) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.categories[c.ID] = c
}

// AddTag seeds a tag.
func (r *MockCatalogRepository) AddTag(t catalog.Tag) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tags[t.ID] = t
}

// AddSpecification seeds a product specification row.
func (r *MockCatalogRepository) AddSpecification(s catalog.Specification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.specifications[s.ProductID] = append(r.specifications[s.ProductID], s)
}

// AddSale seeds a sale entry.
func (r *MockCatalogRepository) AddSale(s catalog.Sale) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sales = append(r.sales, s)
}

func (r *MockCatalogRepository) summarize(p *catalog.Product) catalog.ProductSummary {
	reviews := r.reviews[p.ID]
	summary := catalog.ProductSummary{Product: *p, ReviewCount: len(reviews)}
	if len(reviews) > 0 {
		total := 0
		for _, review := range reviews {
			total += review.Rate
		}
		summary.Rating = float64(total) / float64(len(reviews))
	}
	return summary
}

func (r *MockCatalogRepository) FindProduct(ctx context.Context, id string) (*catalog.ProductSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok || p.IsDeleted {
		return nil, shared.NewNotFoundError("product")
	}
	summary := r.summarize(p)
	return &summary, nil
}

func (r *MockCatalogRepository) FindProducts(ctx context.Context, ids []string) (map[string]*catalog.ProductSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string]*catalog.ProductSummary, len(ids))
	for _, id := range ids {
		p, ok := r.products[id]
		if !ok || p.IsDeleted {
			continue
		}
		summary := r.summarize(p)
		result[id] = &summary
	}
	return result, nil
}

func (r *MockCatalogRepository) SaveProduct(ctx context.Context, p *catalog.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		p.ID = id.String()
	}
	clone := *p
	r.products[p.ID] = &clone
	return nil
}

func (r *MockCatalogRepository) live(filter catalog.Filter) []catalog.ProductSummary {
	var result []catalog.ProductSummary
	for _, p := range r.products {
		if p.IsDeleted {
			continue
		}
		if filter.CategoryID != "" && p.CategoryID != filter.CategoryID {
			continue
		}
		if filter.NameContains != "" &&
			!strings.Contains(strings.ToLower(p.Title), strings.ToLower(filter.NameContains)) {
			continue
		}
		if filter.MinPrice != nil && p.Price.LessThan(*filter.MinPrice) {
			continue
		}
		if filter.MaxPrice != nil && filter.MaxPrice.LessThan(p.Price) {
			continue
		}
		if filter.FreeDeliveryOnly && !p.FreeDelivery {
			continue
		}
		if filter.AvailableOnly && p.Count <= 0 {
			continue
		}
		if len(filter.TagIDs) > 0 && !hasAnyTag(p, filter.TagIDs) {
			continue
		}
		result = append(result, r.summarize(p))
	}
	return result
}

func hasAnyTag(p *catalog.Product, tagIDs []string) bool {
	for _, want := range tagIDs {
		for _, tag := range p.Tags {
			if tag.ID == want {
				return true
			}
		}
	}
	return false
}

func sortSummaries(items []catalog.ProductSummary, field catalog.SortField, descending bool) {
	less := func(a, b catalog.ProductSummary) bool {
		switch field {
		case catalog.SortByRating:
			return a.Rating < b.Rating
		case catalog.SortByPrice:
			return a.Price.LessThan(b.Price)
		case catalog.SortByReviews:
			return a.ReviewCount < b.ReviewCount
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		if descending {
			return less(items[j], items[i])
		}
		return less(items[i], items[j])
	})
}

func (r *MockCatalogRepository) List(ctx context.Context, filter catalog.Filter, page catalog.Page) ([]catalog.ProductSummary, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.live(filter)
	total := int64(len(items))
	sortSummaries(items, filter.SortField, filter.SortDescending)

	if page.Size > 0 {
		offset := page.Offset()
		if offset >= len(items) {
			return nil, total, nil
		}
		end := offset + page.Size
		if end > len(items) {
			end = len(items)
		}
		items = items[offset:end]
	}
	return items, total, nil
}

func (r *MockCatalogRepository) Popular(ctx context.Context, limit int) ([]catalog.ProductSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.live(catalog.Filter{})
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Rating != items[j].Rating {
			return items[i].Rating > items[j].Rating
		}
		return items[i].ReviewCount > items[j].ReviewCount
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (r *MockCatalogRepository) Limited(ctx context.Context, maxStock, limit int) ([]catalog.ProductSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var items []catalog.ProductSummary
	for _, p := range r.products {
		if p.IsDeleted || p.Count <= 0 || p.Count > maxStock {
			continue
		}
		items = append(items, r.summarize(p))
		if limit > 0 && len(items) == limit {
			break
		}
	}
	return items, nil
}

func (r *MockCatalogRepository) Banners(ctx context.Context, limit int) ([]catalog.ProductSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.live(catalog.Filter{})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (r *MockCatalogRepository) Categories(ctx context.Context) ([]catalog.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []catalog.Category
	for _, c := range r.categories {
		if !c.IsDeleted {
			result = append(result, c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Title < result[j].Title })
	return result, nil
}

func (r *MockCatalogRepository) Tags(ctx context.Context) ([]catalog.Tag, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []catalog.Tag
	for _, t := range r.tags {
		result = append(result, t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *MockCatalogRepository) Specifications(ctx context.Context, productID string) ([]catalog.Specification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]catalog.Specification(nil), r.specifications[productID]...), nil
}

func (r *MockCatalogRepository) Reviews(ctx context.Context, productID string) ([]catalog.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]catalog.Review(nil), r.reviews[productID]...), nil
}

func (r *MockCatalogRepository) SaveReview(ctx context.Context, review *catalog.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if review.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		review.ID = id.String()
	}
	r.reviews[review.ProductID] = append(r.reviews[review.ProductID], *review)
	return nil
}

func (r *MockCatalogRepository) Sales(ctx context.Context, page catalog.Page) ([]catalog.Sale, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := int64(len(r.sales))
	items := append([]catalog.Sale(nil), r.sales...)
	sort.Slice(items, func(i, j int) bool { return items[i].DateFrom.Before(items[j].DateFrom) })

	if page.Size > 0 {
		offset := page.Offset()
		if offset >= len(items) {
			return nil, total, nil
		}
		end := offset + page.Size
		if end > len(items) {
			end = len(items)
		}
		items = items[offset:end]
	}
	return items, total, nil
}

var _ catalog.Repository = (*MockCatalogRepository)(nil)
