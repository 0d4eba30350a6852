package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/example/storefront/domain/catalog"
	"github.com/example/storefront/domain/shared"
	"github.com/example/storefront/infrastructure/persistence/mocks"
	apperrors "github.com/example/storefront/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	service *Service
	repo    *mocks.MockCatalogRepository
}

func newFixture() *fixture {
	repo := mocks.NewMockCatalogRepository()
	return &fixture{service: NewService(repo), repo: repo}
}

func (f *fixture) seedProduct(t *testing.T, p catalog.Product) {
	t.Helper()
	require.NoError(t, f.repo.SaveProduct(context.Background(), &p))
}

func (f *fixture) seedReview(t *testing.T, productID string, rate int) {
	t.Helper()
	require.NoError(t, f.repo.SaveReview(context.Background(), &catalog.Review{
		ProductID: productID,
		Author:    "reviewer",
		Rate:      rate,
		CreatedAt: time.Now(),
	}))
}

func TestCategoriesTree(t *testing.T) {
	f := newFixture()
	f.repo.AddCategory(catalog.Category{ID: "c1", Title: "Electronics"})
	f.repo.AddCategory(catalog.Category{ID: "c2", Title: "Phones", ParentID: "c1"})
	f.repo.AddCategory(catalog.Category{ID: "c3", Title: "Removed", IsDeleted: true})

	tree, err := f.service.Categories(context.Background())
	require.NoError(t, err)
	require.Len(t, tree, 1)
	assert.Equal(t, "Electronics", tree[0].Title)
	require.Len(t, tree[0].Subcategories, 1)
	assert.Equal(t, "Phones", tree[0].Subcategories[0].Title)
}

func TestListFiltersByNameAndPrice(t *testing.T) {
	f := newFixture()
	f.seedProduct(t, catalog.Product{ID: "p1", Title: "Red Phone", Price: shared.NewMoney(50000), Count: 5})
	f.seedProduct(t, catalog.Product{ID: "p2", Title: "Blue Phone", Price: shared.NewMoney(150000), Count: 5})
	f.seedProduct(t, catalog.Product{ID: "p3", Title: "Lamp", Price: shared.NewMoney(70000), Count: 5})

	maxPrice := shared.NewMoney(100000)
	resp, err := f.service.List(context.Background(), catalog.Filter{
		NameContains: "phone",
		MaxPrice:     &maxPrice,
	}, NormalizePage(1, 20))
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "p1", resp.Items[0].ID)
}

func TestListFiltersAvailableOnly(t *testing.T) {
	f := newFixture()
	f.seedProduct(t, catalog.Product{ID: "p1", Title: "In stock", Price: shared.NewMoney(1000), Count: 1})
	f.seedProduct(t, catalog.Product{ID: "p2", Title: "Sold out", Price: shared.NewMoney(1000), Count: 0})

	resp, err := f.service.List(context.Background(), catalog.Filter{AvailableOnly: true}, NormalizePage(1, 20))
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "p1", resp.Items[0].ID)
}

func TestListFiltersByTag(t *testing.T) {
	f := newFixture()
	sale := catalog.Tag{ID: "t1", Name: "sale"}
	f.seedProduct(t, catalog.Product{ID: "p1", Title: "Tagged", Price: shared.NewMoney(1000), Count: 1, Tags: []catalog.Tag{sale}})
	f.seedProduct(t, catalog.Product{ID: "p2", Title: "Plain", Price: shared.NewMoney(1000), Count: 1})

	resp, err := f.service.List(context.Background(), catalog.Filter{TagIDs: []string{"t1"}}, NormalizePage(1, 20))
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "p1", resp.Items[0].ID)
}

func TestListSortsByPrice(t *testing.T) {
	f := newFixture()
	f.seedProduct(t, catalog.Product{ID: "p1", Title: "Mid", Price: shared.NewMoney(2000), Count: 1})
	f.seedProduct(t, catalog.Product{ID: "p2", Title: "Cheap", Price: shared.NewMoney(1000), Count: 1})
	f.seedProduct(t, catalog.Product{ID: "p3", Title: "Dear", Price: shared.NewMoney(3000), Count: 1})

	resp, err := f.service.List(context.Background(), catalog.Filter{
		SortField:      catalog.SortByPrice,
		SortDescending: true,
	}, NormalizePage(1, 20))
	require.NoError(t, err)
	require.Len(t, resp.Items, 3)
	assert.Equal(t, "p3", resp.Items[0].ID)
	assert.Equal(t, "p2", resp.Items[2].ID)
}

func TestListPagination(t *testing.T) {
	f := newFixture()
	for _, id := range []string{"p1", "p2", "p3", "p4", "p5"} {
		f.seedProduct(t, catalog.Product{ID: id, Title: id, Price: shared.NewMoney(1000), Count: 1})
	}

	resp, err := f.service.List(context.Background(), catalog.Filter{}, NormalizePage(2, 2))
	require.NoError(t, err)
	assert.Len(t, resp.Items, 2)
	assert.Equal(t, 2, resp.CurrentPage)
	assert.Equal(t, 3, resp.LastPage)

	resp, err = f.service.List(context.Background(), catalog.Filter{}, NormalizePage(3, 2))
	require.NoError(t, err)
	assert.Len(t, resp.Items, 1)
}

func TestNormalizePageClamps(t *testing.T) {
	page := NormalizePage(0, -5)
	assert.Equal(t, 1, page.Number)
	assert.Equal(t, 20, page.Size)

	page = NormalizePage(2, 1000)
	assert.Equal(t, 100, page.Size)
}

func TestPopularOrdersByRating(t *testing.T) {
	f := newFixture()
	f.seedProduct(t, catalog.Product{ID: "p1", Title: "Good", Price: shared.NewMoney(1000), Count: 1})
	f.seedProduct(t, catalog.Product{ID: "p2", Title: "Great", Price: shared.NewMoney(1000), Count: 1})
	f.seedReview(t, "p1", 3)
	f.seedReview(t, "p2", 5)

	items, err := f.service.Popular(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "p2", items[0].ID)
	assert.Equal(t, float64(5), items[0].Rating)
	assert.Equal(t, 1, items[0].Reviews)
}

func TestLimitedReturnsLowStock(t *testing.T) {
	f := newFixture()
	f.seedProduct(t, catalog.Product{ID: "p1", Title: "Scarce", Price: shared.NewMoney(1000), Count: 2})
	f.seedProduct(t, catalog.Product{ID: "p2", Title: "Plenty", Price: shared.NewMoney(1000), Count: 50})
	f.seedProduct(t, catalog.Product{ID: "p3", Title: "Gone", Price: shared.NewMoney(1000), Count: 0})

	items, err := f.service.Limited(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "p1", items[0].ID)
}

func TestProductDetail(t *testing.T) {
	f := newFixture()
	f.seedProduct(t, catalog.Product{
		ID:              "p1",
		Title:           "Phone",
		FullDescription: "A long story",
		Price:           shared.NewMoney(1000),
		Count:           1,
	})
	f.repo.AddSpecification(catalog.Specification{ProductID: "p1", Name: "Weight", Value: "180g"})
	f.seedReview(t, "p1", 4)

	detail, err := f.service.Product(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "A long story", detail.FullDescription)
	require.Len(t, detail.Specifications, 1)
	assert.Equal(t, "Weight", detail.Specifications[0].Name)
	require.Len(t, detail.ReviewList, 1)
	assert.Equal(t, 4, detail.ReviewList[0].Rate)
}

func TestProductNotFound(t *testing.T) {
	f := newFixture()
	f.seedProduct(t, catalog.Product{ID: "p1", Title: "Gone", Price: shared.NewMoney(1000), IsDeleted: true})

	_, err := f.service.Product(context.Background(), "p1")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestAddReview(t *testing.T) {
	f := newFixture()
	f.seedProduct(t, catalog.Product{ID: "p1", Title: "Phone", Price: shared.NewMoney(1000), Count: 1})

	reviews, err := f.service.AddReview(context.Background(), "p1", ReviewRequest{
		Author: "Jane",
		Text:   "Works fine",
		Rate:   5,
	})
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, "Jane", reviews[0].Author)
}

func TestAddReviewRejectsBadRate(t *testing.T) {
	f := newFixture()
	f.seedProduct(t, catalog.Product{ID: "p1", Title: "Phone", Price: shared.NewMoney(1000), Count: 1})

	_, err := f.service.AddReview(context.Background(), "p1", ReviewRequest{Author: "Jane", Rate: 6})
	require.True(t, apperrors.Is(err, apperrors.CodeValidation))
	assert.Contains(t, apperrors.AsAppError(err).Fields, "rate")
}

func TestSalesJoinsProducts(t *testing.T) {
	f := newFixture()
	f.seedProduct(t, catalog.Product{ID: "p1", Title: "Phone", Price: shared.NewMoney(100000), Count: 1})
	now := time.Now()
	f.repo.AddSale(catalog.Sale{ID: "s1", ProductID: "p1", SalePrice: shared.NewMoney(80000), DateFrom: now, DateTo: now.Add(24 * time.Hour)})
	f.repo.AddSale(catalog.Sale{ID: "s2", ProductID: "ghost", SalePrice: shared.NewMoney(1), DateFrom: now, DateTo: now})

	resp, err := f.service.Sales(context.Background(), NormalizePage(1, 20))
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Phone", resp.Items[0].Title)
	assert.Equal(t, int64(100000), resp.Items[0].Price)
	assert.Equal(t, int64(80000), resp.Items[0].SalePrice)
}
