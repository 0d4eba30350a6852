package basket

import (
	"context"
	"testing"

	"github.com/example/storefront/domain/catalog"
	"github.com/example/storefront/domain/session"
	"github.com/example/storefront/domain/shared"
	"github.com/example/storefront/infrastructure/persistence/mocks"
	infrasession "github.com/example/storefront/infrastructure/session"
	apperrors "github.com/example/storefront/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	service     *Service
	catalogRepo *mocks.MockCatalogRepository
	basketRepo  *mocks.MockBasketRepository
	sessions    *infrasession.MemoryStore
}

func newFixture() *fixture {
	catalogRepo := mocks.NewMockCatalogRepository()
	basketRepo := mocks.NewMockBasketRepository()
	sessions := infrasession.NewMemoryStore()
	return &fixture{
		service:     NewService(catalogRepo, basketRepo, sessions),
		catalogRepo: catalogRepo,
		basketRepo:  basketRepo,
		sessions:    sessions,
	}
}

func (f *fixture) seedProduct(t *testing.T, id string, price int64) {
	t.Helper()
	err := f.catalogRepo.SaveProduct(context.Background(), &catalog.Product{
		ID:    id,
		Title: "product " + id,
		Price: shared.NewMoney(price),
		Count: 10,
	})
	require.NoError(t, err)
}

func authOwner() session.Context {
	return session.Context{SessionID: "sess-1", UserID: "user-1"}
}

func anonOwner() session.Context {
	return session.Context{SessionID: "sess-1"}
}

func TestAddMergesQuantities(t *testing.T) {
	f := newFixture()
	f.seedProduct(t, "p1", 1000)
	ctx := context.Background()

	_, err := f.service.Add(ctx, authOwner(), "p1", 2)
	require.NoError(t, err)
	items, err := f.service.Add(ctx, authOwner(), "p1", 3)
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
	assert.Equal(t, int64(5000), items[0].Price)
	assert.Equal(t, "p1", items[0].Product.ID)
}

func TestAddUnknownProduct(t *testing.T) {
	f := newFixture()

	_, err := f.service.Add(context.Background(), authOwner(), "ghost", 1)
	assert.True(t, apperrors.Is(err, apperrors.CodeProductNotFound))
}

func TestAddInvalidQuantity(t *testing.T) {
	f := newFixture()
	f.seedProduct(t, "p1", 1000)

	_, err := f.service.Add(context.Background(), authOwner(), "p1", 0)
	require.True(t, apperrors.Is(err, apperrors.CodeValidation))
	assert.Contains(t, apperrors.AsAppError(err).Fields, "count")
}

func TestRemoveDropsLineAtZero(t *testing.T) {
	f := newFixture()
	f.seedProduct(t, "p1", 1000)
	ctx := context.Background()

	_, err := f.service.Add(ctx, authOwner(), "p1", 2)
	require.NoError(t, err)

	items, err := f.service.Remove(ctx, authOwner(), "p1", 5)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestRemoveAbsentLine(t *testing.T) {
	f := newFixture()
	f.seedProduct(t, "p1", 1000)

	_, err := f.service.Remove(context.Background(), authOwner(), "p1", 1)
	assert.True(t, apperrors.Is(err, apperrors.CodeNotFound))
}

func TestRemoveUnknownProduct(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.service.Remove(ctx, authOwner(), "ghost", 1)
	assert.True(t, apperrors.Is(err, apperrors.CodeProductNotFound))

	_, err = f.service.Remove(ctx, anonOwner(), "ghost", 1)
	assert.True(t, apperrors.Is(err, apperrors.CodeProductNotFound))
}

func TestAnonymousBasketLivesInSession(t *testing.T) {
	f := newFixture()
	f.seedProduct(t, "p1", 1500)
	ctx := context.Background()

	items, err := f.service.Add(ctx, anonOwner(), "p1", 2)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(3000), items[0].Price)

	// nothing reaches the database basket
	lines, err := f.basketRepo.ListByUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, lines)

	items, err = f.service.Remove(ctx, anonOwner(), "p1", 2)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestAnonymousRemoveAbsentIsNoop(t *testing.T) {
	f := newFixture()
	f.seedProduct(t, "p1", 1000)

	// a real product that never entered the session basket
	items, err := f.service.Remove(context.Background(), anonOwner(), "p1", 1)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestGetSkipsWithdrawnProducts(t *testing.T) {
	f := newFixture()
	f.seedProduct(t, "p1", 1000)
	f.seedProduct(t, "p2", 2000)
	ctx := context.Background()

	_, err := f.service.Add(ctx, authOwner(), "p1", 1)
	require.NoError(t, err)
	_, err = f.service.Add(ctx, authOwner(), "p2", 1)
	require.NoError(t, err)

	// withdraw p1 after it entered the basket
	err = f.catalogRepo.SaveProduct(ctx, &catalog.Product{
		ID:        "p1",
		Title:     "product p1",
		Price:     shared.NewMoney(1000),
		IsDeleted: true,
	})
	require.NoError(t, err)

	items, err := f.service.Get(ctx, authOwner())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "p2", items[0].Product.ID)
}

func TestMergeSessionIntoUser(t *testing.T) {
	f := newFixture()
	f.seedProduct(t, "p1", 1000)
	f.seedProduct(t, "p2", 2000)
	ctx := context.Background()

	_, err := f.service.Add(ctx, anonOwner(), "p1", 2)
	require.NoError(t, err)
	_, err = f.service.Add(ctx, authOwner(), "p1", 1)
	require.NoError(t, err)
	_, err = f.service.Add(ctx, anonOwner(), "p2", 1)
	require.NoError(t, err)

	require.NoError(t, f.service.MergeSessionIntoUser(ctx, "sess-1", "user-1"))

	items, err := f.service.Get(ctx, authOwner())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 3, items[0].Quantity) // p1: 1 in db + 2 from session
	assert.Equal(t, 1, items[1].Quantity)

	stored, err := f.sessions.Basket(ctx, "sess-1")
	require.NoError(t, err)
	assert.Empty(t, stored)
}
