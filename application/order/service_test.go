package order

import (
	"context"
	"testing"

	"github.com/example/storefront/domain/account"
	"github.com/example/storefront/domain/catalog"
	"github.com/example/storefront/domain/order"
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
	orderRepo   *mocks.MockOrderRepository
	basketRepo  *mocks.MockBasketRepository
	catalogRepo *mocks.MockCatalogRepository
	userRepo    *mocks.MockUserRepository
	sessions    *infrasession.MemoryStore
}

func newFixture() *fixture {
	orderRepo := mocks.NewMockOrderRepository()
	basketRepo := mocks.NewMockBasketRepository()
	catalogRepo := mocks.NewMockCatalogRepository()
	userRepo := mocks.NewMockUserRepository()
	sessions := infrasession.NewMemoryStore()
	service := NewService(
		orderRepo,
		basketRepo,
		catalogRepo,
		userRepo,
		sessions,
		mocks.NewMockUnitOfWork(),
		order.DefaultTariff(),
	)
	return &fixture{
		service:     service,
		orderRepo:   orderRepo,
		basketRepo:  basketRepo,
		catalogRepo: catalogRepo,
		userRepo:    userRepo,
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

func (f *fixture) seedUser(t *testing.T) *account.User {
	t.Helper()
	user := &account.User{
		ID:       "user-1",
		Username: "jdoe",
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		Phone:    "+371200000",
	}
	require.NoError(t, f.userRepo.Save(context.Background(), user))
	return user
}

func authOwner() session.Context {
	return session.Context{SessionID: "sess-1", UserID: "user-1"}
}

func anonOwner() session.Context {
	return session.Context{SessionID: "sess-1"}
}

func TestCreateFromUserBasket(t *testing.T) {
	f := newFixture()
	f.seedUser(t)
	f.seedProduct(t, "p1", 100000)
	f.seedProduct(t, "p2", 50000)
	ctx := context.Background()

	require.NoError(t, f.basketRepo.AddQuantity(ctx, "user-1", "p1", 2))
	require.NoError(t, f.basketRepo.AddQuantity(ctx, "user-1", "p2", 1))

	orderID, err := f.service.Create(ctx, authOwner())
	require.NoError(t, err)
	require.NotEmpty(t, orderID)

	// basket was drained
	lines, err := f.basketRepo.ListByUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, lines)

	resp, err := f.service.Get(ctx, authOwner(), orderID)
	require.NoError(t, err)
	assert.Equal(t, int64(250000), resp.TotalCost)
	assert.Equal(t, "Jane Doe", resp.FullName)
	assert.Equal(t, "jane@example.com", resp.Email)
	assert.Equal(t, string(order.StatusCreated), resp.Status)
	require.Len(t, resp.Products, 2)
	assert.Equal(t, "product p1", resp.Products[0].Title)
}

func TestCreateEmptyBasket(t *testing.T) {
	f := newFixture()
	f.seedUser(t)

	_, err := f.service.Create(context.Background(), authOwner())
	assert.True(t, apperrors.Is(err, apperrors.CodeEmptyBasket))
}

func TestLinePricesAreSnapshots(t *testing.T) {
	f := newFixture()
	f.seedUser(t)
	f.seedProduct(t, "p1", 100000)
	ctx := context.Background()

	require.NoError(t, f.basketRepo.AddQuantity(ctx, "user-1", "p1", 1))
	orderID, err := f.service.Create(ctx, authOwner())
	require.NoError(t, err)

	// the catalog price changes after the order was created
	f.seedProduct(t, "p1", 999999)

	resp, err := f.service.Get(ctx, authOwner(), orderID)
	require.NoError(t, err)
	require.Len(t, resp.Products, 1)
	assert.Equal(t, int64(100000), resp.Products[0].Price)
	assert.Equal(t, int64(100000), resp.TotalCost)
}

func TestCreateAnonymousParksOrderInSession(t *testing.T) {
	f := newFixture()
	f.seedProduct(t, "p1", 100000)
	ctx := context.Background()

	err := f.sessions.SaveBasket(ctx, "sess-1", []session.BasketEntry{
		{ProductID: "p1", Quantity: 2},
	})
	require.NoError(t, err)

	orderID, err := f.service.Create(ctx, anonOwner())
	require.NoError(t, err)

	pending, err := f.sessions.PendingOrder(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, orderID, pending)

	stored, err := f.sessions.Basket(ctx, "sess-1")
	require.NoError(t, err)
	assert.Empty(t, stored)

	resp, err := f.service.Get(ctx, anonOwner(), orderID)
	require.NoError(t, err)
	assert.Equal(t, int64(200000), resp.TotalCost)
}

func TestAnonymousCannotSeeForeignOrder(t *testing.T) {
	f := newFixture()
	f.seedProduct(t, "p1", 100000)
	ctx := context.Background()

	require.NoError(t, f.sessions.SaveBasket(ctx, "sess-1", []session.BasketEntry{
		{ProductID: "p1", Quantity: 1},
	}))
	orderID, err := f.service.Create(ctx, anonOwner())
	require.NoError(t, err)

	other := session.Context{SessionID: "sess-2"}
	_, err = f.service.Get(ctx, other, orderID)
	assert.True(t, apperrors.Is(err, apperrors.CodeOrderNotFound))
}

func TestClaimRunsOnce(t *testing.T) {
	f := newFixture()
	user := f.seedUser(t)
	f.seedProduct(t, "p1", 100000)
	ctx := context.Background()

	require.NoError(t, f.sessions.SaveBasket(ctx, "sess-1", []session.BasketEntry{
		{ProductID: "p1", Quantity: 1},
	}))
	orderID, err := f.service.Create(ctx, anonOwner())
	require.NoError(t, err)

	require.NoError(t, f.service.Claim(ctx, "sess-1", user))

	o, err := f.orderRepo.FindByID(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, "user-1", o.UserID())
	assert.Equal(t, "Jane Doe", o.FullName())

	pending, err := f.sessions.PendingOrder(ctx, "sess-1")
	require.NoError(t, err)
	assert.Empty(t, pending)

	// an empty slot makes a second claim a no-op
	require.NoError(t, f.service.Claim(ctx, "sess-1", user))
}

func TestClaimStalePendingOrder(t *testing.T) {
	f := newFixture()
	user := f.seedUser(t)
	ctx := context.Background()

	require.NoError(t, f.sessions.SavePendingOrder(ctx, "sess-1", "ghost-order"))

	err := f.service.Claim(ctx, "sess-1", user)
	assert.True(t, apperrors.Is(err, apperrors.CodeOrderNotFound))

	// the stale reference was dropped either way
	pending, err := f.sessions.PendingOrder(ctx, "sess-1")
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestConfirmAddsSurchargeOnce(t *testing.T) {
	f := newFixture()
	f.seedUser(t)
	f.seedProduct(t, "p1", 100000)
	ctx := context.Background()

	require.NoError(t, f.basketRepo.AddQuantity(ctx, "user-1", "p1", 1))
	orderID, err := f.service.Create(ctx, authOwner())
	require.NoError(t, err)

	resp, err := f.service.Confirm(ctx, authOwner(), orderID, ShippingRequest{
		City:         "Riga",
		Address:      "Brivibas iela 1",
		DeliveryType: "ordinary",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(120000), resp.TotalCost)
	assert.Equal(t, string(order.StatusConfirmed), resp.Status)

	_, err = f.service.Confirm(ctx, authOwner(), orderID, ShippingRequest{DeliveryType: "express"})
	assert.True(t, apperrors.Is(err, apperrors.CodeOrderState))

	// total did not move on the rejected second confirmation
	got, err := f.service.Get(ctx, authOwner(), orderID)
	require.NoError(t, err)
	assert.Equal(t, int64(120000), got.TotalCost)
}

func TestPay(t *testing.T) {
	f := newFixture()
	f.seedUser(t)
	f.seedProduct(t, "p1", 300000)
	ctx := context.Background()

	require.NoError(t, f.basketRepo.AddQuantity(ctx, "user-1", "p1", 1))
	orderID, err := f.service.Create(ctx, authOwner())
	require.NoError(t, err)
	_, err = f.service.Confirm(ctx, authOwner(), orderID, ShippingRequest{DeliveryType: "ordinary"})
	require.NoError(t, err)

	card := CardRequest{Number: "12345678", Name: "JANE DOE", Month: "02", Year: "2027", Code: "123"}
	require.NoError(t, f.service.Pay(ctx, authOwner(), orderID, card))

	resp, err := f.service.Get(ctx, authOwner(), orderID)
	require.NoError(t, err)
	assert.Equal(t, string(order.StatusPaid), resp.Status)
	assert.Len(t, f.orderRepo.Payments(orderID), 1)

	err = f.service.Pay(ctx, authOwner(), orderID, card)
	assert.True(t, apperrors.Is(err, apperrors.CodeOrderState))
}

func TestPayRejectsInvalidCard(t *testing.T) {
	f := newFixture()
	f.seedUser(t)
	f.seedProduct(t, "p1", 300000)
	ctx := context.Background()

	require.NoError(t, f.basketRepo.AddQuantity(ctx, "user-1", "p1", 1))
	orderID, err := f.service.Create(ctx, authOwner())
	require.NoError(t, err)

	err = f.service.Pay(ctx, authOwner(), orderID, CardRequest{Number: "12345670"})
	require.True(t, apperrors.Is(err, apperrors.CodeValidation))
	fields := apperrors.AsAppError(err).Fields
	assert.Equal(t, "the number must not end with zero", fields["number"])
	assert.Contains(t, fields, "name")

	// the rejected attempt left no payment behind
	assert.Empty(t, f.orderRepo.Payments(orderID))
}

func TestPayRequiresAuthenticatedOwner(t *testing.T) {
	f := newFixture()
	f.seedUser(t)
	f.seedProduct(t, "p1", 300000)
	ctx := context.Background()

	require.NoError(t, f.basketRepo.AddQuantity(ctx, "user-1", "p1", 1))
	orderID, err := f.service.Create(ctx, authOwner())
	require.NoError(t, err)

	card := CardRequest{Number: "12345678", Name: "JANE DOE", Month: "02", Year: "2027", Code: "123"}

	err = f.service.Pay(ctx, anonOwner(), orderID, card)
	assert.True(t, apperrors.Is(err, apperrors.CodeUnauthorized))

	stranger := session.Context{SessionID: "sess-2", UserID: "user-2"}
	err = f.service.Pay(ctx, stranger, orderID, card)
	assert.True(t, apperrors.Is(err, apperrors.CodeOrderNotFound))
}

func TestListRequiresAuth(t *testing.T) {
	f := newFixture()

	_, err := f.service.List(context.Background(), anonOwner())
	assert.True(t, apperrors.Is(err, apperrors.CodeUnauthorized))
}

func TestListReturnsUserOrders(t *testing.T) {
	f := newFixture()
	f.seedUser(t)
	f.seedProduct(t, "p1", 100000)
	ctx := context.Background()

	require.NoError(t, f.basketRepo.AddQuantity(ctx, "user-1", "p1", 1))
	first, err := f.service.Create(ctx, authOwner())
	require.NoError(t, err)
	require.NoError(t, f.basketRepo.AddQuantity(ctx, "user-1", "p1", 2))
	_, err = f.service.Create(ctx, authOwner())
	require.NoError(t, err)

	orders, err := f.service.List(ctx, authOwner())
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, first, orders[len(orders)-1].ID) // newest first
}
