package order

import (
	"errors"
	"testing"

	"github.com/example/storefront/domain/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSnapshots() []LineSnapshot {
	return []LineSnapshot{
		{ProductID: "p1", Count: 2, UnitPrice: shared.NewMoney(100000)}, // 2 x 1000.00
		{ProductID: "p2", Count: 1, UnitPrice: shared.NewMoney(50000)},  // 1 x 500.00
	}
}

func TestNewSnapshotsPrices(t *testing.T) {
	o, err := New("user-1", testSnapshots())
	require.NoError(t, err)

	lines := o.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, int64(200000), lines[0].Price.Amount())
	assert.Equal(t, int64(50000), lines[1].Price.Amount())
	assert.Equal(t, int64(250000), o.TotalCost().Amount())
	assert.Equal(t, StatusCreated, o.Status())
	assert.Equal(t, DeliveryOrdinary, o.Delivery())
	assert.Equal(t, DefaultPaymentType, o.PaymentType())
}

func TestNewRejectsEmptyBasket(t *testing.T) {
	_, err := New("user-1", nil)
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))
}

func TestNewRejectsNonPositiveCount(t *testing.T) {
	_, err := New("user-1", []LineSnapshot{
		{ProductID: "p1", Count: 0, UnitPrice: shared.NewMoney(100)},
	})
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))
}

func TestClaim(t *testing.T) {
	o, err := New("", testSnapshots())
	require.NoError(t, err)

	require.NoError(t, o.Claim("user-1", "Jane Doe"))
	assert.Equal(t, "user-1", o.UserID())
	assert.Equal(t, "Jane Doe", o.FullName())

	err = o.Claim("user-2", "Other Name")
	assert.True(t, errors.Is(err, shared.ErrConflict))
	assert.Equal(t, "user-1", o.UserID())
}

func TestClaimKeepsExistingName(t *testing.T) {
	o, err := New("", testSnapshots())
	require.NoError(t, err)
	o.Contact("Existing Name", "", "")

	require.NoError(t, o.Claim("user-1", "Jane Doe"))
	assert.Equal(t, "Existing Name", o.FullName())
}

func TestConfirmOrdinaryBelowThreshold(t *testing.T) {
	o, err := New("user-1", []LineSnapshot{
		{ProductID: "p1", Count: 1, UnitPrice: shared.NewMoney(100000)}, // 1000.00
	})
	require.NoError(t, err)

	update := ShippingUpdate{
		City:         "Riga",
		Address:      "Brivibas iela 1",
		DeliveryType: "ordinary",
	}
	require.NoError(t, o.Confirm(update, DefaultTariff()))

	// 1000.00 < 2000.00 threshold, so +200.00
	assert.Equal(t, int64(120000), o.TotalCost().Amount())
	assert.Equal(t, StatusConfirmed, o.Status())
	assert.Equal(t, "Riga", o.City())
}

func TestConfirmOrdinaryAtThreshold(t *testing.T) {
	o, err := New("user-1", []LineSnapshot{
		{ProductID: "p1", Count: 1, UnitPrice: shared.NewMoney(200000)}, // exactly 2000.00
	})
	require.NoError(t, err)

	require.NoError(t, o.Confirm(ShippingUpdate{DeliveryType: "ordinary"}, DefaultTariff()))
	assert.Equal(t, int64(200000), o.TotalCost().Amount())
}

func TestConfirmExpressAlwaysCharged(t *testing.T) {
	o, err := New("user-1", []LineSnapshot{
		{ProductID: "p1", Count: 1, UnitPrice: shared.NewMoney(900000)}, // far above threshold
	})
	require.NoError(t, err)

	require.NoError(t, o.Confirm(ShippingUpdate{DeliveryType: "express"}, DefaultTariff()))
	assert.Equal(t, int64(950000), o.TotalCost().Amount())
}

func TestConfirmTwiceConflictsAndKeepsTotal(t *testing.T) {
	o, err := New("user-1", testSnapshots())
	require.NoError(t, err)

	require.NoError(t, o.Confirm(ShippingUpdate{DeliveryType: "ordinary"}, DefaultTariff()))
	total := o.TotalCost()

	err = o.Confirm(ShippingUpdate{DeliveryType: "express"}, DefaultTariff())
	assert.True(t, errors.Is(err, shared.ErrConflict))
	assert.True(t, o.TotalCost().Equals(total))
	assert.Equal(t, StatusConfirmed, o.Status())
}

func TestConfirmUnknownDeliveryType(t *testing.T) {
	o, err := New("user-1", testSnapshots())
	require.NoError(t, err)

	err = o.Confirm(ShippingUpdate{DeliveryType: "teleport"}, DefaultTariff())
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))
	assert.Equal(t, StatusCreated, o.Status())
}

func TestConfirmKeepsFieldsOnEmptyUpdate(t *testing.T) {
	o, err := New("user-1", testSnapshots())
	require.NoError(t, err)
	o.Contact("Jane Doe", "jane@example.com", "+371200000")

	require.NoError(t, o.Confirm(ShippingUpdate{}, DefaultTariff()))
	assert.Equal(t, "Jane Doe", o.FullName())
	assert.Equal(t, "jane@example.com", o.Email())
}

func TestMarkPaid(t *testing.T) {
	o, err := New("user-1", testSnapshots())
	require.NoError(t, err)
	require.NoError(t, o.Confirm(ShippingUpdate{}, DefaultTariff()))

	require.NoError(t, o.MarkPaid())
	assert.Equal(t, StatusPaid, o.Status())

	err = o.MarkPaid()
	assert.True(t, errors.Is(err, shared.ErrConflict))
}

func TestRebuildRoundTrip(t *testing.T) {
	o, err := New("user-1", testSnapshots())
	require.NoError(t, err)
	o.Contact("Jane Doe", "jane@example.com", "+371200000")

	rebuilt := Rebuild(o.ToSnapshot())
	assert.Equal(t, o.ID(), rebuilt.ID())
	assert.Equal(t, o.UserID(), rebuilt.UserID())
	assert.Equal(t, o.FullName(), rebuilt.FullName())
	assert.True(t, o.TotalCost().Equals(rebuilt.TotalCost()))
	assert.Equal(t, o.Lines(), rebuilt.Lines())
}

func TestSurchargeRules(t *testing.T) {
	tariff := DefaultTariff()

	tests := []struct {
		name     string
		delivery DeliveryType
		total    int64
		want     int64
	}{
		{"ordinary below threshold", DeliveryOrdinary, 199999, 20000},
		{"ordinary at threshold", DeliveryOrdinary, 200000, 0},
		{"ordinary above threshold", DeliveryOrdinary, 500000, 0},
		{"express below threshold", DeliveryExpress, 100, 50000},
		{"express above threshold", DeliveryExpress, 900000, 50000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tariff.Surcharge(tt.delivery, shared.NewMoney(tt.total))
			assert.Equal(t, tt.want, got.Amount())
		})
	}
}
