package order

import "github.com/example/storefront/domain/shared"

// Tariff holds the global delivery pricing parameters. It is configuration,
// not per-order state.
type Tariff struct {
	CostOrdinary          shared.Money
	CostExpress           shared.Money
	FreeDeliveryThreshold shared.Money
}

// DefaultTariff mirrors the storefront's historical pricing: 200.00 for
// ordinary delivery below a 2000.00 threshold, 500.00 for express.
func DefaultTariff() Tariff {
	return Tariff{
		CostOrdinary:          shared.NewMoney(20000),
		CostExpress:           shared.NewMoney(50000),
		FreeDeliveryThreshold: shared.NewMoney(200000),
	}
}

// Surcharge returns the delivery cost to add to an order total. Ordinary
// delivery is free at or above the threshold; express always costs extra.
func (t Tariff) Surcharge(deliveryType DeliveryType, total shared.Money) shared.Money {
	switch deliveryType {
	case DeliveryExpress:
		return t.CostExpress
	case DeliveryOrdinary:
		if total.LessThan(t.FreeDeliveryThreshold) {
			return t.CostOrdinary
		}
	}
	return shared.NewMoney(0)
}
