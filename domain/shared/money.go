package shared

import "fmt"

// Money represents an amount in minor currency units (kopecks). Storing
// integers instead of decimals keeps arithmetic exact across snapshots and
// surcharge calculations.
type Money struct {
	amount int64
}

// NewMoney creates a Money value from minor units.
func NewMoney(amount int64) Money {
	return Money{amount: amount}
}

// Amount returns the value in minor units.
func (m Money) Amount() int64 { return m.amount }

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool { return m.amount == 0 }

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool { return m.amount < 0 }

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount + other.amount}
}

// Sub returns the difference of two amounts.
func (m Money) Sub(other Money) Money {
	return Money{amount: m.amount - other.amount}
}

// MulInt multiplies the amount by a quantity, failing on overflow.
func (m Money) MulInt(n int) (Money, error) {
	if n == 0 || m.amount == 0 {
		return Money{}, nil
	}
	result := m.amount * int64(n)
	if result/int64(n) != m.amount {
		return Money{}, fmt.Errorf("money overflow: %d * %d", m.amount, n)
	}
	return Money{amount: result}, nil
}

// LessThan reports whether m < other.
func (m Money) LessThan(other Money) bool { return m.amount < other.amount }

// Equals reports whether two amounts are equal.
func (m Money) Equals(other Money) bool { return m.amount == other.amount }

// String formats the amount as major.minor units, e.g. "2000.00".
func (m Money) String() string {
	units := m.amount / 100
	cents := m.amount % 100
	if cents < 0 {
		cents = -cents
	}
	return fmt.Sprintf("%d.%02d", units, cents)
}
