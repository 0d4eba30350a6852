package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoneyArithmetic(t *testing.T) {
	a := NewMoney(150050)
	b := NewMoney(49950)

	assert.Equal(t, int64(200000), a.Add(b).Amount())
	assert.Equal(t, int64(100100), a.Sub(b).Amount())
	assert.True(t, b.LessThan(a))
	assert.False(t, a.LessThan(b))
	assert.True(t, a.Equals(NewMoney(150050)))
}

func TestMoneyMulInt(t *testing.T) {
	price := NewMoney(1999)

	total, err := price.MulInt(3)
	require.NoError(t, err)
	assert.Equal(t, int64(5997), total.Amount())

	zero, err := price.MulInt(0)
	require.NoError(t, err)
	assert.True(t, zero.IsZero())
}

func TestMoneyMulIntOverflow(t *testing.T) {
	huge := NewMoney(1 << 62)
	_, err := huge.MulInt(4)
	assert.Error(t, err)
}

func TestMoneyString(t *testing.T) {
	assert.Equal(t, "2000.00", NewMoney(200000).String())
	assert.Equal(t, "0.05", NewMoney(5).String())
	assert.Equal(t, "0.00", NewMoney(0).String())
}

func TestMoneySigns(t *testing.T) {
	assert.True(t, NewMoney(-1).IsNegative())
	assert.False(t, NewMoney(0).IsNegative())
	assert.True(t, NewMoney(0).IsZero())
}
