package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMoney_Add(t *testing.T) {
	got, err := Money(5).Add(7)
	assert.NoError(t, err)
	assert.Equal(t, Money(12), got)

	_, err = Money(math.MaxInt64).Add(1)
	assert.ErrorIs(t, err, ErrAmountOverflow)

	_, err = Money(math.MinInt64).Add(-1)
	assert.ErrorIs(t, err, ErrAmountOverflow)
}

func TestMoney_Sub(t *testing.T) {
	got, err := Money(5).Sub(7)
	assert.NoError(t, err)
	assert.Equal(t, Money(-2), got)

	_, err = Money(math.MinInt64).Sub(1)
	assert.ErrorIs(t, err, ErrAmountOverflow)

	_, err = Money(math.MaxInt64).Sub(-1)
	assert.ErrorIs(t, err, ErrAmountOverflow)
}

func TestMoney_Decimal(t *testing.T) {
	assert.Equal(t, "-10", Money(-1000).Decimal().String())
	assert.Equal(t, "-10.00", Money(-1000).Decimal().StringFixed(2))
	assert.Equal(t, "1.05", Money(105).Decimal().StringFixed(2))
}
