package domain

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// Money is an amount in the smallest currency unit.
type Money int64

// Add returns m+o or ErrAmountOverflow.
func (m Money) Add(o Money) (Money, error) {
	if (o > 0 && m > math.MaxInt64-o) || (o < 0 && m < math.MinInt64-o) {
		return m, ErrAmountOverflow
	}
	return m + o, nil
}

// Sub returns m-o or ErrAmountOverflow.
func (m Money) Sub(o Money) (Money, error) {
	if (o > 0 && m < math.MinInt64+o) || (o < 0 && m > math.MaxInt64+o) {
		return m, ErrAmountOverflow
	}
	return m - o, nil
}

// Decimal renders m in major units, two decimal places.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -2)
}

func (m Money) String() string {
	return strconv.FormatInt(int64(m), 10)
}
