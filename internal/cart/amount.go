package cart

import (
	"fmt"
	"math"
)

// Amount is a money value in cents.
type Amount int64

// AmountOf converts a catalog price to cents, rounding half away from zero.
func AmountOf(price float64) Amount {
	return Amount(math.Round(price * 100))
}

// String formats the amount with two decimals, e.g. "25.50".
func (a Amount) String() string {
	sign := ""
	if a < 0 {
		sign = "-"
		a = -a
	}
	return fmt.Sprintf("%s%d.%02d", sign, int64(a)/100, int64(a)%100)
}

func (a Amount) Float64() float64 {
	return float64(a) / 100
}
