package utils

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// FormatMoney renders an amount in dollars with two decimals.
func FormatMoney(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}

// Pluralize returns "1 item" or "n items".
func Pluralize(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
