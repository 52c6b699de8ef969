package domain

import "fmt"

// FormatPaise renders an amount of paise as rupees with two decimals.
// Rounding happens only here; everything else works in integer paise.
func FormatPaise(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%s%d.%02d", sign, amount/100, amount%100)
}
