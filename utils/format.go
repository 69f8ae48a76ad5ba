package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatRupiah renders an amount as "Rp 1.234.567" (whole rupiah, dot
// thousands separator). Negative amounts keep a leading minus.
func FormatRupiah(amount decimal.Decimal) string {
	rounded := amount.Round(0)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Neg()
	}
	digits := rounded.StringFixed(0)

	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	return "Rp " + sign + b.String()
}
