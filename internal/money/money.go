// Package money formats decimal amounts as US currency.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatUSD renders d as US currency with two decimal places and
// thousands separators, e.g. "$1,234.50".
func FormatUSD(d decimal.Decimal) string {
	fixed := d.Abs().StringFixed(2)

	whole, frac, _ := strings.Cut(fixed, ".")
	var b strings.Builder
	if d.IsNegative() {
		b.WriteString("-")
	}
	b.WriteString("$")
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteString(",")
		}
		b.WriteRune(r)
	}
	b.WriteString(".")
	b.WriteString(frac)
	return b.String()
}
