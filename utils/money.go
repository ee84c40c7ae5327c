package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatGBP formats an amount as a display price, e.g. "£1,234.50".
func FormatGBP(amount decimal.Decimal) string {
	neg := amount.IsNegative()
	fixed := amount.Abs().StringFixed(2)

	whole := fixed
	frac := ""
	if dot := strings.IndexByte(fixed, '.'); dot >= 0 {
		whole, frac = fixed[:dot], fixed[dot:]
	}

	var b strings.Builder
	b.Grow(len(fixed) + len(whole)/3 + 3)
	if neg {
		b.WriteString("-£")
	} else {
		b.WriteString("£")
	}

	for i, digit := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	b.WriteString(frac)

	return b.String()
}
