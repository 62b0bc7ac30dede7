package currency

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var suffixes = []string{"", "K", "M", "B", "T", "AA", "AB", "AC", "AD", "AE", "AF"}

var thousand = decimal.NewFromInt(1000)

// Humanize formats d for display: "999", "1.23K", "4.56AA", then "7.89e40"
// once the suffix table runs out. Mantissas are truncated, never rounded up.
func Humanize(d decimal.Decimal) string {
	if d.Sign() < 0 {
		return "-" + Humanize(d.Neg())
	}
	if d.LessThan(thousand) {
		return d.Floor().String()
	}

	exp := d.NumDigits() + int(d.Exponent()) - 1
	group := exp / 3
	if group >= len(suffixes) {
		mantissa := d.Shift(int32(-exp)).Truncate(2)
		return fmt.Sprintf("%se%d", mantissa.StringFixed(2), exp)
	}

	mantissa := d.Shift(int32(-group * 3)).Truncate(2)
	return mantissa.StringFixed(2) + suffixes[group]
}
