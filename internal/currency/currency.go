// Package currency holds the arbitrary-precision money helpers used by the
// economy: geometric powers, logarithms, exact square roots and the display
// format shown to players.
package currency

import (
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// Precision is the number of significant digits kept by geometric math
const Precision = 34

// DivisionPlaces bounds the fractional digits produced by Div
const DivisionPlaces = 40

var (
	Zero = decimal.Zero
	One  = decimal.NewFromInt(1)
)

// RoundSig rounds d to the given number of significant digits.
// Values that already fit are returned unchanged.
func RoundSig(d decimal.Decimal, digits int) decimal.Decimal {
	if d.IsZero() {
		return d
	}
	magnitude := d.NumDigits() + int(d.Exponent())
	return d.Round(int32(digits - magnitude))
}

// Pow raises base to the integer power n by repeated squaring
func Pow(base decimal.Decimal, n int) decimal.Decimal {
	if n < 0 {
		return Div(One, Pow(base, -n))
	}
	result := One
	b := base
	for n > 0 {
		if n&1 == 1 {
			result = RoundSig(result.Mul(b), Precision)
		}
		n >>= 1
		if n > 0 {
			b = RoundSig(b.Mul(b), Precision)
		}
	}
	return result
}

// Div divides a by b. Division by zero returns zero.
func Div(a, b decimal.Decimal) decimal.Decimal {
	if b.IsZero() {
		return Zero
	}
	return RoundSig(a.DivRound(b, DivisionPlaces), Precision)
}

// Log10 returns the base-10 logarithm of d, or -Inf for d <= 0
func Log10(d decimal.Decimal) float64 {
	if d.Sign() <= 0 {
		return math.Inf(-1)
	}
	e := d.NumDigits() + int(d.Exponent()) - 1
	mantissa := d.Shift(int32(-e)).InexactFloat64()
	return float64(e) + math.Log10(mantissa)
}

// FloorSqrt returns floor(sqrt(d)) computed exactly on the integer part
func FloorSqrt(d decimal.Decimal) decimal.Decimal {
	if d.Sign() <= 0 {
		return Zero
	}
	n := d.Floor().BigInt()
	return decimal.NewFromBigInt(new(big.Int).Sqrt(n), 0)
}

// FromFloat converts a configuration ratio into a decimal
func FromFloat(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

// MulFloat scales d by a float multiplier
func MulFloat(d decimal.Decimal, f float64) decimal.Decimal {
	if f == 1 {
		return d
	}
	return d.Mul(decimal.NewFromFloat(f))
}

// Parse reads the exact string form produced by Format
func Parse(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Zero, fmt.Errorf("invalid currency %q: %w", s, err)
	}
	return d, nil
}

// Format returns the exact string form of d
func Format(d decimal.Decimal) string {
	return d.String()
}

// Max returns the larger of a and b
func Max(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}
