// Package money holds the fixed-point currency type used by every ledger
// quantity. One major currency unit is 1000 milliunits.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Milliunits is an amount expressed in thousandths of the major unit.
type Milliunits int64

const milliunitsPerUnit = 1000

// ToMajor converts milliunits to major units.
func ToMajor(m Milliunits) float64 {
	return float64(m) / milliunitsPerUnit
}

// FromMajor converts a major amount to milliunits, rounding half away from zero.
func FromMajor(d float64) Milliunits {
	return Milliunits(decimal.NewFromFloat(d).Shift(3).Round(0).IntPart())
}

// Major returns the amount as major units.
func (m Milliunits) Major() float64 {
	return ToMajor(m)
}

// Decimal returns the exact decimal value in major units.
func (m Milliunits) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -3)
}

// Abs returns the absolute amount.
func (m Milliunits) Abs() Milliunits {
	if m < 0 {
		return -m
	}
	return m
}

// String renders the amount as a signed dollar string, e.g. "-$1,234.50".
func (m Milliunits) String() string {
	return Dollars(m.Major())
}

// Round2 rounds a major amount to cents.
func Round2(d float64) float64 {
	return decimal.NewFromFloat(d).Round(2).InexactFloat64()
}

// Round1 rounds to one decimal place, used for percentages.
func Round1(d float64) float64 {
	return decimal.NewFromFloat(d).Round(1).InexactFloat64()
}

// Format renders a major amount with thousands separators and two decimals,
// e.g. 1234.5 -> "1,234.50".
func Format(d float64) string {
	s := decimal.NewFromFloat(d).StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	if intPart == "0" && frac == "00" {
		sign = ""
	}
	return sign + group(intPart) + "." + frac
}

// Dollars renders a major amount as "$1,234.50" or "-$1,234.50".
func Dollars(d float64) string {
	s := Format(d)
	if strings.HasPrefix(s, "-") {
		return "-$" + s[1:]
	}
	return "$" + s
}

func group(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
