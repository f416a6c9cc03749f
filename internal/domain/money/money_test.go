package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConversions(t *testing.T) {
	assert.Equal(t, Milliunits(45000), FromMajor(45))
	assert.Equal(t, Milliunits(-12340), FromMajor(-12.34))
	assert.Equal(t, Milliunits(12345), FromMajor(12.345))
	assert.Equal(t, 45.5, ToMajor(45500))
	assert.Equal(t, -0.001, ToMajor(-1))
}

func TestRoundTrip(t *testing.T) {
	for cents := int64(0); cents <= 250000; cents += 7 {
		x := float64(cents) / 100
		assert.Equal(t, x, ToMajor(FromMajor(x)), "amount %v", x)
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{5, "5.00"},
		{999.999, "1,000.00"},
		{1234.5, "1,234.50"},
		{1234567.891, "1,234,567.89"},
		{-1740.1, "-1,740.10"},
		{-0.001, "0.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Format(tt.in), "format %v", tt.in)
	}
}

func TestDollars(t *testing.T) {
	assert.Equal(t, "$45.00", Dollars(45))
	assert.Equal(t, "-$1,200.00", Dollars(-1200))
	assert.Equal(t, "-$3.25", Milliunits(-3250).String())
}

func TestDecimalAndAbs(t *testing.T) {
	assert.Equal(t, "-12.345", Milliunits(-12345).Decimal().String())
	assert.Equal(t, Milliunits(500), Milliunits(-500).Abs())
	assert.Equal(t, 12.35, Round2(12.345))
	assert.Equal(t, 33.3, Round1(33.333))
}
