package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatUSD(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "$0.00"},
		{"1", "$1.00"},
		{"5.5", "$5.50"},
		{"10.5", "$10.50"},
		{"999.99", "$999.99"},
		{"1234.5", "$1,234.50"},
		{"1234567.89", "$1,234,567.89"},
		{"0.25", "$0.25"},
		{"-3.5", "-$3.50"},
	}

	for _, tt := range tests {
		d, err := decimal.NewFromString(tt.in)
		if err != nil {
			t.Fatalf("parse %q: %v", tt.in, err)
		}
		if got := FormatUSD(d); got != tt.want {
			t.Errorf("FormatUSD(%s): got %q, want %q", tt.in, got, tt.want)
		}
	}
}
