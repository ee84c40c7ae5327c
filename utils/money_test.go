package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatGBP(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "£0.00"},
		{"12.5", "£12.50"},
		{"599.99", "£599.99"},
		{"1234.5", "£1,234.50"},
		{"1234567.89", "£1,234,567.89"},
		{"-45.25", "-£45.25"},
	}

	for _, tt := range tests {
		amount, err := decimal.NewFromString(tt.in)
		assert.NoError(t, err)
		assert.Equal(t, tt.want, FormatGBP(amount), "input %s", tt.in)
	}
}
