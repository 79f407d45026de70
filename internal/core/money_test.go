package core

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"40", "40.00"},
		{"40,50", "40.50"},
		{"40.50", "40.50"},
		{"0.5", "0.50"},
		{"12.345", "12.35"},
		{"  7 ", "7.00"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAmount(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, FormatAmount(got))
		})
	}
}

func TestParseAmountInvalid(t *testing.T) {
	for _, in := range []string{"", "0", "0,00", "-5", "+5", "abc", "1.2.3", "1e5"} {
		_, err := ParseAmount(in)
		assert.ErrorIs(t, err, ErrInvalidAmount, "input %q", in)
	}
}

func TestFormatReais(t *testing.T) {
	assert.Equal(t, "R$ 460.00", FormatReais(decimal.NewFromInt(460)))
	assert.Equal(t, "-R$ 40.50", FormatReais(decimal.RequireFromString("-40.5")))
}
