package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatBRL(t *testing.T) {
	cases := []struct {
		in   decimal.Decimal
		want string
	}{
		{decimal.Zero, "R$\u00a00,00"},
		{decimal.NewFromInt(200), "R$\u00a0200,00"},
		{decimal.NewFromInt(8400), "R$\u00a08.400,00"},
		{decimal.NewFromInt(864000), "R$\u00a0864.000,00"},
		{decimal.RequireFromString("1234567.891"), "R$\u00a01.234.567,89"},
		{decimal.RequireFromString("-1500.5"), "-R$\u00a01.500,50"},
		{decimal.RequireFromString("12.3"), "R$\u00a012,30"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatBRL(tc.in))
	}
}
