package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatBRL renders an amount the way pt-BR currency formatting does: a
// no-break space after the symbol and the sign in front, e.g. "R$\u00a08.400,00".
func FormatBRL(amount decimal.Decimal) string {
	fixed := amount.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if amount.IsNegative() {
		b.WriteByte('-')
	}
	b.WriteString("R$\u00a0")
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	b.WriteByte(',')
	b.WriteString(frac)
	return b.String()
}
