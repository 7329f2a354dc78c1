package deck

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatMoneyBR renders a monetary value in Brazilian format: thousands
// separated by '.', decimals by ',', two decimal places, no currency symbol.
// Callers prepend the "R$ " literal themselves.
//
// ex 1234.5 -> "1.234,50", -7.1 -> "-7,10"
func FormatMoneyBR(value decimal.Decimal) string {
	fixed := value.StringFixed(2)

	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign = "-"
		fixed = fixed[1:]
	}

	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	b.WriteString(sign)
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(digit)
	}
	b.WriteByte(',')
	b.WriteString(fracPart)
	return b.String()
}
