package output

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatEUR renders a currency value with two decimal places and a
// space as thousands separator, e.g. "-5 632.54". It is a pure
// function: no locale or other process-wide formatting state.
func FormatEUR(d decimal.Decimal) string {
	s := d.StringFixed(2)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}

	intPart, fracPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	b.WriteString(sign)
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(digit)
	}
	b.WriteByte('.')
	b.WriteString(fracPart)
	return b.String()
}
