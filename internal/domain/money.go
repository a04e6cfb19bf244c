package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatAmount renders d with two decimal places in pt-BR notation ("1.234,56").
func FormatAmount(d decimal.Decimal) string {
	return FormatNumber(d, 2)
}

// FormatExact renders d with as many decimals as it carries ("0,133145")
func FormatExact(d decimal.Decimal) string {
	places := int32(0)
	if exp := d.Exponent(); exp < 0 {
		places = -exp
	}
	return FormatNumber(d, places)
}

// FormatNumber renders d rounded to places decimals using "." for thousands and ","
// as the decimal separator.
func FormatNumber(d decimal.Decimal, places int32) string {
	s := d.StringFixed(places)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, fracPart, _ := strings.Cut(s, ".")

	var sb strings.Builder
	if neg {
		sb.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			sb.WriteByte('.')
		}
		sb.WriteRune(r)
	}
	if fracPart != "" {
		sb.WriteByte(',')
		sb.WriteString(fracPart)
	}
	return sb.String()
}
