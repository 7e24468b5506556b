// Package compare reconciles a listing's asking price against the
// reference price for its grade.
package compare

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
)

// ParsePrice parses a currency string into a decimal amount. Separator
// handling is format-aware: when both "." and "," appear, the rightmost of
// the two is the decimal separator and the other is a thousands separator;
// when only one type appears, it is treated as the decimal point.
func ParsePrice(raw string) (decimal.Decimal, error) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' || r == '.' || r == ',' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return decimal.Zero, eris.Errorf("compare: no numeric content in %q", raw)
	}

	lastDot := strings.LastIndexByte(cleaned, '.')
	lastComma := strings.LastIndexByte(cleaned, ',')

	var normalized string
	switch {
	case lastDot >= 0 && lastComma >= 0:
		decimalSep, thousandsSep := byte('.'), byte(',')
		if lastComma > lastDot {
			decimalSep, thousandsSep = ',', '.'
		}
		normalized = strings.ReplaceAll(cleaned, string(thousandsSep), "")
		normalized = strings.Replace(normalized, string(decimalSep), ".", 1)
	case lastDot >= 0 || lastComma >= 0:
		sep := byte('.')
		last := lastDot
		if lastComma >= 0 {
			sep = ','
			last = lastComma
		}
		// Only one separator type: the last occurrence is the decimal
		// point, earlier ones are dropped.
		normalized = strings.ReplaceAll(cleaned[:last], string(sep), "") + "." + cleaned[last+1:]
	default:
		normalized = cleaned
	}

	amount, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Zero, eris.Wrapf(err, "compare: parse %q", raw)
	}
	return amount, nil
}
