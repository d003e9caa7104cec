package report

import (
	"strings"

	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// FormatUSD renders a dollar amount for display. The value is first
// rounded to cents (half away from zero); results of a dollar or more
// render as whole dollars with thousands separators, results under a
// dollar keep exactly two decimals. Only an exactly-zero input renders
// the bare "$0". Negative amounts take a leading minus before the
// dollar sign.
func FormatUSD(d decimal.Decimal) string {
	cents := d.Round(2)
	sign := ""
	if cents.Sign() < 0 {
		sign = "-"
	}
	abs := cents.Abs()

	var core string
	switch {
	case d.IsZero():
		core = "0"
	case abs.LessThan(one):
		core = abs.StringFixed(2)
	default:
		core = groupThousands(abs.Round(0).String())
	}
	return sign + "$" + core
}

// groupThousands inserts commas into a non-negative integer string.
func groupThousands(s string) string {
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
