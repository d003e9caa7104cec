package report

import (
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/de-tools/rtb-report/pkg/models/domain"
)

// Row is one label/amount pair in display order.
type Row struct {
	Label  string
	Amount decimal.Decimal
}

// blockWidth is the effective width of a block: wide enough for the
// amount column plus breathing room, never past the line cap.
func blockWidth(cfg domain.ReportConfig) int {
	w := cfg.AmountCol + 20
	if w < 42 {
		w = 42
	}
	if w > cfg.LineWidth {
		w = cfg.LineWidth
	}
	return w
}

// RuleLine is the separator drawn between sections.
func RuleLine(cfg domain.ReportConfig) string {
	return strings.Repeat("=", blockWidth(cfg))
}

// SectionBlock renders one header plus aligned label/amount rows.
// Amounts right-align with their last character at the amount column;
// when the widest amount would not fit there, the column shifts right
// just enough, labels truncate with an ellipsis and no line ever
// exceeds the block width. The header is bold-substituted, rows stay
// ASCII.
func SectionBlock(header string, rows []Row, cfg domain.ReportConfig) []string {
	width := blockWidth(cfg)
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, BoldAlnum(truncateLabel(header, width)))

	maxAmount := len("$0")
	amounts := make([]string, len(rows))
	for i, r := range rows {
		amounts[i] = FormatUSD(r.Amount)
		if len(amounts[i]) > maxAmount {
			maxAmount = len(amounts[i])
		}
	}

	col := cfg.AmountCol
	if need := maxAmount + 2; col < need {
		col = need
	}
	if col > width {
		col = width
	}

	for i, r := range rows {
		amount := amounts[i]
		maxLabel := col - len(amount) - 1
		if maxLabel < 1 {
			maxLabel = 1
		}
		label := truncateLabel(r.Label, maxLabel)
		spaces := col - utf8.RuneCountInString(label) - len(amount)
		if spaces < 1 {
			spaces = 1
		}
		lines = append(lines, clampWidth(label+strings.Repeat(" ", spaces)+amount, width))
	}
	return lines
}

// clampWidth cuts a composed line to the block width. Only reachable
// when an amount alone outgrows the block.
func clampWidth(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width])
}

// truncateLabel cuts a label to max display characters, appending an
// ellipsis when there is room for one.
func truncateLabel(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
