// Package report renders aggregated revenue into fixed-width,
// copy-ready text blocks. Headers carry Unicode bold substitution,
// body rows stay pure ASCII, and no line exceeds the configured width
// by construction.
package report

import (
	"fmt"

	"github.com/de-tools/rtb-report/pkg/models/domain"
)

// Formatter builds the three formatted views for one run. Section
// order follows the config; the documented default renders OE before
// PMP.
type Formatter struct {
	cfg domain.ReportConfig
}

func NewFormatter(cfg domain.ReportConfig) *Formatter {
	return &Formatter{cfg: cfg}
}

// Totals renders the per-section overall totals view: one header per
// section with no body rows, sections separated by a rule.
func (f *Formatter) Totals(totals []domain.SectionTotal) domain.ReportBlock {
	bySection := map[domain.Section]domain.SectionTotal{}
	for _, t := range totals {
		bySection[t.Section] = t
	}

	var lines []string
	for i, s := range f.cfg.SectionOrder() {
		if i > 0 {
			lines = append(lines, RuleLine(f.cfg))
		}
		t := bySection[s]
		header := fmt.Sprintf("%s (%s) All Accounts (Overall Total)", s, FormatUSD(t.Revenue))
		lines = append(lines, SectionBlock(header, nil, f.cfg)...)
	}
	return domain.ReportBlock{Title: "Totals (PMP/OE)", Lines: lines}
}

// AdvertiserBreakout renders each section's Top-N advertisers under a
// header naming the section total and how many accounts are shown.
func (f *Formatter) AdvertiserBreakout(ranked []domain.RankedAdvertisers) domain.ReportBlock {
	bySection := map[domain.Section]domain.RankedAdvertisers{}
	for _, r := range ranked {
		bySection[r.Section] = r
	}

	var lines []string
	for i, s := range f.cfg.SectionOrder() {
		if i > 0 {
			lines = append(lines, RuleLine(f.cfg))
		}
		r := bySection[s]
		var header string
		if r.Accounts <= f.cfg.TopN {
			header = fmt.Sprintf("%s (%s Overall Total) - all %d accounts below",
				s, FormatUSD(r.Total), r.Accounts)
		} else {
			header = fmt.Sprintf("%s (%s Overall Total) - Top %d accounts below of %d",
				s, FormatUSD(r.Total), f.cfg.TopN, r.Accounts)
		}
		lines = append(lines, SectionBlock(header, advertiserRows(r.Rows, f.cfg.TopN), f.cfg)...)
	}
	return domain.ReportBlock{Title: "Advertiser (PMP/OE)", Lines: lines}
}

// WeeklyBreakout renders W1 through W4 for every month, one section
// after the other. Empty weeks still appear with a zero total so the
// report shape is predictable. Month labels only appear when the data
// spans more than one month.
func (f *Formatter) WeeklyBreakout(months []domain.MonthWeekly) domain.ReportBlock {
	var lines []string
	multiMonth := len(months) > 1
	for i, s := range f.cfg.SectionOrder() {
		if i > 0 {
			lines = append(lines, "", RuleLine(f.cfg), "")
		}
		first := true
		for mi := range months {
			m := &months[mi]
			for _, wk := range m.Weeks(s) {
				if !first {
					lines = append(lines, "")
				}
				first = false
				header := f.weekHeader(m.Label, s, wk, multiMonth)
				lines = append(lines, SectionBlock(header, advertiserRows(wk.Rows, f.cfg.TopN), f.cfg)...)
			}
		}
	}
	return domain.ReportBlock{Title: "Advertiser by Week", Lines: lines}
}

func (f *Formatter) weekHeader(monthLabel string, s domain.Section, wk domain.WeekAdvertisers, multiMonth bool) string {
	prefix := wk.Week.String()
	if multiMonth {
		prefix = monthLabel + " " + prefix
	}
	if wk.Accounts <= f.cfg.TopN {
		return fmt.Sprintf("%s %s (%s) all %d accounts", prefix, s, FormatUSD(wk.Total), wk.Accounts)
	}
	return fmt.Sprintf("%s %s (%s) top %d accounts of %d", prefix, s, FormatUSD(wk.Total), f.cfg.TopN, wk.Accounts)
}

func advertiserRows(rows []domain.AdvertiserRow, topN int) []Row {
	if len(rows) > topN {
		rows = rows[:topN]
	}
	out := make([]Row, len(rows))
	for i, r := range rows {
		out[i] = Row{Label: r.Advertiser, Amount: r.Revenue}
	}
	return out
}
