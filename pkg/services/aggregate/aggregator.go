// Package aggregate computes every analytical grouping the report
// views need from a slice of canonical records. All sums use exact
// decimal arithmetic; grouping keys are case-insensitive while the
// first-seen spelling is kept for display.
package aggregate

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/de-tools/rtb-report/pkg/models/domain"
)

// Filter returns the records whose date passes the configured range.
func Filter(records []domain.Record, cfg domain.ReportConfig) []domain.Record {
	if cfg.From.IsZero() && cfg.To.IsZero() {
		return records
	}
	out := make([]domain.Record, 0, len(records))
	for _, r := range records {
		if cfg.InRange(r.Date) {
			out = append(out, r)
		}
	}
	return out
}

// SectionTotals sums each section's revenue and counts its distinct
// advertisers. Both sections are always present, zero-valued when
// empty.
func SectionTotals(records []domain.Record) []domain.SectionTotal {
	totals := make([]domain.SectionTotal, 0, 2)
	for _, s := range []domain.Section{domain.SectionOE, domain.SectionPMP} {
		sum := decimal.Zero
		advertisers := map[string]bool{}
		for _, r := range records {
			if r.Section != s {
				continue
			}
			sum = sum.Add(r.Revenue)
			advertisers[groupKey(r.Advertiser)] = true
		}
		totals = append(totals, domain.SectionTotal{
			Section:     s,
			Revenue:     sum,
			Advertisers: len(advertisers),
		})
	}
	return totals
}

// SectionTotal picks one section out of SectionTotals.
func SectionTotal(records []domain.Record, s domain.Section) domain.SectionTotal {
	for _, t := range SectionTotals(records) {
		if t.Section == s {
			return t
		}
	}
	return domain.SectionTotal{Section: s, Revenue: decimal.Zero}
}

// RankAdvertisers ranks a section's advertisers descending by revenue,
// ties broken by name ascending, each row carrying the advertiser's
// highest-revenue SSP. Rows holds the full ranking; Top-N is applied
// at render time.
func RankAdvertisers(records []domain.Record, s domain.Section) domain.RankedAdvertisers {
	section := make([]domain.Record, 0, len(records))
	for _, r := range records {
		if r.Section == s {
			section = append(section, r)
		}
	}
	rows := advertiserRows(section)
	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(row.Revenue)
	}
	return domain.RankedAdvertisers{
		Section:  s,
		Total:    total,
		Accounts: len(rows),
		Rows:     rows,
	}
}

// Advertisers ranks every advertiser across all sections, including
// unclassified channels, for the analytical table view.
func Advertisers(records []domain.Record) []domain.AdvertiserRow {
	return advertiserRows(records)
}

// Weekly partitions records by calendar month then W1-W4 bucket then
// section, ranking advertisers inside each bucket. Months come back
// chronologically and every month carries all four buckets, empty
// ones zero-valued.
func Weekly(records []domain.Record) []domain.MonthWeekly {
	byMonth := map[string][]domain.Record{}
	labels := map[string]string{}
	for _, r := range records {
		if r.Section == domain.SectionUnclassified {
			continue
		}
		key := domain.MonthKey(r.Date)
		byMonth[key] = append(byMonth[key], r)
		labels[key] = domain.MonthLabel(r.Date)
	}

	keys := make([]string, 0, len(byMonth))
	for k := range byMonth {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	months := make([]domain.MonthWeekly, 0, len(keys))
	for _, key := range keys {
		m := domain.MonthWeekly{Key: key, Label: labels[key]}
		m.OE = sectionWeeks(byMonth[key], domain.SectionOE)
		m.PMP = sectionWeeks(byMonth[key], domain.SectionPMP)
		months = append(months, m)
	}
	return months
}

func sectionWeeks(records []domain.Record, s domain.Section) [4]domain.WeekAdvertisers {
	var weeks [4]domain.WeekAdvertisers
	for i, w := range domain.WeekBuckets {
		bucket := make([]domain.Record, 0, len(records))
		for _, r := range records {
			if r.Section == s && domain.WeekOf(r.Date) == w {
				bucket = append(bucket, r)
			}
		}
		rows := advertiserRows(bucket)
		total := decimal.Zero
		for _, row := range rows {
			total = total.Add(row.Revenue)
		}
		weeks[i] = domain.WeekAdvertisers{
			Week:     w,
			Total:    total,
			Accounts: len(rows),
			Rows:     rows,
		}
	}
	return weeks
}

// ByDate sums revenue per calendar day.
func ByDate(records []domain.Record) []domain.DimensionRow {
	return byDimension(records, func(r domain.Record) string {
		return r.Date.Format("2006-01-02")
	})
}

// ByChannel sums revenue per raw channel value.
func ByChannel(records []domain.Record) []domain.DimensionRow {
	return byDimension(records, func(r domain.Record) string { return r.Channel })
}

// BySSP sums revenue per supply-side platform.
func BySSP(records []domain.Record) []domain.DimensionRow {
	return byDimension(records, func(r domain.Record) string { return r.SSP })
}

// BySystem sums revenue per serving system.
func BySystem(records []domain.Record) []domain.DimensionRow {
	return byDimension(records, func(r domain.Record) string { return r.System })
}

// ByDeal sums revenue per deal identifier with advertiser context.
func ByDeal(records []domain.Record) []domain.ContextRow {
	return byContext(records, func(r domain.Record) string { return r.DealID })
}

// ByCreative sums revenue per creative identifier with advertiser
// context.
func ByCreative(records []domain.Record) []domain.ContextRow {
	return byContext(records, func(r domain.Record) string { return r.CreativeID })
}

type accum struct {
	display string
	sum     decimal.Decimal
	count   int
	extra   string
}

func groupKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func groupBy(records []domain.Record, keyFn func(domain.Record) string) map[string]*accum {
	groups := map[string]*accum{}
	for _, r := range records {
		label := keyFn(r)
		key := groupKey(label)
		g, ok := groups[key]
		if !ok {
			g = &accum{display: strings.TrimSpace(label), sum: decimal.Zero}
			groups[key] = g
		}
		g.sum = g.sum.Add(r.Revenue)
		g.count++
	}
	return groups
}

func byDimension(records []domain.Record, keyFn func(domain.Record) string) []domain.DimensionRow {
	groups := groupBy(records, keyFn)
	rows := make([]domain.DimensionRow, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, domain.DimensionRow{Label: g.display, Revenue: g.sum, Count: g.count})
	}
	sort.Slice(rows, func(i, j int) bool {
		if c := rows[i].Revenue.Cmp(rows[j].Revenue); c != 0 {
			return c > 0
		}
		return groupKey(rows[i].Label) < groupKey(rows[j].Label)
	})
	return rows
}

func byContext(records []domain.Record, keyFn func(domain.Record) string) []domain.ContextRow {
	groups := map[string]*accum{}
	for _, r := range records {
		id := keyFn(r)
		key := groupKey(id) + "\x00" + groupKey(r.Advertiser)
		g, ok := groups[key]
		if !ok {
			g = &accum{display: strings.TrimSpace(id), sum: decimal.Zero, extra: strings.TrimSpace(r.Advertiser)}
			groups[key] = g
		}
		g.sum = g.sum.Add(r.Revenue)
		g.count++
	}
	rows := make([]domain.ContextRow, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, domain.ContextRow{ID: g.display, Advertiser: g.extra, Revenue: g.sum, Count: g.count})
	}
	sort.Slice(rows, func(i, j int) bool {
		if c := rows[i].Revenue.Cmp(rows[j].Revenue); c != 0 {
			return c > 0
		}
		if a, b := groupKey(rows[i].ID), groupKey(rows[j].ID); a != b {
			return a < b
		}
		return groupKey(rows[i].Advertiser) < groupKey(rows[j].Advertiser)
	})
	return rows
}

func advertiserRows(records []domain.Record) []domain.AdvertiserRow {
	groups := groupBy(records, func(r domain.Record) string { return r.Advertiser })

	// Highest-revenue SSP per advertiser, same tie-break as rankings.
	ssps := map[string]map[string]*sspSum{}
	for _, r := range records {
		adv := groupKey(r.Advertiser)
		if ssps[adv] == nil {
			ssps[adv] = map[string]*sspSum{}
		}
		key := groupKey(r.SSP)
		s, ok := ssps[adv][key]
		if !ok {
			s = &sspSum{display: strings.TrimSpace(r.SSP), sum: decimal.Zero}
			ssps[adv][key] = s
		}
		s.sum = s.sum.Add(r.Revenue)
	}

	rows := make([]domain.AdvertiserRow, 0, len(groups))
	for key, g := range groups {
		rows = append(rows, domain.AdvertiserRow{
			Advertiser: g.display,
			TopSSP:     topSSP(ssps[key]),
			Revenue:    g.sum,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if c := rows[i].Revenue.Cmp(rows[j].Revenue); c != 0 {
			return c > 0
		}
		return groupKey(rows[i].Advertiser) < groupKey(rows[j].Advertiser)
	})
	return rows
}

type sspSum struct {
	display string
	sum     decimal.Decimal
}

func topSSP(sums map[string]*sspSum) string {
	best := ""
	var bestSum decimal.Decimal
	first := true
	for _, s := range sums {
		if first || s.sum.Cmp(bestSum) > 0 ||
			(s.sum.Cmp(bestSum) == 0 && groupKey(s.display) < groupKey(best)) {
			best = s.display
			bestSum = s.sum
			first = false
		}
	}
	return best
}
