package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DimensionRow is one row of a flat single-dimension aggregate
// (by date, channel, SSP or system).
type DimensionRow struct {
	Label   string
	Revenue decimal.Decimal
	Count   int
}

// AdvertiserRow is one advertiser's total within a section or week,
// with the advertiser's single highest-revenue SSP for context.
type AdvertiserRow struct {
	Advertiser string
	TopSSP     string
	Revenue    decimal.Decimal
}

// ContextRow is one row of an identifier aggregate (deal or creative)
// carrying the owning advertiser for context.
type ContextRow struct {
	ID         string
	Advertiser string
	Revenue    decimal.Decimal
	Count      int
}

// SectionTotal is the overall revenue of one section together with
// its distinct advertiser count.
type SectionTotal struct {
	Section     Section
	Revenue     decimal.Decimal
	Advertisers int
}

// RankedAdvertisers is a section's advertiser breakdown sorted
// descending by revenue. Rows holds every advertiser; callers apply
// Top-N at render time and report "N shown of Accounts".
type RankedAdvertisers struct {
	Section  Section
	Total    decimal.Decimal
	Accounts int
	Rows     []AdvertiserRow
}

// WeekAdvertisers is one W1-W4 bucket's advertiser breakdown for a
// single section. Buckets with no records carry a zero Total and no
// rows but are still present.
type WeekAdvertisers struct {
	Week     WeekBucket
	Total    decimal.Decimal
	Accounts int
	Rows     []AdvertiserRow
}

// MonthWeekly is one calendar month's four-week partition for both
// sections.
type MonthWeekly struct {
	Key   string // sortable, e.g. "2025-07"
	Label string // display, e.g. "Jul 2025"
	OE    [4]WeekAdvertisers
	PMP   [4]WeekAdvertisers
}

// Weeks returns the four buckets of the requested section.
func (m *MonthWeekly) Weeks(s Section) [4]WeekAdvertisers {
	if s == SectionPMP {
		return m.PMP
	}
	return m.OE
}

// Tables bundles every analytical aggregate computed for one run.
type Tables struct {
	ByDate      []DimensionRow
	ByChannel   []DimensionRow
	BySSP       []DimensionRow
	BySystem    []DimensionRow
	Advertisers []AdvertiserRow
	ByDeal      []ContextRow
	ByCreative  []ContextRow
}

// ReportBlock is a finished copy-ready text table. Lines are final:
// every line fits the configured width and body rows are pure ASCII.
type ReportBlock struct {
	Title string
	Lines []string
}

// Text joins the block into a single pasteable string.
func (b ReportBlock) Text() string {
	return strings.Join(b.Lines, "\n")
}

// Summary reports row accounting for one run: how many rows the file
// held, how many survived normalization, and why the rest dropped.
type Summary struct {
	RowsRead     int
	RowsKept     int
	RowsFiltered int
	Dropped      map[DropReason]int
	Truncated    bool
}

// DroppedTotal sums drops across all reasons.
func (s Summary) DroppedTotal() int {
	var n int
	for _, c := range s.Dropped {
		n += c
	}
	return n
}

// DropReason classifies why a row was excluded from aggregation.
type DropReason string

const (
	DropBadDate    DropReason = "unparseable date"
	DropBadRevenue DropReason = "unparseable revenue"
	DropEmptyRow   DropReason = "empty row"
)
