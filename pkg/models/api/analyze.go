// Package api holds the JSON shapes served by the web layer. Revenue
// values travel as exact decimal strings; formatted display strings
// are carried separately so clients never re-round.
package api

import (
	"github.com/de-tools/rtb-report/pkg/models/domain"
	"github.com/de-tools/rtb-report/pkg/services/report"
)

type Summary struct {
	RowsRead     int            `json:"rows_read"`
	RowsKept     int            `json:"rows_kept"`
	RowsFiltered int            `json:"rows_filtered"`
	RowsDropped  int            `json:"rows_dropped"`
	DropReasons  map[string]int `json:"drop_reasons,omitempty"`
	Truncated    bool           `json:"truncated,omitempty"`
}

type SectionTotal struct {
	Section     string `json:"section"`
	Revenue     string `json:"revenue"`
	Display     string `json:"display"`
	Advertisers int    `json:"advertisers"`
}

type DimensionRow struct {
	Label   string `json:"label"`
	Revenue string `json:"revenue"`
	Display string `json:"display"`
	Count   int    `json:"count"`
}

type AdvertiserRow struct {
	Advertiser string `json:"advertiser"`
	TopSSP     string `json:"top_ssp,omitempty"`
	Revenue    string `json:"revenue"`
	Display    string `json:"display"`
}

type ContextRow struct {
	ID         string `json:"id"`
	Advertiser string `json:"advertiser"`
	Revenue    string `json:"revenue"`
	Display    string `json:"display"`
	Count      int    `json:"count"`
}

type RankedAdvertisers struct {
	Section  string          `json:"section"`
	Total    string          `json:"total"`
	Display  string          `json:"display"`
	Accounts int             `json:"accounts"`
	Rows     []AdvertiserRow `json:"rows"`
}

type WeekAdvertisers struct {
	Week     string          `json:"week"`
	Total    string          `json:"total"`
	Display  string          `json:"display"`
	Accounts int             `json:"accounts"`
	Rows     []AdvertiserRow `json:"rows"`
}

type MonthWeekly struct {
	Key   string            `json:"key"`
	Label string            `json:"label"`
	OE    []WeekAdvertisers `json:"oe"`
	PMP   []WeekAdvertisers `json:"pmp"`
}

type Tables struct {
	ByDate      []DimensionRow  `json:"by_date"`
	ByChannel   []DimensionRow  `json:"by_channel"`
	BySSP       []DimensionRow  `json:"by_ssp"`
	BySystem    []DimensionRow  `json:"by_system"`
	Advertisers []AdvertiserRow `json:"advertisers"`
	ByDeal      []ContextRow    `json:"by_deal"`
	ByCreative  []ContextRow    `json:"by_creative"`
}

type ReportBlock struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

type AnalyzeResponse struct {
	Summary Summary             `json:"summary"`
	Totals  []SectionTotal      `json:"totals"`
	Ranked  []RankedAdvertisers `json:"ranked"`
	Weekly  []MonthWeekly       `json:"weekly"`
	Tables  Tables              `json:"tables"`
	Blocks  []ReportBlock       `json:"blocks"`
}

type Error struct {
	Error   string   `json:"error"`
	Missing []string `json:"missing_columns,omitempty"`
}

func FromSummary(s domain.Summary) Summary {
	reasons := make(map[string]int, len(s.Dropped))
	for r, n := range s.Dropped {
		reasons[string(r)] = n
	}
	return Summary{
		RowsRead:     s.RowsRead,
		RowsKept:     s.RowsKept,
		RowsFiltered: s.RowsFiltered,
		RowsDropped:  s.DroppedTotal(),
		DropReasons:  reasons,
		Truncated:    s.Truncated,
	}
}

func FromSectionTotals(totals []domain.SectionTotal) []SectionTotal {
	out := make([]SectionTotal, len(totals))
	for i, t := range totals {
		out[i] = SectionTotal{
			Section:     string(t.Section),
			Revenue:     t.Revenue.String(),
			Display:     report.FormatUSD(t.Revenue),
			Advertisers: t.Advertisers,
		}
	}
	return out
}

func FromRanked(ranked []domain.RankedAdvertisers) []RankedAdvertisers {
	out := make([]RankedAdvertisers, len(ranked))
	for i, r := range ranked {
		out[i] = RankedAdvertisers{
			Section:  string(r.Section),
			Total:    r.Total.String(),
			Display:  report.FormatUSD(r.Total),
			Accounts: r.Accounts,
			Rows:     fromAdvertiserRows(r.Rows),
		}
	}
	return out
}

func FromWeekly(months []domain.MonthWeekly) []MonthWeekly {
	out := make([]MonthWeekly, len(months))
	for i := range months {
		m := &months[i]
		out[i] = MonthWeekly{
			Key:   m.Key,
			Label: m.Label,
			OE:    fromWeeks(m.OE),
			PMP:   fromWeeks(m.PMP),
		}
	}
	return out
}

func FromTables(t domain.Tables) Tables {
	return Tables{
		ByDate:      fromDimensionRows(t.ByDate),
		ByChannel:   fromDimensionRows(t.ByChannel),
		BySSP:       fromDimensionRows(t.BySSP),
		BySystem:    fromDimensionRows(t.BySystem),
		Advertisers: fromAdvertiserRows(t.Advertisers),
		ByDeal:      fromContextRows(t.ByDeal),
		ByCreative:  fromContextRows(t.ByCreative),
	}
}

func FromBlocks(blocks []domain.ReportBlock) []ReportBlock {
	out := make([]ReportBlock, len(blocks))
	for i, b := range blocks {
		out[i] = ReportBlock{Title: b.Title, Text: b.Text()}
	}
	return out
}

func fromWeeks(weeks [4]domain.WeekAdvertisers) []WeekAdvertisers {
	out := make([]WeekAdvertisers, len(weeks))
	for i, w := range weeks {
		out[i] = WeekAdvertisers{
			Week:     w.Week.String(),
			Total:    w.Total.String(),
			Display:  report.FormatUSD(w.Total),
			Accounts: w.Accounts,
			Rows:     fromAdvertiserRows(w.Rows),
		}
	}
	return out
}

func fromAdvertiserRows(rows []domain.AdvertiserRow) []AdvertiserRow {
	out := make([]AdvertiserRow, len(rows))
	for i, r := range rows {
		out[i] = AdvertiserRow{
			Advertiser: r.Advertiser,
			TopSSP:     r.TopSSP,
			Revenue:    r.Revenue.String(),
			Display:    report.FormatUSD(r.Revenue),
		}
	}
	return out
}

func fromDimensionRows(rows []domain.DimensionRow) []DimensionRow {
	out := make([]DimensionRow, len(rows))
	for i, r := range rows {
		out[i] = DimensionRow{
			Label:   r.Label,
			Revenue: r.Revenue.String(),
			Display: report.FormatUSD(r.Revenue),
			Count:   r.Count,
		}
	}
	return out
}

func fromContextRows(rows []domain.ContextRow) []ContextRow {
	out := make([]ContextRow, len(rows))
	for i, r := range rows {
		out[i] = ContextRow{
			ID:         r.ID,
			Advertiser: r.Advertiser,
			Revenue:    r.Revenue.String(),
			Display:    report.FormatUSD(r.Revenue),
			Count:      r.Count,
		}
	}
	return out
}
