package aggregate

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/rtb-report/pkg/models/domain"
)

func rec(day int, section domain.Section, advertiser, ssp string, revenue string) domain.Record {
	return domain.Record{
		Date:       time.Date(2025, time.July, day, 0, 0, 0, 0, time.UTC),
		Channel:    string(section),
		Advertiser: advertiser,
		SSP:        ssp,
		Revenue:    decimal.RequireFromString(revenue),
		Section:    section,
	}
}

func TestSectionTotals(t *testing.T) {
	records := []domain.Record{
		rec(1, domain.SectionOE, "Acme", "Magnite", "10.50"),
		rec(2, domain.SectionOE, "acme", "Pubmatic", "4.50"),
		rec(3, domain.SectionOE, "Bolt", "Magnite", "5"),
		rec(4, domain.SectionPMP, "Acme", "Magnite", "100"),
	}

	totals := SectionTotals(records)
	require.Len(t, totals, 2)

	oe, pmp := totals[0], totals[1]
	assert.Equal(t, domain.SectionOE, oe.Section)
	assert.Equal(t, "20", oe.Revenue.String())
	assert.Equal(t, 2, oe.Advertisers, "case-insensitive advertiser identity")
	assert.Equal(t, domain.SectionPMP, pmp.Section)
	assert.Equal(t, "100", pmp.Revenue.String())
	assert.Equal(t, 1, pmp.Advertisers)
}

func TestRankAdvertisers_OrderAndTies(t *testing.T) {
	records := []domain.Record{
		rec(1, domain.SectionOE, "Zeta", "Magnite", "50"),
		rec(2, domain.SectionOE, "Alpha", "Pubmatic", "50"),
		rec(3, domain.SectionOE, "Beta", "Index", "75"),
	}

	ranked := RankAdvertisers(records, domain.SectionOE)
	require.Len(t, ranked.Rows, 3)

	assert.Equal(t, "Beta", ranked.Rows[0].Advertiser)
	// Equal revenue ties break by name ascending.
	assert.Equal(t, "Alpha", ranked.Rows[1].Advertiser)
	assert.Equal(t, "Zeta", ranked.Rows[2].Advertiser)
	assert.Equal(t, "175", ranked.Total.String())
	assert.Equal(t, 3, ranked.Accounts)
}

func TestRankAdvertisers_AdditivityInvariant(t *testing.T) {
	records := []domain.Record{
		rec(1, domain.SectionPMP, "A", "S1", "10.01"),
		rec(2, domain.SectionPMP, "B", "S2", "0.99"),
		rec(3, domain.SectionPMP, "A", "S1", "5.25"),
		rec(4, domain.SectionOE, "C", "S3", "7.77"),
	}

	ranked := RankAdvertisers(records, domain.SectionPMP)
	sum := decimal.Zero
	for _, row := range ranked.Rows {
		sum = sum.Add(row.Revenue)
	}
	assert.True(t, sum.Equal(ranked.Total), "per-advertiser sum %s != section total %s", sum, ranked.Total)
	assert.True(t, SectionTotal(records, domain.SectionPMP).Revenue.Equal(ranked.Total))
}

func TestRankAdvertisers_TopSSP(t *testing.T) {
	records := []domain.Record{
		rec(1, domain.SectionOE, "Acme", "Magnite", "10"),
		rec(2, domain.SectionOE, "Acme", "Pubmatic", "30"),
		rec(3, domain.SectionOE, "Acme", "Magnite", "15"),
	}

	ranked := RankAdvertisers(records, domain.SectionOE)
	require.Len(t, ranked.Rows, 1)
	assert.Equal(t, "Pubmatic", ranked.Rows[0].TopSSP)
}

func TestWeekOf_PartitionIsTotal(t *testing.T) {
	month := time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)
	counts := map[domain.WeekBucket]int{}
	for d := month; d.Month() == time.July; d = d.AddDate(0, 0, 1) {
		counts[domain.WeekOf(d)]++
	}
	assert.Equal(t, 7, counts[domain.W1])
	assert.Equal(t, 7, counts[domain.W2])
	assert.Equal(t, 7, counts[domain.W3])
	assert.Equal(t, 10, counts[domain.W4], "W4 absorbs day 22 through end of month")
}

func TestWeekly_SumsMatchMonthTotal(t *testing.T) {
	records := []domain.Record{
		rec(3, domain.SectionOE, "A", "S", "10"),
		rec(10, domain.SectionOE, "B", "S", "20"),
		rec(17, domain.SectionOE, "A", "S", "30"),
		rec(29, domain.SectionOE, "C", "S", "40"),
	}

	months := Weekly(records)
	require.Len(t, months, 1)

	sum := decimal.Zero
	for _, wk := range months[0].OE {
		sum = sum.Add(wk.Total)
	}
	assert.True(t, sum.Equal(SectionTotal(records, domain.SectionOE).Revenue))
}

func TestWeekly_EmptyWeeksPresent(t *testing.T) {
	records := []domain.Record{
		rec(3, domain.SectionOE, "A", "S", "10"),
	}

	months := Weekly(records)
	require.Len(t, months, 1)
	m := months[0]

	assert.Equal(t, "2025-07", m.Key)
	assert.Equal(t, "Jul 2025", m.Label)
	require.Len(t, m.OE, 4)
	assert.Equal(t, "10", m.OE[0].Total.String())
	for _, wk := range m.OE[1:] {
		assert.True(t, wk.Total.IsZero())
		assert.Zero(t, wk.Accounts)
	}
	for _, wk := range m.PMP {
		assert.True(t, wk.Total.IsZero())
	}
}

func TestWeekly_MonthsChronological(t *testing.T) {
	records := []domain.Record{
		{Date: time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC), Section: domain.SectionOE, Advertiser: "A", Revenue: decimal.NewFromInt(1)},
		{Date: time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC), Section: domain.SectionOE, Advertiser: "A", Revenue: decimal.NewFromInt(1)},
	}

	months := Weekly(records)
	require.Len(t, months, 2)
	assert.Equal(t, "2025-06", months[0].Key)
	assert.Equal(t, "2025-08", months[1].Key)
}

func TestWeekly_SkipsUnclassified(t *testing.T) {
	records := []domain.Record{
		rec(1, domain.SectionUnclassified, "A", "S", "99"),
	}
	assert.Empty(t, Weekly(records))
}

func TestByDimension_SortAndGrouping(t *testing.T) {
	records := []domain.Record{
		rec(1, domain.SectionOE, "A", "Magnite", "5"),
		rec(2, domain.SectionOE, "B", "magnite ", "10"),
		rec(3, domain.SectionOE, "C", "Pubmatic", "12"),
	}

	rows := BySSP(records)
	require.Len(t, rows, 2)
	assert.Equal(t, "Magnite", rows[0].Label, "first-seen casing kept for display")
	assert.Equal(t, "15", rows[0].Revenue.String())
	assert.Equal(t, 2, rows[0].Count)
	assert.Equal(t, "Pubmatic", rows[1].Label)
}

func TestByContext_CarriesAdvertiser(t *testing.T) {
	a := rec(1, domain.SectionOE, "Acme", "S", "5")
	a.DealID = "D-1"
	b := rec(2, domain.SectionOE, "Acme", "S", "10")
	b.DealID = "D-1"
	c := rec(3, domain.SectionOE, "Bolt", "S", "3")
	c.DealID = "D-2"

	rows := ByDeal([]domain.Record{a, b, c})
	require.Len(t, rows, 2)
	assert.Equal(t, "D-1", rows[0].ID)
	assert.Equal(t, "Acme", rows[0].Advertiser)
	assert.Equal(t, "15", rows[0].Revenue.String())
	assert.Equal(t, 2, rows[0].Count)
}

func TestFilter_DateRange(t *testing.T) {
	records := []domain.Record{
		rec(1, domain.SectionOE, "A", "S", "1"),
		rec(15, domain.SectionOE, "A", "S", "2"),
		rec(31, domain.SectionOE, "A", "S", "3"),
	}
	cfg := domain.DefaultReportConfig()
	cfg.From = time.Date(2025, time.July, 10, 0, 0, 0, 0, time.UTC)
	cfg.To = time.Date(2025, time.July, 20, 0, 0, 0, 0, time.UTC)

	filtered := Filter(records, cfg)
	require.Len(t, filtered, 1)
	assert.Equal(t, 15, filtered[0].Date.Day())
}

func TestCentPrecisionOverManyAdditions(t *testing.T) {
	records := make([]domain.Record, 0, 10_000)
	for i := 0; i < 10_000; i++ {
		records = append(records, rec(1+i%28, domain.SectionOE, "A", "S", "0.01"))
	}
	total := SectionTotal(records, domain.SectionOE)
	assert.Equal(t, "100", total.Revenue.String())
}
