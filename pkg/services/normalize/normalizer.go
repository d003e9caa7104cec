// Package normalize turns raw file rows into canonical records:
// multi-format date parsing, currency cleanup into exact decimals and
// channel classification into the OE/PMP sections. Bad rows drop with
// a counted reason and never abort the run.
package normalize

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/de-tools/rtb-report/pkg/models/domain"
	"github.com/de-tools/rtb-report/pkg/services/schema"
)

// dateLayouts are tried in order for textual dates.
var dateLayouts = []string{
	"1/2/2006",
	"01/02/2006",
	"2006-01-02",
	"2006/01/02",
	"1/2/06",
	"Jan 2, 2006",
	"2 Jan 2006",
	"2006-01-02 15:04:05",
	"1/2/2006 15:04",
}

// serialEpoch anchors spreadsheet serial date numbers (day 1 is
// 1899-12-31, with the historical off-by-one for 1900).
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// pmpTokens and oeTokens drive section classification; PMP wins when
// both match.
var (
	pmpTokens = []string{"pmp", "private", "preferred", "deal", "programmatic guaranteed", "pg"}
	oeTokens  = []string{"oe", "open exchange", "open", "open auction"}
)

// Normalizer converts raw rows addressed by a resolved column mapping.
type Normalizer struct {
	mapping schema.Mapping
}

func New(mapping schema.Mapping) *Normalizer {
	return &Normalizer{mapping: mapping}
}

// Record normalizes one raw row. On failure it reports the drop
// reason and ok=false; the caller counts and continues.
func (n *Normalizer) Record(raw map[string]string) (domain.Record, domain.DropReason, bool) {
	if isEmpty(raw) {
		return domain.Record{}, domain.DropEmptyRow, false
	}

	date, ok := ParseDate(n.cell(raw, domain.FieldDate))
	if !ok {
		return domain.Record{}, domain.DropBadDate, false
	}
	revenue, ok := ParseRevenue(n.cell(raw, domain.FieldRevenue))
	if !ok {
		return domain.Record{}, domain.DropBadRevenue, false
	}

	channel := n.cell(raw, domain.FieldChannel)
	rec := domain.Record{
		Date:       date,
		Channel:    channel,
		Advertiser: n.cell(raw, domain.FieldAdvertiser),
		SSP:        n.cell(raw, domain.FieldSSP),
		System:     n.cell(raw, domain.FieldSystem),
		DealID:     n.cell(raw, domain.FieldDealID),
		CreativeID: n.cell(raw, domain.FieldCreativeID),
		Revenue:    revenue,
		Section:    ClassifyChannel(channel),
	}
	return rec, "", true
}

func (n *Normalizer) cell(raw map[string]string, f domain.Field) string {
	header, ok := n.mapping[f]
	if !ok {
		return ""
	}
	return strings.TrimSpace(raw[header])
}

func isEmpty(raw map[string]string) bool {
	for _, v := range raw {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// ParseDate accepts common textual formats and spreadsheet serial
// numbers. The returned date is truncated to midnight UTC.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		// Plausible spreadsheet serial range: 1900 through ~2173.
		if serial >= 1 && serial < 100_000 {
			t := serialEpoch.AddDate(0, 0, int(serial))
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseRevenue strips currency symbols, thousands separators and
// whitespace, treats parenthesized values as negative and keeps exact
// decimal precision.
func ParseRevenue(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Decimal{}, false
	}
	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}
	cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(s)
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, false
	}
	if negative {
		d = d.Neg()
	}
	return d, true
}

// ClassifyChannel assigns a record to the PMP or OE section by keyword
// match on the channel text. Unmatched channels stay unclassified and
// are excluded from the formatted breakouts only.
func ClassifyChannel(channel string) domain.Section {
	v := strings.ToLower(strings.TrimSpace(channel))
	if v == "" {
		return domain.SectionUnclassified
	}
	for _, t := range pmpTokens {
		if strings.Contains(v, t) {
			return domain.SectionPMP
		}
	}
	for _, t := range oeTokens {
		if strings.Contains(v, t) {
			return domain.SectionOE
		}
	}
	return domain.SectionUnclassified
}
