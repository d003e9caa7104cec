package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Section is the top-level revenue breakout a record belongs to.
type Section string

const (
	SectionOE           Section = "OE"
	SectionPMP          Section = "PMP"
	SectionUnclassified Section = ""
)

// Field identifies one of the canonical columns every input file must
// be reconciled against.
type Field string

const (
	FieldDate       Field = "Date - EST"
	FieldChannel    Field = "RTB Channel"
	FieldAdvertiser Field = "RTB Advertiser"
	FieldSSP        Field = "RTB SSP"
	FieldSystem     Field = "System"
	FieldDealID     Field = "RTB Deal ID"
	FieldCreativeID Field = "RTB Creative ID"
	FieldRevenue    Field = "Revenue"
)

// Fields lists the canonical columns in declaration order.
var Fields = []Field{
	FieldDate,
	FieldChannel,
	FieldAdvertiser,
	FieldSSP,
	FieldSystem,
	FieldDealID,
	FieldCreativeID,
	FieldRevenue,
}

// Record is one cleaned revenue event. Date carries no time component
// and Revenue keeps cent precision through every aggregation.
type Record struct {
	Date       time.Time
	Channel    string
	Advertiser string
	SSP        string
	System     string
	DealID     string
	CreativeID string
	Revenue    decimal.Decimal
	Section    Section
}

// WeekBucket partitions a calendar month into four fixed buckets by
// day-of-month range, independent of weekday alignment.
type WeekBucket int

const (
	W1 WeekBucket = iota + 1
	W2
	W3
	W4
)

// WeekBuckets lists the buckets in render order.
var WeekBuckets = []WeekBucket{W1, W2, W3, W4}

// WeekOf maps a date to its bucket: days 1-7 -> W1, 8-14 -> W2,
// 15-21 -> W3, 22 through end of month -> W4.
func WeekOf(d time.Time) WeekBucket {
	switch day := d.Day(); {
	case day <= 7:
		return W1
	case day <= 14:
		return W2
	case day <= 21:
		return W3
	default:
		return W4
	}
}

func (w WeekBucket) String() string {
	switch w {
	case W1:
		return "W1"
	case W2:
		return "W2"
	case W3:
		return "W3"
	case W4:
		return "W4"
	}
	return "W?"
}

// MonthKey returns the sortable month identity of a date, e.g. "2025-07".
func MonthKey(d time.Time) string {
	return d.Format("2006-01")
}

// MonthLabel returns the display form of a month, e.g. "Jul 2025".
func MonthLabel(d time.Time) string {
	return d.Format("Jan 2006")
}
