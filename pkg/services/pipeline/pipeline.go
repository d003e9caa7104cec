// Package pipeline runs the full analysis pass: header resolution,
// row normalization, aggregation and report formatting. One call is a
// pure function of its inputs, so concurrent runs never interfere.
package pipeline

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/de-tools/rtb-report/pkg/models/domain"
	"github.com/de-tools/rtb-report/pkg/services/aggregate"
	"github.com/de-tools/rtb-report/pkg/services/ingest"
	"github.com/de-tools/rtb-report/pkg/services/normalize"
	"github.com/de-tools/rtb-report/pkg/services/report"
	"github.com/de-tools/rtb-report/pkg/services/schema"
)

// Result bundles everything one run produces: row accounting, the
// structured aggregates and the copy-ready formatted blocks.
type Result struct {
	Summary domain.Summary
	Totals  []domain.SectionTotal
	Ranked  []domain.RankedAdvertisers
	Weekly  []domain.MonthWeekly
	Tables  domain.Tables
	Blocks  []domain.ReportBlock
}

// Analyze processes one parsed upload under the given config. A
// SchemaError or ConfigError aborts with no partial output; row-level
// failures only count into the summary.
func Analyze(ctx context.Context, doc *ingest.Document, cfg domain.ReportConfig) (*Result, error) {
	logger := zerolog.Ctx(ctx)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	mapping, err := schema.Resolve(doc.Headers)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve columns: %w", err)
	}

	summary := domain.Summary{
		RowsRead:  len(doc.Rows),
		Dropped:   map[domain.DropReason]int{},
		Truncated: doc.Truncated,
	}
	normalizer := normalize.New(mapping)
	records := make([]domain.Record, 0, len(doc.Rows))
	for _, raw := range doc.Rows {
		rec, reason, ok := normalizer.Record(raw)
		if !ok {
			summary.Dropped[reason]++
			continue
		}
		records = append(records, rec)
	}
	summary.RowsKept = len(records)

	filtered := aggregate.Filter(records, cfg)
	summary.RowsFiltered = len(records) - len(filtered)

	logger.Info().
		Int("rows_read", summary.RowsRead).
		Int("rows_kept", summary.RowsKept).
		Int("rows_dropped", summary.DroppedTotal()).
		Int("rows_filtered", summary.RowsFiltered).
		Bool("truncated", summary.Truncated).
		Msg("normalization complete")

	totals := aggregate.SectionTotals(filtered)
	ranked := []domain.RankedAdvertisers{
		aggregate.RankAdvertisers(filtered, domain.SectionOE),
		aggregate.RankAdvertisers(filtered, domain.SectionPMP),
	}
	weekly := aggregate.Weekly(filtered)
	tables := domain.Tables{
		ByDate:      aggregate.ByDate(filtered),
		ByChannel:   aggregate.ByChannel(filtered),
		BySSP:       aggregate.BySSP(filtered),
		BySystem:    aggregate.BySystem(filtered),
		Advertisers: aggregate.Advertisers(filtered),
		ByDeal:      aggregate.ByDeal(filtered),
		ByCreative:  aggregate.ByCreative(filtered),
	}

	formatter := report.NewFormatter(cfg)
	blocks := []domain.ReportBlock{
		formatter.Totals(totals),
		formatter.AdvertiserBreakout(ranked),
		formatter.WeeklyBreakout(weekly),
	}

	return &Result{
		Summary: summary,
		Totals:  totals,
		Ranked:  ranked,
		Weekly:  weekly,
		Tables:  tables,
		Blocks:  blocks,
	}, nil
}
