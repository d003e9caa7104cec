package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	DefaultTopN      = 10
	DefaultAmountCol = 40
	DefaultLineWidth = 80
	DefaultMaxRows   = 500_000
)

// ReportConfig carries every caller-tunable knob for one pipeline run.
// Zero From/To means the corresponding bound is open.
type ReportConfig struct {
	TopN      int
	AmountCol int
	LineWidth int
	From      time.Time
	To        time.Time
	// PMPFirst flips the documented default section order (OE first).
	PMPFirst bool
	// MaxRows caps ingestion; rows beyond it are not read and the
	// run summary is flagged as truncated.
	MaxRows int
}

// DefaultReportConfig returns the documented defaults: top 10 rows,
// amount column 40, 80-character lines, open date range.
func DefaultReportConfig() ReportConfig {
	return ReportConfig{
		TopN:      DefaultTopN,
		AmountCol: DefaultAmountCol,
		LineWidth: DefaultLineWidth,
		MaxRows:   DefaultMaxRows,
	}
}

// SectionOrder returns both sections in configured render order.
func (c ReportConfig) SectionOrder() []Section {
	if c.PMPFirst {
		return []Section{SectionPMP, SectionOE}
	}
	return []Section{SectionOE, SectionPMP}
}

// InRange reports whether a date passes the configured filter.
func (c ReportConfig) InRange(d time.Time) bool {
	if !c.From.IsZero() && d.Before(c.From) {
		return false
	}
	if !c.To.IsZero() && d.After(c.To) {
		return false
	}
	return true
}

// Validate rejects configurations before any processing happens.
func (c ReportConfig) Validate() error {
	var problems []string
	if c.TopN <= 0 {
		problems = append(problems, fmt.Sprintf("top-n must be positive, got %d", c.TopN))
	}
	if c.AmountCol <= 0 {
		problems = append(problems, fmt.Sprintf("amount column must be positive, got %d", c.AmountCol))
	}
	if c.LineWidth != DefaultLineWidth {
		problems = append(problems, fmt.Sprintf("line width is fixed at %d, got %d", DefaultLineWidth, c.LineWidth))
	}
	if !c.From.IsZero() && !c.To.IsZero() && c.From.After(c.To) {
		problems = append(problems, fmt.Sprintf("date range start %s is after end %s",
			c.From.Format("2006-01-02"), c.To.Format("2006-01-02")))
	}
	if len(problems) > 0 {
		return &ConfigError{Problems: problems}
	}
	return nil
}

// ConfigError rejects a run before processing starts.
type ConfigError struct {
	Problems []string
}

func (e *ConfigError) Error() string {
	return "invalid report config: " + strings.Join(e.Problems, "; ")
}
