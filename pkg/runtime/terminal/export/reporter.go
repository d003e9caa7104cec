package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/shopspring/decimal"

	"github.com/de-tools/rtb-report/pkg/services/pipeline"
	"github.com/de-tools/rtb-report/pkg/services/report"
)

// View names accepted by the analyze command.
const (
	ViewTotals      = "totals"
	ViewAdvertisers = "advertisers"
	ViewWeekly      = "weekly"
	ViewTables      = "tables"
	ViewAll         = "all"
)

type TableConfig struct {
	LabelWidth  int
	AmountWidth int
	CountWidth  int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		LabelWidth:  40,
		AmountWidth: 16,
		CountWidth:  8,
	}
}

type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

// Handle writes the requested view of an analysis result.
func (c *Reporter) Handle(result *pipeline.Result, view string) error {
	switch view {
	case ViewTotals:
		return c.block(result, 0)
	case ViewAdvertisers:
		return c.block(result, 1)
	case ViewWeekly:
		return c.block(result, 2)
	case ViewTables:
		return c.tables(result)
	case ViewAll, "":
		for i := range result.Blocks {
			if err := c.block(result, i); err != nil {
				return err
			}
		}
		return c.tables(result)
	default:
		return fmt.Errorf("unknown view %q", view)
	}
}

func (c *Reporter) block(result *pipeline.Result, idx int) error {
	if idx >= len(result.Blocks) {
		return fmt.Errorf("no block at index %d", idx)
	}
	b := result.Blocks[idx]
	_, err := fmt.Fprintf(c.writer, "%s\n\n%s\n\n", b.Title, b.Text())
	return err
}

func (c *Reporter) tables(result *pipeline.Result) error {
	funcMap := template.FuncMap{
		"usd": func(d decimal.Decimal) string {
			return report.FormatUSD(d)
		},
		"formatRow": func(label string, amount string, count int) string {
			return fmt.Sprintf("| %-*s | %*s | %*d |",
				c.config.LabelWidth, clip(label, c.config.LabelWidth),
				c.config.AmountWidth, amount,
				c.config.CountWidth, count)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+",
				strings.Repeat("-", c.config.LabelWidth+2),
				strings.Repeat("-", c.config.AmountWidth+2),
				strings.Repeat("-", c.config.CountWidth+2))
		},
	}

	tmpl := `
Rows read: {{.Summary.RowsRead}}, kept: {{.Summary.RowsKept}}, dropped: {{.Summary.DroppedTotal}}, filtered out: {{.Summary.RowsFiltered}}
{{- if .Summary.Truncated}}
Input truncated at the row ceiling.
{{- end}}

=== Revenue by Date ===
{{separator}}
{{range .Tables.ByDate}}{{formatRow .Label (usd .Revenue) .Count}}
{{end}}{{separator}}

=== By RTB Channel ===
{{separator}}
{{range .Tables.ByChannel}}{{formatRow .Label (usd .Revenue) .Count}}
{{end}}{{separator}}

=== By RTB SSP ===
{{separator}}
{{range .Tables.BySSP}}{{formatRow .Label (usd .Revenue) .Count}}
{{end}}{{separator}}

=== By System ===
{{separator}}
{{range .Tables.BySystem}}{{formatRow .Label (usd .Revenue) .Count}}
{{end}}{{separator}}
`
	t, err := template.New("tables").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, result)
}

func clip(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
