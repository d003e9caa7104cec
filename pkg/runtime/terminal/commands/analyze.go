package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/rtb-report/pkg/models/domain"
	"github.com/de-tools/rtb-report/pkg/runtime/terminal/export"
	"github.com/de-tools/rtb-report/pkg/services/ingest"
	"github.com/de-tools/rtb-report/pkg/services/pipeline"
)

type AnalyzeCmd struct {
	filePath  string
	topN      int
	amountCol int
	from      string
	to        string
	view      string
	pmpFirst  bool
	defaults  domain.ReportConfig
	reporter  *export.Reporter
}

func NewAnalyzeCmd(defaults domain.ReportConfig, reporter *export.Reporter) *cobra.Command {
	ac := &AnalyzeCmd{defaults: defaults, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a revenue file and print reports",
		RunE:  ac.run,
	}

	// Define flags
	cmd.Flags().StringVar(&ac.filePath, "file", "", "Path to the CSV or spreadsheet file")
	cmd.Flags().IntVar(&ac.topN, "top-n", defaults.TopN, "Ranked rows shown per section")
	cmd.Flags().IntVar(&ac.amountCol, "amount-col", defaults.AmountCol, "Character column the amounts align to")
	cmd.Flags().StringVar(&ac.from, "from", "", "Inclusive lower date bound (YYYY-MM-DD)")
	cmd.Flags().StringVar(&ac.to, "to", "", "Inclusive upper date bound (YYYY-MM-DD)")
	cmd.Flags().StringVar(&ac.view, "view", export.ViewAll, "View: totals, advertisers, weekly, tables or all")
	cmd.Flags().BoolVar(&ac.pmpFirst, "pmp-first", defaults.PMPFirst, "Render the PMP section before OE")

	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func (ac *AnalyzeCmd) run(cmd *cobra.Command, args []string) error {
	cfg, err := ac.config()
	if err != nil {
		return err
	}

	f, err := os.Open(ac.filePath)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", ac.filePath, err)
	}
	defer f.Close()

	doc, err := ingest.Read(ac.filePath, f, cfg.MaxRows)
	if err != nil {
		return err
	}

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	result, err := pipeline.Analyze(ctx, doc, cfg)
	if err != nil {
		return err
	}

	return ac.reporter.Handle(result, ac.view)
}

func (ac *AnalyzeCmd) config() (domain.ReportConfig, error) {
	cfg := ac.defaults
	cfg.TopN = ac.topN
	cfg.AmountCol = ac.amountCol
	cfg.PMPFirst = ac.pmpFirst
	if ac.from != "" {
		t, err := time.Parse("2006-01-02", ac.from)
		if err != nil {
			return cfg, fmt.Errorf("invalid --from value %q: %w", ac.from, err)
		}
		cfg.From = t
	}
	if ac.to != "" {
		t, err := time.Parse("2006-01-02", ac.to)
		if err != nil {
			return cfg, fmt.Errorf("invalid --to value %q: %w", ac.to, err)
		}
		cfg.To = t
	}
	return cfg, nil
}
