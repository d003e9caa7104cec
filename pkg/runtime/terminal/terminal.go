package terminal

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/de-tools/rtb-report/pkg/models/domain"
	"github.com/de-tools/rtb-report/pkg/runtime/terminal/commands"
	"github.com/de-tools/rtb-report/pkg/runtime/terminal/export"
)

// CLI represents the command-line interface
type CLI struct {
	reporter *export.Reporter
	defaults domain.ReportConfig
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Defaults domain.ReportConfig
	Output   io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		reporter: export.NewReporter(opts.Output),
		defaults: opts.Defaults,
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rtbreport",
		Short: "RTB revenue report tool",
	}

	cmd.AddCommand(commands.NewAnalyzeCmd(cli.defaults, cli.reporter))

	return cmd
}
