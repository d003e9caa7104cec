package main

import (
	"fmt"
	"os"

	"github.com/de-tools/rtb-report/pkg/models/domain"
	"github.com/de-tools/rtb-report/pkg/runtime/terminal"
	"github.com/de-tools/rtb-report/pkg/services/config"
)

func main() {
	defaults := domain.DefaultReportConfig()
	if path := os.Getenv("RTBREPORT_PROFILE"); path != "" {
		profile, err := config.Load(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defaults = profile.ReportConfig()
	}

	cli := terminal.NewCLI(terminal.Options{
		Defaults: defaults,
		Output:   os.Stdout,
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
