package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/rtb-report/pkg/server"
	"github.com/de-tools/rtb-report/pkg/services/config"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for the RTB revenue report engine",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to an optional profile file with report defaults")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	var profile *config.Profile
	if cfgPath != "" {
		var err error
		profile, err = config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("failed to load profile: %w", err)
		}
		logger.Info().Msgf("Profile found at `%s` successfully loaded.", cfgPath)
	}
	defaults := profile.ReportConfig()

	addr := config.ResolveAddr(profile, os.Getenv("SERVER_HOST"), os.Getenv("SERVER_PORT"))
	if addr == "" {
		logger.Error().Msgf("Missing server configuration: set SERVER_HOST and SERVER_PORT or a profile addr")
		os.Exit(1)
	}

	api := server.NewWebAPI(logger, server.Config{
		Addr:     addr,
		Defaults: defaults,
	})

	return api.Start()
}
