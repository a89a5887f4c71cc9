package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"NewspaperAnalyzer/internal/app"
)

// NewCheckCmd creates the check command.
func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate configuration and probe dependencies",
		Long: `Check validates the configuration, opens the database and probes the
analysis application once. Use --offline to only validate the configuration.`,
		Args: cobra.NoArgs,
		RunE: runCheckCmd,
	}
	cmd.Flags().Bool("offline", false, "Only validate the configuration")
	return cmd
}

func runCheckCmd(cmd *cobra.Command, _ []string) error {
	offline, err := cmd.Flags().GetBool("offline")
	if err != nil {
		return err
	}

	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "configuration ok")
	for _, s := range cfg.DomainSources() {
		state := "disabled"
		if s.Enabled {
			state = "enabled"
		}
		fmt.Fprintf(out, "  %-28s %-8s %s\n", s.Name, state, s.URL)
	}
	if offline {
		return nil
	}

	application, err := app.New(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer application.Close()

	if err := application.CheckHealth(cmd.Context()); err != nil {
		return err
	}
	fmt.Fprintln(out, "dependencies reachable")
	return nil
}
