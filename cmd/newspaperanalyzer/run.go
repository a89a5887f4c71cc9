package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"NewspaperAnalyzer/internal/app"
	"NewspaperAnalyzer/internal/domain"
)

// NewRunCmd creates the run command.
func NewRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the daily analysis once",
		Long: `Run waits until the analysis application is reachable, then processes
every enabled source one after another. Sources already analyzed today are
skipped. The command fails when no source succeeded.`,
		Args: cobra.NoArgs,
		RunE: runRunCmd,
	}
}

func runRunCmd(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.ValidateForRun(); err != nil {
		return err
	}

	application, err := app.New(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer application.Close()

	summary, err := application.Run(cmd.Context())
	printSummary(cmd.OutOrStdout(), summary)
	return err
}

func printSummary(w io.Writer, summary domain.RunSummary) {
	if summary.RunID == "" {
		return
	}
	fmt.Fprintf(w, "run %s: %d/%d sources succeeded\n", summary.RunID, summary.Succeeded, summary.Processed)
	for _, o := range summary.Outcomes {
		switch o.Status {
		case domain.StatusSucceeded:
			fmt.Fprintf(w, "  %-28s %-9s analysis=%d articles=%d\n", o.Source, o.Status, o.AnalysisID, o.Articles)
		case domain.StatusFailed:
			fmt.Fprintf(w, "  %-28s %-9s stage=%s %v\n", o.Source, o.Status, o.FailedStage(), o.Err)
		default:
			fmt.Fprintf(w, "  %-28s %s\n", o.Source, o.Status)
		}
	}
}
