package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"NewspaperAnalyzer/internal/app"
)

// NewAnalyzeCmd creates the analyze command.
func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze one source without storing results",
		Long: `Analyze runs download, extraction, analysis and parsing for a single
source and prints the articles found. Nothing is written to the database.

Examples:
  # Download today's PDF of a configured source
  newspaper-analyzer analyze --source "Mitteldeutsche Zeitung"

  # Use a local PDF instead of downloading
  newspaper-analyzer analyze --source Volksstimme --file ./today.pdf`,
		Args: cobra.NoArgs,
		RunE: runAnalyzeCmd,
	}

	cmd.Flags().StringP("source", "s", "", "Name of the configured source")
	cmd.Flags().StringP("file", "f", "", "Local PDF to analyze instead of downloading")
	_ = cmd.MarkFlagRequired("source")

	return cmd
}

func runAnalyzeCmd(cmd *cobra.Command, _ []string) error {
	sourceName, err := cmd.Flags().GetString("source")
	if err != nil {
		return err
	}
	file, err := cmd.Flags().GetString("file")
	if err != nil {
		return err
	}

	var document []byte
	if file != "" {
		if document, err = os.ReadFile(file); err != nil {
			return fmt.Errorf("read %s: %w", file, err)
		}
	}

	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	application, err := app.New(cmd.Context(), cfg, logger, app.WithoutStorage())
	if err != nil {
		return err
	}
	defer application.Close()

	articles, err := application.Analyze(cmd.Context(), sourceName, document)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PRIORITY\tCATEGORY\tPAGE\tTITLE")
	for _, a := range articles {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", a.Priority, a.Category, a.Page, a.Title)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d articles\n", len(articles))
	return nil
}
