package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/suzannah24/title-aggregator/internal/aggregator"
	"github.com/suzannah24/title-aggregator/internal/config"
	"github.com/suzannah24/title-aggregator/internal/handler"
	"github.com/suzannah24/title-aggregator/internal/model"
)

var (
	flagConfig string
	flagJSON   bool
)

var rootCmd = &cobra.Command{
	Use:   "fetcher",
	Short: "Run one aggregation and print the articles",
	Long:  "fetcher collects articles from the feed and the monthly archive pages, merges them and prints the result, newest first.",
	RunE:  runFetch,
}

func init() {
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "path to config file")
	rootCmd.Flags().BoolVar(&flagJSON, "json", false, "print the result as JSON")
}

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	agg, err := aggregator.FromConfig(cfg)
	if err != nil {
		return fmt.Errorf("building aggregator: %w", err)
	}

	report := agg.Run(cmd.Context())

	for _, e := range report.Errors {
		fmt.Fprintf(cmd.ErrOrStderr(), "  [warn] %v\n", e)
	}

	if flagJSON {
		return writeJSON(cmd.OutOrStdout(), report)
	}
	return writeText(cmd.OutOrStdout(), report)
}

func writeText(w io.Writer, report aggregator.Report) error {
	for _, a := range report.Articles {
		if _, err := fmt.Fprintf(w, "%s  %s\n            %s\n", a.Date.Format(model.DateLayout), a.Title, a.Link); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "Total unique articles: %d\n", report.Stats.Total)
	if err == nil && report.Stats.Total > 0 {
		_, err = fmt.Fprintf(w, "Date range: %s\n", report.Stats.Span())
	}
	return err
}

func writeJSON(w io.Writer, report aggregator.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(handler.NewArticlesResponse(report))
}
