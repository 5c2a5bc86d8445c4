package main

import (
	"os"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/jobscout/jobscout-cli/internal/pipeline"
	"github.com/jobscout/jobscout-cli/internal/report"
	"github.com/jobscout/jobscout-cli/internal/scrape"
	"github.com/jobscout/jobscout-cli/internal/source"
	anthropicpkg "github.com/jobscout/jobscout-cli/pkg/anthropic"
	"github.com/jobscout/jobscout-cli/pkg/perplexity"
)

var (
	runInput       string
	runOutput      string
	runLimit       int
	runConcurrency int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Process job posting URLs into an XLSX report",
	Long: `Reads job posting URLs from a text or XLSX file, fetches each page,
extracts a structured posting via Claude, aggregates company reviews via
search-grounded lookups, and writes a styled multi-sheet workbook.

A failure on any single URL is logged and skipped; the run continues.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		if cfg.Anthropic.Key == "" {
			return eris.New("run: anthropic API key not configured (set JOBSCOUT_ANTHROPIC_KEY)")
		}

		inputFile := runInput
		if inputFile == "" {
			inputFile = cfg.Input.File
			// A workbook next to the default text file wins, matching the
			// documented input contract.
			if _, err := os.Stat("job_links.xlsx"); err == nil {
				inputFile = "job_links.xlsx"
			}
		}

		urls, err := source.ReadIdentifiers(inputFile)
		if err != nil {
			zap.L().Error("read input failed", zap.String("file", inputFile), zap.Error(err))
		}
		if len(urls) == 0 {
			zap.L().Warn("no URLs found, nothing to do", zap.String("file", inputFile))
			return nil
		}
		if runLimit > 0 && runLimit < len(urls) {
			urls = urls[:runLimit]
		}
		if runConcurrency > 0 {
			cfg.Pipeline.Concurrency = runConcurrency
		}

		fetcher := scrape.NewPageFetcher(scrape.Options{
			UserAgent: cfg.Fetch.UserAgent,
			Timeout:   time.Duration(cfg.Fetch.TimeoutSecs) * time.Second,
			HostRate:  rate.Limit(cfg.Fetch.HostRate),
			MaxBody:   int64(cfg.Fetch.MaxBodyKB) * 1024,
		})
		aiClient := anthropicpkg.NewClient(cfg.Anthropic.Key)

		var searchClient perplexity.Client
		if cfg.Perplexity.Key != "" {
			searchClient = perplexity.NewClient(cfg.Perplexity.Key,
				perplexity.WithBaseURL(cfg.Perplexity.BaseURL),
				perplexity.WithModel(cfg.Perplexity.Model),
				perplexity.WithTimeout(time.Duration(cfg.Perplexity.TimeoutSecs)*time.Second),
			)
		} else {
			zap.L().Warn("perplexity key not configured, review aggregation disabled")
		}

		p := pipeline.New(cfg, fetcher, aiClient, searchClient)
		result := p.Run(ctx, urls)

		wb := report.Workbook{
			RunID:     result.RunID,
			Generated: time.Now(),
			Postings:  result.Postings,
			Bundles:   result.Bundles,
		}
		outputPath := runOutput
		if outputPath == "" {
			outputPath = cfg.Output.File
		}
		path, err := wb.Build(outputPath)
		if err != nil {
			if eris.Is(err, report.ErrNoData) {
				zap.L().Warn("no data to export, report not written")
				return nil
			}
			return eris.Wrap(err, "run: build report")
		}

		zap.L().Info("report written",
			zap.String("file", path),
			zap.Int("postings", len(result.Postings)),
			zap.Int("review_bundles", len(result.Bundles)),
			zap.Int("skipped", result.Skipped),
		)
		return nil
	},
}

func init() {
	runCmd.Flags().StringVar(&runInput, "input", "", "input file with job URLs (txt or xlsx; default from config)")
	runCmd.Flags().StringVar(&runOutput, "output", "", "output workbook path (default jobs_<timestamp>.xlsx)")
	runCmd.Flags().IntVar(&runLimit, "limit", 0, "process at most N URLs (0 = all)")
	runCmd.Flags().IntVar(&runConcurrency, "concurrency", 0, "URLs processed in parallel (0 = config value, default 1)")
	rootCmd.AddCommand(runCmd)
}
