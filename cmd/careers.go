package main

import (
	"os"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jobscout/jobscout-cli/internal/pipeline"
	"github.com/jobscout/jobscout-cli/internal/report"
	"github.com/jobscout/jobscout-cli/internal/source"
	"github.com/jobscout/jobscout-cli/pkg/perplexity"
)

var (
	careersInput  string
	careersOutput string
)

// careersCandidates are tried in order when no input file is configured
// explicitly and the configured default does not exist.
var careersCandidates = []string{
	"company_list.txt",
	"job_name_list.txt",
}

var careersCmd = &cobra.Command{
	Use:   "careers",
	Short: "Find official career page URLs for a list of companies",
	Long: `Reads company names (one per line), asks a search-grounded oracle for
each company's official careers/jobs page, and writes a plain-text report
with one "<company> | <result>" line per input.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		if cfg.Perplexity.Key == "" {
			return eris.New("careers: perplexity API key not configured (set JOBSCOUT_PERPLEXITY_KEY)")
		}

		inputFile := resolveCareersInput()
		companies, err := source.ReadIdentifiers(inputFile)
		if err != nil {
			zap.L().Error("read input failed", zap.String("file", inputFile), zap.Error(err))
		}
		if len(companies) == 0 {
			zap.L().Warn("no companies found, nothing to do", zap.String("file", inputFile))
			return nil
		}

		searchClient := perplexity.NewClient(cfg.Perplexity.Key,
			perplexity.WithBaseURL(cfg.Perplexity.BaseURL),
			perplexity.WithModel(cfg.Perplexity.Model),
			perplexity.WithTimeout(time.Duration(cfg.Perplexity.TimeoutSecs)*time.Second),
		)
		p := pipeline.New(cfg, nil, nil, searchClient)

		results := make([]report.CareerResult, 0, len(companies))
		for i, company := range companies {
			log := zap.L().With(
				zap.Int("index", i+1),
				zap.Int("total", len(companies)),
				zap.String("company", company),
			)
			log.Info("searching career page")

			answer, err := p.FindCareerPage(ctx, company)
			r := report.CareerResult{Company: company}
			switch {
			case err != nil:
				log.Warn("lookup failed", zap.Error(err))
				r.Result = "ERROR"
			case answer == pipeline.CareerNotFound:
				log.Info("no career page found")
				r.Result = pipeline.CareerNotFound
			default:
				if r.Result = answer; r.Found() {
					log.Info("career page found", zap.String("url", answer))
				} else {
					log.Warn("unexpected oracle response", zap.String("response", preview(answer)))
				}
			}
			results = append(results, r)
		}

		outputFile := careersOutput
		if outputFile == "" {
			outputFile = cfg.Careers.OutputFile
		}
		if err := report.WriteCareerReport(results, outputFile); err != nil {
			return eris.Wrap(err, "careers: write report")
		}

		tally := report.TallyCareers(results)
		zap.L().Info("career report written",
			zap.String("file", outputFile),
			zap.Int("companies", len(companies)),
			zap.Int("found", tally.Found),
			zap.Int("not_found", tally.NotFound),
			zap.Int("errors", tally.Errors),
		)
		return nil
	},
}

// resolveCareersInput picks the input file: the flag, then the configured
// file, then the first existing candidate.
func resolveCareersInput() string {
	if careersInput != "" {
		return careersInput
	}
	if _, err := os.Stat(cfg.Careers.InputFile); err == nil {
		return cfg.Careers.InputFile
	}
	for _, candidate := range careersCandidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return cfg.Careers.InputFile
}

func preview(s string) string {
	if len(s) > 100 {
		return s[:100] + "..."
	}
	return s
}

func init() {
	careersCmd.Flags().StringVar(&careersInput, "input", "", "input file with company names, one per line (default from config)")
	careersCmd.Flags().StringVar(&careersOutput, "output", "", "output text report path (default career_pages.txt)")
	rootCmd.AddCommand(careersCmd)
}
