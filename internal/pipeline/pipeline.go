// Package pipeline drives the per-identifier state machine: fetch the
// page, extract a job posting, optionally aggregate company reviews, and
// accumulate records for the report. Any failure skips that one
// identifier; the run itself never aborts.
package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jobscout/jobscout-cli/internal/config"
	"github.com/jobscout/jobscout-cli/internal/extract"
	"github.com/jobscout/jobscout-cli/internal/model"
	"github.com/jobscout/jobscout-cli/pkg/anthropic"
	"github.com/jobscout/jobscout-cli/pkg/perplexity"
)

// Fetcher retrieves a URL's content as plaintext.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Pipeline processes job posting URLs end to end.
type Pipeline struct {
	cfg     *config.Config
	fetcher Fetcher
	ai      anthropic.Client
	search  perplexity.Client // nil disables the review stage
}

// New creates a Pipeline. search may be nil, in which case review
// aggregation is skipped for every posting.
func New(cfg *config.Config, fetcher Fetcher, ai anthropic.Client, search perplexity.Client) *Pipeline {
	return &Pipeline{cfg: cfg, fetcher: fetcher, ai: ai, search: search}
}

// Result holds the accumulated records of one run. Postings and Bundles
// preserve input order; the two lists may differ in length because a
// bundle is optional per posting.
type Result struct {
	RunID    string
	Started  time.Time
	Postings []model.JobPosting
	Bundles  []model.ReviewBundle
	Skipped  int
}

// outcome is the per-identifier result slot, index-addressed so that
// concurrent runs compact into the same order a sequential run produces.
type outcome struct {
	posting *model.JobPosting
	bundle  *model.ReviewBundle
}

// Run processes all identifiers and returns the accumulated records.
// Concurrency 1 (the default) is strictly sequential; higher values run
// whole identifiers in parallel while each identifier still passes through
// fetch → extract → review in order.
func (p *Pipeline) Run(ctx context.Context, urls []string) *Result {
	result := &Result{
		RunID:   uuid.NewString(),
		Started: time.Now(),
	}

	zap.L().Info("pipeline start",
		zap.String("run_id", result.RunID),
		zap.Int("urls", len(urls)),
	)

	concurrency := p.cfg.Pipeline.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	outcomes := make([]outcome, len(urls))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, u := range urls {
		i, u := i, u
		g.Go(func() error {
			outcomes[i] = p.processOne(gCtx, i, len(urls), u)
			return nil
		})
	}
	// Workers never return errors; the group is only a bounded waiter.
	_ = g.Wait()

	for _, o := range outcomes {
		if o.posting == nil {
			result.Skipped++
			continue
		}
		result.Postings = append(result.Postings, *o.posting)
		if o.bundle != nil {
			result.Bundles = append(result.Bundles, *o.bundle)
		}
	}

	zap.L().Info("pipeline complete",
		zap.String("run_id", result.RunID),
		zap.Int("postings", len(result.Postings)),
		zap.Int("review_bundles", len(result.Bundles)),
		zap.Int("skipped", result.Skipped),
		zap.Duration("elapsed", time.Since(result.Started)),
	)
	return result
}

// processOne runs the fetch → extract → review state machine for a single
// URL. A nil posting means the identifier was skipped. A failed review
// lookup only omits the bundle; the posting is kept.
func (p *Pipeline) processOne(ctx context.Context, idx, total int, url string) outcome {
	log := zap.L().With(
		zap.Int("index", idx+1),
		zap.Int("total", total),
		zap.String("url", url),
	)
	log.Info("processing url")

	// Fetching.
	pageText, err := p.fetcher.Fetch(ctx, url)
	if err != nil {
		log.Warn("fetch failed, skipping", zap.Error(err))
		return outcome{}
	}
	log.Info("page fetched", zap.Int("chars", len(pageText)))

	// Extracting.
	posting, err := p.ExtractJob(ctx, url, pageText)
	if err != nil {
		log.Warn("extraction failed, skipping", zap.Error(err))
		return outcome{}
	}
	log.Info("job extracted",
		zap.String("company", posting.DisplayCompany()),
		zap.String("role", posting.RoleName),
		zap.Int("match_score", posting.MatchScore),
	)

	// Reviewing (optional).
	if !posting.HasCompany() || p.search == nil {
		return outcome{posting: posting}
	}

	bundle, err := p.FetchReviews(ctx, posting.CompanyName)
	if err != nil {
		log.Warn("review lookup failed, keeping posting without reviews", zap.Error(err))
		return outcome{posting: posting}
	}
	log.Info("reviews aggregated",
		zap.String("company", posting.CompanyName),
		zap.Int("review_count", len(bundle.Reviews)),
		zap.Int("aggregated_score", bundle.AggregatedScore),
	)
	return outcome{posting: posting, bundle: bundle}
}

// decodeRecord runs the tolerant JSON normalizer and reports whether it
// recovered anything.
func decodeRecord(text string) (map[string]any, bool) {
	m := extract.Decode(text)
	return m, len(m) > 0
}
