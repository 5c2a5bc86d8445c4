package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/rotisserie/eris"

	"github.com/jobscout/jobscout-cli/internal/model"
)

const reviewSystemPrompt = `You search and aggregate company reviews from Glassdoor, AmbitionBox, Reddit, etc.

Return ONLY valid JSON. No markdown, no extra text.

Format:
{"company_name":"","reviews":[{"source":"","rating":"","comment":"","url":""}],"aggregated_review_score":7,"summary":""}`

// FetchReviews asks the search-grounded oracle for a review bundle. The
// caller treats any error as "no bundle" and keeps the posting.
func (p *Pipeline) FetchReviews(ctx context.Context, company string) (*model.ReviewBundle, error) {
	callCtx, cancel := context.WithTimeout(ctx, time.Duration(p.cfg.Perplexity.TimeoutSecs)*time.Second)
	defer cancel()

	text, err := p.search.Ask(callCtx, reviewSystemPrompt,
		fmt.Sprintf("Company: %s\n\nSearch reviews and return JSON only:", company))
	if err != nil {
		return nil, eris.Wrap(err, "reviews: query")
	}

	m, ok := decodeRecord(text)
	if !ok {
		return nil, eris.New("reviews: no review record in response")
	}

	bundle := model.ReviewBundleFromMap(m)
	if bundle.CompanyName == "" {
		bundle.CompanyName = company
	}
	return &bundle, nil
}
