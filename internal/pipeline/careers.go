package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

// CareerNotFound is the sentinel the lookup oracle returns when a company
// has no dedicated career page.
const CareerNotFound = "NOT_FOUND"

const careerSystemPrompt = `You are a career page URL finder. Your ONLY task is to find the official careers/jobs page URL for companies.

CRITICAL RULES:
- Return ONLY the direct career page URL (e.g., https://company.com/careers)
- Do NOT return the company homepage
- Do NOT return LinkedIn, Indeed, or job board URLs
- Do NOT return any explanation or additional text
- If no career page exists, return "NOT_FOUND"
- Return only ONE URL per company

Valid examples:
- https://google.com/careers
- https://stripe.com/jobs
- https://netflix.jobs

Invalid examples (DO NOT RETURN):
- https://company.com (homepage)
- https://linkedin.com/company/xyz
- https://indeed.com/company/xyz`

// FindCareerPage asks the search-grounded oracle for a company's career
// page URL. The returned string is the oracle's trimmed answer: a URL, the
// CareerNotFound sentinel, or whatever else the model produced — the
// caller classifies it for the report.
func (p *Pipeline) FindCareerPage(ctx context.Context, company string) (string, error) {
	if p.search == nil {
		return "", eris.New("careers: search oracle not configured")
	}

	callCtx, cancel := context.WithTimeout(ctx, time.Duration(p.cfg.Perplexity.TimeoutSecs)*time.Second)
	defer cancel()

	text, err := p.search.Ask(callCtx, careerSystemPrompt,
		fmt.Sprintf("Find the official career page URL for: %s", company))
	if err != nil {
		return "", eris.Wrap(err, "careers: query")
	}

	return strings.TrimSpace(text), nil
}
