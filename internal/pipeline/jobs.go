package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rotisserie/eris"

	"github.com/jobscout/jobscout-cli/internal/model"
	"github.com/jobscout/jobscout-cli/pkg/anthropic"
)

// maxPageChars caps how much page text is sent to the extraction oracle.
// Job postings front-load the relevant content; the tail is boilerplate.
const maxPageChars = 30000

const jobSystemPrompt = `You are a JSON data extractor for job postings.

Extract these fields from the page text:
- company_name, role_name, experience_required, experience_type, location (with exact and city), remote, hybrid_or_flexible, match_score (1-10 based on the preferences)

Use "Unknown" for company_name when the page does not name the company.

CRITICAL: Return ONLY valid JSON. No markdown, no code blocks, no extra text.

Format:
{"company_name":"","role_name":"","experience_required":"","experience_type":"","location":{"exact":"","city":""},"remote":"","hybrid_or_flexible":"","match_score":0}`

// ExtractJob asks the oracle for a job posting record from page text. An
// unparseable response is an error; the caller skips the identifier.
func (p *Pipeline) ExtractJob(ctx context.Context, url, pageText string) (*model.JobPosting, error) {
	if len(pageText) > maxPageChars {
		pageText = pageText[:maxPageChars]
	}

	prefs, err := json.Marshal(p.cfg.Match)
	if err != nil {
		return nil, eris.Wrap(err, "extract: marshal preferences")
	}

	prompt := fmt.Sprintf("Page text:\n%s\n\nPreferences:\n%s\n\nReturn JSON only:", pageText, prefs)

	callCtx, cancel := context.WithTimeout(ctx, time.Duration(p.cfg.Anthropic.TimeoutSecs)*time.Second)
	defer cancel()

	resp, err := p.ai.CreateMessage(callCtx, anthropic.MessageRequest{
		Model:     p.cfg.Anthropic.Model,
		MaxTokens: p.cfg.Anthropic.MaxTokens,
		System:    jobSystemPrompt,
		Messages: []anthropic.Message{
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return nil, eris.Wrap(err, "extract: job query")
	}
	resp.Usage.LogCost(p.cfg.Anthropic.Model, "extract_job")

	m, ok := decodeRecord(resp.Text())
	if !ok {
		return nil, eris.New("extract: no job record in response")
	}

	posting := model.JobPostingFromMap(m)
	posting.SourceURL = url
	return &posting, nil
}
