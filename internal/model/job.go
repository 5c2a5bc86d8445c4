// Package model defines the records accumulated by the pipeline: job
// postings extracted from fetched pages and review bundles gathered per
// company. Records are built once from decoded oracle output and never
// mutated afterwards.
package model

import (
	"strconv"
	"strings"
)

// UnknownCompany is the sentinel the extraction oracle is instructed to use
// when a page does not name its company. Postings carrying it are kept, but
// no review lookup is attempted for them.
const UnknownCompany = "Unknown"

// Location is the posting's location split into the exact address and city.
type Location struct {
	Exact string `json:"exact"`
	City  string `json:"city"`
}

// JobPosting is one extracted job posting. MatchScore is 1-10 against the
// configured preferences, 0 when absent or unparseable.
type JobPosting struct {
	CompanyName        string   `json:"company_name"`
	RoleName           string   `json:"role_name"`
	ExperienceRequired string   `json:"experience_required"`
	ExperienceType     string   `json:"experience_type"`
	Location           Location `json:"location"`
	Remote             string   `json:"remote"`
	HybridOrFlexible   string   `json:"hybrid_or_flexible"`
	MatchScore         int      `json:"match_score"`
	SourceURL          string   `json:"source_url,omitempty"`
}

// HasCompany reports whether the posting resolved a usable company name,
// i.e. one worth running a review lookup for.
func (j JobPosting) HasCompany() bool {
	return j.CompanyName != "" && j.CompanyName != UnknownCompany
}

// DisplayCompany returns the company name with the sentinel substituted for
// an empty value, for progress logs.
func (j JobPosting) DisplayCompany() string {
	if j.CompanyName == "" {
		return UnknownCompany
	}
	return j.CompanyName
}

// JobPostingFromMap shapes a decoded oracle object into a JobPosting.
// Unrecognized keys are ignored; missing keys get zero values. The match
// score is coerced exactly once here — every downstream sort uses the
// resulting int.
func JobPostingFromMap(m map[string]any) JobPosting {
	j := JobPosting{
		CompanyName:        stringField(m, "company_name"),
		RoleName:           stringField(m, "role_name"),
		ExperienceRequired: stringField(m, "experience_required"),
		ExperienceType:     stringField(m, "experience_type"),
		Remote:             stringField(m, "remote"),
		HybridOrFlexible:   stringField(m, "hybrid_or_flexible"),
		MatchScore:         intField(m, "match_score"),
	}

	if loc, ok := m["location"].(map[string]any); ok {
		j.Location.Exact = stringField(loc, "exact")
		j.Location.City = stringField(loc, "city")
	}

	return j
}

// stringField returns m[key] as a trimmed string, or "" for missing or
// non-string values.
func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return strings.TrimSpace(s)
}

// intField coerces m[key] to int. JSON numbers decode as float64; numeric
// strings are accepted because models occasionally quote scores. Anything
// else defaults to 0.
func intField(m map[string]any, key string) int {
	switch v := m[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return 0
}
