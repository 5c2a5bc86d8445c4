package model

// Review is a single review entry inside a bundle. Rating stays free text
// ("4.1/5", "3.8 stars") because sources disagree on scales.
type Review struct {
	Source  string `json:"source"`
	Rating  string `json:"rating"`
	Comment string `json:"comment"`
	URL     string `json:"url"`
}

// ReviewBundle aggregates reviews for one company. At most one bundle is
// produced per posting, and only when the posting resolved a company name.
type ReviewBundle struct {
	CompanyName     string   `json:"company_name"`
	Reviews         []Review `json:"reviews"`
	AggregatedScore int      `json:"aggregated_review_score"`
	Summary         string   `json:"summary"`
}

// ReviewBundleFromMap shapes a decoded oracle object into a ReviewBundle.
// Review entries keep their insertion order; malformed entries are dropped
// individually rather than failing the bundle.
func ReviewBundleFromMap(m map[string]any) ReviewBundle {
	b := ReviewBundle{
		CompanyName:     stringField(m, "company_name"),
		AggregatedScore: intField(m, "aggregated_review_score"),
		Summary:         stringField(m, "summary"),
	}

	raw, ok := m["reviews"].([]any)
	if !ok {
		return b
	}
	for _, item := range raw {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		b.Reviews = append(b.Reviews, Review{
			Source:  stringField(entry, "source"),
			Rating:  stringField(entry, "rating"),
			Comment: stringField(entry, "comment"),
			URL:     stringField(entry, "url"),
		})
	}
	return b
}
