package report

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
)

// CareerResult is one company's career-page lookup outcome. Result is a
// URL, the NOT_FOUND sentinel, an ERROR marker, or the oracle's raw
// unexpected output.
type CareerResult struct {
	Company string
	Result  string
}

// Line formats the result as a report line.
func (r CareerResult) Line() string {
	return r.Company + " | " + r.Result
}

// Found reports whether the lookup produced a usable URL.
func (r CareerResult) Found() bool {
	return strings.HasPrefix(r.Result, "http")
}

// NotFound reports whether the oracle returned the NOT_FOUND sentinel.
func (r CareerResult) NotFound() bool {
	return r.Result == "NOT_FOUND"
}

// Errored reports whether the lookup failed.
func (r CareerResult) Errored() bool {
	return strings.HasPrefix(r.Result, "ERROR")
}

// WriteCareerReport writes the career-page results as plain text: a header
// line, a separator, then one line per company in input order.
func WriteCareerReport(results []CareerResult, path string) error {
	var b strings.Builder
	b.WriteString("Company | Career Page URL\n")
	b.WriteString(strings.Repeat("=", 60) + "\n")
	for _, r := range results {
		b.WriteString(r.Line() + "\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return eris.Wrap(err, "report: write career report")
	}
	return nil
}

// CareerTally summarizes results for the end-of-run log.
type CareerTally struct {
	Found    int
	NotFound int
	Errors   int
}

// TallyCareers counts result categories.
func TallyCareers(results []CareerResult) CareerTally {
	var t CareerTally
	for _, r := range results {
		switch {
		case r.Errored():
			t.Errors++
		case r.NotFound():
			t.NotFound++
		case r.Found():
			t.Found++
		}
	}
	return t
}
