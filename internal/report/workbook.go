// Package report renders the accumulated records into the output
// artifacts: a styled multi-sheet XLSX workbook for the job pipeline and a
// plain-text report for the career-page finder.
package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/jobscout/jobscout-cli/internal/model"
)

// ErrNoData signals that both accumulation lists were empty and no file
// was produced. It is a valid empty-result outcome, not a failure.
var ErrNoData = eris.New("report: no data to export")

// topMatchCount is how many postings the Summary sheet lists.
const topMatchCount = 5

const (
	headerColor = "FF4472C4"
	whiteColor  = "FFFFFFFF"
)

// Workbook describes one report to be written.
type Workbook struct {
	RunID     string
	Generated time.Time
	Postings  []model.JobPosting
	Bundles   []model.ReviewBundle
}

// Build writes the workbook to path and returns the path actually used.
// An empty path yields the timestamped default jobs_<YYYYMMDD_HHMMSS>.xlsx.
// Sheet order: Summary, Jobs Summary, Company Reviews; the latter two are
// omitted when their source list is empty.
func (w Workbook) Build(path string) (string, error) {
	if len(w.Postings) == 0 && len(w.Bundles) == 0 {
		return "", ErrNoData
	}

	if path == "" {
		path = fmt.Sprintf("jobs_%s.xlsx", w.Generated.Format("20060102_150405"))
	}

	f := xlsx.NewFile()

	if err := w.addSummarySheet(f); err != nil {
		return "", err
	}
	if len(w.Postings) > 0 {
		if err := w.addJobsSheet(f); err != nil {
			return "", err
		}
	}
	if len(w.Bundles) > 0 {
		if err := w.addReviewsSheet(f); err != nil {
			return "", err
		}
	}

	if err := f.Save(path); err != nil {
		return "", eris.Wrap(err, "report: save workbook")
	}
	return path, nil
}

// SortedByScore returns the postings stable-sorted by match score
// descending. Ties keep their accumulation order. Both the Jobs Summary
// sheet and the Top Matches block use this one ordering.
func SortedByScore(postings []model.JobPosting) []model.JobPosting {
	sorted := make([]model.JobPosting, len(postings))
	copy(sorted, postings)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MatchScore > sorted[j].MatchScore
	})
	return sorted
}

func (w Workbook) addSummarySheet(f *xlsx.File) error {
	sheet, err := f.AddSheet("Summary")
	if err != nil {
		return eris.Wrap(err, "report: add summary sheet")
	}
	sheet.SetColWidth(0, 0, 35)
	sheet.SetColWidth(1, 1, 20)

	title := sheet.AddRow()
	titleCell := title.AddCell()
	titleCell.SetString("Job Scraping Report")
	titleCell.SetStyle(titleStyle())
	title.AddCell()

	addPair(sheet, "Generated", w.Generated.Format("2006-01-02 15:04:05"))
	addPair(sheet, "Run ID", w.RunID)
	addPair(sheet, "", "")
	addBoldPair(sheet, "Total Jobs Found", fmt.Sprintf("%d", len(w.Postings)))
	addPair(sheet, "Companies Reviewed", fmt.Sprintf("%d", len(w.Bundles)))
	addPair(sheet, "", "")

	if len(w.Postings) == 0 {
		return nil
	}

	addBoldPair(sheet, "Top Matches", "")
	for i, job := range SortedByScore(w.Postings) {
		if i >= topMatchCount {
			break
		}
		addPair(sheet,
			fmt.Sprintf("%d. %s - %s", i+1, job.CompanyName, job.RoleName),
			fmt.Sprintf("Score: %d", job.MatchScore),
		)
	}
	return nil
}

func (w Workbook) addJobsSheet(f *xlsx.File) error {
	sheet, err := f.AddSheet("Jobs Summary")
	if err != nil {
		return eris.Wrap(err, "report: add jobs sheet")
	}
	for i, width := range []float64{25, 30, 15, 15, 20, 12, 12} {
		sheet.SetColWidth(i, i, width)
	}

	addHeaderRow(sheet, []string{"Company", "Role", "Experience", "Level", "Location", "Remote", "Match Score"})

	left := bodyStyle(false)
	center := bodyStyle(true)
	for _, job := range SortedByScore(w.Postings) {
		row := sheet.AddRow()
		addStyledString(row, job.CompanyName, left)
		addStyledString(row, job.RoleName, left)
		addStyledString(row, job.ExperienceRequired, left)
		addStyledString(row, job.ExperienceType, left)
		addStyledString(row, job.Location.City, left)
		addStyledString(row, job.Remote, center)
		scoreCell := row.AddCell()
		scoreCell.SetInt(job.MatchScore)
		scoreCell.SetStyle(center)
	}
	return nil
}

func (w Workbook) addReviewsSheet(f *xlsx.File) error {
	sheet, err := f.AddSheet("Company Reviews")
	if err != nil {
		return eris.Wrap(err, "report: add reviews sheet")
	}
	for i, width := range []float64{25, 12, 15, 10, 45, 35} {
		sheet.SetColWidth(i, i, width)
	}

	addHeaderRow(sheet, []string{"Company", "Review Score", "Source", "Rating", "Comment", "URL"})

	left := bodyStyle(false)
	center := bodyStyle(true)
	for _, bundle := range w.Bundles {
		// A company with no reviews still gets one row: name and score.
		if len(bundle.Reviews) == 0 {
			row := sheet.AddRow()
			addStyledString(row, bundle.CompanyName, left)
			scoreCell := row.AddCell()
			scoreCell.SetInt(bundle.AggregatedScore)
			scoreCell.SetStyle(center)
			continue
		}

		for _, review := range bundle.Reviews {
			row := sheet.AddRow()
			addStyledString(row, bundle.CompanyName, left)
			scoreCell := row.AddCell()
			scoreCell.SetInt(bundle.AggregatedScore)
			scoreCell.SetStyle(center)
			addStyledString(row, review.Source, left)
			addStyledString(row, review.Rating, center)
			addStyledString(row, review.Comment, left)
			addStyledString(row, review.URL, left)
		}
	}
	return nil
}

// --- sheet helpers ---

func addPair(sheet *xlsx.Sheet, a, b string) {
	row := sheet.AddRow()
	row.AddCell().SetString(a)
	row.AddCell().SetString(b)
}

func addBoldPair(sheet *xlsx.Sheet, a, b string) {
	row := sheet.AddRow()
	cell := row.AddCell()
	cell.SetString(a)
	style := xlsx.NewStyle()
	style.Font = xlsx.Font{Size: 12, Bold: true}
	style.ApplyFont = true
	cell.SetStyle(style)
	row.AddCell().SetString(b)
}

func addHeaderRow(sheet *xlsx.Sheet, headers []string) {
	style := headerStyle()
	row := sheet.AddRow()
	for _, h := range headers {
		cell := row.AddCell()
		cell.SetString(h)
		cell.SetStyle(style)
	}
}

func addStyledString(row *xlsx.Row, value string, style *xlsx.Style) {
	cell := row.AddCell()
	cell.SetString(value)
	cell.SetStyle(style)
}

func headerStyle() *xlsx.Style {
	style := xlsx.NewStyle()
	style.Fill = *xlsx.NewFill("solid", headerColor, headerColor)
	style.Font = xlsx.Font{Size: 11, Bold: true, Color: whiteColor}
	style.Border = *xlsx.NewBorder("thin", "thin", "thin", "thin")
	style.Alignment = xlsx.Alignment{Horizontal: "center", Vertical: "center", WrapText: true}
	style.ApplyFill = true
	style.ApplyFont = true
	style.ApplyBorder = true
	style.ApplyAlignment = true
	return style
}

func titleStyle() *xlsx.Style {
	style := xlsx.NewStyle()
	style.Fill = *xlsx.NewFill("solid", headerColor, headerColor)
	style.Font = xlsx.Font{Size: 14, Bold: true, Color: whiteColor}
	style.ApplyFill = true
	style.ApplyFont = true
	return style
}

func bodyStyle(center bool) *xlsx.Style {
	style := xlsx.NewStyle()
	style.Border = *xlsx.NewBorder("thin", "thin", "thin", "thin")
	if center {
		style.Alignment = xlsx.Alignment{Horizontal: "center", Vertical: "center", WrapText: true}
	} else {
		style.Alignment = xlsx.Alignment{Horizontal: "left", Vertical: "top", WrapText: true}
	}
	style.ApplyBorder = true
	style.ApplyAlignment = true
	return style
}
