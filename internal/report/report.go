// Package report flattens scored listings into a tabular export the user
// can open in a spreadsheet.
package report

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"jobscout/internal/models"
)

// preferredColumns fixes the export column order. Columns with no data in
// any row are omitted from the export.
var preferredColumns = []string{
	"title", "company", "location", "link", "score", "score_explanation",
	"resume_filename", "cover_letter_filename", "source",
}

// WriteCSV exports the scored listings to path, one row per listing, in
// the preferred column order.
func WriteCSV(path string, jobs []models.ScoredListing) error {

	rows := lo.Map(jobs, func(job models.ScoredListing, _ int) map[string]string {
		return flatten(job)
	})

	columns := lo.Filter(preferredColumns, func(col string, _ int) bool {
		return lo.SomeBy(rows, func(row map[string]string) bool {
			return row[col] != ""
		})
	})

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create report %v", path)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err = w.Write(columns); err != nil {
		return errors.Wrap(err, "write report header")
	}

	for _, row := range rows {
		record := lo.Map(columns, func(col string, _ int) string { return row[col] })
		if err = w.Write(record); err != nil {
			return errors.Wrap(err, "write report row")
		}
	}
	w.Flush()

	return errors.Wrap(w.Error(), "flush report")
}

func flatten(job models.ScoredListing) map[string]string {
	return map[string]string{
		"title":                 job.Title,
		"company":               job.Company,
		"location":              job.Location,
		"link":                  job.ApplyURL,
		"score":                 strconv.FormatFloat(job.Score, 'f', 2, 64),
		"score_explanation":     job.Explanation,
		"resume_filename":       job.ResumeFilename,
		"cover_letter_filename": job.CoverLetterFilename,
		"source":                job.Source,
	}
}
