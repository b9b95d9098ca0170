package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"jobscout/internal/models"
)

func scored(title string, score float64) models.ScoredListing {
	return models.ScoredListing{
		Listing: models.Listing{
			Title:    title,
			Company:  "Acme GmbH",
			Location: "Berlin, Germany",
			ApplyURL: "https://example.com/jobs/" + title,
			Source:   "relocate_me",
		},
		Score:       score,
		Explanation: "Skill match: 2/2; Location: Europe; Visa/Remote: Yes",
	}
}

func readCSV(t *testing.T, path string) [][]string {
	f, err := os.Open(path)
	assert.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	assert.NoError(t, err)
	return records
}

func Test_WriteCSV_EmitsRowsInPreferredColumnOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.csv")

	err := WriteCSV(path, []models.ScoredListing{scored("backend", 80), scored("devops", 42.5)})
	assert.NoError(t, err)

	records := readCSV(t, path)
	assert.Len(t, records, 3)
	assert.Equal(t, []string{"title", "company", "location", "link", "score", "score_explanation", "source"}, records[0])
	assert.Equal(t, "backend", records[1][0])
	assert.Equal(t, "80.00", records[1][4])
	assert.Equal(t, "42.50", records[2][4])
}

func Test_WriteCSV_OmitsColumnsEmptyInEveryRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.csv")

	err := WriteCSV(path, []models.ScoredListing{scored("backend", 80)})
	assert.NoError(t, err)

	header := readCSV(t, path)[0]
	assert.NotContains(t, header, "resume_filename")
	assert.NotContains(t, header, "cover_letter_filename")
}

func Test_WriteCSV_KeepsColumnWhenAnyRowHasValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.csv")

	withResume := scored("backend", 80)
	withResume.ResumeFilename = "resume_backend.pdf"

	err := WriteCSV(path, []models.ScoredListing{withResume, scored("devops", 42.5)})
	assert.NoError(t, err)

	records := readCSV(t, path)
	assert.Contains(t, records[0], "resume_filename")

	idx := -1
	for i, col := range records[0] {
		if col == "resume_filename" {
			idx = i
		}
	}
	assert.Equal(t, "resume_backend.pdf", records[1][idx])
	assert.Equal(t, "", records[2][idx])
}

func Test_WriteCSV_EmptyInput_WritesEmptyExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.csv")

	err := WriteCSV(path, nil)
	assert.NoError(t, err)

	assert.Empty(t, readCSV(t, path))
}
