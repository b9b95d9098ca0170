package store

import (
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"jobscout/internal/models"
)

// ErrStore marks a failure to read or write the manual-application ledger.
var ErrStore = errors.New("manual application store failure")

const jobInfoFilename = "job_info.json"

var csvHeader = []string{"company", "title", "location", "apply_url", "manual_reason", "status", "job_dir"}

// ManualJob is one row of the ledger. Rows are matched for status updates
// by the (company, title, apply URL) tuple; there is no surrogate ID.
type ManualJob struct {
	Company      string
	Title        string
	Location     string
	ApplyURL     string
	ManualReason string
	Status       Status
	JobDir       string
}

// Statistics counts ledger rows per status.
type Statistics struct {
	Total   int
	Pending int
	Applied int
	Skipped int
}

// ManualStore is the single owner of the ledger CSV and the sidecar
// directory tree. It is not safe for concurrent writers.
type ManualStore struct {
	csvPath string
	jobsDir string
}

// NewManualStore creates the base layout under baseDir and initializes the
// ledger CSV with its header when absent.
func NewManualStore(baseDir string) (*ManualStore, error) {

	jobsDir := filepath.Join(baseDir, "manual_jobs")
	if err := os.MkdirAll(jobsDir, 0755); err != nil {
		return nil, errors.Wrapf(ErrStore, "create jobs directory: %v", err)
	}

	s := &ManualStore{
		csvPath: filepath.Join(baseDir, "manual_apply.csv"),
		jobsDir: jobsDir,
	}

	if _, err := os.Stat(s.csvPath); os.IsNotExist(err) {
		if err := s.writeRows(nil); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// SaveManualApplication persists the listing and its generated documents
// into a fresh sidecar directory and appends a pending row to the ledger.
// generatedDocs maps filename to content.
func (s *ManualStore) SaveManualApplication(jobInfo models.Listing, generatedDocs map[string][]byte, reason string) (ManualJob, error) {

	jobDir := filepath.Join(s.jobsDir, sidecarDirName(jobInfo))
	if err := os.MkdirAll(jobDir, 0755); err != nil {
		return ManualJob{}, errors.Wrapf(ErrStore, "create sidecar directory: %v", err)
	}

	data, err := json.MarshalIndent(jobInfo, "", "  ")
	if err != nil {
		return ManualJob{}, errors.Wrapf(ErrStore, "marshal job info: %v", err)
	}
	if err = os.WriteFile(filepath.Join(jobDir, jobInfoFilename), data, 0644); err != nil {
		return ManualJob{}, errors.Wrapf(ErrStore, "write job info: %v", err)
	}

	for filename, content := range generatedDocs {
		if err = os.WriteFile(filepath.Join(jobDir, filename), content, 0644); err != nil {
			return ManualJob{}, errors.Wrapf(ErrStore, "write document %v: %v", filename, err)
		}
	}

	job := ManualJob{
		Company:      jobInfo.Company,
		Title:        jobInfo.Title,
		Location:     jobInfo.Location,
		ApplyURL:     jobInfo.ApplyURL,
		ManualReason: reason,
		Status:       StatusPending,
		JobDir:       jobDir,
	}

	if err = s.appendRow(job); err != nil {
		return ManualJob{}, err
	}

	log.Infof("manual application saved for %v - %v", job.Company, job.Title)
	return job, nil
}

// GetPendingManualJobs returns every ledger row still awaiting action. A
// missing ledger file yields an empty slice, not an error.
func (s *ManualStore) GetPendingManualJobs() ([]ManualJob, error) {

	rows, err := s.readRows()
	if err != nil {
		return nil, err
	}

	var pending []ManualJob
	for _, row := range rows {
		if row.Status == StatusPending {
			pending = append(pending, row)
		}
	}
	return pending, nil
}

// MarkAsApplied records that the user completed the application.
func (s *ManualStore) MarkAsApplied(job ManualJob) error {
	return s.updateStatus(job, StatusApplied)
}

// MarkAsSkipped records that the user declined to apply.
func (s *ManualStore) MarkAsSkipped(job ManualJob) error {
	return s.updateStatus(job, StatusSkipped)
}

// updateStatus rewrites the whole ledger, transitioning every row matching
// the identity key. Rows already in a terminal state keep it, which makes
// redundant calls no-ops.
func (s *ManualStore) updateStatus(job ManualJob, target Status) error {

	rows, err := s.readRows()
	if err != nil {
		return err
	}

	for i, row := range rows {
		if row.Company == job.Company && row.Title == job.Title && row.ApplyURL == job.ApplyURL {
			if IsTransitionAllowed(row.Status, target) {
				rows[i].Status = target
			}
		}
	}

	if err = s.writeRows(rows); err != nil {
		return err
	}

	log.Infof("marked %v - %v as %v", job.Company, job.Title, target)
	return nil
}

// GetJobDetails reads back the JSON sidecar for a ledger row. An absent
// sidecar yields a zero Listing, not an error.
func (s *ManualStore) GetJobDetails(job ManualJob) (models.Listing, error) {

	if job.JobDir == "" {
		return models.Listing{}, nil
	}

	data, err := os.ReadFile(filepath.Join(job.JobDir, jobInfoFilename))
	if err != nil {
		if os.IsNotExist(err) {
			return models.Listing{}, nil
		}
		return models.Listing{}, errors.Wrapf(ErrStore, "read job info: %v", err)
	}

	var listing models.Listing
	if err = json.Unmarshal(data, &listing); err != nil {
		return models.Listing{}, errors.Wrapf(ErrStore, "unmarshal job info: %v", err)
	}
	return listing, nil
}

// GetGeneratedDocuments lists the sidecar files generated for a ledger
// row, excluding the JSON sidecar itself.
func (s *ManualStore) GetGeneratedDocuments(job ManualJob) ([]string, error) {

	if job.JobDir == "" {
		return nil, nil
	}

	entries, err := os.ReadDir(job.JobDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(ErrStore, "read sidecar directory: %v", err)
	}

	var documents []string
	for _, entry := range entries {
		if entry.IsDir() || entry.Name() == jobInfoFilename {
			continue
		}
		documents = append(documents, filepath.Join(job.JobDir, entry.Name()))
	}
	return documents, nil
}

// GetStatistics counts rows per status in a single pass. Read failures
// yield zeroed counts rather than an error.
func (s *ManualStore) GetStatistics() Statistics {

	var stats Statistics

	rows, err := s.readRows()
	if err != nil {
		log.Errorf("failed to read manual application statistics: %v", err)
		return stats
	}

	for _, row := range rows {
		stats.Total++
		switch row.Status {
		case StatusPending:
			stats.Pending++
		case StatusApplied:
			stats.Applied++
		case StatusSkipped:
			stats.Skipped++
		}
	}
	return stats
}

func (s *ManualStore) appendRow(job ManualJob) error {

	f, err := os.OpenFile(s.csvPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return errors.Wrapf(ErrStore, "open ledger: %v", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err = w.Write(rowOf(job)); err != nil {
		return errors.Wrapf(ErrStore, "append ledger row: %v", err)
	}
	w.Flush()

	if err = w.Error(); err != nil {
		return errors.Wrapf(ErrStore, "flush ledger: %v", err)
	}
	return nil
}

func (s *ManualStore) readRows() ([]ManualJob, error) {

	f, err := os.Open(s.csvPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(ErrStore, "open ledger: %v", err)
	}
	defer f.Close()

	r := csv.NewReader(f)

	if _, err = r.Read(); err != nil { // header
		if err == io.EOF {
			return nil, nil
		}
		return nil, errors.Wrapf(ErrStore, "read ledger header: %v", err)
	}

	var rows []ManualJob
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(ErrStore, "read ledger row: %v", err)
		}
		if len(record) < len(csvHeader) {
			continue
		}

		status, err := ParseStatus(record[5])
		if err != nil {
			log.Warnf("skipping ledger row with %v", err)
			continue
		}

		rows = append(rows, ManualJob{
			Company:      record[0],
			Title:        record[1],
			Location:     record[2],
			ApplyURL:     record[3],
			ManualReason: record[4],
			Status:       status,
			JobDir:       record[6],
		})
	}
	return rows, nil
}

func (s *ManualStore) writeRows(rows []ManualJob) error {

	f, err := os.Create(s.csvPath)
	if err != nil {
		return errors.Wrapf(ErrStore, "rewrite ledger: %v", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err = w.Write(csvHeader); err != nil {
		return errors.Wrapf(ErrStore, "write ledger header: %v", err)
	}
	for _, row := range rows {
		if err = w.Write(rowOf(row)); err != nil {
			return errors.Wrapf(ErrStore, "write ledger row: %v", err)
		}
	}
	w.Flush()

	if err = w.Error(); err != nil {
		return errors.Wrapf(ErrStore, "flush ledger: %v", err)
	}
	return nil
}

func rowOf(job ManualJob) []string {
	return []string{job.Company, job.Title, job.Location, job.ApplyURL, job.ManualReason, string(job.Status), job.JobDir}
}

// sidecarDirName derives a filesystem-safe directory name from the company
// and title, suffixed with a short hash of the apply URL so two distinct
// postings sharing a company and title never collide.
func sidecarDirName(jobInfo models.Listing) string {
	name := safeName(jobInfo.Company) + "-" + safeName(jobInfo.Title)
	name = strings.ReplaceAll(name, " ", "_")

	urlHash := sha256.Sum256([]byte(jobInfo.ApplyURL))
	return name + "-" + hex.EncodeToString(urlHash[:])[:8]
}

func safeName(value string) string {
	var b strings.Builder
	for _, c := range value {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			b.WriteRune(c)
		case c == ' ', c == '-', c == '_':
			b.WriteRune(c)
		}
	}
	return strings.TrimSpace(b.String())
}
