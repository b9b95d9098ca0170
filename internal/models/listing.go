package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// ErrValidation marks a listing that failed field validation. A single bad
// record is skipped and logged; it never aborts the rest of the batch.
var ErrValidation = errors.New("invalid listing")

// EpochDate is the explicit fallback for missing or unparseable posting
// dates. A listing carrying it will fail any recency filter, which is the
// intended behavior for listings of unknown age.
var EpochDate = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)

var postingDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05-0700",
}

var validate = validator.New()

// RawListing is the key-value record a fetcher produces before validation.
type RawListing struct {
	Title       string
	Company     string
	Location    string
	Link        string
	ApplyURL    string
	Description string
	Source      string
	PostingDate string
	Email       string
	Extra       map[string]string
}

// Listing is the canonical, immutable job posting record. Downstream
// stages never mutate it; they wrap it in derived records instead.
type Listing struct {
	Title       string `validate:"required"`
	Company     string `validate:"required"`
	Description string `validate:"required"`
	Location    string `validate:"required"`
	PostingDate time.Time
	ApplyURL    string `validate:"required,url"`
	Source      string `validate:"required"`
	Email       string
	Extra       map[string]string
}

// ScoredListing wraps a Listing with its match score and the generated
// document filenames once those are produced.
type ScoredListing struct {
	Listing
	Score               float64
	Explanation         string
	ResumeFilename      string
	CoverLetterFilename string
}

// FromRaw validates a raw record into a Listing. The apply URL falls back
// to the listing link when the source did not provide a dedicated one.
func FromRaw(raw RawListing) (Listing, error) {

	applyURL := raw.ApplyURL
	if applyURL == "" {
		applyURL = raw.Link
	}

	listing := Listing{
		Title:       raw.Title,
		Company:     raw.Company,
		Description: raw.Description,
		Location:    raw.Location,
		PostingDate: parsePostingDate(raw.PostingDate, raw.Source),
		ApplyURL:    applyURL,
		Source:      raw.Source,
		Email:       raw.Email,
		Extra:       raw.Extra,
	}

	if err := validate.Struct(listing); err != nil {
		return Listing{}, errors.Wrap(ErrValidation, err.Error())
	}

	return listing, nil
}

func parsePostingDate(value, source string) time.Time {
	if value == "" {
		log.Warnf("listing from %v has no posting date, defaulting to %v", source, EpochDate.Format("2006-01-02"))
		return EpochDate
	}

	for _, layout := range postingDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}

	log.Warnf("listing from %v has unparseable posting date %q, defaulting to %v",
		source, value, EpochDate.Format("2006-01-02"))
	return EpochDate
}
