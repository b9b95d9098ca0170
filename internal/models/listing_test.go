package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validRaw() RawListing {
	return RawListing{
		Title:       "Backend Engineer",
		Company:     "Acme",
		Location:    "Berlin, Germany",
		Link:        "https://example.com/jobs/42",
		Description: "Java and Docker",
		Source:      "relocate_me",
		PostingDate: "2024-05-01",
	}
}

func Test_FromRaw_ValidRecord(t *testing.T) {

	listing, err := FromRaw(validRaw())

	assert.NoError(t, err)
	assert.Equal(t, "Backend Engineer", listing.Title)
	assert.Equal(t, "https://example.com/jobs/42", listing.ApplyURL)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), listing.PostingDate)
}

func Test_FromRaw_DedicatedApplyURLWins(t *testing.T) {

	raw := validRaw()
	raw.ApplyURL = "https://apply.example.com/42"

	listing, err := FromRaw(raw)

	assert.NoError(t, err)
	assert.Equal(t, "https://apply.example.com/42", listing.ApplyURL)
}

func Test_FromRaw_MissingRequiredField_Fails(t *testing.T) {

	raw := validRaw()
	raw.Company = ""

	_, err := FromRaw(raw)

	assert.ErrorIs(t, err, ErrValidation)
}

func Test_FromRaw_MalformedURL_Fails(t *testing.T) {

	raw := validRaw()
	raw.Link = "not a url"

	_, err := FromRaw(raw)

	assert.ErrorIs(t, err, ErrValidation)
}

func Test_FromRaw_MissingPostingDate_DefaultsToEpoch(t *testing.T) {

	raw := validRaw()
	raw.PostingDate = ""

	listing, err := FromRaw(raw)

	assert.NoError(t, err)
	assert.Equal(t, EpochDate, listing.PostingDate)
}

func Test_FromRaw_UnparseablePostingDate_DefaultsToEpoch(t *testing.T) {

	raw := validRaw()
	raw.PostingDate = "yesterday-ish"

	listing, err := FromRaw(raw)

	assert.NoError(t, err)
	assert.Equal(t, EpochDate, listing.PostingDate)
}

func Test_FromRaw_AcceptsRFC3339Dates(t *testing.T) {

	raw := validRaw()
	raw.PostingDate = "2024-05-01T13:30:00Z"

	listing, err := FromRaw(raw)

	assert.NoError(t, err)
	assert.Equal(t, 13, listing.PostingDate.Hour())
}
