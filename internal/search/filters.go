package search

import (
	"strings"
	"time"

	"github.com/samber/lo"

	"jobscout/internal/models"
)

// FilterOptions selects which filters FilterJobs applies. A nil slice or
// nil Days means the corresponding filter is skipped entirely.
type FilterOptions struct {
	Keywords  []string
	Locations []string
	Days      *int
}

// FilterByKeywords keeps listings whose lowercase title or description
// contains any of the given keywords as a substring. An empty keyword list
// filters nothing.
func FilterByKeywords(jobs []models.Listing, keywords []string) []models.Listing {
	if len(keywords) == 0 {
		return jobs
	}

	lowered := lo.Map(keywords, func(k string, _ int) string { return strings.ToLower(k) })

	return lo.Filter(jobs, func(job models.Listing, _ int) bool {
		title := strings.ToLower(job.Title)
		description := strings.ToLower(job.Description)
		return lo.SomeBy(lowered, func(k string) bool {
			return strings.Contains(title, k) || strings.Contains(description, k)
		})
	})
}

// FilterByLocation keeps listings whose lowercase location contains any of
// the given location strings as a substring. An empty list filters nothing.
func FilterByLocation(jobs []models.Listing, locations []string) []models.Listing {
	if len(locations) == 0 {
		return jobs
	}

	lowered := lo.Map(locations, func(l string, _ int) string { return strings.ToLower(l) })

	return lo.Filter(jobs, func(job models.Listing, _ int) bool {
		location := strings.ToLower(job.Location)
		return lo.SomeBy(lowered, func(l string) bool {
			return strings.Contains(location, l)
		})
	})
}

// FilterByDate keeps listings posted within the last days days. The cutoff
// instant itself is included, so days=0 keeps a listing posted exactly now.
func FilterByDate(jobs []models.Listing, days int) []models.Listing {
	return filterByDateFrom(jobs, days, time.Now())
}

func filterByDateFrom(jobs []models.Listing, days int, now time.Time) []models.Listing {
	cutoff := now.AddDate(0, 0, -days)
	return lo.Filter(jobs, func(job models.Listing, _ int) bool {
		return !job.PostingDate.Before(cutoff)
	})
}

// FilterJobs applies the provided filters in a fixed order: keywords,
// locations, date. Absent options are skipped, so FilterJobs(jobs,
// FilterOptions{}) is the identity.
func FilterJobs(jobs []models.Listing, opts FilterOptions) []models.Listing {
	filtered := jobs
	if len(opts.Keywords) > 0 {
		filtered = FilterByKeywords(filtered, opts.Keywords)
	}
	if len(opts.Locations) > 0 {
		filtered = FilterByLocation(filtered, opts.Locations)
	}
	if opts.Days != nil {
		filtered = FilterByDate(filtered, *opts.Days)
	}
	return filtered
}
