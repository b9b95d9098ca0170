package services

import (
	"context"

	log "github.com/sirupsen/logrus"

	"jobscout/internal/clients/relocateme"
	"jobscout/internal/logger"
	"jobscout/internal/metrics"
	"jobscout/internal/models"
	"jobscout/internal/search"
)

const relocateMeSource = "relocate_me"

// RelocateMeFetcher adapts the Relocate.me scraping client to the Fetcher
// contract.
type RelocateMeFetcher struct {
	client *relocateme.Client
}

func NewRelocateMeFetcher(client *relocateme.Client) *RelocateMeFetcher {
	return &RelocateMeFetcher{client: client}
}

func (f *RelocateMeFetcher) Name() string {
	return relocateMeSource
}

// FetchJobs issues one search per keyword derived from the query. A failed
// keyword is logged and skipped; results from the remaining keywords are
// preserved. Records failing validation are dropped individually.
// TODO: push filters.Locations into the search request once Relocate.me
// exposes a location query parameter.
func (f *RelocateMeFetcher) FetchJobs(ctx context.Context, query string, filters search.FilterOptions) ([]models.Listing, error) {

	var keywords []string
	if query != "" {
		keywords = append(keywords, query)
	}
	keywords = append(keywords, filters.Keywords...)

	var listings []models.Listing
	for _, keyword := range keywords {

		results, err := f.client.Search(ctx, keyword)
		if err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeFetch).
				Errorf("relocate.me search for %q failed: %v", keyword, err)
			continue
		}

		for _, result := range results {
			listing, err := models.FromRaw(models.RawListing{
				Title:       result.Title,
				Company:     result.Company,
				Location:    result.Location,
				Link:        result.Link,
				Description: result.Description,
				Source:      relocateMeSource,
			})
			if err != nil {
				metrics.DroppedListingsCounter.WithLabelValues("validation").Inc()
				log.Warnf("skipping listing %q from %v: %v", result.Title, relocateMeSource, err)
				continue
			}
			listings = append(listings, listing)
		}
	}

	metrics.FetchedListingsCounter.WithLabelValues(relocateMeSource).Add(float64(len(listings)))
	return listings, nil
}
