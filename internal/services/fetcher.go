package services

import (
	"context"

	"jobscout/internal/models"
	"jobscout/internal/search"
)

// Fetcher produces validated listings from one job source. New job boards
// implement this interface; callers never change.
//
// Implementations must keep failures inside the source boundary: a network
// or parse error for one source yields an error (or a logged empty partial
// result), never a panic, and never discards results already fetched from
// other keywords.
type Fetcher interface {
	Name() string
	FetchJobs(ctx context.Context, query string, filters search.FilterOptions) ([]models.Listing, error)
}
