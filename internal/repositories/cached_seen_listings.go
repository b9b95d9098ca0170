package repositories

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

type seenListingRepository interface {
	IsSeen(ctx context.Context, applyURL string) (bool, error)
	MarkSeen(ctx context.Context, applyURL, source string) error
}

// CachedSeenListings fronts the seen-listings repository with an in-memory
// cache so repeated URLs within a run skip the database entirely.
type CachedSeenListings struct {
	repo  seenListingRepository
	cache *gocache.Cache
}

func NewCachedSeenListings(repo seenListingRepository) *CachedSeenListings {
	return &CachedSeenListings{repo: repo, cache: gocache.New(10*time.Minute, 20*time.Minute)}
}

func (c CachedSeenListings) IsSeen(ctx context.Context, applyURL string) (bool, error) {
	if _, found := c.cache.Get(applyURL); found {
		return true, nil
	}

	seen, err := c.repo.IsSeen(ctx, applyURL)
	if seen {
		if cacheErr := c.cache.Add(applyURL, struct{}{}, gocache.DefaultExpiration); cacheErr != nil {
			return seen, err
		}
	}

	return seen, err
}

func (c CachedSeenListings) MarkSeen(ctx context.Context, applyURL, source string) error {
	if err := c.repo.MarkSeen(ctx, applyURL, source); err != nil {
		return err
	}
	_ = c.cache.Add(applyURL, struct{}{}, gocache.DefaultExpiration)
	return nil
}
