package services

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

type seenCleanupRepository interface {
	RemoveOldListings(ctx context.Context, expirationTime time.Time) (int64, error)
}

// SeenListingsCleaner drops stale dedup rows nightly so the seen-listings
// table does not grow without bound.
type SeenListingsCleaner struct {
	seen             seenCleanupRepository
	cron             *cron.Cron
	expirationInDays int
}

func NewSeenListingsCleaner(seen seenCleanupRepository, expirationInDays int) (*SeenListingsCleaner, error) {

	if expirationInDays <= 0 {
		return nil, errors.New("expiration in days must be greater than zero")
	}

	c := &SeenListingsCleaner{
		seen:             seen,
		cron:             cron.New(),
		expirationInDays: expirationInDays,
	}

	_, err := c.cron.AddFunc("0 0 * * *", c.cleanOldListings)
	if err != nil {
		return nil, err
	}

	c.cron.Start()
	log.Infof("seen listings cleaner started, expiration in days: %d", c.expirationInDays)
	return c, nil
}

func (c *SeenListingsCleaner) Stop() {
	c.cron.Stop()
}

func (c *SeenListingsCleaner) cleanOldListings() {
	expirationTime := time.Now().Add(-time.Duration(c.expirationInDays) * 24 * time.Hour)
	rowsAffected, err := c.seen.RemoveOldListings(context.Background(), expirationTime)
	if err != nil {
		log.Errorf("failed to clean old seen listings: %v", err)
	} else {
		log.Infof("old seen listings cleaned at %v, affected rows: %v", time.Now(), rowsAffected)
	}
}
