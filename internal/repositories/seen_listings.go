package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"jobscout/internal/entities"
)

type SeenListings struct {
	db *gorm.DB
}

func NewSeenListingsRepository(db *gorm.DB) *SeenListings {
	return &SeenListings{db: db}
}

// IsSeen reports whether the apply URL was processed before and refreshes
// its last-seen timestamp when it was.
func (r SeenListings) IsSeen(ctx context.Context, applyURL string) (bool, error) {
	var seen entities.SeenListing
	err := r.db.WithContext(ctx).
		Where("url_hash = ?", entities.HashListingURL(applyURL)).
		First(&seen).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	err = r.db.WithContext(ctx).
		Model(&entities.SeenListing{}).
		Where("id = ?", seen.ID).
		Update("last_seen_at", time.Now()).Error
	return true, err
}

func (r SeenListings) MarkSeen(ctx context.Context, applyURL, source string) error {
	return r.db.WithContext(ctx).Create(&entities.SeenListing{
		URLHash:    entities.HashListingURL(applyURL),
		Source:     source,
		LastSeenAt: time.Now(),
	}).Error
}

// RemoveOldListings drops rows not seen since expirationTime.
func (r SeenListings) RemoveOldListings(ctx context.Context, expirationTime time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&entities.SeenListing{}, "last_seen_at < ?", expirationTime)
	return res.RowsAffected, res.Error
}
