package entities

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// SeenListing records a listing the pipeline already processed so later
// runs skip it. Listings are identified by a hash of their apply URL.
type SeenListing struct {
	ID         int    `gorm:"primaryKey"`
	URLHash    string `gorm:"uniqueIndex"`
	Source     string
	LastSeenAt time.Time
	CreatedAt  time.Time
}

// HashListingURL derives the dedup key for an apply URL.
func HashListingURL(applyURL string) string {
	sum := sha256.Sum256([]byte(applyURL))
	return hex.EncodeToString(sum[:])
}
