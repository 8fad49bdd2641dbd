package domain

import (
	"time"

	"github.com/google/uuid"
)

// Review is a user's star rating of a campground, with optional text.
type Review struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	CampgroundID uuid.UUID
	Text         string
	Star         int
	CreatedAt    time.Time
}
