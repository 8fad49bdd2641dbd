package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExportRow is a single row in the bookings export.
// It is a flat, denormalized view: one row per booking, with the campground
// name repeated on every booking at that campground. A booking whose
// campground disappeared mid-export has an empty CampgroundName.
type ExportRow struct {
	BookingID      uuid.UUID
	UserID         uuid.UUID
	CampgroundID   uuid.UUID
	CampgroundName string
	CheckIn        time.Time
	CheckOut       time.Time
	Duration       string
	Breakfast      bool
	PricePerNight  decimal.Decimal
	BreakfastPrice decimal.Decimal
	TotalPrice     decimal.Decimal
	Status         BookingStatus
}
