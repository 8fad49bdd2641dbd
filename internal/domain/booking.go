package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BookingStatus is the lifecycle label of a booking. Any status may follow
// any other; only membership in the set below is checked.
type BookingStatus string

const (
	BookingPending    BookingStatus = "pending"
	BookingConfirmed  BookingStatus = "confirmed"
	BookingCheckedIn  BookingStatus = "checked-in"
	BookingCheckedOut BookingStatus = "checked-out"
	BookingCancelled  BookingStatus = "cancelled"
)

// Valid reports whether s is one of the known booking statuses.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCheckedIn, BookingCheckedOut, BookingCancelled:
		return true
	}
	return false
}

// Booking is a stay at a campground.
//
// Duration, PricePerNight, BreakfastPrice and TotalPrice are derived by the
// pricing engine. The two prices are a snapshot of the campground at write
// time, so later campground price changes leave existing bookings untouched.
type Booking struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	CampgroundID   uuid.UUID
	CheckIn        time.Time
	CheckOut       time.Time
	Duration       string
	Breakfast      bool
	PricePerNight  decimal.Decimal
	BreakfastPrice decimal.Decimal
	TotalPrice     decimal.Decimal
	Status         BookingStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// BookingPatch holds the caller-supplied changes for an update.
// A nil field keeps the stored value.
type BookingPatch struct {
	CheckIn      *time.Time
	CheckOut     *time.Time
	CampgroundID *uuid.UUID
	Breakfast    *bool
	Status       *BookingStatus
}

// BookingFilter narrows a booking listing. Zero values mean "any".
type BookingFilter struct {
	UserID       uuid.UUID
	CampgroundID uuid.UUID
}
