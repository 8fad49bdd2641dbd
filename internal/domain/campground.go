// Package domain contains the core data types for the campground booking API.
// It holds no I/O and is imported by every other internal package
// (repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Campground is bookable reference data. Only administrators change it, and
// bookings copy its prices at write time rather than referencing them live.
type Campground struct {
	ID             uuid.UUID
	Name           string
	Address        string
	District       string
	Province       string
	PostalCode     string
	Tel            string
	PricePerNight  decimal.Decimal
	Breakfast      bool
	BreakfastPrice decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
