package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const day = 24 * time.Hour

// Largest amounts the schema can hold: rates are NUMERIC(10,2), booking totals
// and cart totals NUMERIC(12,2).
var (
	MaxRate  = decimal.RequireFromString("99999999.99")
	MaxTotal = decimal.RequireFromString("9999999999.99")
)

// StayDays returns the number of started days between checkIn and checkOut,
// i.e. the ceiling of the difference in days. A range of 49 hours is 3 days.
// The result is zero or negative when checkOut is not after checkIn.
func StayDays(checkIn, checkOut time.Time) int {
	d := checkOut.Sub(checkIn)
	days := d / day
	if d%day > 0 {
		days++
	}
	return int(days)
}

// DeriveDuration formats the stay length: "1 day", "3 days".
func DeriveDuration(checkIn, checkOut time.Time) string {
	n := StayDays(checkIn, checkOut)
	if n > 1 {
		return fmt.Sprintf("%d days", n)
	}
	return fmt.Sprintf("%d day", n)
}

// DerivePricing returns the total price of a stay: the nightly rate, plus the
// breakfast rate when breakfast is included, times the number of days.
func DerivePricing(pricePerNight, breakfastPrice decimal.Decimal, breakfastIncluded bool, checkIn, checkOut time.Time) decimal.Decimal {
	rate := pricePerNight
	if breakfastIncluded {
		rate = rate.Add(breakfastPrice)
	}
	return rate.Mul(decimal.NewFromInt(int64(StayDays(checkIn, checkOut))))
}

// ApplyCampgroundPricing snapshots the campground's current rates onto b and
// recomputes its total.
func (b *Booking) ApplyCampgroundPricing(c Campground) {
	b.PricePerNight = c.PricePerNight
	b.BreakfastPrice = c.BreakfastPrice
	b.TotalPrice = DerivePricing(b.PricePerNight, b.BreakfastPrice, b.Breakfast, b.CheckIn, b.CheckOut)
}
