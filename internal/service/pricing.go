package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/campground-booking/internal/domain"
	"github.com/pkordes/campground-booking/internal/repo"
)

// PricingEngine keeps a booking's derived fields (duration, price snapshot
// and total) consistent with its dates, breakfast flag and campground.
type PricingEngine struct {
	campgrounds repo.CampgroundRepo
}

// NewPricingEngine constructs a PricingEngine that reads campground rates
// from the provided repo.
func NewPricingEngine(campgrounds repo.CampgroundRepo) *PricingEngine {
	return &PricingEngine{campgrounds: campgrounds}
}

// OnCreate prices a new booking draft. The campground's current rates are
// copied onto the booking, then the duration and total are derived.
// Returns domain.ErrNotFound if the campground does not exist and
// domain.ErrValidation if the stay is not at least one instant long.
func (e *PricingEngine) OnCreate(ctx context.Context, draft domain.Booking) (domain.Booking, error) {
	if err := validateStay(draft); err != nil {
		return domain.Booking{}, err
	}
	c, err := findCampground(ctx, e.campgrounds, draft.CampgroundID)
	if err != nil {
		return domain.Booking{}, err
	}
	draft.Duration = domain.DeriveDuration(draft.CheckIn, draft.CheckOut)
	draft.ApplyCampgroundPricing(c)
	if err := validateTotal(draft); err != nil {
		return domain.Booking{}, err
	}
	return draft, nil
}

// OnUpdate resolves patch over existing. Each patch field that is nil keeps
// the stored value, and the duration is always recomputed. The price
// snapshot is refreshed from the campground's current rates only when the
// dates, the breakfast flag or the campground actually changed, so a
// status-only edit keeps what the guest was quoted.
func (e *PricingEngine) OnUpdate(ctx context.Context, existing domain.Booking, patch domain.BookingPatch) (domain.Booking, error) {
	b := existing
	if patch.CheckIn != nil {
		b.CheckIn = *patch.CheckIn
	}
	if patch.CheckOut != nil {
		b.CheckOut = *patch.CheckOut
	}
	if patch.CampgroundID != nil {
		b.CampgroundID = *patch.CampgroundID
	}
	if patch.Breakfast != nil {
		b.Breakfast = *patch.Breakfast
	}
	if patch.Status != nil {
		b.Status = *patch.Status
	}

	if err := validateStay(b); err != nil {
		return domain.Booking{}, err
	}
	b.Duration = domain.DeriveDuration(b.CheckIn, b.CheckOut)

	if b.CampgroundID == uuid.Nil || !stayChanged(existing, b) {
		return b, nil
	}
	c, err := findCampground(ctx, e.campgrounds, b.CampgroundID)
	if err != nil {
		return domain.Booking{}, err
	}
	b.ApplyCampgroundPricing(c)
	if err := validateTotal(b); err != nil {
		return domain.Booking{}, err
	}
	return b, nil
}

func stayChanged(before, after domain.Booking) bool {
	return !before.CheckIn.Equal(after.CheckIn) ||
		!before.CheckOut.Equal(after.CheckOut) ||
		before.Breakfast != after.Breakfast ||
		before.CampgroundID != after.CampgroundID
}

// findCampground fetches a campground. A missing campground is reported with
// its id so callers can tell it apart from the record they were acting on.
func findCampground(ctx context.Context, r repo.CampgroundRepo, id uuid.UUID) (domain.Campground, error) {
	c, err := r.GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Campground{}, fmt.Errorf("%w: no campground with the id of %s", domain.ErrNotFound, id)
	}
	if err != nil {
		return domain.Campground{}, fmt.Errorf("campground: %w", err)
	}
	return c, nil
}

func validateStay(b domain.Booking) error {
	if b.CheckIn.IsZero() {
		return fmt.Errorf("%w: check-in date is required", domain.ErrValidation)
	}
	if b.CheckOut.IsZero() {
		return fmt.Errorf("%w: check-out date is required", domain.ErrValidation)
	}
	if !b.CheckOut.After(b.CheckIn) {
		return fmt.Errorf("%w: check-out date must be after check-in date", domain.ErrValidation)
	}
	return nil
}

func validateTotal(b domain.Booking) error {
	if b.TotalPrice.GreaterThan(domain.MaxTotal) {
		return fmt.Errorf("%w: total price can not be more than %s, shorten the stay", domain.ErrValidation, domain.MaxTotal)
	}
	return nil
}
