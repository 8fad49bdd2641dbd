package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/campground-booking/internal/domain"
	"github.com/pkordes/campground-booking/internal/metrics"
	"github.com/pkordes/campground-booking/internal/repo"
)

// BookingService implements business logic for Booking operations.
// Every derived field goes through the PricingEngine; ownership is checked
// against the caller's Principal.
type BookingService struct {
	bookings repo.BookingRepo
	pricing  *PricingEngine
}

// NewBookingService constructs a BookingService.
func NewBookingService(bookings repo.BookingRepo, pricing *PricingEngine) *BookingService {
	return &BookingService{bookings: bookings, pricing: pricing}
}

// Create books a stay for the caller. The booking is always owned by the
// caller, starts as pending unless a valid status is given, and is priced
// from the campground's current rates.
func (s *BookingService) Create(ctx context.Context, caller domain.Principal, draft domain.Booking) (domain.Booking, error) {
	draft.UserID = caller.UserID
	if draft.Status == "" {
		draft.Status = domain.BookingPending
	}
	if !draft.Status.Valid() {
		return domain.Booking{}, fmt.Errorf("service.BookingService.Create: %w: unknown status %q", domain.ErrValidation, draft.Status)
	}

	priced, err := s.pricing.OnCreate(ctx, draft)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("service.BookingService.Create: %w", err)
	}
	result, err := s.bookings.Create(ctx, priced)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("service.BookingService.Create: %w", err)
	}
	metrics.RecordBookingWrite("create")
	return result, nil
}

// GetByID returns a booking the caller is allowed to see.
// Returns domain.ErrForbidden for another user's booking.
func (s *BookingService) GetByID(ctx context.Context, caller domain.Principal, id uuid.UUID) (domain.Booking, error) {
	b, err := s.owned(ctx, caller, id)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("service.BookingService.GetByID: %w", err)
	}
	return b, nil
}

// List returns one page of bookings. Administrators see every booking,
// everyone else only their own. A non-zero campgroundID narrows the result.
func (s *BookingService) List(ctx context.Context, caller domain.Principal, campgroundID uuid.UUID, p domain.PaginationParams) (domain.Page[domain.Booking], error) {
	f := domain.BookingFilter{CampgroundID: campgroundID}
	if !caller.IsAdmin() {
		f.UserID = caller.UserID
	}
	items, total, err := s.bookings.ListPaged(ctx, f, p)
	if err != nil {
		return domain.Page[domain.Booking]{}, fmt.Errorf("service.BookingService.List: %w", err)
	}
	return domain.Page[domain.Booking]{Items: items, Total: total}, nil
}

// Update applies patch to the caller's booking and re-prices it.
func (s *BookingService) Update(ctx context.Context, caller domain.Principal, id uuid.UUID, patch domain.BookingPatch) (domain.Booking, error) {
	if patch.Status != nil && !patch.Status.Valid() {
		return domain.Booking{}, fmt.Errorf("service.BookingService.Update: %w: unknown status %q", domain.ErrValidation, *patch.Status)
	}
	existing, err := s.owned(ctx, caller, id)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("service.BookingService.Update: %w", err)
	}
	priced, err := s.pricing.OnUpdate(ctx, existing, patch)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("service.BookingService.Update: %w", err)
	}
	result, err := s.bookings.Update(ctx, priced)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("service.BookingService.Update: %w", err)
	}
	metrics.RecordBookingWrite("update")
	return result, nil
}

// Delete removes the caller's booking.
func (s *BookingService) Delete(ctx context.Context, caller domain.Principal, id uuid.UUID) error {
	if _, err := s.owned(ctx, caller, id); err != nil {
		return fmt.Errorf("service.BookingService.Delete: %w", err)
	}
	if err := s.bookings.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.BookingService.Delete: %w", err)
	}
	metrics.RecordBookingWrite("delete")
	return nil
}

// owned loads a booking and checks the caller may touch it.
func (s *BookingService) owned(ctx context.Context, caller domain.Principal, id uuid.UUID) (domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return domain.Booking{}, err
	}
	if !caller.CanAccess(b.UserID) {
		return domain.Booking{}, fmt.Errorf("%w: booking %s belongs to another user", domain.ErrForbidden, id)
	}
	return b, nil
}
