// Package service contains the business logic for the campground booking API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/pkordes/campground-booking/internal/domain"
	"github.com/pkordes/campground-booking/internal/repo"
)

// CampgroundService implements business logic for Campground operations.
type CampgroundService struct {
	repo repo.CampgroundRepo
}

// NewCampgroundService constructs a CampgroundService backed by the provided repo.
func NewCampgroundService(r repo.CampgroundRepo) *CampgroundService {
	return &CampgroundService{repo: r}
}

// Create validates and persists a new campground.
// Returns domain.ErrValidation for invalid input and domain.ErrConflict when
// the name is already taken.
func (s *CampgroundService) Create(ctx context.Context, c domain.Campground) (domain.Campground, error) {
	c = normalizeCampground(c)
	if err := validateCampground(c); err != nil {
		return domain.Campground{}, fmt.Errorf("service.CampgroundService.Create: %w", err)
	}
	result, err := s.repo.Create(ctx, c)
	if err != nil {
		return domain.Campground{}, fmt.Errorf("service.CampgroundService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single campground by ID.
func (s *CampgroundService) GetByID(ctx context.Context, id uuid.UUID) (domain.Campground, error) {
	result, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Campground{}, fmt.Errorf("service.CampgroundService.GetByID: %w", err)
	}
	return result, nil
}

// List returns one page of campgrounds.
func (s *CampgroundService) List(ctx context.Context, p domain.PaginationParams) (domain.Page[domain.Campground], error) {
	items, total, err := s.repo.ListPaged(ctx, p)
	if err != nil {
		return domain.Page[domain.Campground]{}, fmt.Errorf("service.CampgroundService.List: %w", err)
	}
	return domain.Page[domain.Campground]{Items: items, Total: total}, nil
}

// Update validates and overwrites an existing campground. Bookings already
// made keep the prices they were created with.
func (s *CampgroundService) Update(ctx context.Context, c domain.Campground) (domain.Campground, error) {
	c = normalizeCampground(c)
	if err := validateCampground(c); err != nil {
		return domain.Campground{}, fmt.Errorf("service.CampgroundService.Update: %w", err)
	}
	result, err := s.repo.Update(ctx, c)
	if err != nil {
		return domain.Campground{}, fmt.Errorf("service.CampgroundService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a campground together with its bookings and reviews.
func (s *CampgroundService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.CampgroundService.Delete: %w", err)
	}
	return nil
}

func normalizeCampground(c domain.Campground) domain.Campground {
	c.Name = strings.TrimSpace(c.Name)
	c.Address = strings.TrimSpace(c.Address)
	c.District = strings.TrimSpace(c.District)
	c.Province = strings.TrimSpace(c.Province)
	c.PostalCode = strings.TrimSpace(c.PostalCode)
	c.Tel = strings.TrimSpace(c.Tel)
	return c
}

func validateCampground(c domain.Campground) error {
	switch {
	case c.Name == "":
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	case utf8.RuneCountInString(c.Name) > 50:
		return fmt.Errorf("%w: name can not be more than 50 characters", domain.ErrValidation)
	case c.Address == "":
		return fmt.Errorf("%w: address is required", domain.ErrValidation)
	case c.District == "":
		return fmt.Errorf("%w: district is required", domain.ErrValidation)
	case c.Province == "":
		return fmt.Errorf("%w: province is required", domain.ErrValidation)
	case c.PostalCode == "":
		return fmt.Errorf("%w: postal code is required", domain.ErrValidation)
	case utf8.RuneCountInString(c.PostalCode) > 5:
		return fmt.Errorf("%w: postal code can not be more than 5 digits", domain.ErrValidation)
	case c.PricePerNight.IsNegative():
		return fmt.Errorf("%w: price per night must not be negative", domain.ErrValidation)
	case c.BreakfastPrice.IsNegative():
		return fmt.Errorf("%w: breakfast price must not be negative", domain.ErrValidation)
	case c.PricePerNight.GreaterThan(domain.MaxRate):
		return fmt.Errorf("%w: price per night can not be more than %s", domain.ErrValidation, domain.MaxRate)
	case c.BreakfastPrice.GreaterThan(domain.MaxRate):
		return fmt.Errorf("%w: breakfast price can not be more than %s", domain.ErrValidation, domain.MaxRate)
	}
	return nil
}
