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

// ReviewService implements business logic for Review operations.
type ReviewService struct {
	campgrounds repo.CampgroundRepo
	reviews     repo.ReviewRepo
}

// NewReviewService constructs a ReviewService backed by the provided repos.
func NewReviewService(campgrounds repo.CampgroundRepo, reviews repo.ReviewRepo) *ReviewService {
	return &ReviewService{campgrounds: campgrounds, reviews: reviews}
}

// Create validates the review, verifies the campground exists, then persists
// it as owned by the caller.
func (s *ReviewService) Create(ctx context.Context, caller domain.Principal, rv domain.Review) (domain.Review, error) {
	rv.UserID = caller.UserID
	rv.Text = strings.TrimSpace(rv.Text)
	if err := validateReview(rv); err != nil {
		return domain.Review{}, fmt.Errorf("service.ReviewService.Create: %w", err)
	}
	if _, err := findCampground(ctx, s.campgrounds, rv.CampgroundID); err != nil {
		return domain.Review{}, fmt.Errorf("service.ReviewService.Create: %w", err)
	}
	result, err := s.reviews.Create(ctx, rv)
	if err != nil {
		return domain.Review{}, fmt.Errorf("service.ReviewService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single review.
func (s *ReviewService) GetByID(ctx context.Context, id uuid.UUID) (domain.Review, error) {
	result, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		return domain.Review{}, fmt.Errorf("service.ReviewService.GetByID: %w", err)
	}
	return result, nil
}

// List returns one page of reviews, optionally for a single campground.
// Listing a campground that does not exist is domain.ErrNotFound rather than
// an empty page.
func (s *ReviewService) List(ctx context.Context, campgroundID uuid.UUID, p domain.PaginationParams) (domain.Page[domain.Review], error) {
	if campgroundID != uuid.Nil {
		if _, err := findCampground(ctx, s.campgrounds, campgroundID); err != nil {
			return domain.Page[domain.Review]{}, fmt.Errorf("service.ReviewService.List: %w", err)
		}
	}
	items, total, err := s.reviews.ListPaged(ctx, campgroundID, p)
	if err != nil {
		return domain.Page[domain.Review]{}, fmt.Errorf("service.ReviewService.List: %w", err)
	}
	return domain.Page[domain.Review]{Items: items, Total: total}, nil
}

// Update replaces the text and star rating of the caller's review.
func (s *ReviewService) Update(ctx context.Context, caller domain.Principal, id uuid.UUID, text string, star int) (domain.Review, error) {
	rv, err := s.owned(ctx, caller, id)
	if err != nil {
		return domain.Review{}, fmt.Errorf("service.ReviewService.Update: %w", err)
	}
	rv.Text = strings.TrimSpace(text)
	rv.Star = star
	if err := validateReview(rv); err != nil {
		return domain.Review{}, fmt.Errorf("service.ReviewService.Update: %w", err)
	}
	result, err := s.reviews.Update(ctx, rv)
	if err != nil {
		return domain.Review{}, fmt.Errorf("service.ReviewService.Update: %w", err)
	}
	return result, nil
}

// Delete removes the caller's review.
func (s *ReviewService) Delete(ctx context.Context, caller domain.Principal, id uuid.UUID) error {
	if _, err := s.owned(ctx, caller, id); err != nil {
		return fmt.Errorf("service.ReviewService.Delete: %w", err)
	}
	if err := s.reviews.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.ReviewService.Delete: %w", err)
	}
	return nil
}

func (s *ReviewService) owned(ctx context.Context, caller domain.Principal, id uuid.UUID) (domain.Review, error) {
	rv, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		return domain.Review{}, err
	}
	if !caller.CanAccess(rv.UserID) {
		return domain.Review{}, fmt.Errorf("%w: review %s belongs to another user", domain.ErrForbidden, id)
	}
	return rv, nil
}

func validateReview(rv domain.Review) error {
	if rv.Star < 1 || rv.Star > 5 {
		return fmt.Errorf("%w: star must be between 1 and 5", domain.ErrValidation)
	}
	if utf8.RuneCountInString(rv.Text) > 500 {
		return fmt.Errorf("%w: text can not be more than 500 characters", domain.ErrValidation)
	}
	return nil
}
