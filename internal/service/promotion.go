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

// PromotionService implements the administrative operations on promotions.
// Redeeming a code is PromotionApplier's job.
type PromotionService struct {
	repo repo.PromotionRepo
}

// NewPromotionService constructs a PromotionService backed by the provided repo.
func NewPromotionService(r repo.PromotionRepo) *PromotionService {
	return &PromotionService{repo: r}
}

// Create validates and persists a new promotion with a zero usage count.
func (s *PromotionService) Create(ctx context.Context, p domain.Promotion) (domain.Promotion, error) {
	p.Code = strings.TrimSpace(p.Code)
	p.UsedCount = 0
	if err := validatePromotion(p); err != nil {
		return domain.Promotion{}, fmt.Errorf("service.PromotionService.Create: %w", err)
	}
	result, err := s.repo.Create(ctx, p)
	if err != nil {
		return domain.Promotion{}, fmt.Errorf("service.PromotionService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single promotion.
func (s *PromotionService) GetByID(ctx context.Context, id uuid.UUID) (domain.Promotion, error) {
	result, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Promotion{}, fmt.Errorf("service.PromotionService.GetByID: %w", err)
	}
	return result, nil
}

// List returns one page of promotions.
func (s *PromotionService) List(ctx context.Context, p domain.PaginationParams) (domain.Page[domain.Promotion], error) {
	items, total, err := s.repo.ListPaged(ctx, p)
	if err != nil {
		return domain.Page[domain.Promotion]{}, fmt.Errorf("service.PromotionService.List: %w", err)
	}
	return domain.Page[domain.Promotion]{Items: items, Total: total}, nil
}

// Update overwrites the editable fields of a promotion. The usage count is
// not editable, and max uses may not drop below it; the repo reports that as
// domain.ErrValidation.
func (s *PromotionService) Update(ctx context.Context, p domain.Promotion) (domain.Promotion, error) {
	p.Code = strings.TrimSpace(p.Code)
	if err := validatePromotion(p); err != nil {
		return domain.Promotion{}, fmt.Errorf("service.PromotionService.Update: %w", err)
	}
	result, err := s.repo.Update(ctx, p)
	if err != nil {
		return domain.Promotion{}, fmt.Errorf("service.PromotionService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a promotion and its usage history.
func (s *PromotionService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.PromotionService.Delete: %w", err)
	}
	return nil
}

// ListUsages returns one page of a promotion's redemption history.
func (s *PromotionService) ListUsages(ctx context.Context, id uuid.UUID, p domain.PaginationParams) (domain.Page[domain.PromotionUsage], error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return domain.Page[domain.PromotionUsage]{}, fmt.Errorf("service.PromotionService.ListUsages: %w", err)
	}
	items, total, err := s.repo.ListUsages(ctx, id, p)
	if err != nil {
		return domain.Page[domain.PromotionUsage]{}, fmt.Errorf("service.PromotionService.ListUsages: %w", err)
	}
	return domain.Page[domain.PromotionUsage]{Items: items, Total: total}, nil
}

func validatePromotion(p domain.Promotion) error {
	switch {
	case p.Code == "":
		return fmt.Errorf("%w: promotion code is required", domain.ErrValidation)
	case utf8.RuneCountInString(p.Code) > 10:
		return fmt.Errorf("%w: promotion code can not be more than 10 characters", domain.ErrValidation)
	case p.DiscountPercentage < 1 || p.DiscountPercentage > 100:
		return fmt.Errorf("%w: discount percentage must be between 1 and 100", domain.ErrValidation)
	case p.ExpiredDate.IsZero():
		return fmt.Errorf("%w: expiry date is required", domain.ErrValidation)
	case p.MinSpend != nil && p.MinSpend.IsNegative():
		return fmt.Errorf("%w: minimum spend must not be negative", domain.ErrValidation)
	case p.MinSpend != nil && p.MinSpend.GreaterThan(domain.MaxRate):
		return fmt.Errorf("%w: minimum spend can not be more than %s", domain.ErrValidation, domain.MaxRate)
	case p.MaxUses != nil && *p.MaxUses < 1:
		return fmt.Errorf("%w: max uses must be at least 1", domain.ErrValidation)
	}
	return nil
}
