package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pkordes/campground-booking/internal/domain"
	"github.com/pkordes/campground-booking/internal/metrics"
	"github.com/pkordes/campground-booking/internal/repo"
)

// PromotionApplier redeems promo codes against a cart total.
type PromotionApplier struct {
	promotions repo.PromotionRepo
	now        func() time.Time
	logger     *slog.Logger
}

// NewPromotionApplier constructs a PromotionApplier. now is the clock used
// for expiry checks; pass time.Now outside tests.
func NewPromotionApplier(promotions repo.PromotionRepo, now func() time.Time, logger *slog.Logger) *PromotionApplier {
	return &PromotionApplier{promotions: promotions, now: now, logger: logger}
}

// Apply validates code against cartTotal and, when every rule passes,
// consumes one use of the promotion on behalf of userID.
//
// The rules are checked in this order and the first failure wins:
//
//  1. code is present (domain.ErrValidation)
//  2. a promotion has that code (domain.ErrNotFound)
//  3. it has not expired (domain.ErrPromotionExpired)
//  4. it has uses left (domain.ErrPromotionLimitReached)
//  5. the cart meets its minimum spend (*domain.MinimumSpendError)
//
// The usage count is only touched after all five pass, and the increment
// itself re-checks the cap, so a lost race at the last use also reports
// domain.ErrPromotionLimitReached.
func (a *PromotionApplier) Apply(ctx context.Context, code string, cartTotal decimal.Decimal, userID uuid.UUID) (domain.AppliedPromotion, error) {
	res, outcome, err := a.apply(ctx, code, cartTotal, userID)
	metrics.RecordPromotionApply(outcome)
	if err != nil {
		a.logger.DebugContext(ctx, "promotion rejected", "code", code, "outcome", outcome, "error", err)
		return domain.AppliedPromotion{}, fmt.Errorf("service.PromotionApplier.Apply: %w", err)
	}
	a.logger.DebugContext(ctx, "promotion applied", "code", res.Code, "cart_total", cartTotal.String())
	return res, nil
}

func (a *PromotionApplier) apply(ctx context.Context, code string, cartTotal decimal.Decimal, userID uuid.UUID) (domain.AppliedPromotion, string, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return domain.AppliedPromotion{}, metrics.OutcomeInvalid, fmt.Errorf("%w: Promo code is required", domain.ErrValidation)
	}
	if cartTotal.IsNegative() {
		return domain.AppliedPromotion{}, metrics.OutcomeInvalid, fmt.Errorf("%w: cart total must not be negative", domain.ErrValidation)
	}
	if cartTotal.GreaterThan(domain.MaxTotal) {
		return domain.AppliedPromotion{}, metrics.OutcomeInvalid, fmt.Errorf("%w: cart total can not be more than %s", domain.ErrValidation, domain.MaxTotal)
	}

	p, err := a.promotions.GetByCode(ctx, code)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.AppliedPromotion{}, metrics.OutcomeNotFound, err
	}
	if err != nil {
		return domain.AppliedPromotion{}, metrics.OutcomeError, err
	}

	switch {
	case p.Expired(a.now()):
		return domain.AppliedPromotion{}, metrics.OutcomeExpired, domain.ErrPromotionExpired
	case p.Exhausted():
		return domain.AppliedPromotion{}, metrics.OutcomeLimitReached, domain.ErrPromotionLimitReached
	case p.BelowMinimumSpend(cartTotal):
		return domain.AppliedPromotion{}, metrics.OutcomeMinimumSpend, &domain.MinimumSpendError{Required: *p.MinSpend}
	}

	consumed, err := a.promotions.ConsumeUse(ctx, p.ID, userID, cartTotal)
	if errors.Is(err, domain.ErrPromotionLimitReached) {
		return domain.AppliedPromotion{}, metrics.OutcomeLimitReached, err
	}
	if errors.Is(err, domain.ErrValidation) {
		return domain.AppliedPromotion{}, metrics.OutcomeInvalid, err
	}
	if err != nil {
		return domain.AppliedPromotion{}, metrics.OutcomeError, err
	}
	return domain.AppliedPromotion{
		DiscountPercentage: consumed.DiscountPercentage,
		Code:               consumed.Code,
	}, metrics.OutcomeApplied, nil
}
