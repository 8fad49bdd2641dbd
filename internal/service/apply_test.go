package service_test

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/campground-booking/internal/domain"
	"github.com/pkordes/campground-booking/internal/service"
)

var applyNow = time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

// promoStore is an in-memory PromotionRepo for apply tests. It counts
// ConsumeUse calls and applies the same capped increment the database does.
type promoStore struct {
	promo    domain.Promotion
	consumed int
	usages   []domain.PromotionUsage
}

func (s *promoStore) repo() *mockPromotionRepo {
	return &mockPromotionRepo{
		getByCode: func(_ context.Context, code string) (domain.Promotion, error) {
			if code != s.promo.Code {
				return domain.Promotion{}, domain.ErrNotFound
			}
			return s.promo, nil
		},
		consumeUse: func(_ context.Context, id, userID uuid.UUID, cartTotal decimal.Decimal) (domain.Promotion, error) {
			s.consumed++
			if s.promo.Exhausted() {
				return domain.Promotion{}, domain.ErrPromotionLimitReached
			}
			s.promo.UsedCount++
			s.usages = append(s.usages, domain.PromotionUsage{PromotionID: id, UserID: userID, CartTotal: cartTotal})
			return s.promo, nil
		},
	}
}

func save10(usedCount int) *promoStore {
	maxUses := 10
	minSpend := dec("50")
	return &promoStore{promo: domain.Promotion{
		ID:                 uuid.New(),
		Code:               "SAVE10",
		DiscountPercentage: 10,
		ExpiredDate:        applyNow.Add(24 * time.Hour),
		MinSpend:           &minSpend,
		MaxUses:            &maxUses,
		UsedCount:          usedCount,
	}}
}

func newApplier(s *promoStore) *service.PromotionApplier {
	return service.NewPromotionApplier(s.repo(), func() time.Time { return applyNow }, slog.New(slog.DiscardHandler))
}

func TestPromotionApplier_Apply_Success(t *testing.T) {
	store := save10(2)

	got, err := newApplier(store).Apply(context.Background(), "SAVE10", dec("100"), alice.UserID)

	require.NoError(t, err)
	assert.Equal(t, domain.AppliedPromotion{DiscountPercentage: 10, Code: "SAVE10"}, got)
	assert.Equal(t, 3, store.promo.UsedCount)
	require.Len(t, store.usages, 1)
	assert.Equal(t, alice.UserID, store.usages[0].UserID)
	assert.True(t, store.usages[0].CartTotal.Equal(dec("100")))
}

func TestPromotionApplier_Apply_LastUse(t *testing.T) {
	store := save10(9)

	_, err := newApplier(store).Apply(context.Background(), "SAVE10", dec("60"), alice.UserID)

	require.NoError(t, err)
	assert.Equal(t, 10, store.promo.UsedCount)
}

func TestPromotionApplier_Apply_CodeRequired(t *testing.T) {
	for _, code := range []string{"", "   "} {
		store := save10(0)

		_, err := newApplier(store).Apply(context.Background(), code, dec("100"), alice.UserID)

		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Contains(t, err.Error(), "Promo code is required")
		assert.Zero(t, store.consumed)
	}
}

func TestPromotionApplier_Apply_UnknownCode(t *testing.T) {
	store := save10(0)

	_, err := newApplier(store).Apply(context.Background(), "FREE99", dec("100"), alice.UserID)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, store.consumed)
}

func TestPromotionApplier_Apply_Expired(t *testing.T) {
	store := save10(0)
	store.promo.ExpiredDate = applyNow.Add(-time.Second)

	_, err := newApplier(store).Apply(context.Background(), "SAVE10", dec("100"), alice.UserID)

	assert.ErrorIs(t, err, domain.ErrPromotionExpired)
	assert.Equal(t, 0, store.promo.UsedCount)
	assert.Zero(t, store.consumed)
}

func TestPromotionApplier_Apply_ValidAtExactExpiry(t *testing.T) {
	store := save10(0)
	store.promo.ExpiredDate = applyNow

	_, err := newApplier(store).Apply(context.Background(), "SAVE10", dec("100"), alice.UserID)

	assert.NoError(t, err)
}

func TestPromotionApplier_Apply_LimitReached(t *testing.T) {
	store := save10(10)

	_, err := newApplier(store).Apply(context.Background(), "SAVE10", dec("100"), alice.UserID)

	assert.ErrorIs(t, err, domain.ErrPromotionLimitReached)
	assert.Equal(t, 10, store.promo.UsedCount)
	assert.Zero(t, store.consumed)
}

func TestPromotionApplier_Apply_BelowMinimumSpend(t *testing.T) {
	store := save10(2)

	_, err := newApplier(store).Apply(context.Background(), "SAVE10", dec("49.99"), alice.UserID)

	assert.ErrorIs(t, err, domain.ErrBelowMinimumSpend)
	var minErr *domain.MinimumSpendError
	require.True(t, errors.As(err, &minErr))
	assert.Equal(t, "50", minErr.Required.String())
	assert.Equal(t, 2, store.promo.UsedCount)
	assert.Zero(t, store.consumed)
}

func TestPromotionApplier_Apply_ExactMinimumSpend(t *testing.T) {
	store := save10(0)

	_, err := newApplier(store).Apply(context.Background(), "SAVE10", dec("50"), alice.UserID)

	assert.NoError(t, err)
}

func TestPromotionApplier_Apply_NoLimitsSet(t *testing.T) {
	store := save10(500)
	store.promo.MaxUses = nil
	store.promo.MinSpend = nil

	_, err := newApplier(store).Apply(context.Background(), "SAVE10", dec("0"), alice.UserID)

	require.NoError(t, err)
	assert.Equal(t, 501, store.promo.UsedCount)
}

// Each case violates several rules at once; the earliest rule in the
// documented order must be the one reported.
func TestPromotionApplier_Apply_CheckOrder(t *testing.T) {
	tests := []struct {
		name    string
		expired bool
		used    int
		total   string
		wantErr error
	}{
		{"expired beats limit and minimum spend", true, 10, "1", domain.ErrPromotionExpired},
		{"limit beats minimum spend", false, 10, "1", domain.ErrPromotionLimitReached},
		{"minimum spend alone", false, 0, "1", domain.ErrBelowMinimumSpend},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := save10(tc.used)
			if tc.expired {
				store.promo.ExpiredDate = applyNow.Add(-time.Hour)
			}

			_, err := newApplier(store).Apply(context.Background(), "SAVE10", dec(tc.total), alice.UserID)

			assert.ErrorIs(t, err, tc.wantErr)
			for _, other := range []error{domain.ErrPromotionExpired, domain.ErrPromotionLimitReached, domain.ErrBelowMinimumSpend} {
				if other != tc.wantErr {
					assert.NotErrorIs(t, err, other)
				}
			}
		})
	}
}

func TestPromotionApplier_Apply_LostRaceAtLastUse(t *testing.T) {
	store := save10(9)
	r := store.repo()
	// Another request takes the last use between the read and the increment.
	r.getByCode = func(context.Context, string) (domain.Promotion, error) {
		p := store.promo
		store.promo.UsedCount = 10
		return p, nil
	}
	a := service.NewPromotionApplier(r, func() time.Time { return applyNow }, slog.New(slog.DiscardHandler))

	_, err := a.Apply(context.Background(), "SAVE10", dec("100"), alice.UserID)

	assert.ErrorIs(t, err, domain.ErrPromotionLimitReached)
	assert.Equal(t, 10, store.promo.UsedCount, "usage never exceeds the cap")
}

func TestPromotionApplier_Apply_RepoError(t *testing.T) {
	boom := errors.New("db down")
	r := &mockPromotionRepo{
		getByCode: func(context.Context, string) (domain.Promotion, error) { return domain.Promotion{}, boom },
	}
	a := service.NewPromotionApplier(r, time.Now, slog.New(slog.DiscardHandler))

	_, err := a.Apply(context.Background(), "SAVE10", dec("100"), alice.UserID)

	assert.ErrorIs(t, err, boom)
}

func TestPromotionApplier_Apply_NegativeCart(t *testing.T) {
	store := save10(0)

	_, err := newApplier(store).Apply(context.Background(), "SAVE10", dec("-5"), alice.UserID)

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Zero(t, store.consumed)
}

func TestPromotionApplier_Apply_CartTotalTooLarge(t *testing.T) {
	store := save10(0)

	_, err := newApplier(store).Apply(context.Background(), "SAVE10", dec("10000000000"), alice.UserID)

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.ErrorContains(t, err, "cart total can not be more than")
	assert.Zero(t, store.consumed)
}

func TestPromotionApplier_Apply_RejectedWrite(t *testing.T) {
	store := save10(0)
	r := store.repo()
	r.consumeUse = func(context.Context, uuid.UUID, uuid.UUID, decimal.Decimal) (domain.Promotion, error) {
		return domain.Promotion{}, fmt.Errorf("%w: amount is too large", domain.ErrValidation)
	}
	a := service.NewPromotionApplier(r, func() time.Time { return applyNow }, slog.New(slog.DiscardHandler))

	_, err := a.Apply(context.Background(), "SAVE10", dec("100"), alice.UserID)

	assert.ErrorIs(t, err, domain.ErrValidation)
}
