package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Promotion is a percentage discount redeemable by code.
//
// MinSpend and MaxUses are optional. UsedCount only changes through a
// successful apply and never exceeds MaxUses when MaxUses is set.
type Promotion struct {
	ID                 uuid.UUID
	Code               string
	DiscountPercentage int
	ExpiredDate        time.Time
	MinSpend           *decimal.Decimal
	MaxUses            *int
	UsedCount          int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Expired reports whether the promotion is past its expiry at now.
// A promotion is still valid at the exact expiry instant.
func (p Promotion) Expired(now time.Time) bool {
	return now.After(p.ExpiredDate)
}

// Exhausted reports whether every allowed use has been consumed.
func (p Promotion) Exhausted() bool {
	return p.MaxUses != nil && p.UsedCount >= *p.MaxUses
}

// BelowMinimumSpend reports whether cartTotal is too small for the promotion.
func (p Promotion) BelowMinimumSpend(cartTotal decimal.Decimal) bool {
	return p.MinSpend != nil && cartTotal.LessThan(*p.MinSpend)
}

// PromotionUsage records one successful application of a promotion.
type PromotionUsage struct {
	ID          uuid.UUID
	PromotionID uuid.UUID
	UserID      uuid.UUID
	CartTotal   decimal.Decimal
	UsedAt      time.Time
}

// AppliedPromotion is what a successful apply hands back to the caller.
type AppliedPromotion struct {
	DiscountPercentage int
	Code               string
}
