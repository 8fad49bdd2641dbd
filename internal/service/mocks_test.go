package service_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pkordes/campground-booking/internal/domain"
	"github.com/pkordes/campground-booking/internal/repo"
)

// Hand-written test doubles for the repo interfaces. Each method is a
// function field; set only the ones a test needs. Calling an unset method
// panics, which flags an unexpected repo call.

type mockCampgroundRepo struct {
	create    func(ctx context.Context, c domain.Campground) (domain.Campground, error)
	getByID   func(ctx context.Context, id uuid.UUID) (domain.Campground, error)
	listPaged func(ctx context.Context, p domain.PaginationParams) ([]domain.Campground, int64, error)
	update    func(ctx context.Context, c domain.Campground) (domain.Campground, error)
	delete    func(ctx context.Context, id uuid.UUID) error
}

func (m *mockCampgroundRepo) Create(ctx context.Context, c domain.Campground) (domain.Campground, error) {
	return m.create(ctx, c)
}
func (m *mockCampgroundRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Campground, error) {
	return m.getByID(ctx, id)
}
func (m *mockCampgroundRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Campground, int64, error) {
	return m.listPaged(ctx, p)
}
func (m *mockCampgroundRepo) Update(ctx context.Context, c domain.Campground) (domain.Campground, error) {
	return m.update(ctx, c)
}
func (m *mockCampgroundRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ repo.CampgroundRepo = (*mockCampgroundRepo)(nil)

type mockBookingRepo struct {
	create    func(ctx context.Context, b domain.Booking) (domain.Booking, error)
	getByID   func(ctx context.Context, id uuid.UUID) (domain.Booking, error)
	listPaged func(ctx context.Context, f domain.BookingFilter, p domain.PaginationParams) ([]domain.Booking, int64, error)
	update    func(ctx context.Context, b domain.Booking) (domain.Booking, error)
	delete    func(ctx context.Context, id uuid.UUID) error
}

func (m *mockBookingRepo) Create(ctx context.Context, b domain.Booking) (domain.Booking, error) {
	return m.create(ctx, b)
}
func (m *mockBookingRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Booking, error) {
	return m.getByID(ctx, id)
}
func (m *mockBookingRepo) ListPaged(ctx context.Context, f domain.BookingFilter, p domain.PaginationParams) ([]domain.Booking, int64, error) {
	return m.listPaged(ctx, f, p)
}
func (m *mockBookingRepo) Update(ctx context.Context, b domain.Booking) (domain.Booking, error) {
	return m.update(ctx, b)
}
func (m *mockBookingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ repo.BookingRepo = (*mockBookingRepo)(nil)

type mockReviewRepo struct {
	create    func(ctx context.Context, rv domain.Review) (domain.Review, error)
	getByID   func(ctx context.Context, id uuid.UUID) (domain.Review, error)
	listPaged func(ctx context.Context, campgroundID uuid.UUID, p domain.PaginationParams) ([]domain.Review, int64, error)
	update    func(ctx context.Context, rv domain.Review) (domain.Review, error)
	delete    func(ctx context.Context, id uuid.UUID) error
}

func (m *mockReviewRepo) Create(ctx context.Context, rv domain.Review) (domain.Review, error) {
	return m.create(ctx, rv)
}
func (m *mockReviewRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Review, error) {
	return m.getByID(ctx, id)
}
func (m *mockReviewRepo) ListPaged(ctx context.Context, campgroundID uuid.UUID, p domain.PaginationParams) ([]domain.Review, int64, error) {
	return m.listPaged(ctx, campgroundID, p)
}
func (m *mockReviewRepo) Update(ctx context.Context, rv domain.Review) (domain.Review, error) {
	return m.update(ctx, rv)
}
func (m *mockReviewRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ repo.ReviewRepo = (*mockReviewRepo)(nil)

type mockPromotionRepo struct {
	create     func(ctx context.Context, p domain.Promotion) (domain.Promotion, error)
	getByID    func(ctx context.Context, id uuid.UUID) (domain.Promotion, error)
	getByCode  func(ctx context.Context, code string) (domain.Promotion, error)
	listPaged  func(ctx context.Context, p domain.PaginationParams) ([]domain.Promotion, int64, error)
	update     func(ctx context.Context, p domain.Promotion) (domain.Promotion, error)
	delete     func(ctx context.Context, id uuid.UUID) error
	consumeUse func(ctx context.Context, id, userID uuid.UUID, cartTotal decimal.Decimal) (domain.Promotion, error)
	listUsages func(ctx context.Context, promotionID uuid.UUID, p domain.PaginationParams) ([]domain.PromotionUsage, int64, error)
}

func (m *mockPromotionRepo) Create(ctx context.Context, p domain.Promotion) (domain.Promotion, error) {
	return m.create(ctx, p)
}
func (m *mockPromotionRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Promotion, error) {
	return m.getByID(ctx, id)
}
func (m *mockPromotionRepo) GetByCode(ctx context.Context, code string) (domain.Promotion, error) {
	return m.getByCode(ctx, code)
}
func (m *mockPromotionRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Promotion, int64, error) {
	return m.listPaged(ctx, p)
}
func (m *mockPromotionRepo) Update(ctx context.Context, p domain.Promotion) (domain.Promotion, error) {
	return m.update(ctx, p)
}
func (m *mockPromotionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}
func (m *mockPromotionRepo) ConsumeUse(ctx context.Context, id, userID uuid.UUID, cartTotal decimal.Decimal) (domain.Promotion, error) {
	return m.consumeUse(ctx, id, userID, cartTotal)
}
func (m *mockPromotionRepo) ListUsages(ctx context.Context, promotionID uuid.UUID, p domain.PaginationParams) ([]domain.PromotionUsage, int64, error) {
	return m.listUsages(ctx, promotionID, p)
}

var _ repo.PromotionRepo = (*mockPromotionRepo)(nil)

// ---- shared fixtures ---------------------------------------------------------

var (
	alice = domain.Principal{UserID: uuid.MustParse("11111111-1111-1111-1111-111111111111"), Role: domain.RoleUser}
	bob   = domain.Principal{UserID: uuid.MustParse("22222222-2222-2222-2222-222222222222"), Role: domain.RoleUser}
	admin = domain.Principal{UserID: uuid.MustParse("33333333-3333-3333-3333-333333333333"), Role: domain.RoleAdmin}
)

// campgroundsByID returns a repo that serves the given campgrounds and
// reports domain.ErrNotFound for anything else.
func campgroundsByID(cs ...domain.Campground) *mockCampgroundRepo {
	return &mockCampgroundRepo{
		getByID: func(_ context.Context, id uuid.UUID) (domain.Campground, error) {
			for _, c := range cs {
				if c.ID == id {
					return c, nil
				}
			}
			return domain.Campground{}, domain.ErrNotFound
		},
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
