// Package handler implements the HTTP handlers for the campground booking API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (campground.go, booking.go, etc.) but share the same Server struct so
// they can access its dependencies.
package handler

import (
	"context"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pkordes/campground-booking/internal/domain"
)

// CampgroundServicer defines the business operations the campground handlers
// depend on. Defining the interface here (in the consumer package) lets
// handler tests inject a mock without touching the database or service layer.
type CampgroundServicer interface {
	Create(ctx context.Context, c domain.Campground) (domain.Campground, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Campground, error)
	List(ctx context.Context, p domain.PaginationParams) (domain.Page[domain.Campground], error)
	Update(ctx context.Context, c domain.Campground) (domain.Campground, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// BookingServicer defines the booking operations. Every call carries the
// authenticated caller.
type BookingServicer interface {
	Create(ctx context.Context, caller domain.Principal, draft domain.Booking) (domain.Booking, error)
	GetByID(ctx context.Context, caller domain.Principal, id uuid.UUID) (domain.Booking, error)
	List(ctx context.Context, caller domain.Principal, campgroundID uuid.UUID, p domain.PaginationParams) (domain.Page[domain.Booking], error)
	Update(ctx context.Context, caller domain.Principal, id uuid.UUID, patch domain.BookingPatch) (domain.Booking, error)
	Delete(ctx context.Context, caller domain.Principal, id uuid.UUID) error
}

// ReviewServicer defines the review operations.
type ReviewServicer interface {
	Create(ctx context.Context, caller domain.Principal, rv domain.Review) (domain.Review, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Review, error)
	List(ctx context.Context, campgroundID uuid.UUID, p domain.PaginationParams) (domain.Page[domain.Review], error)
	Update(ctx context.Context, caller domain.Principal, id uuid.UUID, text string, star int) (domain.Review, error)
	Delete(ctx context.Context, caller domain.Principal, id uuid.UUID) error
}

// PromotionServicer defines the promotion management operations.
type PromotionServicer interface {
	Create(ctx context.Context, p domain.Promotion) (domain.Promotion, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Promotion, error)
	List(ctx context.Context, p domain.PaginationParams) (domain.Page[domain.Promotion], error)
	Update(ctx context.Context, p domain.Promotion) (domain.Promotion, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListUsages(ctx context.Context, id uuid.UUID, p domain.PaginationParams) (domain.Page[domain.PromotionUsage], error)
}

// PromotionApplier redeems promo codes.
type PromotionApplier interface {
	Apply(ctx context.Context, code string, cartTotal decimal.Decimal, userID uuid.UUID) (domain.AppliedPromotion, error)
}

// Exporter produces the flat bookings export.
type Exporter interface {
	Export(ctx context.Context) ([]domain.ExportRow, error)
}

// Services bundles the Server's dependencies. A nil service is allowed in
// tests that never reach its routes.
type Services struct {
	Campgrounds CampgroundServicer
	Bookings    BookingServicer
	Reviews     ReviewServicer
	Promotions  PromotionServicer
	Applier     PromotionApplier
	Export      Exporter
}

// Server holds the dependencies shared by every handler.
type Server struct {
	campgrounds CampgroundServicer
	bookings    BookingServicer
	reviews     ReviewServicer
	promotions  PromotionServicer
	applier     PromotionApplier
	export      Exporter

	validate *validator.Validate
	logger   *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(svc Services, logger *slog.Logger) *Server {
	return &Server{
		campgrounds: svc.Campgrounds,
		bookings:    svc.Bookings,
		reviews:     svc.Reviews,
		promotions:  svc.Promotions,
		applier:     svc.Applier,
		export:      svc.Export,
		validate:    newValidator(),
		logger:      logger,
	}
}
