package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/campground-booking/internal/domain"
	"github.com/pkordes/campground-booking/internal/handler"
	"github.com/pkordes/campground-booking/internal/middleware"
)

// ---- mocks -----------------------------------------------------------------
// Set only the method fields your test needs; an unset field panics, which
// flags a route that reached a service it should not have.

type mockCampgrounds struct {
	create  func(ctx context.Context, c domain.Campground) (domain.Campground, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.Campground, error)
	list    func(ctx context.Context, p domain.PaginationParams) (domain.Page[domain.Campground], error)
	update  func(ctx context.Context, c domain.Campground) (domain.Campground, error)
	delete  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockCampgrounds) Create(ctx context.Context, c domain.Campground) (domain.Campground, error) {
	return m.create(ctx, c)
}
func (m *mockCampgrounds) GetByID(ctx context.Context, id uuid.UUID) (domain.Campground, error) {
	return m.getByID(ctx, id)
}
func (m *mockCampgrounds) List(ctx context.Context, p domain.PaginationParams) (domain.Page[domain.Campground], error) {
	return m.list(ctx, p)
}
func (m *mockCampgrounds) Update(ctx context.Context, c domain.Campground) (domain.Campground, error) {
	return m.update(ctx, c)
}
func (m *mockCampgrounds) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

type mockBookings struct {
	create  func(ctx context.Context, caller domain.Principal, draft domain.Booking) (domain.Booking, error)
	getByID func(ctx context.Context, caller domain.Principal, id uuid.UUID) (domain.Booking, error)
	list    func(ctx context.Context, caller domain.Principal, campgroundID uuid.UUID, p domain.PaginationParams) (domain.Page[domain.Booking], error)
	update  func(ctx context.Context, caller domain.Principal, id uuid.UUID, patch domain.BookingPatch) (domain.Booking, error)
	delete  func(ctx context.Context, caller domain.Principal, id uuid.UUID) error
}

func (m *mockBookings) Create(ctx context.Context, caller domain.Principal, draft domain.Booking) (domain.Booking, error) {
	return m.create(ctx, caller, draft)
}
func (m *mockBookings) GetByID(ctx context.Context, caller domain.Principal, id uuid.UUID) (domain.Booking, error) {
	return m.getByID(ctx, caller, id)
}
func (m *mockBookings) List(ctx context.Context, caller domain.Principal, campgroundID uuid.UUID, p domain.PaginationParams) (domain.Page[domain.Booking], error) {
	return m.list(ctx, caller, campgroundID, p)
}
func (m *mockBookings) Update(ctx context.Context, caller domain.Principal, id uuid.UUID, patch domain.BookingPatch) (domain.Booking, error) {
	return m.update(ctx, caller, id, patch)
}
func (m *mockBookings) Delete(ctx context.Context, caller domain.Principal, id uuid.UUID) error {
	return m.delete(ctx, caller, id)
}

type mockReviews struct {
	create  func(ctx context.Context, caller domain.Principal, rv domain.Review) (domain.Review, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.Review, error)
	list    func(ctx context.Context, campgroundID uuid.UUID, p domain.PaginationParams) (domain.Page[domain.Review], error)
	update  func(ctx context.Context, caller domain.Principal, id uuid.UUID, text string, star int) (domain.Review, error)
	delete  func(ctx context.Context, caller domain.Principal, id uuid.UUID) error
}

func (m *mockReviews) Create(ctx context.Context, caller domain.Principal, rv domain.Review) (domain.Review, error) {
	return m.create(ctx, caller, rv)
}
func (m *mockReviews) GetByID(ctx context.Context, id uuid.UUID) (domain.Review, error) {
	return m.getByID(ctx, id)
}
func (m *mockReviews) List(ctx context.Context, campgroundID uuid.UUID, p domain.PaginationParams) (domain.Page[domain.Review], error) {
	return m.list(ctx, campgroundID, p)
}
func (m *mockReviews) Update(ctx context.Context, caller domain.Principal, id uuid.UUID, text string, star int) (domain.Review, error) {
	return m.update(ctx, caller, id, text, star)
}
func (m *mockReviews) Delete(ctx context.Context, caller domain.Principal, id uuid.UUID) error {
	return m.delete(ctx, caller, id)
}

type mockPromotions struct {
	create     func(ctx context.Context, p domain.Promotion) (domain.Promotion, error)
	getByID    func(ctx context.Context, id uuid.UUID) (domain.Promotion, error)
	list       func(ctx context.Context, p domain.PaginationParams) (domain.Page[domain.Promotion], error)
	update     func(ctx context.Context, p domain.Promotion) (domain.Promotion, error)
	delete     func(ctx context.Context, id uuid.UUID) error
	listUsages func(ctx context.Context, id uuid.UUID, p domain.PaginationParams) (domain.Page[domain.PromotionUsage], error)
}

func (m *mockPromotions) Create(ctx context.Context, p domain.Promotion) (domain.Promotion, error) {
	return m.create(ctx, p)
}
func (m *mockPromotions) GetByID(ctx context.Context, id uuid.UUID) (domain.Promotion, error) {
	return m.getByID(ctx, id)
}
func (m *mockPromotions) List(ctx context.Context, p domain.PaginationParams) (domain.Page[domain.Promotion], error) {
	return m.list(ctx, p)
}
func (m *mockPromotions) Update(ctx context.Context, p domain.Promotion) (domain.Promotion, error) {
	return m.update(ctx, p)
}
func (m *mockPromotions) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}
func (m *mockPromotions) ListUsages(ctx context.Context, id uuid.UUID, p domain.PaginationParams) (domain.Page[domain.PromotionUsage], error) {
	return m.listUsages(ctx, id, p)
}

type mockApplier struct {
	apply func(ctx context.Context, code string, cartTotal decimal.Decimal, userID uuid.UUID) (domain.AppliedPromotion, error)
}

func (m *mockApplier) Apply(ctx context.Context, code string, cartTotal decimal.Decimal, userID uuid.UUID) (domain.AppliedPromotion, error) {
	return m.apply(ctx, code, cartTotal, userID)
}

// compile-time checks: every mock must satisfy its handler interface.
var (
	_ handler.CampgroundServicer = (*mockCampgrounds)(nil)
	_ handler.BookingServicer    = (*mockBookings)(nil)
	_ handler.ReviewServicer     = (*mockReviews)(nil)
	_ handler.PromotionServicer  = (*mockPromotions)(nil)
	_ handler.PromotionApplier   = (*mockApplier)(nil)
)

// ---- callers ---------------------------------------------------------------

var (
	alice = domain.Principal{UserID: uuid.MustParse("00000000-0000-0000-0000-00000000a11c"), Role: domain.RoleUser}
	admin = domain.Principal{UserID: uuid.MustParse("00000000-0000-0000-0000-0000000000ad"), Role: domain.RoleAdmin}
)

// ---- helpers ---------------------------------------------------------------

// newRouter wires a Server the way main.go does, with token verification
// replaced by a fixed caller. A nil caller makes every protected route 401.
func newRouter(svc handler.Services, as *domain.Principal) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	authenticate := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if as == nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"success":false,"message":"Not authorized to access this route"}`))
				return
			}
			next.ServeHTTP(w, r.WithContext(middleware.WithPrincipal(r.Context(), *as)))
		})
	}
	return handler.NewServer(svc, logger).Routes(authenticate)
}

// response is the decoded envelope; Data is left raw for per-test decoding.
type response struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Count      *int            `json:"count"`
	Pagination *struct {
		Page  int   `json:"page"`
		Limit int   `json:"limit"`
		Total int64 `json:"total"`
		Next  *struct {
			Page int `json:"page"`
		} `json:"next"`
		Prev *struct {
			Page int `json:"page"`
		} `json:"prev"`
	} `json:"pagination"`
	Data json.RawMessage `json:"data"`
}

// do sends method path with body (nil for none) and decodes the envelope.
func do(t *testing.T, h http.Handler, method, path string, body any) (*httptest.ResponseRecorder, response) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		if s, ok := body.(string); ok {
			rd = bytes.NewBufferString(s)
		} else {
			b, err := json.Marshal(body)
			require.NoError(t, err)
			rd = bytes.NewBuffer(b)
		}
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	var resp response
	if rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	}
	return rec, resp
}

// data decodes the envelope's data member into a generic map or slice.
func data[T any](t *testing.T, resp response) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(resp.Data, &out))
	return out
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
