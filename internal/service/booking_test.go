package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/campground-booking/internal/domain"
	"github.com/pkordes/campground-booking/internal/service"
)

func newBookingService(bookings *mockBookingRepo) *service.BookingService {
	return service.NewBookingService(bookings, service.NewPricingEngine(campgroundsByID(lakeside, ridge)))
}

// storedBooking is a priced booking owned by owner.
func storedBooking(t *testing.T, owner domain.Principal) domain.Booking {
	t.Helper()
	b := existingBooking(t)
	b.UserID = owner.UserID
	return b
}

func echoBookings(stored domain.Booking) *mockBookingRepo {
	return &mockBookingRepo{
		create:  func(_ context.Context, b domain.Booking) (domain.Booking, error) { return b, nil },
		update:  func(_ context.Context, b domain.Booking) (domain.Booking, error) { return b, nil },
		delete:  func(_ context.Context, _ uuid.UUID) error { return nil },
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Booking, error) { return stored, nil },
	}
}

func TestBookingService_Create(t *testing.T) {
	svc := newBookingService(echoBookings(domain.Booking{}))
	draft := draftBooking(3, true)
	draft.UserID = bob.UserID // ignored: the caller always owns the booking

	got, err := svc.Create(context.Background(), alice, draft)

	require.NoError(t, err)
	assert.Equal(t, alice.UserID, got.UserID)
	assert.Equal(t, domain.BookingPending, got.Status)
	assert.Equal(t, "3 days", got.Duration)
	assert.True(t, got.TotalPrice.Equal(dec("360")))
}

func TestBookingService_Create_UnknownStatus(t *testing.T) {
	svc := newBookingService(&mockBookingRepo{})
	draft := draftBooking(1, false)
	draft.Status = "archived"

	_, err := svc.Create(context.Background(), alice, draft)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestBookingService_Create_CampgroundNotFound(t *testing.T) {
	svc := newBookingService(&mockBookingRepo{})
	draft := draftBooking(1, false)
	draft.CampgroundID = uuid.New()

	_, err := svc.Create(context.Background(), alice, draft)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBookingService_GetByID_Access(t *testing.T) {
	stored := storedBooking(t, alice)
	svc := newBookingService(echoBookings(stored))

	tests := []struct {
		name    string
		caller  domain.Principal
		wantErr error
	}{
		{"owner", alice, nil},
		{"admin", admin, nil},
		{"someone else", bob, domain.ErrForbidden},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := svc.GetByID(context.Background(), tc.caller, stored.ID)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, stored.ID, got.ID)
		})
	}
}

func TestBookingService_List_ScopesToCaller(t *testing.T) {
	var gotFilter domain.BookingFilter
	repo := &mockBookingRepo{
		listPaged: func(_ context.Context, f domain.BookingFilter, _ domain.PaginationParams) ([]domain.Booking, int64, error) {
			gotFilter = f
			return []domain.Booking{}, 0, nil
		},
	}
	svc := newBookingService(repo)
	p := domain.NewPaginationParams(nil, nil)

	_, err := svc.List(context.Background(), alice, lakeside.ID, p)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingFilter{UserID: alice.UserID, CampgroundID: lakeside.ID}, gotFilter)

	_, err = svc.List(context.Background(), admin, uuid.Nil, p)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingFilter{}, gotFilter, "admin lists every booking")
}

func TestBookingService_Update_Reprices(t *testing.T) {
	stored := storedBooking(t, alice)
	svc := newBookingService(echoBookings(stored))
	id := ridge.ID

	got, err := svc.Update(context.Background(), alice, stored.ID, domain.BookingPatch{CampgroundID: &id})

	require.NoError(t, err)
	assert.True(t, got.TotalPrice.Equal(dec("285")))
	assert.Equal(t, alice.UserID, got.UserID)
}

func TestBookingService_Update_Forbidden(t *testing.T) {
	stored := storedBooking(t, alice)
	repo := echoBookings(stored)
	repo.update = func(context.Context, domain.Booking) (domain.Booking, error) {
		t.Fatal("update must not be called for a forbidden caller")
		return domain.Booking{}, nil
	}
	svc := newBookingService(repo)
	yes := true

	_, err := svc.Update(context.Background(), bob, stored.ID, domain.BookingPatch{Breakfast: &yes})

	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestBookingService_Update_AnyStatusTransition(t *testing.T) {
	stored := storedBooking(t, alice)
	stored.Status = domain.BookingCheckedOut
	svc := newBookingService(echoBookings(stored))
	back := domain.BookingPending

	got, err := svc.Update(context.Background(), admin, stored.ID, domain.BookingPatch{Status: &back})

	require.NoError(t, err)
	assert.Equal(t, domain.BookingPending, got.Status)
}

func TestBookingService_Update_UnknownStatus(t *testing.T) {
	svc := newBookingService(&mockBookingRepo{})
	bad := domain.BookingStatus("lost")

	_, err := svc.Update(context.Background(), alice, uuid.New(), domain.BookingPatch{Status: &bad})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestBookingService_Update_NotFound(t *testing.T) {
	svc := newBookingService(&mockBookingRepo{
		getByID: func(context.Context, uuid.UUID) (domain.Booking, error) { return domain.Booking{}, domain.ErrNotFound },
	})

	_, err := svc.Update(context.Background(), alice, uuid.New(), domain.BookingPatch{})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBookingService_Delete(t *testing.T) {
	stored := storedBooking(t, alice)
	var deleted uuid.UUID
	repo := echoBookings(stored)
	repo.delete = func(_ context.Context, id uuid.UUID) error {
		deleted = id
		return nil
	}
	svc := newBookingService(repo)

	assert.ErrorIs(t, svc.Delete(context.Background(), bob, stored.ID), domain.ErrForbidden)
	assert.Equal(t, uuid.Nil, deleted)

	require.NoError(t, svc.Delete(context.Background(), alice, stored.ID))
	assert.Equal(t, stored.ID, deleted)
}
