package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/campground-booking/internal/domain"
	"github.com/pkordes/campground-booking/internal/service"
)

func validCampground() domain.Campground {
	return domain.Campground{
		Name:           "  Lakeside  ",
		Address:        "1 Shore Rd",
		District:       "Muang",
		Province:       "Krabi",
		PostalCode:     "81000",
		PricePerNight:  dec("100"),
		Breakfast:      true,
		BreakfastPrice: dec("20"),
	}
}

func echoCampgrounds() *mockCampgroundRepo {
	return &mockCampgroundRepo{
		create: func(_ context.Context, c domain.Campground) (domain.Campground, error) { return c, nil },
		update: func(_ context.Context, c domain.Campground) (domain.Campground, error) { return c, nil },
	}
}

func TestCampgroundService_Create_TrimsName(t *testing.T) {
	svc := service.NewCampgroundService(echoCampgrounds())

	got, err := svc.Create(context.Background(), validCampground())

	require.NoError(t, err)
	assert.Equal(t, "Lakeside", got.Name)
}

func TestCampgroundService_Create_Invalid(t *testing.T) {
	svc := service.NewCampgroundService(echoCampgrounds())

	tests := []struct {
		name   string
		mutate func(*domain.Campground)
	}{
		{"blank name", func(c *domain.Campground) { c.Name = "   " }},
		{"long name", func(c *domain.Campground) { c.Name = "Lakeside Lakeside Lakeside Lakeside Lakeside Lakeside" }},
		{"no address", func(c *domain.Campground) { c.Address = "" }},
		{"no district", func(c *domain.Campground) { c.District = "" }},
		{"no province", func(c *domain.Campground) { c.Province = "" }},
		{"no postal code", func(c *domain.Campground) { c.PostalCode = "" }},
		{"long postal code", func(c *domain.Campground) { c.PostalCode = "810000" }},
		{"negative price", func(c *domain.Campground) { c.PricePerNight = dec("-1") }},
		{"negative breakfast price", func(c *domain.Campground) { c.BreakfastPrice = dec("-0.01") }},
		{"price past the column limit", func(c *domain.Campground) { c.PricePerNight = dec("100000000") }},
		{"breakfast price past the column limit", func(c *domain.Campground) { c.BreakfastPrice = dec("100000000") }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := validCampground()
			tc.mutate(&c)

			_, err := svc.Create(context.Background(), c)

			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestCampgroundService_Create_Conflict(t *testing.T) {
	svc := service.NewCampgroundService(&mockCampgroundRepo{
		create: func(context.Context, domain.Campground) (domain.Campground, error) {
			return domain.Campground{}, domain.ErrConflict
		},
	})

	_, err := svc.Create(context.Background(), validCampground())

	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestCampgroundService_List(t *testing.T) {
	svc := service.NewCampgroundService(&mockCampgroundRepo{
		listPaged: func(_ context.Context, p domain.PaginationParams) ([]domain.Campground, int64, error) {
			assert.Equal(t, 2, p.Page)
			return []domain.Campground{lakeside}, 21, nil
		},
	})

	got, err := svc.List(context.Background(), domain.PaginationParams{Page: 2, Limit: 20})

	require.NoError(t, err)
	assert.Equal(t, int64(21), got.Total)
	assert.Len(t, got.Items, 1)
}

func TestCampgroundService_GetByID_RepoError(t *testing.T) {
	boom := errors.New("connection reset")
	svc := service.NewCampgroundService(&mockCampgroundRepo{
		getByID: func(context.Context, uuid.UUID) (domain.Campground, error) { return domain.Campground{}, boom },
	})

	_, err := svc.GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, boom)
}

func TestCampgroundService_Delete_NotFound(t *testing.T) {
	svc := service.NewCampgroundService(&mockCampgroundRepo{
		delete: func(context.Context, uuid.UUID) error { return domain.ErrNotFound },
	})

	assert.ErrorIs(t, svc.Delete(context.Background(), uuid.New()), domain.ErrNotFound)
}
