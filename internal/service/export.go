package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/campground-booking/internal/domain"
	"github.com/pkordes/campground-booking/internal/repo"
)

// exportPageSize is how many bookings each repo round trip fetches.
const exportPageSize = 100

// ExportService assembles a full flat export of every booking.
type ExportService struct {
	bookings    repo.BookingRepo
	campgrounds repo.CampgroundRepo
}

// NewExportService constructs an ExportService backed by the provided repos.
func NewExportService(bookings repo.BookingRepo, campgrounds repo.CampgroundRepo) *ExportService {
	return &ExportService{bookings: bookings, campgrounds: campgrounds}
}

// Export returns one ExportRow per booking across all campgrounds, in the
// repo's listing order. Each campground is looked up once.
func (s *ExportService) Export(ctx context.Context) ([]domain.ExportRow, error) {
	names := map[uuid.UUID]string{}
	rows := []domain.ExportRow{}

	for page := 1; ; page++ {
		batch, total, err := s.bookings.ListPaged(ctx, domain.BookingFilter{},
			domain.PaginationParams{Page: page, Limit: exportPageSize})
		if err != nil {
			return nil, fmt.Errorf("service.ExportService.Export: %w", err)
		}
		for _, b := range batch {
			name, ok := names[b.CampgroundID]
			if !ok {
				name, err = s.campgroundName(ctx, b.CampgroundID)
				if err != nil {
					return nil, fmt.Errorf("service.ExportService.Export: %w", err)
				}
				names[b.CampgroundID] = name
			}
			rows = append(rows, exportRow(b, name))
		}
		if len(batch) < exportPageSize || int64(page*exportPageSize) >= total {
			return rows, nil
		}
	}
}

func (s *ExportService) campgroundName(ctx context.Context, id uuid.UUID) (string, error) {
	c, err := s.campgrounds.GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return c.Name, nil
}

func exportRow(b domain.Booking, campgroundName string) domain.ExportRow {
	return domain.ExportRow{
		BookingID:      b.ID,
		UserID:         b.UserID,
		CampgroundID:   b.CampgroundID,
		CampgroundName: campgroundName,
		CheckIn:        b.CheckIn,
		CheckOut:       b.CheckOut,
		Duration:       b.Duration,
		Breakfast:      b.Breakfast,
		PricePerNight:  b.PricePerNight,
		BreakfastPrice: b.BreakfastPrice,
		TotalPrice:     b.TotalPrice,
		Status:         b.Status,
	}
}
