package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/campground-booking/internal/domain"
)

// BookingRepo defines the persistence operations for Bookings.
// Derived fields (duration, price snapshot, total) are stored as given; the
// service computes them before calling Create or Update.
type BookingRepo interface {
	// Create inserts a new booking and returns the persisted record.
	// Returns domain.ErrNotFound if the referenced campground does not exist.
	Create(ctx context.Context, b domain.Booking) (domain.Booking, error)

	// GetByID retrieves a booking by primary key.
	// Returns domain.ErrNotFound if no booking with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Booking, error)

	// ListPaged returns one page of bookings matching f, newest check-in first,
	// plus the total count of matching bookings.
	ListPaged(ctx context.Context, f domain.BookingFilter, p domain.PaginationParams) ([]domain.Booking, int64, error)

	// Update overwrites the mutable fields of a booking.
	// Returns domain.ErrNotFound if the booking or its campground does not exist.
	Update(ctx context.Context, b domain.Booking) (domain.Booking, error)

	// Delete removes a booking by ID. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

type pgBookingRepo struct {
	db db
}

// NewBookingRepo constructs a BookingRepo backed by the provided db connection.
func NewBookingRepo(db db) BookingRepo {
	return &pgBookingRepo{db: db}
}

const bookingColumns = `id, user_id, campground_id, check_in, check_out, duration, breakfast,
	price_per_night, breakfast_price, total_price, status, created_at, updated_at`

func bookingArgs(b domain.Booking) pgx.NamedArgs {
	return pgx.NamedArgs{
		"id":              b.ID,
		"user_id":         b.UserID,
		"campground_id":   b.CampgroundID,
		"check_in":        b.CheckIn,
		"check_out":       b.CheckOut,
		"duration":        b.Duration,
		"breakfast":       b.Breakfast,
		"price_per_night": numeric(b.PricePerNight),
		"breakfast_price": numeric(b.BreakfastPrice),
		"total_price":     numeric(b.TotalPrice),
		"status":          string(b.Status),
	}
}

func (r *pgBookingRepo) Create(ctx context.Context, b domain.Booking) (domain.Booking, error) {
	q := `
		INSERT INTO bookings (user_id, campground_id, check_in, check_out, duration, breakfast,
		                      price_per_night, breakfast_price, total_price, status)
		VALUES (@user_id, @campground_id, @check_in, @check_out, @duration, @breakfast,
		        @price_per_night, @breakfast_price, @total_price, @status)
		RETURNING ` + bookingColumns

	result, err := scanBooking(r.db.QueryRow(ctx, q, bookingArgs(b)))
	if err != nil {
		return domain.Booking{}, fmt.Errorf("repo.BookingRepo.Create: %w", mapError(err))
	}
	return result, nil
}

func (r *pgBookingRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Booking, error) {
	q := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = @id`

	result, err := scanBooking(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Booking{}, fmt.Errorf("repo.BookingRepo.GetByID: %w", mapError(err))
	}
	return result, nil
}

func (r *pgBookingRepo) ListPaged(ctx context.Context, f domain.BookingFilter, p domain.PaginationParams) ([]domain.Booking, int64, error) {
	const where = `
		WHERE (@user_id::uuid IS NULL OR user_id = @user_id)
		  AND (@campground_id::uuid IS NULL OR campground_id = @campground_id)`

	args := pgx.NamedArgs{
		"user_id":       nullUUID(f.UserID),
		"campground_id": nullUUID(f.CampgroundID),
		"limit":         p.Limit,
		"offset":        p.Offset(),
	}

	total, err := count(ctx, r.db, `SELECT count(*) FROM bookings`+where, args)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.BookingRepo.ListPaged: count: %w", err)
	}

	q := `SELECT ` + bookingColumns + ` FROM bookings` + where + `
		ORDER BY check_in DESC, id
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.BookingRepo.ListPaged: %w", err)
	}
	out, err := collect(rows, scanBooking)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.BookingRepo.ListPaged: %w", err)
	}
	return out, total, nil
}

func (r *pgBookingRepo) Update(ctx context.Context, b domain.Booking) (domain.Booking, error) {
	q := `
		UPDATE bookings
		SET campground_id   = @campground_id,
		    check_in        = @check_in,
		    check_out       = @check_out,
		    duration        = @duration,
		    breakfast       = @breakfast,
		    price_per_night = @price_per_night,
		    breakfast_price = @breakfast_price,
		    total_price     = @total_price,
		    status          = @status,
		    updated_at      = now()
		WHERE id = @id
		RETURNING ` + bookingColumns

	result, err := scanBooking(r.db.QueryRow(ctx, q, bookingArgs(b)))
	if err != nil {
		return domain.Booking{}, fmt.Errorf("repo.BookingRepo.Update: %w", mapError(err))
	}
	return result, nil
}

func (r *pgBookingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.BookingRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.BookingRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanBooking maps a single database row into a domain.Booking.
func scanBooking(s scanner) (domain.Booking, error) {
	var (
		b              domain.Booking
		id             pgtype.UUID
		userID         pgtype.UUID
		campgroundID   pgtype.UUID
		pricePerNight  pgtype.Numeric
		breakfastPrice pgtype.Numeric
		totalPrice     pgtype.Numeric
		status         string
	)
	err := s.Scan(&id, &userID, &campgroundID, &b.CheckIn, &b.CheckOut, &b.Duration, &b.Breakfast,
		&pricePerNight, &breakfastPrice, &totalPrice, &status, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return domain.Booking{}, err
	}
	b.ID = uuid.UUID(id.Bytes)
	b.UserID = uuid.UUID(userID.Bytes)
	b.CampgroundID = uuid.UUID(campgroundID.Bytes)
	b.PricePerNight = toDecimal(pricePerNight)
	b.BreakfastPrice = toDecimal(breakfastPrice)
	b.TotalPrice = toDecimal(totalPrice)
	b.Status = domain.BookingStatus(status)
	return b, nil
}
