package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/campground-booking/internal/domain"
)

// CampgroundRepo defines the persistence operations for Campgrounds.
// The service layer depends on this interface, not the Postgres implementation,
// which allows services to be unit-tested with a mock.
type CampgroundRepo interface {
	// Create inserts a new campground and returns the persisted record.
	// Returns domain.ErrConflict if the name is already taken.
	Create(ctx context.Context, c domain.Campground) (domain.Campground, error)

	// GetByID retrieves a campground by primary key.
	// Returns domain.ErrNotFound if no campground with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Campground, error)

	// ListPaged returns one page of campgrounds ordered by name, plus the total count.
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Campground, int64, error)

	// Update overwrites the mutable fields of a campground.
	// Returns domain.ErrNotFound or domain.ErrConflict.
	Update(ctx context.Context, c domain.Campground) (domain.Campground, error)

	// Delete removes a campground and, through ON DELETE CASCADE, its bookings
	// and reviews. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

type pgCampgroundRepo struct {
	db db
}

// NewCampgroundRepo constructs a CampgroundRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewCampgroundRepo(db db) CampgroundRepo {
	return &pgCampgroundRepo{db: db}
}

const campgroundColumns = `id, name, address, district, province, postalcode, tel,
	price_per_night, breakfast, breakfast_price, created_at, updated_at`

func campgroundArgs(c domain.Campground) pgx.NamedArgs {
	return pgx.NamedArgs{
		"id":              c.ID,
		"name":            c.Name,
		"address":         c.Address,
		"district":        c.District,
		"province":        c.Province,
		"postalcode":      c.PostalCode,
		"tel":             c.Tel,
		"price_per_night": numeric(c.PricePerNight),
		"breakfast":       c.Breakfast,
		"breakfast_price": numeric(c.BreakfastPrice),
	}
}

func (r *pgCampgroundRepo) Create(ctx context.Context, c domain.Campground) (domain.Campground, error) {
	q := `
		INSERT INTO campgrounds (name, address, district, province, postalcode, tel,
		                         price_per_night, breakfast, breakfast_price)
		VALUES (@name, @address, @district, @province, @postalcode, @tel,
		        @price_per_night, @breakfast, @breakfast_price)
		RETURNING ` + campgroundColumns

	result, err := scanCampground(r.db.QueryRow(ctx, q, campgroundArgs(c)))
	if err != nil {
		return domain.Campground{}, fmt.Errorf("repo.CampgroundRepo.Create: %w", mapError(err))
	}
	return result, nil
}

func (r *pgCampgroundRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Campground, error) {
	q := `SELECT ` + campgroundColumns + ` FROM campgrounds WHERE id = @id`

	result, err := scanCampground(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Campground{}, fmt.Errorf("repo.CampgroundRepo.GetByID: %w", mapError(err))
	}
	return result, nil
}

func (r *pgCampgroundRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Campground, int64, error) {
	total, err := count(ctx, r.db, `SELECT count(*) FROM campgrounds`, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.CampgroundRepo.ListPaged: count: %w", err)
	}

	q := `SELECT ` + campgroundColumns + `
		FROM campgrounds
		ORDER BY name
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.CampgroundRepo.ListPaged: %w", err)
	}
	out, err := collect(rows, scanCampground)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.CampgroundRepo.ListPaged: %w", err)
	}
	return out, total, nil
}

func (r *pgCampgroundRepo) Update(ctx context.Context, c domain.Campground) (domain.Campground, error) {
	q := `
		UPDATE campgrounds
		SET name            = @name,
		    address         = @address,
		    district        = @district,
		    province        = @province,
		    postalcode      = @postalcode,
		    tel             = @tel,
		    price_per_night = @price_per_night,
		    breakfast       = @breakfast,
		    breakfast_price = @breakfast_price,
		    updated_at      = now()
		WHERE id = @id
		RETURNING ` + campgroundColumns

	result, err := scanCampground(r.db.QueryRow(ctx, q, campgroundArgs(c)))
	if err != nil {
		return domain.Campground{}, fmt.Errorf("repo.CampgroundRepo.Update: %w", mapError(err))
	}
	return result, nil
}

func (r *pgCampgroundRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM campgrounds WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.CampgroundRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.CampgroundRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanCampground maps a single database row into a domain.Campground.
func scanCampground(s scanner) (domain.Campground, error) {
	var (
		c              domain.Campground
		id             pgtype.UUID
		pricePerNight  pgtype.Numeric
		breakfastPrice pgtype.Numeric
	)
	err := s.Scan(&id, &c.Name, &c.Address, &c.District, &c.Province, &c.PostalCode, &c.Tel,
		&pricePerNight, &c.Breakfast, &breakfastPrice, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return domain.Campground{}, err
	}
	c.ID = uuid.UUID(id.Bytes)
	c.PricePerNight = toDecimal(pricePerNight)
	c.BreakfastPrice = toDecimal(breakfastPrice)
	return c, nil
}
