package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/campground-booking/internal/domain"
)

// ReviewRepo defines the persistence operations for Reviews.
type ReviewRepo interface {
	// Create inserts a new review. Returns domain.ErrNotFound if the
	// campground does not exist.
	Create(ctx context.Context, rv domain.Review) (domain.Review, error)

	// GetByID retrieves a review by primary key.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Review, error)

	// ListPaged returns one page of reviews, newest first. A non-zero
	// campgroundID restricts the result to that campground.
	ListPaged(ctx context.Context, campgroundID uuid.UUID, p domain.PaginationParams) ([]domain.Review, int64, error)

	// Update overwrites the text and star rating of a review.
	Update(ctx context.Context, rv domain.Review) (domain.Review, error)

	// Delete removes a review by ID.
	Delete(ctx context.Context, id uuid.UUID) error
}

type pgReviewRepo struct {
	db db
}

// NewReviewRepo constructs a ReviewRepo backed by the provided db connection.
func NewReviewRepo(db db) ReviewRepo {
	return &pgReviewRepo{db: db}
}

const reviewColumns = `id, user_id, campground_id, text, star, created_at`

func (r *pgReviewRepo) Create(ctx context.Context, rv domain.Review) (domain.Review, error) {
	q := `
		INSERT INTO reviews (user_id, campground_id, text, star)
		VALUES (@user_id, @campground_id, @text, @star)
		RETURNING ` + reviewColumns

	args := pgx.NamedArgs{
		"user_id":       rv.UserID,
		"campground_id": rv.CampgroundID,
		"text":          rv.Text,
		"star":          rv.Star,
	}
	result, err := scanReview(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Review{}, fmt.Errorf("repo.ReviewRepo.Create: %w", mapError(err))
	}
	return result, nil
}

func (r *pgReviewRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Review, error) {
	q := `SELECT ` + reviewColumns + ` FROM reviews WHERE id = @id`

	result, err := scanReview(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Review{}, fmt.Errorf("repo.ReviewRepo.GetByID: %w", mapError(err))
	}
	return result, nil
}

func (r *pgReviewRepo) ListPaged(ctx context.Context, campgroundID uuid.UUID, p domain.PaginationParams) ([]domain.Review, int64, error) {
	const where = ` WHERE (@campground_id::uuid IS NULL OR campground_id = @campground_id)`

	args := pgx.NamedArgs{
		"campground_id": nullUUID(campgroundID),
		"limit":         p.Limit,
		"offset":        p.Offset(),
	}

	total, err := count(ctx, r.db, `SELECT count(*) FROM reviews`+where, args)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.ReviewRepo.ListPaged: count: %w", err)
	}

	q := `SELECT ` + reviewColumns + ` FROM reviews` + where + `
		ORDER BY created_at DESC, id
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.ReviewRepo.ListPaged: %w", err)
	}
	out, err := collect(rows, scanReview)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.ReviewRepo.ListPaged: %w", err)
	}
	return out, total, nil
}

func (r *pgReviewRepo) Update(ctx context.Context, rv domain.Review) (domain.Review, error) {
	q := `
		UPDATE reviews
		SET text = @text,
		    star = @star
		WHERE id = @id
		RETURNING ` + reviewColumns

	args := pgx.NamedArgs{"id": rv.ID, "text": rv.Text, "star": rv.Star}
	result, err := scanReview(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Review{}, fmt.Errorf("repo.ReviewRepo.Update: %w", mapError(err))
	}
	return result, nil
}

func (r *pgReviewRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM reviews WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.ReviewRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ReviewRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func scanReview(s scanner) (domain.Review, error) {
	var (
		rv           domain.Review
		id           pgtype.UUID
		userID       pgtype.UUID
		campgroundID pgtype.UUID
		star         int16
	)
	if err := s.Scan(&id, &userID, &campgroundID, &rv.Text, &star, &rv.CreatedAt); err != nil {
		return domain.Review{}, err
	}
	rv.ID = uuid.UUID(id.Bytes)
	rv.UserID = uuid.UUID(userID.Bytes)
	rv.CampgroundID = uuid.UUID(campgroundID.Bytes)
	rv.Star = int(star)
	return rv, nil
}
