package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/pkordes/campground-booking/internal/domain"
)

// PromotionRepo defines the persistence operations for Promotions and their
// usage history.
type PromotionRepo interface {
	// Create inserts a new promotion with a zero usage count.
	// Returns domain.ErrConflict if the code is already taken.
	Create(ctx context.Context, p domain.Promotion) (domain.Promotion, error)

	// GetByID retrieves a promotion by primary key.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Promotion, error)

	// GetByCode retrieves a promotion by its redeemable code.
	// Returns domain.ErrNotFound if no promotion has that code.
	GetByCode(ctx context.Context, code string) (domain.Promotion, error)

	// ListPaged returns one page of promotions ordered by expiry, plus the total count.
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Promotion, int64, error)

	// Update overwrites the editable fields of a promotion. UsedCount is never
	// written here; it only changes through ConsumeUse.
	Update(ctx context.Context, p domain.Promotion) (domain.Promotion, error)

	// Delete removes a promotion and its usage history.
	Delete(ctx context.Context, id uuid.UUID) error

	// ConsumeUse increments used_count by exactly one, but only while the
	// promotion is under its max_uses cap, and records the usage in the same
	// transaction. Returns domain.ErrPromotionLimitReached when the cap was
	// already hit, including when a concurrent apply took the last use.
	ConsumeUse(ctx context.Context, id, userID uuid.UUID, cartTotal decimal.Decimal) (domain.Promotion, error)

	// ListUsages returns one page of a promotion's usage history, newest first.
	ListUsages(ctx context.Context, promotionID uuid.UUID, p domain.PaginationParams) ([]domain.PromotionUsage, int64, error)
}

type pgPromotionRepo struct {
	db db
}

// NewPromotionRepo constructs a PromotionRepo backed by the provided db connection.
func NewPromotionRepo(db db) PromotionRepo {
	return &pgPromotionRepo{db: db}
}

const promotionColumns = `id, code, discount_percentage, expired_date, min_spend, max_uses,
	used_count, created_at, updated_at`

func promotionArgs(p domain.Promotion) pgx.NamedArgs {
	return pgx.NamedArgs{
		"id":                  p.ID,
		"code":                p.Code,
		"discount_percentage": p.DiscountPercentage,
		"expired_date":        p.ExpiredDate,
		"min_spend":           nullNumeric(p.MinSpend),
		"max_uses":            p.MaxUses, // nil becomes NULL
	}
}

func (r *pgPromotionRepo) Create(ctx context.Context, p domain.Promotion) (domain.Promotion, error) {
	q := `
		INSERT INTO promotions (code, discount_percentage, expired_date, min_spend, max_uses)
		VALUES (@code, @discount_percentage, @expired_date, @min_spend, @max_uses)
		RETURNING ` + promotionColumns

	result, err := scanPromotion(r.db.QueryRow(ctx, q, promotionArgs(p)))
	if err != nil {
		return domain.Promotion{}, fmt.Errorf("repo.PromotionRepo.Create: %w", mapError(err))
	}
	return result, nil
}

func (r *pgPromotionRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Promotion, error) {
	q := `SELECT ` + promotionColumns + ` FROM promotions WHERE id = @id`

	result, err := scanPromotion(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Promotion{}, fmt.Errorf("repo.PromotionRepo.GetByID: %w", mapError(err))
	}
	return result, nil
}

func (r *pgPromotionRepo) GetByCode(ctx context.Context, code string) (domain.Promotion, error) {
	q := `SELECT ` + promotionColumns + ` FROM promotions WHERE code = @code`

	result, err := scanPromotion(r.db.QueryRow(ctx, q, pgx.NamedArgs{"code": code}))
	if err != nil {
		return domain.Promotion{}, fmt.Errorf("repo.PromotionRepo.GetByCode: %w", mapError(err))
	}
	return result, nil
}

func (r *pgPromotionRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Promotion, int64, error) {
	total, err := count(ctx, r.db, `SELECT count(*) FROM promotions`, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.PromotionRepo.ListPaged: count: %w", err)
	}

	q := `SELECT ` + promotionColumns + `
		FROM promotions
		ORDER BY expired_date DESC, code
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.PromotionRepo.ListPaged: %w", err)
	}
	out, err := collect(rows, scanPromotion)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.PromotionRepo.ListPaged: %w", err)
	}
	return out, total, nil
}

func (r *pgPromotionRepo) Update(ctx context.Context, p domain.Promotion) (domain.Promotion, error) {
	q := `
		UPDATE promotions
		SET code                = @code,
		    discount_percentage = @discount_percentage,
		    expired_date        = @expired_date,
		    min_spend           = @min_spend,
		    max_uses            = @max_uses,
		    updated_at          = now()
		WHERE id = @id
		RETURNING ` + promotionColumns

	result, err := scanPromotion(r.db.QueryRow(ctx, q, promotionArgs(p)))
	if err != nil {
		return domain.Promotion{}, fmt.Errorf("repo.PromotionRepo.Update: %w", mapError(err))
	}
	return result, nil
}

func (r *pgPromotionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM promotions WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.PromotionRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.PromotionRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// ConsumeUse folds the cap check into the UPDATE's WHERE clause, so two
// concurrent applies at the last remaining use cannot both succeed: the row
// lock serialises them and the loser sees zero rows.
func (r *pgPromotionRepo) ConsumeUse(ctx context.Context, id, userID uuid.UUID, cartTotal decimal.Decimal) (domain.Promotion, error) {
	const incr = `
		UPDATE promotions
		SET used_count = used_count + 1,
		    updated_at = now()
		WHERE id = @id
		  AND (max_uses IS NULL OR used_count < max_uses)
		RETURNING ` + promotionColumns

	const record = `
		INSERT INTO promotion_usages (promotion_id, user_id, cart_total)
		VALUES (@promotion_id, @user_id, @cart_total)`

	var result domain.Promotion
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		p, err := scanPromotion(tx.QueryRow(ctx, incr, pgx.NamedArgs{"id": id}))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrPromotionLimitReached
			}
			return err
		}
		_, err = tx.Exec(ctx, record, pgx.NamedArgs{
			"promotion_id": id,
			"user_id":      userID,
			"cart_total":   numeric(cartTotal),
		})
		if err != nil {
			return err
		}
		result = p
		return nil
	})
	if err != nil {
		return domain.Promotion{}, fmt.Errorf("repo.PromotionRepo.ConsumeUse: %w", mapError(err))
	}
	return result, nil
}

func (r *pgPromotionRepo) ListUsages(ctx context.Context, promotionID uuid.UUID, p domain.PaginationParams) ([]domain.PromotionUsage, int64, error) {
	args := pgx.NamedArgs{
		"promotion_id": promotionID,
		"limit":        p.Limit,
		"offset":       p.Offset(),
	}

	total, err := count(ctx, r.db, `SELECT count(*) FROM promotion_usages WHERE promotion_id = @promotion_id`, args)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.PromotionRepo.ListUsages: count: %w", err)
	}

	const q = `
		SELECT id, promotion_id, user_id, cart_total, used_at
		FROM promotion_usages
		WHERE promotion_id = @promotion_id
		ORDER BY used_at DESC, id
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.PromotionRepo.ListUsages: %w", err)
	}
	out, err := collect(rows, scanPromotionUsage)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.PromotionRepo.ListUsages: %w", err)
	}
	return out, total, nil
}

// scanPromotion maps a single database row into a domain.Promotion.
// min_spend and max_uses are nullable.
func scanPromotion(s scanner) (domain.Promotion, error) {
	var (
		p        domain.Promotion
		id       pgtype.UUID
		discount int16
		minSpend pgtype.Numeric
		maxUses  pgtype.Int4
		used     int32
	)
	err := s.Scan(&id, &p.Code, &discount, &p.ExpiredDate, &minSpend, &maxUses,
		&used, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return domain.Promotion{}, err
	}
	p.ID = uuid.UUID(id.Bytes)
	p.DiscountPercentage = int(discount)
	p.MinSpend = toNullDecimal(minSpend)
	if maxUses.Valid {
		n := int(maxUses.Int32)
		p.MaxUses = &n
	}
	p.UsedCount = int(used)
	return p, nil
}

func scanPromotionUsage(s scanner) (domain.PromotionUsage, error) {
	var (
		u           domain.PromotionUsage
		id          pgtype.UUID
		promotionID pgtype.UUID
		userID      pgtype.UUID
		cartTotal   pgtype.Numeric
	)
	if err := s.Scan(&id, &promotionID, &userID, &cartTotal, &u.UsedAt); err != nil {
		return domain.PromotionUsage{}, err
	}
	u.ID = uuid.UUID(id.Bytes)
	u.PromotionID = uuid.UUID(promotionID.Bytes)
	u.UserID = uuid.UUID(userID.Bytes)
	u.CartTotal = toDecimal(cartTotal)
	return u, nil
}
