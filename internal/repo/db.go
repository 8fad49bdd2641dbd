// Package repo contains all database access logic for the campground booking API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here, only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/pkordes/campground-booking/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting it instead of *pgxpool.Pool lets integration tests pass a
// transaction that is rolled back after each test. Begin on a pgx.Tx opens a
// savepoint, so repos that need their own transaction still work inside one.
type db interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scanX
// helpers to be reused for QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// Postgres error codes the repos translate into domain errors.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgNumericOutOfRange   = "22003"
)

// checkMessages explains the named CHECK constraints a caller can trip
// through valid-looking input.
var checkMessages = map[string]string{
	"promotions_used_count_within_max_uses": "max uses can not be below the current used count",
	"bookings_check_out_after_check_in":     "check-out date must be after check-in date",
}

// mapError translates driver errors into domain sentinels:
// no rows becomes ErrNotFound, a unique violation ErrConflict, and a dangling
// foreign key (e.g. a campground deleted mid-request) ErrNotFound. CHECK
// violations and numeric overflow are input the services let through, so
// they become ErrValidation.
func mapError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s", domain.ErrConflict, pgErr.ConstraintName)
		case pgForeignKeyViolation:
			return domain.ErrNotFound
		case pgCheckViolation:
			msg, ok := checkMessages[pgErr.ConstraintName]
			if !ok {
				msg = "value violates " + pgErr.ConstraintName
			}
			return fmt.Errorf("%w: %s", domain.ErrValidation, msg)
		case pgNumericOutOfRange:
			return fmt.Errorf("%w: amount is too large", domain.ErrValidation)
		}
	}
	return err
}

// collect drains rows through scan into a non-nil slice.
func collect[T any](rows pgx.Rows, scan func(scanner) (T, error)) ([]T, error) {
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}

// count runs a SELECT count(*) query and returns the result.
func count(ctx context.Context, d db, q string, args pgx.NamedArgs) (int64, error) {
	var n int64
	if err := d.QueryRow(ctx, q, args).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// nullUUID maps uuid.Nil to SQL NULL so optional filters can be written as
// (@id::uuid IS NULL OR col = @id).
func nullUUID(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: id != uuid.Nil}
}

// numeric converts a decimal into the pgx NUMERIC representation.
func numeric(d decimal.Decimal) pgtype.Numeric {
	return pgtype.Numeric{Int: d.Coefficient(), Exp: d.Exponent(), Valid: true}
}

// nullNumeric is numeric for optional values; nil becomes NULL.
func nullNumeric(d *decimal.Decimal) pgtype.Numeric {
	if d == nil {
		return pgtype.Numeric{}
	}
	return numeric(*d)
}

// toDecimal converts a scanned NUMERIC into a decimal. NULL becomes zero.
func toDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid || n.Int == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(n.Int, n.Exp)
}

// toNullDecimal converts a scanned nullable NUMERIC; NULL becomes nil.
func toNullDecimal(n pgtype.Numeric) *decimal.Decimal {
	if !n.Valid {
		return nil
	}
	d := toDecimal(n)
	return &d
}
