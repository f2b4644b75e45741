package customer

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nekogravitycat/garage-booking-backend/internal/pkg/query"
	"github.com/nekogravitycat/garage-booking-backend/internal/pkg/search"
)

type Repository interface {
	List(ctx context.Context, p query.Params) ([]*Customer, int, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
	q    query.Translator
}

// NewPgxRepository creates a repository that searches bookings through idx
// before grouping them, so a customer matches when any of their bookings does.
func NewPgxRepository(pool *pgxpool.Pool, idx search.Index) Repository {
	return &pgxRepository{
		pool: pool,
		q:    query.Translator{Columns: Columns, Search: idx},
	}
}

func (r *pgxRepository) List(ctx context.Context, p query.Params) ([]*Customer, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	qb := psql.Select(
		"b.customer_name",
		"b.customer_email",
		"b.customer_phone",
		"array_agg(DISTINCT b.vehicle_registration ORDER BY b.vehicle_registration)",
		"count(*)",
		"coalesce(sum(b.total_price) FILTER (WHERE b.status <> 'Cancelled'), 0) AS total_spent",
		"min(b.created_at)",
		"max(b.created_at)",
		"count(*) OVER() AS total_count",
	).
		From("bookings b").
		GroupBy("b.customer_name", "b.customer_email", "b.customer_phone")

	qb, err := r.q.Build(qb, p)
	if err != nil {
		if errors.Is(err, query.ErrUnknownField) {
			return nil, 0, ErrInvalidSort
		}
		return nil, 0, fmt.Errorf("build list customers query failed: %w", err)
	}
	qb = qb.OrderBy("b.customer_email", "b.customer_name", "b.customer_phone")

	sql, args, err := qb.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list customers query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list customers failed: %w", err)
	}
	defer rows.Close()

	var result []*Customer
	var total int
	for rows.Next() {
		var c Customer
		if err := rows.Scan(
			&c.Name, &c.Email, &c.Phone, &c.Registrations,
			&c.BookingCount, &c.TotalSpent, &c.FirstBookingAt, &c.LastBookingAt,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan customer failed: %w", err)
		}
		result = append(result, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate customers failed: %w", err)
	}
	total, err = query.Total(ctx, r.pool, qb, p.Offset, len(result), total)
	if err != nil {
		return nil, 0, fmt.Errorf("count customers failed: %w", err)
	}
	return result, total, nil
}
