package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nekogravitycat/garage-booking-backend/internal/pkg/query"
	"github.com/nekogravitycat/garage-booking-backend/internal/pkg/search"
)

// Repository is the only writer of booking rows.
type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, p query.Params) ([]*Booking, int, error)
	// UpdateStatus overwrites unconditionally; concurrent writers race and the
	// last one wins. It returns the number of rows modified.
	UpdateStatus(ctx context.Context, id string, status Status) (int64, error)
	// Delete removes the row permanently and returns the number deleted.
	Delete(ctx context.Context, id string) (int64, error)
}

var bookingSelect = []string{
	"b.id", "b.customer_name", "b.customer_email", "b.customer_phone",
	"b.vehicle_registration", "b.vehicle_make", "b.vehicle_model", "b.vehicle_year",
	"b.service_ids", "b.other_service", "b.total_price", "b.status", "b.created_at", "b.updated_at",
}

type pgxRepository struct {
	pool *pgxpool.Pool
	q    query.Translator
}

// NewPgxRepository creates a repository searching through idx, which is
// chosen once at startup.
func NewPgxRepository(pool *pgxpool.Pool, idx search.Index) Repository {
	return &pgxRepository{
		pool: pool,
		q:    query.Translator{Columns: Columns, Search: idx},
	}
}

func scanBooking(row pgx.Row, extra ...any) (*Booking, error) {
	var b Booking
	var status string
	dest := append([]any{
		&b.ID, &b.Customer.Name, &b.Customer.Email, &b.Customer.Phone,
		&b.Vehicle.Registration, &b.Vehicle.Make, &b.Vehicle.Model, &b.Vehicle.Year,
		&b.ServiceIDs, &b.OtherService, &b.TotalPrice, &status, &b.CreatedAt, &b.UpdatedAt,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	b.Status = Status(status)
	return &b, nil
}

// Create writes the booking in a single INSERT; created_at comes from the database.
func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	serviceIDs := b.ServiceIDs
	if serviceIDs == nil {
		serviceIDs = []string{}
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sql, args, err := psql.Insert("bookings").
		Columns(
			"customer_name", "customer_email", "customer_phone",
			"vehicle_registration", "vehicle_make", "vehicle_model", "vehicle_year",
			"service_ids", "other_service", "total_price", "status",
		).
		Values(
			b.Customer.Name, b.Customer.Email, b.Customer.Phone,
			b.Vehicle.Registration, b.Vehicle.Make, b.Vehicle.Model, b.Vehicle.Year,
			squirrel.Expr("?::uuid[]", serviceIDs), b.OtherService, b.TotalPrice, string(b.Status),
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, sql, args...).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return fmt.Errorf("create booking failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sql, args, err := psql.Select(bookingSelect...).
		From("bookings b").
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	b, err := scanBooking(r.pool.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

// List pages through bookings with offset pagination.
func (r *pgxRepository) List(ctx context.Context, p query.Params) ([]*Booking, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	qb, err := r.q.Build(
		psql.Select(append(bookingSelect, "count(*) OVER() as total_count")...).From("bookings b"),
		p,
	)
	if err != nil {
		if errors.Is(err, query.ErrUnknownField) {
			return nil, 0, ErrInvalidSort
		}
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}
	// Stable order across pages when the sort key ties.
	qb = qb.OrderBy("b.id")

	sql, args, err := qb.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var result []*Booking
	var total int
	for rows.Next() {
		b, err := scanBooking(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate bookings failed: %w", err)
	}
	total, err = query.Total(ctx, r.pool, qb, p.Offset, len(result), total)
	if err != nil {
		return nil, 0, fmt.Errorf("count bookings failed: %w", err)
	}
	return result, total, nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id string, status Status) (int64, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sql, args, err := psql.Update("bookings").
		Set("status", string(status)).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build update booking status query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("update booking status failed: %w", err)
	}
	return ct.RowsAffected(), nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) (int64, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sql, args, err := psql.Delete("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete booking query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("delete booking failed: %w", err)
	}
	return ct.RowsAffected(), nil
}
