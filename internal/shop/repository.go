package shop

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

type Repository interface {
	Create(ctx context.Context, l *Listing) error
	GetByID(ctx context.Context, id string) (*Listing, error)
	List(ctx context.Context, p query.Params) ([]*Listing, int, error)
	Update(ctx context.Context, l *Listing) error
	Delete(ctx context.Context, id string) error
}

var listingSelect = []string{
	"l.id", "l.title", "l.make", "l.model", "l.year", "l.mileage", "l.price",
	"l.fuel_type", "l.transmission", "l.description", "l.image_ids", "l.status",
	"l.created_at", "l.updated_at",
}

type pgxRepository struct {
	pool *pgxpool.Pool
	q    query.Translator
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{
		pool: pool,
		q: query.Translator{
			Columns: Columns,
			Search:  search.NewRegexIndex("l.title", "l.make", "l.model", "l.description"),
		},
	}
}

func scanListing(row pgx.Row, extra ...any) (*Listing, error) {
	var l Listing
	var status string
	dest := append([]any{
		&l.ID, &l.Title, &l.Make, &l.Model, &l.Year, &l.Mileage, &l.Price,
		&l.FuelType, &l.Transmission, &l.Description, &l.ImageIDs, &status,
		&l.CreatedAt, &l.UpdatedAt,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	l.Status = Status(status)
	return &l, nil
}

func imageIDs(l *Listing) []string {
	if l.ImageIDs == nil {
		return []string{}
	}
	return l.ImageIDs
}

func (r *pgxRepository) Create(ctx context.Context, l *Listing) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sql, args, err := psql.Insert("shops").
		Columns(
			"title", "make", "model", "year", "mileage", "price",
			"fuel_type", "transmission", "description", "image_ids", "status",
		).
		Values(
			l.Title, l.Make, l.Model, l.Year, l.Mileage, l.Price,
			l.FuelType, l.Transmission, l.Description, squirrel.Expr("?::uuid[]", imageIDs(l)), string(l.Status),
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create listing query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, sql, args...).Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return fmt.Errorf("create listing failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Listing, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sql, args, err := psql.Select(listingSelect...).
		From("shops l").
		Where(squirrel.Eq{"l.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get listing query failed: %w", err)
	}

	l, err := scanListing(r.pool.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get listing failed: %w", err)
	}
	return l, nil
}

func (r *pgxRepository) List(ctx context.Context, p query.Params) ([]*Listing, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	qb, err := r.q.Build(
		psql.Select(append(listingSelect, "count(*) OVER() as total_count")...).From("shops l"),
		p,
	)
	if err != nil {
		if errors.Is(err, query.ErrUnknownField) {
			return nil, 0, ErrInvalidSort
		}
		return nil, 0, fmt.Errorf("build list listings query failed: %w", err)
	}
	sql, args, err := qb.OrderBy("l.id").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list listings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list listings failed: %w", err)
	}
	defer rows.Close()

	var result []*Listing
	var total int
	for rows.Next() {
		l, err := scanListing(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan listing failed: %w", err)
		}
		result = append(result, l)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate listings failed: %w", err)
	}
	total, err = query.Total(ctx, r.pool, qb, p.Offset, len(result), total)
	if err != nil {
		return nil, 0, fmt.Errorf("count listings failed: %w", err)
	}
	return result, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, l *Listing) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sql, args, err := psql.Update("shops").
		Set("title", l.Title).
		Set("make", l.Make).
		Set("model", l.Model).
		Set("year", l.Year).
		Set("mileage", l.Mileage).
		Set("price", l.Price).
		Set("fuel_type", l.FuelType).
		Set("transmission", l.Transmission).
		Set("description", l.Description).
		Set("image_ids", squirrel.Expr("?::uuid[]", imageIDs(l))).
		Set("status", string(l.Status)).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": l.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build update listing query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, sql, args...).Scan(&l.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("update listing failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sql, args, err := psql.Delete("shops").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete listing query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete listing failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
