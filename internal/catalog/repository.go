package catalog

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
	Create(ctx context.Context, e *Entry) error
	GetByID(ctx context.Context, id string) (*Entry, error)
	List(ctx context.Context, filter Filter) ([]*Entry, int, error)
	Update(ctx context.Context, e *Entry) error
	Delete(ctx context.Context, id string) error
	BasePrices(ctx context.Context, ids []string) (map[string]float64, error)
}

var entryColumns = query.Columns{
	"createdAt": {Expr: "s.created_at"},
	"name":      {Expr: "s.name"},
	"basePrice": {Expr: "s.base_price"},
}

var entrySelect = []string{"s.id", "s.name", "s.description", "s.base_price", "s.created_at", "s.updated_at"}

type pgxRepository struct {
	pool *pgxpool.Pool
	q    query.Translator
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{
		pool: pool,
		q: query.Translator{
			Columns: entryColumns,
			Search:  search.NewRegexIndex("s.name", "s.description"),
		},
	}
}

func (r *pgxRepository) Create(ctx context.Context, e *Entry) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sql, args, err := psql.Insert("services").
		Columns("name", "description", "base_price").
		Values(e.Name, e.Description, e.BasePrice).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create service query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, sql, args...).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return fmt.Errorf("create service failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Entry, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sql, args, err := psql.Select(entrySelect...).
		From("services s").
		Where(squirrel.Eq{"s.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get service query failed: %w", err)
	}

	var e Entry
	if err := r.pool.QueryRow(ctx, sql, args...).
		Scan(&e.ID, &e.Name, &e.Description, &e.BasePrice, &e.CreatedAt, &e.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get service failed: %w", err)
	}
	return &e, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Entry, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	sort := query.Sort{Field: filter.SortBy, Desc: filter.SortDesc}
	if sort.Field == "" {
		sort = query.Sort{Field: "name"}
	}

	qb, err := r.q.Build(
		psql.Select(append(entrySelect, "count(*) OVER() as total_count")...).From("services s"),
		query.Params{
			Filters: []query.Filter{query.TextSearch{Term: filter.Search}},
			Sort:    sort,
			Limit:   filter.Limit,
			Offset:  (filter.Page - 1) * filter.Limit,
		},
	)
	if err != nil {
		return nil, 0, fmt.Errorf("build list services query failed: %w", err)
	}
	sql, args, err := qb.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list services query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list services failed: %w", err)
	}
	defer rows.Close()

	var result []*Entry
	var total int
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Name, &e.Description, &e.BasePrice, &e.CreatedAt, &e.UpdatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("scan service failed: %w", err)
		}
		result = append(result, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate services failed: %w", err)
	}
	total, err = query.Total(ctx, r.pool, qb, (filter.Page-1)*filter.Limit, len(result), total)
	if err != nil {
		return nil, 0, fmt.Errorf("count services failed: %w", err)
	}
	return result, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, e *Entry) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sql, args, err := psql.Update("services").
		Set("name", e.Name).
		Set("description", e.Description).
		Set("base_price", e.BasePrice).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": e.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build update service query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, sql, args...).Scan(&e.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("update service failed: %w", err)
	}
	return nil
}

// Delete removes the entry. Bookings keep their references to it.
func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sql, args, err := psql.Delete("services").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete service query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete service failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// BasePrices returns the current base price of each id that exists.
func (r *pgxRepository) BasePrices(ctx context.Context, ids []string) (map[string]float64, error) {
	prices := make(map[string]float64, len(ids))
	if len(ids) == 0 {
		return prices, nil
	}

	rows, err := r.pool.Query(ctx, "SELECT id, base_price FROM services WHERE id = ANY($1::uuid[])", ids)
	if err != nil {
		return nil, fmt.Errorf("load base prices failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		var price float64
		if err := rows.Scan(&id, &price); err != nil {
			return nil, fmt.Errorf("scan base price failed: %w", err)
		}
		prices[id] = price
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate base prices failed: %w", err)
	}
	return prices, nil
}
