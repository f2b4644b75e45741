package video

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
	Create(ctx context.Context, v *Video) error
	GetByID(ctx context.Context, id string) (*Video, error)
	List(ctx context.Context, filter Filter) ([]*Video, int, error)
	Update(ctx context.Context, v *Video) error
	Delete(ctx context.Context, id string) error
}

var videoColumns = query.Columns{
	"createdAt": {Expr: "v.created_at"},
	"title":     {Expr: "v.title"},
	"published": {Expr: "v.published"},
}

var videoSelect = []string{"v.id", "v.title", "v.description", "v.url", "v.published", "v.created_at", "v.updated_at"}

type pgxRepository struct {
	pool *pgxpool.Pool
	q    query.Translator
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{
		pool: pool,
		q: query.Translator{
			Columns: videoColumns,
			Search:  search.NewRegexIndex("v.title", "v.description"),
		},
	}
}

func (r *pgxRepository) Create(ctx context.Context, v *Video) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sql, args, err := psql.Insert("videos").
		Columns("title", "description", "url", "published").
		Values(v.Title, v.Description, v.URL, v.Published).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create video query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, sql, args...).Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt); err != nil {
		return fmt.Errorf("create video failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Video, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sql, args, err := psql.Select(videoSelect...).
		From("videos v").
		Where(squirrel.Eq{"v.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get video query failed: %w", err)
	}

	var v Video
	if err := r.pool.QueryRow(ctx, sql, args...).
		Scan(&v.ID, &v.Title, &v.Description, &v.URL, &v.Published, &v.CreatedAt, &v.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get video failed: %w", err)
	}
	return &v, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Video, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	filters := []query.Filter{query.TextSearch{Term: filter.Search}}
	if filter.Published != nil {
		filters = append(filters, query.Eq{Field: "published", Value: *filter.Published})
	}

	sort := query.Sort{Field: filter.SortBy, Desc: filter.SortDesc}
	if sort.Field == "" {
		sort = query.Sort{Field: "createdAt", Desc: true}
	}

	qb, err := r.q.Build(
		psql.Select(append(videoSelect, "count(*) OVER() as total_count")...).From("videos v"),
		query.Params{
			Filters: filters,
			Sort:    sort,
			Limit:   filter.Limit,
			Offset:  (filter.Page - 1) * filter.Limit,
		},
	)
	if err != nil {
		return nil, 0, fmt.Errorf("build list videos query failed: %w", err)
	}
	sql, args, err := qb.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list videos query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list videos failed: %w", err)
	}
	defer rows.Close()

	var result []*Video
	var total int
	for rows.Next() {
		var v Video
		if err := rows.Scan(&v.ID, &v.Title, &v.Description, &v.URL, &v.Published, &v.CreatedAt, &v.UpdatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("scan video failed: %w", err)
		}
		result = append(result, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate videos failed: %w", err)
	}
	total, err = query.Total(ctx, r.pool, qb, (filter.Page-1)*filter.Limit, len(result), total)
	if err != nil {
		return nil, 0, fmt.Errorf("count videos failed: %w", err)
	}
	return result, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, v *Video) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sql, args, err := psql.Update("videos").
		Set("title", v.Title).
		Set("description", v.Description).
		Set("url", v.URL).
		Set("published", v.Published).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": v.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build update video query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, sql, args...).Scan(&v.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("update video failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sql, args, err := psql.Delete("videos").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete video query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete video failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
