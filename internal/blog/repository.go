package blog

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nekogravitycat/garage-booking-backend/internal/pkg/query"
	"github.com/nekogravitycat/garage-booking-backend/internal/pkg/search"
)

type Repository interface {
	Create(ctx context.Context, p *Post) error
	GetByID(ctx context.Context, id string) (*Post, error)
	GetBySlug(ctx context.Context, slug string) (*Post, error)
	List(ctx context.Context, filter Filter) ([]*Post, int, error)
	Update(ctx context.Context, p *Post) error
	Delete(ctx context.Context, id string) error
}

var postColumns = query.Columns{
	"createdAt": {Expr: "p.created_at"},
	"updatedAt": {Expr: "p.updated_at"},
	"title":     {Expr: "p.title"},
	"published": {Expr: "p.published"},
}

var postSelect = []string{
	"p.id", "p.title", "p.slug", "p.excerpt", "p.content", "p.cover_image_id",
	"p.published", "p.created_at", "p.updated_at",
}

type pgxRepository struct {
	pool *pgxpool.Pool
	q    query.Translator
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{
		pool: pool,
		q: query.Translator{
			Columns: postColumns,
			Search:  search.NewRegexIndex("p.title", "p.excerpt", "p.content"),
		},
	}
}

func scanPost(row pgx.Row, extra ...any) (*Post, error) {
	var p Post
	dest := append([]any{
		&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Content, &p.CoverImageID,
		&p.Published, &p.CreatedAt, &p.UpdatedAt,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *pgxRepository) Create(ctx context.Context, p *Post) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sql, args, err := psql.Insert("blogs").
		Columns("title", "slug", "excerpt", "content", "cover_image_id", "published").
		Values(p.Title, p.Slug, p.Excerpt, p.Content, p.CoverImageID, p.Published).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create blog query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, sql, args...).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return ErrSlugTaken
		}
		return fmt.Errorf("create blog failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Post, error) {
	return r.getOne(ctx, squirrel.Eq{"p.id": id})
}

func (r *pgxRepository) GetBySlug(ctx context.Context, slug string) (*Post, error) {
	return r.getOne(ctx, squirrel.Eq{"p.slug": slug})
}

func (r *pgxRepository) getOne(ctx context.Context, where squirrel.Sqlizer) (*Post, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sql, args, err := psql.Select(postSelect...).
		From("blogs p").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get blog query failed: %w", err)
	}

	p, err := scanPost(r.pool.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get blog failed: %w", err)
	}
	return p, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Post, int, error) {
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
		psql.Select(append(postSelect, "count(*) OVER() as total_count")...).From("blogs p"),
		query.Params{
			Filters: filters,
			Sort:    sort,
			Limit:   filter.Limit,
			Offset:  (filter.Page - 1) * filter.Limit,
		},
	)
	if err != nil {
		return nil, 0, fmt.Errorf("build list blogs query failed: %w", err)
	}
	sql, args, err := qb.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list blogs query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list blogs failed: %w", err)
	}
	defer rows.Close()

	var result []*Post
	var total int
	for rows.Next() {
		p, err := scanPost(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan blog failed: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate blogs failed: %w", err)
	}
	total, err = query.Total(ctx, r.pool, qb, (filter.Page-1)*filter.Limit, len(result), total)
	if err != nil {
		return nil, 0, fmt.Errorf("count blogs failed: %w", err)
	}
	return result, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, p *Post) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sql, args, err := psql.Update("blogs").
		Set("title", p.Title).
		Set("slug", p.Slug).
		Set("excerpt", p.Excerpt).
		Set("content", p.Content).
		Set("cover_image_id", p.CoverImageID).
		Set("published", p.Published).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": p.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build update blog query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, sql, args...).Scan(&p.UpdatedAt); err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return ErrNotFound
		case isUniqueViolation(err):
			return ErrSlugTaken
		}
		return fmt.Errorf("update blog failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sql, args, err := psql.Delete("blogs").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete blog query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete blog failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var e *pgconn.PgError
	return errors.As(err, &e) && e.Code == pgerrcode.UniqueViolation
}
