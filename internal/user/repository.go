package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nekogravitycat/garage-booking-backend/internal/pkg/query"
	"github.com/nekogravitycat/garage-booking-backend/internal/pkg/search"
)

// Repository defines methods for accessing user data from storage.
type Repository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Create(ctx context.Context, u *User) error
	UpdateLastLogin(ctx context.Context, id string, t time.Time) error
	List(ctx context.Context, filter Filter) ([]*User, int, error)
	Update(ctx context.Context, u *User) error
}

var userColumns = query.Columns{
	"createdAt": {Expr: "u.created_at"},
	"email":     {Expr: "u.email"},
	"name":      {Expr: "u.name"},
	"role":      {Expr: "u.role"},
	"isActive":  {Expr: "u.is_active"},
}

const userSelect = "u.id, u.email, u.password_hash, u.name, u.role, u.is_active, u.created_at, u.last_login_at"

type pgxRepository struct {
	pool *pgxpool.Pool
	q    query.Translator
}

// NewPgxRepository creates a new Repository implementation using pgxpool.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{
		pool: pool,
		q: query.Translator{
			Columns: userColumns,
			Search:  search.NewRegexIndex("u.email", "u.name"),
		},
	}
}

func scanUser(row pgx.Row, extra ...any) (*User, error) {
	var u User
	dest := append([]any{
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.IsActive, &u.CreatedAt, &u.LastLoginAt,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *pgxRepository) getOne(ctx context.Context, column string, value any) (*User, error) {
	sql := "SELECT " + userSelect + " FROM users u WHERE " + column + " = $1"
	u, err := scanUser(r.pool.QueryRow(ctx, sql, value))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user by %s failed: %w", column, err)
	}
	return u, nil
}

func (r *pgxRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	return r.getOne(ctx, "u.email", email)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*User, error) {
	return r.getOne(ctx, "u.id", id)
}

func (r *pgxRepository) Create(ctx context.Context, u *User) error {
	const sql = `
		INSERT INTO users (email, password_hash, name, role, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	if err := r.pool.QueryRow(ctx, sql, u.Email, u.PasswordHash, u.Name, u.Role, u.IsActive).
		Scan(&u.ID, &u.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return ErrEmailAlreadyUsed
		}
		return fmt.Errorf("create user failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) UpdateLastLogin(ctx context.Context, id string, t time.Time) error {
	ct, err := r.pool.Exec(ctx, "UPDATE users SET last_login_at = $1 WHERE id = $2", t, id)
	if err != nil {
		return fmt.Errorf("update last login failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*User, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	params := query.Params{
		Filters: []query.Filter{query.TextSearch{Term: filter.Search}},
		Sort:    query.Sort{Field: filter.SortBy, Desc: filter.SortDesc},
		Limit:   filter.Limit,
		Offset:  (filter.Page - 1) * filter.Limit,
	}
	if params.Sort.Field == "" {
		params.Sort = query.Sort{Field: "createdAt", Desc: true}
	}
	if filter.Role != "" {
		params.Filters = append(params.Filters, query.Eq{Field: "role", Value: filter.Role})
	}
	if filter.IsActive != nil {
		params.Filters = append(params.Filters, query.Eq{Field: "isActive", Value: *filter.IsActive})
	}

	qb, err := r.q.Build(psql.Select(userSelect, "count(*) OVER() AS total_count").From("users u"), params)
	if err != nil {
		return nil, 0, fmt.Errorf("build list users query failed: %w", err)
	}
	sql, args, err := qb.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list users query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list users failed: %w", err)
	}
	defer rows.Close()

	var users []*User
	var total int
	for rows.Next() {
		u, err := scanUser(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan user failed: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate users failed: %w", err)
	}
	total, err = query.Total(ctx, r.pool, qb, params.Offset, len(users), total)
	if err != nil {
		return nil, 0, fmt.Errorf("count users failed: %w", err)
	}
	return users, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, u *User) error {
	const sql = `
		UPDATE users
		SET email = $1, password_hash = $2, name = $3, role = $4, is_active = $5
		WHERE id = $6
	`

	ct, err := r.pool.Exec(ctx, sql, u.Email, u.PasswordHash, u.Name, u.Role, u.IsActive, u.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrEmailAlreadyUsed
		}
		return fmt.Errorf("update user failed: %w", err)
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
