package query

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

// Querier is the part of pgxpool.Pool needed to count rows.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Total returns how many rows qb matches over all pages. windowTotal is the
// count(*) OVER() value scanned from the page. A page past the end has no row
// to carry it, so in that case the unpaged query is counted instead.
func Total(ctx context.Context, q Querier, qb squirrel.SelectBuilder, offset, pageRows, windowTotal int) (int, error) {
	if pageRows > 0 || offset <= 0 {
		return windowTotal, nil
	}

	sql, args, err := CountQuery(qb).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query failed: %w", err)
	}

	var total int
	if err := q.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count rows failed: %w", err)
	}
	return total, nil
}

// CountQuery wraps qb without its LIMIT and OFFSET in a count(*).
func CountQuery(qb squirrel.SelectBuilder) squirrel.SelectBuilder {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Select("count(*)").
		FromSelect(qb.RemoveLimit().RemoveOffset(), "unpaged")
}
