package query

import (
	"context"
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countRow struct{ n int }

func (r countRow) Scan(dest ...any) error {
	*dest[0].(*int) = r.n
	return nil
}

type recordingQuerier struct {
	calls int
	sql   string
	args  []any
	n     int
}

func (q *recordingQuerier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	q.calls++
	q.sql = sql
	q.args = args
	return countRow{n: q.n}
}

func pagedBookings(offset uint64) squirrel.SelectBuilder {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Select("b.id", "count(*) OVER() as total_count").
		From("bookings b").
		Where(squirrel.Eq{"b.status": "Booked"}).
		OrderBy("b.id").
		Limit(2).
		Offset(offset)
}

func TestTotalPastLastPageCountsUnpagedQuery(t *testing.T) {
	q := &recordingQuerier{n: 3}

	total, err := Total(context.Background(), q, pagedBookings(10), 10, 0, 0)
	require.NoError(t, err)

	assert.Equal(t, 3, total)
	assert.Equal(t, 1, q.calls)
	assert.Equal(t,
		"SELECT count(*) FROM (SELECT b.id, count(*) OVER() as total_count FROM bookings b WHERE b.status = $1 ORDER BY b.id) AS unpaged",
		q.sql)
	assert.Equal(t, []any{"Booked"}, q.args)
}

func TestTotalUsesWindowCountWhenPageHasRows(t *testing.T) {
	q := &recordingQuerier{n: 99}

	total, err := Total(context.Background(), q, pagedBookings(2), 2, 1, 3)
	require.NoError(t, err)

	assert.Equal(t, 3, total)
	assert.Zero(t, q.calls)
}

func TestTotalFirstEmptyPageIsZero(t *testing.T) {
	q := &recordingQuerier{n: 99}

	total, err := Total(context.Background(), q, pagedBookings(0), 0, 0, 0)
	require.NoError(t, err)

	assert.Zero(t, total)
	assert.Zero(t, q.calls)
}
