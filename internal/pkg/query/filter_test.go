package query

import (
	"testing"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/garage-booking-backend/internal/pkg/search"
)

var testColumns = Columns{
	"status":     {Expr: "b.status"},
	"createdAt":  {Expr: "b.created_at"},
	"serviceIds": {Expr: "b.service_ids", Array: true},
}

func newTranslator() Translator {
	return Translator{
		Columns: testColumns,
		Search:  search.NewRegexIndex("b.customer_name", "b.customer_email"),
	}
}

func TestTranslateEq(t *testing.T) {
	cond, err := newTranslator().Translate(Eq{Field: "status", Value: "Booked"})
	require.NoError(t, err)

	sql, args, err := cond.ToSql()
	require.NoError(t, err)
	assert.Equal(t, "b.status = ?", sql)
	assert.Equal(t, []any{"Booked"}, args)
}

func TestTranslateEqOnArrayColumn(t *testing.T) {
	cond, err := newTranslator().Translate(Eq{Field: "serviceIds", Value: "svc-1"})
	require.NoError(t, err)

	sql, args, err := cond.ToSql()
	require.NoError(t, err)
	assert.Equal(t, "? = ANY(b.service_ids)", sql)
	assert.Equal(t, []any{"svc-1"}, args)
}

func TestTranslateRange(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	t.Run("both bounds", func(t *testing.T) {
		cond, err := newTranslator().Translate(Range{Field: "createdAt", From: from, To: to})
		require.NoError(t, err)
		sql, args, err := cond.ToSql()
		require.NoError(t, err)
		assert.Equal(t, "(b.created_at >= ? AND b.created_at <= ?)", sql)
		assert.Equal(t, []any{from, to}, args)
	})

	t.Run("lower bound only", func(t *testing.T) {
		cond, err := newTranslator().Translate(Range{Field: "createdAt", From: from})
		require.NoError(t, err)
		sql, _, err := cond.ToSql()
		require.NoError(t, err)
		assert.Equal(t, "(b.created_at >= ?)", sql)
	})

	t.Run("open range matches everything", func(t *testing.T) {
		cond, err := newTranslator().Translate(Range{Field: "createdAt"})
		require.NoError(t, err)
		assert.Nil(t, cond)
	})
}

func TestTranslateOr(t *testing.T) {
	cond, err := newTranslator().Translate(Or{
		Eq{Field: "status", Value: "Booked"},
		Eq{Field: "status", Value: "Completed"},
	})
	require.NoError(t, err)

	sql, args, err := cond.ToSql()
	require.NoError(t, err)
	assert.Equal(t, "(b.status = ? OR b.status = ?)", sql)
	assert.Equal(t, []any{"Booked", "Completed"}, args)

	// An empty search inside an Or matches everything.
	cond, err = newTranslator().Translate(Or{Eq{Field: "status", Value: "Booked"}, TextSearch{Term: " "}})
	require.NoError(t, err)
	assert.Nil(t, cond)
}

func TestTranslateTextSearch(t *testing.T) {
	cond, err := newTranslator().Translate(TextSearch{Term: " smith.jr "})
	require.NoError(t, err)

	sql, args, err := cond.ToSql()
	require.NoError(t, err)
	assert.Equal(t, "(b.customer_name ~* ? OR b.customer_email ~* ?)", sql)
	assert.Equal(t, []any{`smith\.jr`, `smith\.jr`}, args)

	_, err = Translator{Columns: testColumns}.Translate(TextSearch{Term: "smith"})
	assert.ErrorIs(t, err, ErrNoSearch)
}

func TestTranslateUnknownField(t *testing.T) {
	_, err := newTranslator().Translate(Eq{Field: "password", Value: "x"})
	assert.ErrorIs(t, err, ErrUnknownField)

	_, err = newTranslator().OrderBy(Sort{Field: "password"})
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestWhereSkipsMatchAllFilters(t *testing.T) {
	tr := newTranslator()

	cond, err := tr.Where([]Filter{TextSearch{}, Range{Field: "createdAt"}})
	require.NoError(t, err)
	assert.Nil(t, cond)

	cond, err = tr.Where([]Filter{TextSearch{}, Eq{Field: "status", Value: "Cancelled"}})
	require.NoError(t, err)
	sql, _, err := cond.ToSql()
	require.NoError(t, err)
	assert.Equal(t, "(b.status = ?)", sql)
}

func TestOrderBy(t *testing.T) {
	clause, err := newTranslator().OrderBy(Sort{Field: "createdAt", Desc: true})
	require.NoError(t, err)
	assert.Equal(t, "b.created_at DESC", clause)

	clause, err = newTranslator().OrderBy(Sort{Field: "status"})
	require.NoError(t, err)
	assert.Equal(t, "b.status ASC", clause)
}

func TestBuild(t *testing.T) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	b, err := newTranslator().Build(psql.Select("b.id").From("bookings b"), Params{
		Filters: []Filter{Eq{Field: "status", Value: "Booked"}},
		Sort:    Sort{Field: "createdAt", Desc: true},
		Limit:   10,
		Offset:  20,
	})
	require.NoError(t, err)

	sql, args, err := b.ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT b.id FROM bookings b WHERE (b.status = $1) ORDER BY b.created_at DESC LIMIT 10 OFFSET 20", sql)
	assert.Equal(t, []any{"Booked"}, args)

	_, err = newTranslator().Build(psql.Select("b.id").From("bookings b"), Params{Sort: Sort{Field: "password"}})
	assert.ErrorIs(t, err, ErrUnknownField)
}
