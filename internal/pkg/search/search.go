// Package search selects how free-text search terms become SQL conditions.
//
// Two implementations exist. TextIndex runs LIKE over lower(column) for each
// column, served by a pg_trgm GIN index on those expressions. RegexIndex does a
// case-insensitive regex match over each plain column. Both match a term only
// when a single column contains it. The choice is made once at startup by Select.
package search

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

const (
	ModeAuto  = "auto"
	ModeText  = "text"
	ModeRegex = "regex"
)

// Index turns a search term into a WHERE condition.
type Index interface {
	Name() string
	Match(term string) squirrel.Sqlizer
}

// TextIndex matches terms as substrings of lower(column) for any listed column.
// The expressions must match the trigram index for the planner to use it.
type TextIndex struct {
	columns []string
}

// NewTextIndex creates a TextIndex over the given columns.
func NewTextIndex(columns ...string) *TextIndex {
	return &TextIndex{columns: columns}
}

func (i *TextIndex) Name() string { return ModeText }

func (i *TextIndex) Match(term string) squirrel.Sqlizer {
	pattern := "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
	or := make(squirrel.Or, 0, len(i.columns))
	for _, col := range i.columns {
		or = append(or, squirrel.Expr("lower("+col+") LIKE ?", pattern))
	}
	return or
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// RegexIndex matches terms as case-insensitive substrings of any listed column.
type RegexIndex struct {
	columns []string
}

// NewRegexIndex creates a RegexIndex over the given columns.
func NewRegexIndex(columns ...string) *RegexIndex {
	return &RegexIndex{columns: columns}
}

func (i *RegexIndex) Name() string { return ModeRegex }

func (i *RegexIndex) Match(term string) squirrel.Sqlizer {
	pattern := regexp.QuoteMeta(term)
	or := make(squirrel.Or, 0, len(i.columns))
	for _, col := range i.columns {
		or = append(or, squirrel.Expr(col+" ~* ?", pattern))
	}
	return or
}

// Spec describes the searchable surface of one table. IndexName is the
// trigram index covering lower(column) for every entry of Columns.
type Spec struct {
	Table     string
	IndexName string
	Columns   []string
}

// Querier is the subset of pgxpool.Pool used for probing.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// HasIndex reports whether the named index exists on the table.
func HasIndex(ctx context.Context, q Querier, table, index string) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM pg_indexes
			WHERE schemaname = 'public' AND tablename = $1 AND indexname = $2
		)
	`
	var exists bool
	if err := q.QueryRow(ctx, query, table, index).Scan(&exists); err != nil {
		return false, fmt.Errorf("probe index %s failed: %w", index, err)
	}
	return exists, nil
}

// Select picks the Index implementation for spec according to mode.
// In auto mode the database is probed once for the text index.
func Select(ctx context.Context, q Querier, mode string, spec Spec) (Index, error) {
	switch strings.ToLower(mode) {
	case ModeText:
		return NewTextIndex(spec.Columns...), nil
	case ModeRegex:
		return NewRegexIndex(spec.Columns...), nil
	case "", ModeAuto:
		if spec.IndexName == "" {
			return NewRegexIndex(spec.Columns...), nil
		}
		ok, err := HasIndex(ctx, q, spec.Table, spec.IndexName)
		if err != nil {
			return nil, err
		}
		if ok {
			return NewTextIndex(spec.Columns...), nil
		}
		return NewRegexIndex(spec.Columns...), nil
	default:
		return nil, fmt.Errorf("unknown search mode %q", mode)
	}
}
