// Package query holds the small filter language repositories accept and its
// translation to squirrel conditions.
package query

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/nekogravitycat/garage-booking-backend/internal/pkg/search"
)

var (
	ErrUnknownField = errors.New("unknown filter field")
	ErrNoSearch     = errors.New("text search is not supported here")
)

// Filter is one of Eq, Range, Or or TextSearch.
type Filter interface {
	isFilter()
}

// Eq matches rows whose field equals Value. On array columns it matches rows
// whose array contains Value.
type Eq struct {
	Field string
	Value any
}

// Range matches rows whose field lies within [From, To]. A nil bound is open.
type Range struct {
	Field string
	From  any
	To    any
}

// Or matches rows matching any of its filters.
type Or []Filter

// TextSearch matches rows against the table's search index.
type TextSearch struct {
	Term string
}

func (Eq) isFilter()         {}
func (Range) isFilter()      {}
func (Or) isFilter()         {}
func (TextSearch) isFilter() {}

// Column maps an API field name to its SQL expression.
type Column struct {
	Expr  string
	Array bool
}

// Columns is the whitelist of filterable and sortable fields of a table.
type Columns map[string]Column

// Sort orders results by an API field.
type Sort struct {
	Field string
	Desc  bool
}

// Translator converts filters into squirrel conditions for one table.
type Translator struct {
	Columns Columns
	Search  search.Index
}

// Translate converts a single filter. A nil condition means "match everything".
func (t Translator) Translate(f Filter) (squirrel.Sqlizer, error) {
	switch f := f.(type) {
	case Eq:
		col, err := t.column(f.Field)
		if err != nil {
			return nil, err
		}
		if col.Array {
			return squirrel.Expr("? = ANY("+col.Expr+")", f.Value), nil
		}
		return squirrel.Eq{col.Expr: f.Value}, nil

	case Range:
		col, err := t.column(f.Field)
		if err != nil {
			return nil, err
		}
		and := squirrel.And{}
		if f.From != nil {
			and = append(and, squirrel.GtOrEq{col.Expr: f.From})
		}
		if f.To != nil {
			and = append(and, squirrel.LtOrEq{col.Expr: f.To})
		}
		if len(and) == 0 {
			return nil, nil
		}
		return and, nil

	case Or:
		or := make(squirrel.Or, 0, len(f))
		for _, sub := range f {
			cond, err := t.Translate(sub)
			if err != nil {
				return nil, err
			}
			if cond == nil {
				// One branch matches everything, so does the disjunction.
				return nil, nil
			}
			or = append(or, cond)
		}
		if len(or) == 0 {
			return nil, nil
		}
		return or, nil

	case TextSearch:
		term := strings.TrimSpace(f.Term)
		if term == "" {
			return nil, nil
		}
		if t.Search == nil {
			return nil, ErrNoSearch
		}
		return t.Search.Match(term), nil

	default:
		return nil, fmt.Errorf("unsupported filter %T", f)
	}
}

// Where converts a conjunction of filters.
func (t Translator) Where(filters []Filter) (squirrel.Sqlizer, error) {
	and := squirrel.And{}
	for _, f := range filters {
		cond, err := t.Translate(f)
		if err != nil {
			return nil, err
		}
		if cond != nil {
			and = append(and, cond)
		}
	}
	if len(and) == 0 {
		return nil, nil
	}
	return and, nil
}

// Apply adds the filters to a select builder.
func (t Translator) Apply(b squirrel.SelectBuilder, filters []Filter) (squirrel.SelectBuilder, error) {
	cond, err := t.Where(filters)
	if err != nil {
		return b, err
	}
	if cond != nil {
		b = b.Where(cond)
	}
	return b, nil
}

// OrderBy returns the ORDER BY clause for s.
func (t Translator) OrderBy(s Sort) (string, error) {
	col, err := t.column(s.Field)
	if err != nil {
		return "", err
	}
	dir := "ASC"
	if s.Desc {
		dir = "DESC"
	}
	return col.Expr + " " + dir, nil
}

func (t Translator) column(field string) (Column, error) {
	col, ok := t.Columns[field]
	if !ok {
		return Column{}, fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	return col, nil
}

// Params is a complete list query: filters, order and page window.
type Params struct {
	Filters []Filter
	Sort    Sort
	Limit   int
	Offset  int
}

// Build applies filters, order, limit and offset to b. A zero Limit leaves
// the result unbounded.
func (t Translator) Build(b squirrel.SelectBuilder, p Params) (squirrel.SelectBuilder, error) {
	b, err := t.Apply(b, p.Filters)
	if err != nil {
		return b, err
	}
	if p.Sort.Field != "" {
		order, err := t.OrderBy(p.Sort)
		if err != nil {
			return b, err
		}
		b = b.OrderBy(order)
	}
	if p.Limit > 0 {
		b = b.Limit(uint64(p.Limit))
	}
	if p.Offset > 0 {
		b = b.Offset(uint64(p.Offset))
	}
	return b, nil
}
