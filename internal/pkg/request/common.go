package request

import "strings"

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// ByIDRequest is a common struct for endpoints that require an ID path parameter.
type ByIDRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}

// ListParams holds the query parameters shared by every list endpoint.
type ListParams struct {
	Page      int    `form:"page" binding:"omitempty,min=1"`
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Search    string `form:"search" binding:"omitempty,max=100"`
	SortOrder string `form:"sortOrder" binding:"omitempty,oneof=asc desc ASC DESC"`
}

// Normalize fills defaults for page and limit and trims the search term.
func (p *ListParams) Normalize() {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	p.Search = strings.TrimSpace(p.Search)
}

// Desc reports whether descending order was requested. Empty means descending.
func (p *ListParams) Desc() bool {
	return p.SortOrder == "" || strings.EqualFold(p.SortOrder, "desc")
}

// Offset returns the row offset of the requested page.
func (p *ListParams) Offset() int {
	return (p.Page - 1) * p.Limit
}
