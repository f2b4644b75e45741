package auth

import (
	"context"

	"github.com/gin-gonic/gin"
)

const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// Principal identifies the caller of one request.
type Principal struct {
	UserID string
	Email  string
	Role   string
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

type principalKey struct{}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom returns the principal stored in ctx, if any.
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}

// CurrentPrincipal is PrincipalFrom for a gin request.
func CurrentPrincipal(c *gin.Context) (Principal, bool) {
	return PrincipalFrom(c.Request.Context())
}

// IsAdminRequest reports whether the request carries an admin principal.
// Public read endpoints use it to decide whether drafts are visible.
func IsAdminRequest(c *gin.Context) bool {
	p, ok := CurrentPrincipal(c)
	return ok && p.IsAdmin()
}
