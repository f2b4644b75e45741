package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/garage-booking-backend/internal/logging"
	"github.com/nekogravitycat/garage-booking-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/garage-booking-backend/internal/pkg/response"
)

var (
	ErrAccountNotFound = errors.New("account not found")

	ErrUserMissing = apperror.New(http.StatusNotFound, "user not found")
)

// Account is the part of a user record the Gate needs.
type Account struct {
	ID       string
	Role     string
	IsActive bool
}

// AccountLookup loads accounts by id. It returns ErrAccountNotFound when the
// record does not exist.
type AccountLookup interface {
	LookupAccount(ctx context.Context, id string) (*Account, error)
}

// AdminRoute marks every route under Prefix as admin only. An empty Method
// matches all methods.
type AdminRoute struct {
	Method string
	Prefix string
}

func (r AdminRoute) matches(method, path string) bool {
	if r.Method != "" && !strings.EqualFold(r.Method, method) {
		return false
	}
	if strings.HasSuffix(r.Prefix, "/") {
		return strings.HasPrefix(path, r.Prefix)
	}
	return path == r.Prefix || strings.HasPrefix(path, r.Prefix+"/")
}

// DefaultAdminRoutes guards catalog and content mutations, the booking
// dashboard, the customer directory and user management.
func DefaultAdminRoutes() []AdminRoute {
	routes := []AdminRoute{
		{Method: http.MethodGet, Prefix: "/v1/bookings"},
		{Method: http.MethodPatch, Prefix: "/v1/bookings"},
		{Method: http.MethodDelete, Prefix: "/v1/bookings"},
		{Method: http.MethodGet, Prefix: "/v1/customers"},
		{Prefix: "/v1/users"},
	}
	for _, prefix := range []string{"/v1/services", "/v1/blogs", "/v1/videos", "/v1/shops", "/v1/files"} {
		for _, method := range []string{http.MethodPost, http.MethodPatch, http.MethodDelete} {
			routes = append(routes, AdminRoute{Method: method, Prefix: prefix})
		}
	}
	return routes
}

// ParseAdminRoutes parses "METHOD /prefix" or "/prefix" entries.
func ParseAdminRoutes(entries []string) ([]AdminRoute, error) {
	routes := make([]AdminRoute, 0, len(entries))
	for _, entry := range entries {
		fields := strings.Fields(entry)
		var r AdminRoute
		switch len(fields) {
		case 1:
			r.Prefix = fields[0]
		case 2:
			r.Method, r.Prefix = strings.ToUpper(fields[0]), fields[1]
		default:
			return nil, fmt.Errorf("invalid admin route %q", entry)
		}
		if !strings.HasPrefix(r.Prefix, "/") {
			return nil, fmt.Errorf("invalid admin route %q: prefix must start with /", entry)
		}
		routes = append(routes, r)
	}
	return routes, nil
}

// Gate decides, on every request, whether the caller may use an admin route.
type Gate struct {
	routes   []AdminRoute
	accounts AccountLookup
}

func NewGate(routes []AdminRoute, accounts AccountLookup) *Gate {
	return &Gate{routes: routes, accounts: accounts}
}

// IsAdminRoute reports whether method and path fall under an admin route.
func (g *Gate) IsAdminRoute(method, path string) bool {
	for _, r := range g.routes {
		if r.matches(method, path) {
			return true
		}
	}
	return false
}

// Check returns nil when the request may proceed. For admin routes it answers
// 401 without a principal, 404 when the user record is gone, 403 when the
// user is not an active admin and 500 when the lookup fails.
func (g *Gate) Check(ctx context.Context, method, path string) error {
	if !g.IsAdminRoute(method, path) {
		return nil
	}

	p, ok := PrincipalFrom(ctx)
	if !ok {
		return apperror.ErrUnauthorized
	}

	account, err := g.accounts.LookupAccount(ctx, p.UserID)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return ErrUserMissing
		}
		return apperror.Wrap(err, http.StatusInternalServerError, "internal server error")
	}

	if !account.IsActive || account.Role != RoleAdmin {
		return apperror.ErrForbidden
	}
	return nil
}

// Middleware runs Check against the matched route template, falling back to
// the raw path for unmatched routes. On other routes a token that claims admin
// is checked against the stored account and downgraded to staff when the
// account is no longer an active admin, so IsAdminRequest follows the record.
func (g *Gate) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		ctx := c.Request.Context()
		if err := g.Check(ctx, c.Request.Method, path); err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		if !g.IsAdminRoute(c.Request.Method, path) {
			if p, ok := PrincipalFrom(ctx); ok && p.IsAdmin() && !g.isStoredAdmin(ctx, p.UserID) {
				p.Role = RoleStaff
				c.Request = c.Request.WithContext(WithPrincipal(ctx, p))
			}
		}
		c.Next()
	}
}

// isStoredAdmin reports whether id belongs to an active admin. Lookup failures
// count as no.
func (g *Gate) isStoredAdmin(ctx context.Context, id string) bool {
	account, err := g.accounts.LookupAccount(ctx, id)
	if err != nil {
		if !errors.Is(err, ErrAccountNotFound) {
			logging.FromContext(ctx).Warn().Err(err).Str("user_id", id).Msg("account lookup failed, treating token as non-admin")
		}
		return false
	}
	return account.IsActive && account.Role == RoleAdmin
}
