package user

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/garage-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, "user not found")
	ErrEmailAlreadyUsed   = apperror.New(http.StatusConflict, "email already used")
	ErrInvalidCredentials = apperror.New(http.StatusUnauthorized, "invalid email or password")
	ErrInactiveUser       = apperror.New(http.StatusForbidden, "user is inactive")
	ErrEmailRequired      = apperror.New(http.StatusBadRequest, "email is required")
	ErrPasswordTooShort   = apperror.New(http.StatusBadRequest, "password must be at least 8 characters")
	ErrPasswordTooLong    = apperror.New(http.StatusBadRequest, "password must be at most 72 bytes")
	ErrInvalidRole        = apperror.New(http.StatusBadRequest, "role must be admin or staff")
)

// User is an admin dashboard account.
type User struct {
	ID           string // UUID
	Email        string
	PasswordHash string
	Name         string
	Role         string
	IsActive     bool
	CreatedAt    time.Time
	LastLoginAt  *time.Time
}

// Filter defines filter options for listing users.
type Filter struct {
	Search   string
	Role     string
	IsActive *bool // nil means any

	Page     int
	Limit    int
	SortBy   string
	SortDesc bool
}
