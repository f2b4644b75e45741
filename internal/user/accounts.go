package user

import (
	"context"
	"errors"

	"github.com/nekogravitycat/garage-booking-backend/internal/auth"
)

// AccountLookup exposes users to the authorization gate.
type AccountLookup struct {
	repo Repository
}

func NewAccountLookup(repo Repository) *AccountLookup {
	return &AccountLookup{repo: repo}
}

func (l *AccountLookup) LookupAccount(ctx context.Context, id string) (*auth.Account, error) {
	u, err := l.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, auth.ErrAccountNotFound
		}
		return nil, err
	}
	return &auth.Account{ID: u.ID, Role: u.Role, IsActive: u.IsActive}, nil
}
