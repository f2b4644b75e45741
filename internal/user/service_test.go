package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/garage-booking-backend/internal/auth"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepository) GetByID(ctx context.Context, id string) (*User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepository) Create(ctx context.Context, u *User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockRepository) UpdateLastLogin(ctx context.Context, id string, t time.Time) error {
	return m.Called(ctx, id, t).Error(0)
}

func (m *mockRepository) List(ctx context.Context, filter Filter) ([]*User, int, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*User), args.Int(1), args.Error(2)
}

func (m *mockRepository) Update(ctx context.Context, u *User) error {
	return m.Called(ctx, u).Error(0)
}

func newTestService(repo Repository) *service {
	s := NewService(repo, auth.NewBcryptPasswordHasherWithCost(4)).(*service)
	s.now = func() time.Time { return time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC) }
	return s
}

func hashed(t *testing.T, plain string) string {
	t.Helper()
	h, err := auth.NewBcryptPasswordHasherWithCost(4).Hash(plain)
	require.NoError(t, err)
	return h
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepository)
	s := newTestService(repo)

	active := &User{ID: "u1", Email: "admin@garage.test", PasswordHash: hashed(t, "password1"), Role: auth.RoleAdmin, IsActive: true}
	repo.On("GetByEmail", ctx, "admin@garage.test").Return(active, nil)
	repo.On("UpdateLastLogin", ctx, "u1", mock.AnythingOfType("time.Time")).Return(nil)
	repo.On("GetByEmail", ctx, "nobody@garage.test").Return(nil, ErrNotFound)

	u, err := s.Login(ctx, "  Admin@Garage.test ", "password1")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)
	require.NotNil(t, u.LastLoginAt)

	_, err = s.Login(ctx, "admin@garage.test", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = s.Login(ctx, "nobody@garage.test", "password1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUpgradesOutdatedHash(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepository)
	s := newTestService(repo)

	old, err := auth.NewBcryptPasswordHasherWithCost(5).Hash("password1")
	require.NoError(t, err)
	repo.On("GetByEmail", ctx, "a@garage.test").
		Return(&User{ID: "u4", PasswordHash: old, IsActive: true}, nil)
	repo.On("Update", ctx, mock.MatchedBy(func(u *User) bool {
		return u.ID == "u4" && u.PasswordHash != old
	})).Return(nil)
	repo.On("UpdateLastLogin", ctx, "u4", mock.Anything).Return(nil)

	u, err := s.Login(ctx, "a@garage.test", "password1")
	require.NoError(t, err)
	assert.False(t, s.hasher.NeedsRehash(u.PasswordHash))
	repo.AssertExpectations(t)
}

func TestLoginInactiveUser(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepository)
	s := newTestService(repo)

	repo.On("GetByEmail", ctx, "old@garage.test").
		Return(&User{ID: "u2", PasswordHash: hashed(t, "password1"), IsActive: false}, nil)

	_, err := s.Login(ctx, "old@garage.test", "password1")
	assert.ErrorIs(t, err, ErrInactiveUser)
	repo.AssertNotCalled(t, "UpdateLastLogin", mock.Anything, mock.Anything, mock.Anything)
}

func TestLoginSurvivesLastLoginFailure(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepository)
	s := newTestService(repo)

	repo.On("GetByEmail", ctx, "a@garage.test").
		Return(&User{ID: "u3", PasswordHash: hashed(t, "password1"), IsActive: true}, nil)
	repo.On("UpdateLastLogin", ctx, "u3", mock.Anything).Return(errors.New("db down"))

	u, err := s.Login(ctx, "a@garage.test", "password1")
	require.NoError(t, err)
	assert.Nil(t, u.LastLoginAt)
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepository)
	s := newTestService(repo)

	repo.On("Create", ctx, mock.MatchedBy(func(u *User) bool {
		return u.Email == "staff@garage.test" && u.Role == auth.RoleStaff && u.IsActive && u.PasswordHash != "password1"
	})).Return(nil)

	u, err := s.Create(ctx, CreateRequest{Email: " Staff@garage.test", Password: "password1", Name: " Sam "})
	require.NoError(t, err)
	assert.Equal(t, "Sam", u.Name)

	_, err = s.Create(ctx, CreateRequest{Email: "x@garage.test", Password: "short"})
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	_, err = s.Create(ctx, CreateRequest{Email: "x@garage.test", Password: "password1", Role: "owner"})
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestUpdateProfileDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepository)
	s := newTestService(repo)

	repo.On("GetByID", ctx, "u1").Return(&User{ID: "u1", Email: "me@garage.test"}, nil)
	repo.On("Update", ctx, mock.Anything).Return(ErrEmailAlreadyUsed)

	taken := "taken@garage.test"
	_, err := s.UpdateProfile(ctx, "u1", ProfileUpdate{Email: &taken})
	assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepository)
	s := newTestService(repo)

	repo.On("GetByID", ctx, "u1").Return(&User{ID: "u1", Email: "me@garage.test", Role: auth.RoleStaff}, nil)
	repo.On("Update", ctx, mock.Anything).Return(nil)

	name, email := " New Name ", "NEW@garage.test"
	u, err := s.UpdateProfile(ctx, "u1", ProfileUpdate{Name: &name, Email: &email})
	require.NoError(t, err)
	assert.Equal(t, "New Name", u.Name)
	assert.Equal(t, "new@garage.test", u.Email)
	assert.Equal(t, auth.RoleStaff, u.Role, "profile update never touches role")
}

func TestUpdateByAdmin(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepository)
	s := newTestService(repo)

	repo.On("GetByID", ctx, "u1").Return(&User{ID: "u1", Role: auth.RoleStaff, IsActive: true}, nil)
	repo.On("Update", ctx, mock.Anything).Return(nil)
	repo.On("GetByID", ctx, "missing").Return(nil, ErrNotFound)

	role, active := auth.RoleAdmin, false
	u, err := s.Update(ctx, "u1", UpdateRequest{Role: &role, IsActive: &active})
	require.NoError(t, err)
	assert.Equal(t, auth.RoleAdmin, u.Role)
	assert.False(t, u.IsActive)

	_, err = s.Update(ctx, "missing", UpdateRequest{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAccountLookup(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepository)
	repo.On("GetByID", ctx, "u1").Return(&User{ID: "u1", Role: auth.RoleAdmin, IsActive: true}, nil)
	repo.On("GetByID", ctx, "gone").Return(nil, ErrNotFound)

	l := NewAccountLookup(repo)

	acc, err := l.LookupAccount(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, &auth.Account{ID: "u1", Role: auth.RoleAdmin, IsActive: true}, acc)

	_, err = l.LookupAccount(ctx, "gone")
	assert.ErrorIs(t, err, auth.ErrAccountNotFound)
}
