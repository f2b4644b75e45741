package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)

	token, err := m.GenerateAccessToken(Principal{UserID: "u1", Email: "a@b.c", Role: RoleAdmin})
	require.NoError(t, err)

	claims, err := m.ParseAndValidate(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "a@b.c", claims.Email)
	assert.Equal(t, RoleAdmin, claims.Role)
}

func TestJWTRejectsExpiredAndForeignTokens(t *testing.T) {
	expired := NewJWTManager("secret", -time.Minute)
	token, err := expired.GenerateAccessToken(Principal{UserID: "u1"})
	require.NoError(t, err)
	_, err = NewJWTManager("secret", time.Hour).ParseAndValidate(token)
	assert.Error(t, err)

	other := NewJWTManager("other", time.Hour)
	token, err = other.GenerateAccessToken(Principal{UserID: "u1"})
	require.NoError(t, err)
	_, err = NewJWTManager("secret", time.Hour).ParseAndValidate(token)
	assert.Error(t, err)
}

func TestBcryptPasswordHasher(t *testing.T) {
	h := NewBcryptPasswordHasherWithCost(4)

	hash, err := h.Hash("hunter22")
	require.NoError(t, err)
	assert.NoError(t, h.Compare(hash, "hunter22"))
	assert.Error(t, h.Compare(hash, "hunter23"))
	assert.False(t, h.NeedsRehash(hash))
	assert.True(t, NewBcryptPasswordHasherWithCost(5).NeedsRehash(hash))
	assert.True(t, h.NeedsRehash("not-a-hash"))

	_, err = h.Hash(strings.Repeat("x", 73))
	assert.ErrorIs(t, err, ErrPasswordTooLong)
}

func TestBcryptCostClamped(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptPasswordHasherWithCost(0).cost)
	assert.Equal(t, bcrypt.MinCost, NewBcryptPasswordHasherWithCost(1).cost)
	assert.Equal(t, bcrypt.MaxCost, NewBcryptPasswordHasherWithCost(99).cost)
}
