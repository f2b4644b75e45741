package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthenticateAttachesPrincipal(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewJWTManager("secret", time.Hour)

	var got Principal
	var found bool
	r := gin.New()
	r.Use(Authenticate(m))
	r.GET("/v1/me", func(c *gin.Context) {
		got, found = CurrentPrincipal(c)
		c.Status(http.StatusOK)
	})

	token, err := m.GenerateAccessToken(Principal{UserID: "u1", Email: "a@b.c", Role: RoleStaff})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	req.Header.Set("Authorization", "bearer "+token)
	r.ServeHTTP(httptest.NewRecorder(), req)

	require.True(t, found)
	assert.Equal(t, Principal{UserID: "u1", Email: "a@b.c", Role: RoleStaff}, got)
}

func TestRequirePrincipal(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewJWTManager("secret", time.Hour)

	r := gin.New()
	r.Use(Authenticate(m), RequirePrincipal())
	r.GET("/v1/me", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"unauthorized"}`, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
