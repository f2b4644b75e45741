package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/garage-booking-backend/internal/auth"
	"github.com/nekogravitycat/garage-booking-backend/internal/booking"
	"github.com/nekogravitycat/garage-booking-backend/internal/pricing"
	"github.com/nekogravitycat/garage-booking-backend/internal/user"
	"github.com/nekogravitycat/garage-booking-backend/internal/vehicle"
)

const (
	adminID   = "aaaaaaaa-0000-0000-0000-000000000001"
	staffID   = "aaaaaaaa-0000-0000-0000-000000000002"
	goneID    = "aaaaaaaa-0000-0000-0000-000000000003"
	bookingID = "bbbbbbbb-0000-0000-0000-000000000001"
)

type fakeAccounts map[string]*auth.Account

func (f fakeAccounts) LookupAccount(_ context.Context, id string) (*auth.Account, error) {
	if a, ok := f[id]; ok {
		return a, nil
	}
	return nil, auth.ErrAccountNotFound
}

type fakeBookings struct {
	booking.Service
	deleted bool
}

func (f *fakeBookings) UpdateStatus(_ context.Context, id string, status booking.Status) (*booking.Booking, error) {
	return &booking.Booking{ID: id, Status: status}, nil
}

func (f *fakeBookings) Delete(context.Context, string) error {
	f.deleted = true
	return nil
}

type fakeUsers struct {
	user.Service
}

func (fakeUsers) GetByID(_ context.Context, id string) (*user.User, error) {
	return &user.User{ID: id, Email: "staff@garage.test", Role: auth.RoleStaff, IsActive: true}, nil
}

type fakeVehicles struct{}

func (fakeVehicles) Lookup(_ context.Context, registration string) (*vehicle.Vehicle, error) {
	return &vehicle.Vehicle{RegistrationNumber: registration, Make: "FORD"}, nil
}

type harness struct {
	router   *gin.Engine
	jwt      *auth.JWTManager
	bookings *fakeBookings
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwt := auth.NewJWTManager("test-secret", time.Hour)
	accounts := fakeAccounts{
		adminID: {ID: adminID, Role: auth.RoleAdmin, IsActive: true},
		staffID: {ID: staffID, Role: auth.RoleStaff, IsActive: true},
	}
	bookings := &fakeBookings{}

	r, err := NewRouter(Config{
		JWTManager:     jwt,
		Gate:           auth.NewGate(auth.DefaultAdminRoutes(), accounts),
		UserService:    fakeUsers{},
		VehicleGateway: fakeVehicles{},
		Calculator:     pricing.NewCalculator(2026),
		BookingService: bookings,
	})
	require.NoError(t, err)
	return &harness{router: r, jwt: jwt, bookings: bookings}
}

func (h *harness) do(t *testing.T, method, target, body, userID, role string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if userID != "" {
		token, err := h.jwt.GenerateAccessToken(auth.Principal{UserID: userID, Role: role})
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func TestGateOnBookingMutations(t *testing.T) {
	h := newHarness(t)
	patch := "/v1/bookings/" + bookingID

	assert.Equal(t, http.StatusUnauthorized, h.do(t, http.MethodPatch, patch, `{"status":"Booked"}`, "", "").Code)
	assert.Equal(t, http.StatusForbidden, h.do(t, http.MethodPatch, patch, `{"status":"Booked"}`, staffID, auth.RoleStaff).Code)
	// The stored role wins over the one in the token.
	assert.Equal(t, http.StatusForbidden, h.do(t, http.MethodPatch, patch, `{"status":"Booked"}`, staffID, auth.RoleAdmin).Code)
	assert.Equal(t, http.StatusNotFound, h.do(t, http.MethodPatch, patch, `{"status":"Booked"}`, goneID, auth.RoleAdmin).Code)

	w := h.do(t, http.MethodPatch, patch, `{"status":"Booked"}`, adminID, auth.RoleAdmin)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"Booked"`)

	assert.Equal(t, http.StatusUnauthorized, h.do(t, http.MethodDelete, patch, "", "", "").Code)
	assert.False(t, h.bookings.deleted)
	assert.Equal(t, http.StatusNoContent, h.do(t, http.MethodDelete, patch, "", adminID, auth.RoleAdmin).Code)
	assert.True(t, h.bookings.deleted)
}

func TestPublicRoutesPassGate(t *testing.T) {
	h := newHarness(t)

	// Reaches the handler, which rejects the empty body.
	assert.Equal(t, http.StatusBadRequest, h.do(t, http.MethodPost, "/v1/bookings", `{}`, "", "").Code)

	w := h.do(t, http.MethodGet, "/v1/estimates/service-types", "", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "full_service")

	assert.Equal(t, http.StatusOK, h.do(t, http.MethodGet, "/healthz", "", "", "").Code)
	assert.Equal(t, http.StatusOK, h.do(t, http.MethodGet, "/metrics", "", "", "").Code)
}

func TestProfileOpenToSignedInUsers(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, http.StatusUnauthorized, h.do(t, http.MethodGet, "/v1/me", "", "", "").Code)

	w := h.do(t, http.MethodGet, "/v1/me", "", staffID, auth.RoleStaff)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "staff@garage.test")

	assert.Equal(t, http.StatusForbidden, h.do(t, http.MethodGet, "/v1/users", "", staffID, auth.RoleStaff).Code)
}

func TestRequestIDEchoed(t *testing.T) {
	h := newHarness(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "req-123")
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))
}

func TestVehicleLookupServedUnderBothPrefixes(t *testing.T) {
	h := newHarness(t)

	for _, target := range []string{"/v1/vehicle-lookup", "/api/vehicle-lookup"} {
		w := h.do(t, http.MethodPost, target, `{"registrationNumber":"AB12CDE"}`, "", "")
		assert.Equal(t, http.StatusOK, w.Code, target)
		assert.Contains(t, w.Body.String(), `"make":"FORD"`, target)
	}
}
