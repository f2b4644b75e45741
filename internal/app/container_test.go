package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/garage-booking-backend/internal/config"
	"github.com/nekogravitycat/garage-booking-backend/internal/vehicle"
)

func TestVehicleGatewayWaitsForSlowRegistry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(1200 * time.Millisecond):
		case <-r.Context().Done():
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"registrationNumber":"AB12CDE","make":"FORD"}`))
	}))
	t.Cleanup(srv.Close)

	gw := newVehicleGateway(&config.Config{VehicleAPIURL: srv.URL, VehicleAPIKey: "test-key"})
	v, err := gw.Lookup(context.Background(), "AB12CDE")
	require.NoError(t, err)
	assert.Equal(t, "FORD", v.Make)
}

func TestVehicleGatewayStopsWithRequestContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	gw := newVehicleGateway(&config.Config{VehicleAPIURL: srv.URL})
	_, err := gw.Lookup(ctx, "AB12CDE")
	assert.ErrorIs(t, err, vehicle.ErrUpstream)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
