package vehicle

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/garage-booking-backend/internal/pkg/apperror"
)

func newUpstream(t *testing.T, status int, body string) (*httptest.Server, *int) {
	t.Helper()
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))

		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var req map[string]string
		require.NoError(t, json.Unmarshal(raw, &req))
		assert.Equal(t, "AB12CDE", req["registrationNumber"])

		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestLookupNormalizesPayload(t *testing.T) {
	srv, calls := newUpstream(t, http.StatusOK, `{
		"registrationNumber": "AB12CDE",
		"make": "FORD",
		"colour": "BLUE",
		"engineCapacity": 1596,
		"yearOfManufacture": 2015,
		"motStatus": "Valid"
	}`)

	v, err := NewClient(srv.URL, "test-key", nil).Lookup(context.Background(), "ab12 cde")
	require.NoError(t, err)
	assert.Equal(t, 1, *calls)

	assert.Equal(t, &Vehicle{
		RegistrationNumber: "AB12CDE",
		Make:               "FORD",
		Model:              Unknown,
		Colour:             "BLUE",
		FuelType:           Unknown,
		EngineCapacity:     1596,
		YearOfManufacture:  2015,
		MotStatus:          "Valid",
		TaxStatus:          Unknown,
		MotExpiryDate:      Unknown,
		TaxDueDate:         Unknown,
	}, v)
}

func TestLookupEmptyPayloadUsesDefaults(t *testing.T) {
	srv, _ := newUpstream(t, http.StatusOK, `{}`)

	v, err := NewClient(srv.URL, "test-key", nil).Lookup(context.Background(), "AB12CDE")
	require.NoError(t, err)
	assert.Equal(t, "AB12CDE", v.RegistrationNumber)
	assert.Equal(t, Unknown, v.Make)
	assert.Zero(t, v.EngineCapacity)
	assert.Zero(t, v.YearOfManufacture)
}

func TestLookupMapsUpstreamStatus(t *testing.T) {
	tests := []struct {
		upstream int
		want     *apperror.AppError
		status   int
	}{
		{http.StatusNotFound, ErrNotFound, http.StatusNotFound},
		{http.StatusBadRequest, ErrInvalidFormat, http.StatusBadRequest},
		{http.StatusTooManyRequests, ErrRateLimited, http.StatusTooManyRequests},
		{http.StatusInternalServerError, ErrUpstream, http.StatusBadGateway},
		{http.StatusForbidden, ErrUpstream, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.upstream), func(t *testing.T) {
			srv, calls := newUpstream(t, tt.upstream, `{"errors":[]}`)

			_, err := NewClient(srv.URL, "test-key", nil).Lookup(context.Background(), "AB12CDE")
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, tt.status, apperror.StatusOf(err))
			assert.Equal(t, 1, *calls, "no retries")
		})
	}
}

func TestLookupRejectsInvalidFormatWithoutCallingUpstream(t *testing.T) {
	srv, calls := newUpstream(t, http.StatusOK, `{}`)

	_, err := NewClient(srv.URL, "test-key", nil).Lookup(context.Background(), "NOT A PLATE")
	assert.ErrorIs(t, err, ErrInvalidFormat)
	assert.Zero(t, *calls)
}

func TestLookupTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, "test-key", nil).Lookup(context.Background(), "AB12CDE")
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestLookupMalformedPayload(t *testing.T) {
	srv, _ := newUpstream(t, http.StatusOK, `{"make":`)

	_, err := NewClient(srv.URL, "test-key", nil).Lookup(context.Background(), "AB12CDE")
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestNilHTTPClientHasNoTimeout(t *testing.T) {
	c := NewClient("http://registry.invalid", "test-key", nil)
	require.NotNil(t, c.http)
	assert.Zero(t, c.http.Timeout)
}
