package vehicle

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/nekogravitycat/garage-booking-backend/internal/logging"
	"github.com/nekogravitycat/garage-booking-backend/internal/metrics"
	"github.com/nekogravitycat/garage-booking-backend/internal/pkg/apperror"
)

// Gateway resolves registration marks to vehicle records.
type Gateway interface {
	Lookup(ctx context.Context, registration string) (*Vehicle, error)
}

// upstreamVehicle mirrors the registry payload. Pointers tell absent from zero.
type upstreamVehicle struct {
	RegistrationNumber *string `json:"registrationNumber"`
	Make               *string `json:"make"`
	Model              *string `json:"model"`
	Colour             *string `json:"colour"`
	FuelType           *string `json:"fuelType"`
	EngineCapacity     *int    `json:"engineCapacity"`
	YearOfManufacture  *int    `json:"yearOfManufacture"`
	MotStatus          *string `json:"motStatus"`
	TaxStatus          *string `json:"taxStatus"`
	MotExpiryDate      *string `json:"motExpiryDate"`
	TaxDueDate         *string `json:"taxDueDate"`
}

// maxUpstreamBody bounds how much of a registry response is read.
const maxUpstreamBody = 1 << 20

// Client calls the vehicle registry once per lookup. It never caches or
// retries; cancellation comes only from the request context.
type Client struct {
	url    string
	apiKey string
	http   *http.Client
}

// NewClient creates a registry client. A nil httpClient uses a client with no
// timeout of its own.
func NewClient(url, apiKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{url: url, apiKey: apiKey, http: httpClient}
}

func (c *Client) Lookup(ctx context.Context, registration string) (*Vehicle, error) {
	reg := NormalizeRegistration(registration)
	if !ValidRegistration(reg) {
		metrics.RecordVehicleLookup("invalid", 0)
		return nil, ErrInvalidFormat
	}

	start := time.Now()
	v, outcome, err := c.call(ctx, reg)
	metrics.RecordVehicleLookup(outcome, time.Since(start))
	if err != nil {
		logging.FromContext(ctx).Warn().
			Err(err).
			AnErr("cause", apperror.Cause(err)).
			Str("outcome", outcome).
			Msg("vehicle lookup failed")
		return nil, err
	}
	return v, nil
}

func (c *Client) call(ctx context.Context, reg string) (*Vehicle, string, error) {
	body, err := json.Marshal(map[string]string{"registrationNumber": reg})
	if err != nil {
		return nil, "upstream_error", fmt.Errorf("encode lookup request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, "upstream_error", apperror.Wrap(err, http.StatusBadGateway, ErrUpstream.Message)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "upstream_error", apperror.Wrap(err, http.StatusBadGateway, ErrUpstream.Message)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, "not_found", ErrNotFound
	case resp.StatusCode == http.StatusBadRequest:
		return nil, "invalid", ErrInvalidFormat
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, "rate_limited", ErrRateLimited
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		cause := fmt.Errorf("registry answered %d", resp.StatusCode)
		return nil, "upstream_error", apperror.Wrap(cause, http.StatusBadGateway, ErrUpstream.Message)
	}

	var payload upstreamVehicle
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxUpstreamBody)).Decode(&payload); err != nil {
		cause := fmt.Errorf("decode registry payload: %w", err)
		return nil, "upstream_error", apperror.Wrap(cause, http.StatusBadGateway, ErrUpstream.Message)
	}

	v := normalize(payload)
	if v.RegistrationNumber == Unknown {
		v.RegistrationNumber = reg
	}
	return v, "found", nil
}

func normalize(p upstreamVehicle) *Vehicle {
	return &Vehicle{
		RegistrationNumber: text(p.RegistrationNumber),
		Make:               text(p.Make),
		Model:              text(p.Model),
		Colour:             text(p.Colour),
		FuelType:           text(p.FuelType),
		EngineCapacity:     number(p.EngineCapacity),
		YearOfManufacture:  number(p.YearOfManufacture),
		MotStatus:          text(p.MotStatus),
		TaxStatus:          text(p.TaxStatus),
		MotExpiryDate:      text(p.MotExpiryDate),
		TaxDueDate:         text(p.TaxDueDate),
	}
}

func text(s *string) string {
	if s == nil || *s == "" {
		return Unknown
	}
	return *s
}

func number(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}
