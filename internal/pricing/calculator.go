// Package pricing estimates service prices from static multiplier tables.
package pricing

import (
	"math"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/nekogravitycat/garage-booking-backend/internal/pkg/apperror"
)

var ErrUnknownServiceType = apperror.New(http.StatusBadRequest, "unknown service type")

var basePrices = map[string]float64{
	"interim_service": 149,
	"full_service":    229,
	"major_service":   329,
	"mot":             55,
	"oil_change":      89,
	"brake_service":   179,
	"air_con_regas":   79,
	"diagnostics":     69,
}

// Keys are lower case.
var makeMultipliers = map[string]float64{
	"bmw":           1.3,
	"mercedes-benz": 1.35,
	"mercedes":      1.35,
	"audi":          1.25,
	"land rover":    1.4,
	"range rover":   1.4,
	"jaguar":        1.35,
	"porsche":       1.6,
	"volvo":         1.15,
	"lexus":         1.2,
	"mini":          1.1,
	"volkswagen":    1.1,
	"vw":            1.1,
	"skoda":         1.0,
	"seat":          1.0,
	"ford":          1.0,
	"toyota":        1.0,
	"honda":         1.0,
	"nissan":        1.0,
	"hyundai":       0.95,
	"kia":           0.95,
	"vauxhall":      0.95,
	"peugeot":       0.95,
	"citroen":       0.95,
	"renault":       0.95,
	"fiat":          0.9,
	"dacia":         0.9,
}

type bracket struct {
	upTo       int
	multiplier float64
}

var engineBrackets = []bracket{
	{1400, 1.0},
	{2000, 1.1},
	{3000, 1.25},
}

const largeEngineMultiplier = 1.4

var ageBrackets = []bracket{
	{3, 1.0},
	{7, 1.05},
	{12, 1.15},
	{20, 1.25},
}

const oldVehicleMultiplier = 1.4

// ServiceType is a priced service with its base price.
type ServiceType struct {
	Code      string  `json:"code"`
	BasePrice float64 `json:"basePrice"`
}

// Calculator prices services. It holds no mutable state and is safe for
// concurrent use.
type Calculator struct {
	referenceYear int
}

// NewCalculator fixes the reference year used for vehicle age.
func NewCalculator(referenceYear int) *Calculator {
	return &Calculator{referenceYear: referenceYear}
}

// NewCalculatorNow uses the current calendar year.
func NewCalculatorNow() *Calculator {
	return NewCalculator(time.Now().Year())
}

// Price returns the estimate rounded to the nearest whole currency unit.
// An unknown make prices like a 1.0 multiplier.
func (c *Calculator) Price(serviceType, vehicleMake string, engineCapacityCc, manufactureYear int) (int, error) {
	base, ok := basePrices[strings.ToLower(strings.TrimSpace(serviceType))]
	if !ok {
		return 0, ErrUnknownServiceType
	}

	price := base *
		MakeMultiplier(vehicleMake) *
		EngineMultiplier(engineCapacityCc) *
		c.AgeMultiplier(manufactureYear)

	return int(math.Round(price)), nil
}

// MakeMultiplier looks vehicleMake up case-insensitively, defaulting to 1.0.
func MakeMultiplier(vehicleMake string) float64 {
	if m, ok := makeMultipliers[strings.ToLower(strings.TrimSpace(vehicleMake))]; ok {
		return m
	}
	return 1.0
}

// EngineMultiplier maps engine capacity in cc to its bracket. Zero or negative
// capacity means unknown and multiplies by 1.0.
func EngineMultiplier(cc int) float64 {
	if cc <= 0 {
		return 1.0
	}
	for _, b := range engineBrackets {
		if cc <= b.upTo {
			return b.multiplier
		}
	}
	return largeEngineMultiplier
}

// AgeMultiplier maps a manufacture year to its age bracket. Unknown (0) and
// future years multiply by 1.0.
func (c *Calculator) AgeMultiplier(year int) float64 {
	if year <= 0 || year > c.referenceYear {
		return 1.0
	}
	age := c.referenceYear - year
	for _, b := range ageBrackets {
		if age <= b.upTo {
			return b.multiplier
		}
	}
	return oldVehicleMultiplier
}

// ServiceTypes lists priced services ordered by code.
func (c *Calculator) ServiceTypes() []ServiceType {
	out := make([]ServiceType, 0, len(basePrices))
	for code, price := range basePrices {
		out = append(out, ServiceType{Code: code, BasePrice: price})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// LineItem is the price of one service in an estimate.
type LineItem struct {
	ServiceType string `json:"serviceType"`
	Price       int    `json:"price"`
}

// Estimate prices several services for one vehicle.
type Estimate struct {
	Items []LineItem `json:"items"`
	Total int        `json:"total"`
}

// Estimate prices each requested service. Duplicate service types are priced once.
func (c *Calculator) Estimate(serviceTypes []string, vehicleMake string, engineCapacityCc, manufactureYear int) (*Estimate, error) {
	est := &Estimate{Items: make([]LineItem, 0, len(serviceTypes))}
	seen := make(map[string]bool, len(serviceTypes))

	for _, st := range serviceTypes {
		code := strings.ToLower(strings.TrimSpace(st))
		if seen[code] {
			continue
		}
		seen[code] = true

		price, err := c.Price(code, vehicleMake, engineCapacityCc, manufactureYear)
		if err != nil {
			return nil, apperror.Wrap(err, ErrUnknownServiceType.Code, ErrUnknownServiceType.Message+": "+st)
		}
		est.Items = append(est.Items, LineItem{ServiceType: code, Price: price})
		est.Total += price
	}
	return est, nil
}
