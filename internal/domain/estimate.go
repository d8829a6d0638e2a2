package domain

import (
	"math"
)

// Route defaults used when the provider responds without distance or
// duration summary fields.
const (
	defaultRouteMeters  = 500
	defaultRouteSeconds = 600
)

// Delivery fee parameters: a flat base plus a per-100-meter increment.
const (
	baseFee             = 10
	feePerHundredMeters = 0.5
)

// Estimate is a delivery quote between two pickup points. Note is set to
// "fallback" when the quote is the fixed substitute served on provider
// failure.
type Estimate struct {
	Meters  float64 `json:"meters"`
	Minutes int     `json:"minutes"`
	Fee     int     `json:"fee"`
	Note    string  `json:"note,omitempty"`
}

// NewEstimate converts a route's distance (meters) and duration (seconds)
// into a delivery quote. Missing values fall back to 500 m / 600 s.
func NewEstimate(meters, seconds float64) Estimate {
	if meters <= 0 || math.IsNaN(meters) || math.IsInf(meters, 0) {
		meters = defaultRouteMeters
	}
	if seconds <= 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		seconds = defaultRouteSeconds
	}

	minutes := int(math.Ceil(seconds / 60))
	fee := int(math.Ceil(baseFee + math.Ceil(meters/100)*feePerHundredMeters))

	return Estimate{
		Meters:  meters,
		Minutes: minutes,
		Fee:     fee,
	}
}

// FallbackEstimate is the fixed always-successful quote served when the
// routing provider cannot be used. Estimate degradation must never block the
// checkout flow.
func FallbackEstimate() Estimate {
	return Estimate{
		Meters:  500,
		Minutes: 10,
		Fee:     20,
		Note:    "fallback",
	}
}
