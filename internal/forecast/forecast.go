// Package forecast implements the forecaster contract the Trend Miner (C12, spec
// §4.13) hands its cleaned numeric series to: "hand the cleaned series to the
// forecaster (external) which returns historical, forecast, and stats." The
// forecaster's own internals are explicitly out of scope (spec §1); this package is
// only the client-side contract, expressed as a thin gRPC client the same way
// internal/embedding talks to its external embedding service.
package forecast

import "context"

// Point is one (date, count) sample, either an observed historical value or a
// predicted future one.
type Point struct {
	Date  string  `json:"date"`
	Count float64 `json:"count"`
}

// Stats carries whatever summary statistics the external forecaster chooses to
// compute (mean, trend slope, confidence bounds, ...); kept as a flat map since the
// core only passes it through without interpreting it (spec §4.13).
type Stats map[string]float64

// Result is the forecaster's response to Forecast.
type Result struct {
	Historical []Point `json:"historical"`
	Forecast   []Point `json:"forecast"`
	Stats      Stats   `json:"stats"`
}

// Forecaster sends a cleaned historical series to an external forecasting service and
// returns its historical/forecast/stats response.
type Forecaster interface {
	Forecast(ctx context.Context, series []Point, horizonDays int) (Result, error)
}

// NoOp returns the input series back as-is with an empty forecast and no stats, used
// when no forecaster endpoint is configured. The Trend Miner's NoData handling (spec
// §7) governs the zero-historical-points case upstream of this; NoOp only degrades
// the forecast/stats arms, never fabricates a trend.
type NoOp struct{}

func (NoOp) Forecast(_ context.Context, series []Point, _ int) (Result, error) {
	return Result{Historical: series, Forecast: nil, Stats: Stats{}}, nil
}
