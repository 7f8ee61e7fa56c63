package forecast

import (
	"context"
	"testing"
)

func TestNoOpReturnsSeriesUnchanged(t *testing.T) {
	series := []Point{{Date: "2026-01", Count: 4}, {Date: "2026-02", Count: 7}}
	res, err := NoOp{}.Forecast(context.Background(), series, 30)
	if err != nil {
		t.Fatalf("Forecast: %v", err)
	}
	if len(res.Historical) != 2 {
		t.Fatalf("expected historical to pass through unchanged, got %d points", len(res.Historical))
	}
	if len(res.Forecast) != 0 {
		t.Errorf("expected no forecast points from NoOp, got %d", len(res.Forecast))
	}
}
