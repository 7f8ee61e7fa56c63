package forecast

import (
	"testing"

	"google.golang.org/protobuf/types/known/structpb"
)

func TestSeriesToStructValuesRoundTrip(t *testing.T) {
	series := []Point{{Date: "2026-01-01", Count: 12}, {Date: "2026-01-02", Count: 15}}

	listValue, err := structpb.NewList(seriesToStructValues(series))
	if err != nil {
		t.Fatalf("NewList: %v", err)
	}
	value := structpb.NewListValue(listValue)

	got := structValuesToSeries(value)
	if len(got) != len(series) {
		t.Fatalf("expected %d points, got %d", len(series), len(got))
	}
	for i, p := range series {
		if got[i] != p {
			t.Errorf("point %d = %+v, want %+v", i, got[i], p)
		}
	}
}

func TestStructValuesToSeriesNilListIsNil(t *testing.T) {
	if got := structValuesToSeries(structpb.NewNullValue()); got != nil {
		t.Errorf("expected nil series for a non-list value, got %v", got)
	}
}

func TestStructToStatsRoundTrip(t *testing.T) {
	s, err := structpb.NewStruct(map[string]any{"mean": 3.5, "stddev": 1.2})
	if err != nil {
		t.Fatalf("NewStruct: %v", err)
	}
	value := structpb.NewStructValue(s)

	got := structToStats(value)
	if got["mean"] != 3.5 {
		t.Errorf("mean = %v, want 3.5", got["mean"])
	}
	if got["stddev"] != 1.2 {
		t.Errorf("stddev = %v, want 1.2", got["stddev"])
	}
}

func TestStructToStatsNilIsEmpty(t *testing.T) {
	got := structToStats(structpb.NewNullValue())
	if len(got) != 0 {
		t.Errorf("expected empty stats, got %v", got)
	}
}
