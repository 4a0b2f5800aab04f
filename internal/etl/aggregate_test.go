package etl

import (
	"reflect"
	"testing"

	"github.com/evanhutnik/weather-etl/internal/types"
)

func f(v float64) *float64 {
	return &v
}

func sampleTable() types.WeatherTable {
	return types.WeatherTable{
		{Date: "2024-12-01", State: "Chennai", TemperatureMax: f(30.1), TemperatureMin: f(24.2), Humidity: f(80), Precipitation: f(0.4), WindSpeed: f(3.1)},
		{Date: "2024-12-02", State: "Chennai", TemperatureMax: f(29.8), TemperatureMin: f(24.0), Humidity: f(82), Precipitation: f(1.2), WindSpeed: f(2.8)},
	}
}

func TestAggregateIdempotentUnderDuplicateInput(t *testing.T) {
	table := sampleTable()

	once := Aggregate([]types.WeatherTable{table})
	twice := Aggregate([]types.WeatherTable{table, table})

	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("expected aggregate([T,T]) == aggregate([T]); got %d vs %d rows", len(twice), len(once))
	}
	if len(once) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(once))
	}
}

func TestAggregatePreservesInputOrder(t *testing.T) {
	chennai := sampleTable()
	mumbai := types.WeatherTable{
		{Date: "2024-12-01", State: "Mumbai", TemperatureMax: f(31.0), TemperatureMin: f(22.5), Humidity: f(70), Precipitation: f(0), WindSpeed: f(4.4)},
	}

	merged := Aggregate([]types.WeatherTable{chennai, mumbai})
	if len(merged) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(merged))
	}
	if merged[0].State != "Chennai" || merged[2].State != "Mumbai" {
		t.Fatalf("expected input order preserved, got %v then %v", merged[0].State, merged[2].State)
	}
}

func TestAggregateFullRowIdentityNotKeyed(t *testing.T) {
	a := sampleTable()
	// Same (date, state) key but a different value: not a duplicate.
	b := types.WeatherTable{
		{Date: "2024-12-01", State: "Chennai", TemperatureMax: f(99), TemperatureMin: f(24.2), Humidity: f(80), Precipitation: f(0.4), WindSpeed: f(3.1)},
	}

	merged := Aggregate([]types.WeatherTable{a, b})
	if len(merged) != 3 {
		t.Fatalf("expected key-sharing rows to survive full-row dedup, got %d rows", len(merged))
	}
}

func TestAggregateNilVersusZeroCells(t *testing.T) {
	a := types.WeatherTable{{Date: "2024-12-01", State: "Chennai", Precipitation: f(0)}}
	b := types.WeatherTable{{Date: "2024-12-01", State: "Chennai", Precipitation: nil}}

	merged := Aggregate([]types.WeatherTable{a, b})
	if len(merged) != 2 {
		t.Fatalf("expected zero and missing to be distinct rows, got %d", len(merged))
	}
}

func TestAggregateEmptyInput(t *testing.T) {
	if got := Aggregate(nil); len(got) != 0 {
		t.Fatalf("expected empty result for no input, got %d rows", len(got))
	}
	if got := Aggregate([]types.WeatherTable{nil, {}}); len(got) != 0 {
		t.Fatalf("expected empty result for empty tables, got %d rows", len(got))
	}
}
