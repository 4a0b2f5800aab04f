package etl

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/evanhutnik/weather-etl/internal/power"
	t "github.com/evanhutnik/weather-etl/internal/types"
)

// Output column order is fixed and matches the CSV header.
var columns = []string{"date", "state", "Temperature_Max", "Temperature_Min", "Humidity", "Precipitation", "Wind_Speed"}

// Normalize reshapes a raw POWER response into one row per date, with
// the location attached to every row. Dates are the sorted union of the
// five series' keys; a series missing a date leaves that cell nil.
func Normalize(resp *power.Response, location string) (t.WeatherTable, error) {
	if resp == nil || len(resp.Properties.Parameter) == 0 {
		return nil, errors.New("no weather data available")
	}
	params := resp.Properties.Parameter
	for _, code := range power.ParameterCodes {
		if _, ok := params[code]; !ok {
			return nil, errors.New(fmt.Sprintf("missing expected data field %v", code))
		}
	}

	dateSet := make(map[string]struct{})
	for _, code := range power.ParameterCodes {
		for d := range params[code] {
			dateSet[d] = struct{}{}
		}
	}
	keys := make([]string, 0, len(dateSet))
	for d := range dateSet {
		keys = append(keys, d)
	}
	sort.Strings(keys)

	table := make(t.WeatherTable, 0, len(keys))
	for _, k := range keys {
		day, err := time.Parse("20060102", k)
		if err != nil {
			return nil, errors.New(fmt.Sprintf("invalid date key %q in weather data: %s", k, err.Error()))
		}
		table = append(table, t.WeatherRecord{
			Date:           day.Format("2006-01-02"),
			State:          location,
			TemperatureMax: value(params["T2M_MAX"], k),
			TemperatureMin: value(params["T2M_MIN"], k),
			Humidity:       value(params["RH2M"], k),
			Precipitation:  value(params["PRECTOTCORR"], k),
			WindSpeed:      value(params["WS2M"], k),
		})
	}
	return table, nil
}

func value(series map[string]float64, key string) *float64 {
	v, ok := series[key]
	if !ok {
		return nil
	}
	return &v
}

// row renders a record in output column order. Nil cells render empty,
// which also makes row identity distinguish missing from zero.
func row(rec t.WeatherRecord) []string {
	return []string{
		rec.Date,
		rec.State,
		cell(rec.TemperatureMax),
		cell(rec.TemperatureMin),
		cell(rec.Humidity),
		cell(rec.Precipitation),
		cell(rec.WindSpeed),
	}
}

func cell(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
