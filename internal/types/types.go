package types

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// WeatherRecord is one row of the output table. Numeric fields are nil
// when the provider omitted that date from the series.
type WeatherRecord struct {
	Date           string
	State          string
	TemperatureMax *float64
	TemperatureMin *float64
	Humidity       *float64
	Precipitation  *float64
	WindSpeed      *float64
}

type WeatherTable []WeatherRecord
