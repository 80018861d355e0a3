// models/weather.go
package models

// Typed CheckWX "decoded" response schemas. Optional blocks are pointers so a missing
// block is a nil value rather than a lookup failure; accessors below are total.

// MetarResponse is the envelope returned by /metar/{icao}/decoded.
type MetarResponse struct {
	Results int     `json:"results"`
	Data    []Metar `json:"data"`
}

// Metar is one decoded METAR observation.
type Metar struct {
	ICAO        string          `json:"icao"`
	RawText     string          `json:"raw_text"`
	Observed    string          `json:"observed"`
	Temperature *Temperature    `json:"temperature,omitempty"`
	Wind        *Wind           `json:"wind,omitempty"`
	Clouds      []Cloud         `json:"clouds,omitempty"`
	Humidity    *Humidity       `json:"humidity,omitempty"`
	Visibility  *Visibility     `json:"visibility,omitempty"`
	Conditions  []WeatherCode   `json:"conditions,omitempty"`
	Station     *StationSummary `json:"station,omitempty"`
}

// Temperature in both scales as reported.
type Temperature struct {
	Celsius    float64 `json:"celsius"`
	Fahrenheit float64 `json:"fahrenheit"`
}

// Wind block; any speed may be absent.
type Wind struct {
	Degrees  *float64 `json:"degrees,omitempty"`
	SpeedKts *float64 `json:"speed_kts,omitempty"`
	SpeedKph *float64 `json:"speed_kph,omitempty"`
	SpeedMph *float64 `json:"speed_mph,omitempty"`
}

// Cloud layer.
type Cloud struct {
	Code string   `json:"code"`
	Text string   `json:"text"`
	Feet *float64 `json:"feet,omitempty"`
}

// Humidity in percent.
type Humidity struct {
	Percent float64 `json:"percent"`
}

// Visibility in statute miles.
type Visibility struct {
	Miles      string  `json:"miles"`
	MilesFloat float64 `json:"miles_float"`
}

// WeatherCode is a present-weather group, e.g. {"code":"RA","text":"Rain"}.
type WeatherCode struct {
	Code string `json:"code"`
	Text string `json:"text"`
}

// StationSummary is the station block attached to decoded reports.
type StationSummary struct {
	Name     string    `json:"name"`
	Location string    `json:"location"`
	Geometry *Geometry `json:"geometry,omitempty"`
}

// Geometry is a GeoJSON point: coordinates are [longitude, latitude].
type Geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// Coordinate returns the point as a Coordinate, or false when it is not a valid point.
func (g *Geometry) Coordinate() (Coordinate, bool) {
	if g == nil || len(g.Coordinates) < 2 {
		return Coordinate{}, false
	}
	return Coordinate{Latitude: g.Coordinates[1], Longitude: g.Coordinates[0]}, true
}

// First returns the first observation, if any.
func (r *MetarResponse) First() (*Metar, bool) {
	if r == nil || len(r.Data) == 0 {
		return nil, false
	}
	return &r.Data[0], true
}

// WindSpeedKts returns the wind speed in knots when reported.
func (m *Metar) WindSpeedKts() (float64, bool) {
	if m == nil || m.Wind == nil || m.Wind.SpeedKts == nil {
		return 0, false
	}
	return *m.Wind.SpeedKts, true
}

// TemperatureC returns the temperature in Celsius when reported.
func (m *Metar) TemperatureC() (float64, bool) {
	if m == nil || m.Temperature == nil {
		return 0, false
	}
	return m.Temperature.Celsius, true
}

// TafResponse is the envelope returned by /taf/{icao}/decoded.
type TafResponse struct {
	Results int   `json:"results"`
	Data    []Taf `json:"data"`
}

// Taf is one decoded terminal aerodrome forecast.
type Taf struct {
	ICAO     string        `json:"icao"`
	RawText  string        `json:"raw_text"`
	Forecast []TafForecast `json:"forecast"`
}

// TafForecast is one change group of a TAF.
type TafForecast struct {
	Timestamp  *TafPeriod    `json:"timestamp,omitempty"`
	Conditions []WeatherCode `json:"conditions,omitempty"`
	Wind       *Wind         `json:"wind,omitempty"`
	Visibility *Visibility   `json:"visibility,omitempty"`
	Clouds     []Cloud       `json:"clouds,omitempty"`
}

// TafPeriod is the validity window of a change group.
type TafPeriod struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// SigmetResponse is the envelope returned by /sigmet/{icao}/decoded.
type SigmetResponse struct {
	Results int      `json:"results"`
	Data    []Sigmet `json:"data"`
}

// Sigmet is one decoded significant meteorological advisory.
type Sigmet struct {
	ICAO    string        `json:"icao"`
	RawText string        `json:"raw_text"`
	Hazard  *SigmetHazard `json:"hazard,omitempty"`
}

// SigmetHazard describes what the advisory warns about.
type SigmetHazard struct {
	Type     *WeatherCode `json:"type,omitempty"`
	Severity *WeatherCode `json:"severity,omitempty"`
}

// HazardText returns the hazard type description, "Unknown" when absent.
func (s Sigmet) HazardText() string {
	if s.Hazard == nil || s.Hazard.Type == nil || s.Hazard.Type.Text == "" {
		return "Unknown"
	}
	return s.Hazard.Type.Text
}

// StationResponse is the envelope returned by /station/{icao}.
type StationResponse struct {
	Results int       `json:"results"`
	Data    []Station `json:"data"`
}

// Station is a weather station with its location.
type Station struct {
	ICAO     string    `json:"icao"`
	IATA     string    `json:"iata"`
	Name     string    `json:"name"`
	Geometry *Geometry `json:"geometry,omitempty"`
}

// FuelImpact is one human-readable impact line derived from a forecast or advisory.
type FuelImpact struct {
	ICAO        string `json:"icao"`
	Period      string `json:"period,omitempty"`
	Description string `json:"description"`
}

// WeatherReport is what the weather page renders.
type WeatherReport struct {
	ICAO           string
	StationName    string
	DegreesC       float64
	DegreesF       float64
	HasTemperature bool
	SpeedKPH       string // "Not Reported" when absent
	SpeedMPH       string
	ForecastDesc   string
	Humidity       string
	RawText        string
	TAFImpacts     []FuelImpact
	SIGMETImpacts  []FuelImpact
}
