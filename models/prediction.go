// models/prediction.go
package models

// Aircraft class identifiers accepted by the prediction form.
var AircraftClasses = []struct{ Code, Label string }{
	{"WB", "Wide Body"},
	{"NB", "Narrow Body"},
	{"RJ", "Regional Jet"},
	{"PJ", "Private Jet"},
	{"TP", "Turbo Propeller"},
	{"PP", "Piston Propeller"},
	{"HE", "Helicopter"},
	{"OTHER", "Other"},
}

// PredictionInput is the validated prediction form.
type PredictionInput struct {
	AirlineIATA       string
	AircraftICAO      string
	AircraftClass     string
	ProxyAircraft     string // surrogate aircraft code used when the type has no direct data
	Seats             float64
	Flights           float64
	DepartureIATA     string
	ArrivalIATA       string
	DistanceKM        float64 // optional; resolved from the route when zero
	FuelBurnPerFlight float64
}

// PredictionResult is what the prediction page renders.
type PredictionResult struct {
	DistanceKM       float64
	RPK              float64
	TotalFuelBurn    float64
	PredictedTotal   float64
	PerFlightAverage float64
}

// FuelEstimate is the lookup-mode estimate.
type FuelEstimate struct {
	AircraftType string  `json:"aircraft_type"`
	AircraftName string  `json:"aircraft_name"`
	PerKM        float64 `json:"fuel_burn_kg_per_km"`
	DistanceKM   float64 `json:"distance_km"`
	FuelKG       float64 `json:"fuel_kg"`
}
