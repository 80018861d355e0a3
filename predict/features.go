// predict/features.go
package predict

import (
	"strings"

	"github.com/gewnthar/flightops/calc"
	"github.com/gewnthar/flightops/models"
)

// FeatureColumns is the column order the model was trained on.
var FeatureColumns = []string{
	"airline_iata",
	"acft_icao",
	"acft_class",
	"seymour_proxy",
	"seats",
	"n_flights",
	"iata_departure",
	"iata_arrival",
	"distance_km",
	"rpk",
	"fuel_burn_seymour",
	"fuel_burn",
}

// CategoricalColumns are label-encoded before scaling.
var CategoricalColumns = []string{"airline_iata", "acft_icao", "acft_class", "seymour_proxy", "iata_departure", "iata_arrival"}

// Features is one assembled input row.
type Features struct {
	AirlineIATA       string
	AircraftICAO      string
	AircraftClass     string
	ProxyAircraft     string
	Seats             float64
	Flights           float64
	DepartureIATA     string
	ArrivalIATA       string
	DistanceKM        float64
	RPK               float64
	FuelBurnPerFlight float64
	TotalFuelBurn     float64
}

// AssembleFeatures derives RPK and total fuel burn and uppercases the codes.
// distanceKM is the resolved route distance.
func AssembleFeatures(in models.PredictionInput, distanceKM float64) Features {
	return Features{
		AirlineIATA:       strings.ToUpper(in.AirlineIATA),
		AircraftICAO:      strings.ToUpper(in.AircraftICAO),
		AircraftClass:     strings.ToUpper(in.AircraftClass),
		ProxyAircraft:     strings.ToUpper(in.ProxyAircraft),
		Seats:             in.Seats,
		Flights:           in.Flights,
		DepartureIATA:     strings.ToUpper(in.DepartureIATA),
		ArrivalIATA:       strings.ToUpper(in.ArrivalIATA),
		DistanceKM:        distanceKM,
		RPK:               calc.RPK(in.Seats, distanceKM),
		FuelBurnPerFlight: in.FuelBurnPerFlight,
		TotalFuelBurn:     calc.TotalFuelBurn(in.FuelBurnPerFlight, in.Flights),
	}
}

// categorical returns the value of a categorical column.
func (f Features) categorical(column string) string {
	switch column {
	case "airline_iata":
		return f.AirlineIATA
	case "acft_icao":
		return f.AircraftICAO
	case "acft_class":
		return f.AircraftClass
	case "seymour_proxy":
		return f.ProxyAircraft
	case "iata_departure":
		return f.DepartureIATA
	case "iata_arrival":
		return f.ArrivalIATA
	}
	return ""
}

// numeric returns the value of a numeric column.
func (f Features) numeric(column string) float64 {
	switch column {
	case "seats":
		return f.Seats
	case "n_flights":
		return f.Flights
	case "distance_km":
		return f.DistanceKM
	case "rpk":
		return f.RPK
	case "fuel_burn_seymour":
		return f.FuelBurnPerFlight
	case "fuel_burn":
		return f.TotalFuelBurn
	}
	return 0
}
