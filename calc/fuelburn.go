// calc/fuelburn.go
package calc

const (
	// FuelCorrectionFactor is applied to every lookup-mode estimate.
	FuelCorrectionFactor = 1.07
	// LoadFactor converts seat-kilometres to revenue passenger kilometres.
	LoadFactor = 0.824
)

// FuelBurnKG is the lookup-mode estimate: coefficient × distance × 1.07.
func FuelBurnKG(perKM, distanceKM float64) float64 {
	return perKM * distanceKM * FuelCorrectionFactor
}

// RPK returns revenue passenger kilometres for a seat count and distance.
func RPK(seats, distanceKM float64) float64 {
	return seats * distanceKM * LoadFactor
}

// TotalFuelBurn is the observed per-flight burn times the number of flights.
func TotalFuelBurn(perFlight, flights float64) float64 {
	return perFlight * flights
}

// PerFlightAverage divides a predicted total by the flight count, 0 when there are no flights.
func PerFlightAverage(total, flights float64) float64 {
	if flights == 0 {
		return 0
	}
	return total / flights
}
