package calc

import (
	"math"
	"testing"
)

func TestFuelBurnKG(t *testing.T) {
	if got := FuelBurnKG(3.5, 1000); math.Abs(got-3745) > 1e-9 {
		t.Errorf("FuelBurnKG(3.5, 1000) = %v, want 3745", got)
	}
	if got := FuelBurnKG(3.5, 0); got != 0 {
		t.Errorf("FuelBurnKG(3.5, 0) = %v, want 0", got)
	}
}

func TestDerivedRatios(t *testing.T) {
	if got := RPK(180, 1000); math.Abs(got-148320) > 1e-9 {
		t.Errorf("RPK = %v, want 148320", got)
	}
	if got := TotalFuelBurn(2500, 4); got != 10000 {
		t.Errorf("TotalFuelBurn = %v, want 10000", got)
	}
	if got := PerFlightAverage(9000, 3); got != 3000 {
		t.Errorf("PerFlightAverage = %v, want 3000", got)
	}
	if got := PerFlightAverage(9000, 0); got != 0 {
		t.Errorf("PerFlightAverage with no flights = %v, want 0", got)
	}
}
