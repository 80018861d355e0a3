package services

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/gewnthar/flightops/logging"
	"github.com/gewnthar/flightops/models"
)

func newTestFuel(t *testing.T) *FuelService {
	t.Helper()
	db := newTestDB(t)
	ref := newTestReference(t, db)
	ctx := context.Background()
	if err := db.ReplaceAircraft(ctx, []models.Aircraft{{ICAOType: "TST1", Name: "Test", FuelBurnPerKM: 3.5, AircraftClass: "NB"}}, "test"); err != nil {
		t.Fatal(err)
	}
	dist := NewDistanceService(db, ref, nil, logging.Discard())
	return NewFuelService(db, ref, dist, logging.Discard())
}

func TestFuelEstimateKnownType(t *testing.T) {
	fuel := newTestFuel(t)
	est, err := fuel.Estimate(context.Background(), "tst1", 1000)
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}
	if math.Abs(est.FuelKG-3745) > 1e-9 {
		t.Errorf("FuelKG = %v, want 3745", est.FuelKG)
	}
}

func TestFuelEstimateUnknownType(t *testing.T) {
	fuel := newTestFuel(t)
	est, err := fuel.Estimate(context.Background(), "NOPE", 1000)
	if !errors.Is(err, ErrAircraftNotFound) {
		t.Errorf("err = %v, want ErrAircraftNotFound", err)
	}
	if est != nil {
		t.Errorf("estimate = %+v, want none", est)
	}
}

func TestFuelEstimateRouteUnresolvable(t *testing.T) {
	fuel := newTestFuel(t)
	_, err := fuel.EstimateRoute(context.Background(), "TST1", "KIN", "XXX")
	if !errors.Is(err, ErrUnknownCode) {
		t.Errorf("err = %v, want ErrUnknownCode", err)
	}
}

func TestFuelEstimateRoute(t *testing.T) {
	fuel := newTestFuel(t)
	est, err := fuel.EstimateRoute(context.Background(), "TST1", "KIN", "MIA")
	if err != nil {
		t.Fatalf("EstimateRoute: %v", err)
	}
	if est.DistanceKM < 800 || est.DistanceKM > 1000 {
		t.Errorf("KIN-MIA distance = %v", est.DistanceKM)
	}
}
