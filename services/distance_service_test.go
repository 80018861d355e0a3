package services

import (
	"context"
	"testing"

	"github.com/gewnthar/flightops/logging"
	"github.com/gewnthar/flightops/models"
)

func TestDistanceFromCrosswalk(t *testing.T) {
	db := newTestDB(t)
	stations := &fakeStations{}
	dist := NewDistanceService(db, newTestReference(t, db), stations, logging.Discard())

	km, ok := dist.Distance(context.Background(), "kin", "EGLL")
	if !ok {
		t.Fatal("KIN-EGLL unresolved")
	}
	if km < 7000 || km > 8000 {
		t.Errorf("KIN-EGLL = %v km", km)
	}
	if stations.calls != 0 {
		t.Errorf("station API called %d times for crosswalk codes", stations.calls)
	}
}

func TestDistanceFallsBackToStations(t *testing.T) {
	db := newTestDB(t)
	stations := &fakeStations{coords: map[string]models.Coordinate{
		"TNCM": {Latitude: 18.041, Longitude: -63.109},
	}}
	dist := NewDistanceService(db, newTestReference(t, db), stations, logging.Discard())

	if _, ok := dist.Distance(context.Background(), "MIA", "TNCM"); !ok {
		t.Error("station fallback not used")
	}
	if _, ok := dist.Distance(context.Background(), "MIA", "QQQQ"); ok {
		t.Error("unknown code resolved")
	}
	if _, ok := dist.Distance(context.Background(), "MIA", "not a code"); ok {
		t.Error("malformed code resolved")
	}
}

func TestDistanceSelfIsZero(t *testing.T) {
	db := newTestDB(t)
	dist := NewDistanceService(db, newTestReference(t, db), nil, logging.Discard())
	km, ok := dist.Distance(context.Background(), "KIN", "MKJP")
	if !ok || km != 0 {
		t.Errorf("KIN-MKJP = %v, %v; want 0, true", km, ok)
	}
}
