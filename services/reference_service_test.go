package services

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/gewnthar/flightops/external"
	"github.com/gewnthar/flightops/logging"
	"github.com/gewnthar/flightops/models"
	"github.com/gewnthar/flightops/seed"
)

func TestEnsureLoadsSeedOnce(t *testing.T) {
	db := newTestDB(t)
	ref := newTestReference(t, db)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- ref.Ensure(ctx, models.TableAircraft)
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("Ensure: %v", err)
		}
	}

	loads, err := db.ListReferenceLoads(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(loads) != 1 || loads[0].TableName != models.TableAircraft || loads[0].Source != "seed:aircraft.csv" {
		t.Errorf("loads = %+v, want one seed load of aircraft", loads)
	}
	a, err := db.GetAircraft(ctx, "B738")
	if err != nil || a == nil {
		t.Fatalf("GetAircraft(B738) = %v, %v", a, err)
	}
}

func TestEnsureOutlivesCancelledCaller(t *testing.T) {
	db := newTestDB(t)
	ref := newTestReference(t, db)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := ref.Ensure(ctx, models.TableCountries); err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	if n, _ := db.CountRows(context.Background(), models.TableCountries); n == 0 {
		t.Error("countries table still empty")
	}
	if _, err := ref.Reload(ctx, models.TableCountries); err != nil {
		t.Errorf("Reload: %v", err)
	}
}

func TestEnsureSkipsPopulatedTable(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	if err := db.ReplaceCountries(ctx, []models.Country{{Code: "JAM", Name: "Jamaica"}}, "test"); err != nil {
		t.Fatal(err)
	}
	ref := newTestReference(t, db)
	if err := ref.Ensure(ctx, models.TableCountries); err != nil {
		t.Fatal(err)
	}
	n, _ := db.CountRows(ctx, models.TableCountries)
	if n != 1 {
		t.Errorf("rows = %d, want the existing single row", n)
	}
}

func TestReloadFromConfiguredFile(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "aircraft.csv")
	csv := "icao_type,name,fuel_burn_kg_per_km,aircraft_class\nzz99,Test Jet,3.5,NB\n"
	if err := os.WriteFile(path, []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}
	client := external.NewClient(nil, time.Second, 0, logging.Discard())
	ref := NewReferenceService(db, client, seed.FS, map[string]string{models.TableAircraft: path}, t.TempDir(), logging.Discard())

	n, err := ref.Reload(ctx, models.TableAircraft)
	if err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if n != 1 {
		t.Errorf("Reload rows = %d, want 1", n)
	}
	a, _ := db.GetAircraft(ctx, "ZZ99")
	if a == nil || a.FuelBurnPerKM != 3.5 {
		t.Errorf("GetAircraft = %+v", a)
	}
}

func TestEnsureRejectsUnknownTable(t *testing.T) {
	ref := newTestReference(t, newTestDB(t))
	if err := ref.Ensure(context.Background(), "user_profiles"); err == nil {
		t.Error("Ensure accepted a non-reference table")
	}
	if _, err := ref.Reload(context.Background(), "nope"); err == nil {
		t.Error("Reload accepted an unknown table")
	}
}

func TestEverySeedLoads(t *testing.T) {
	db := newTestDB(t)
	ref := newTestReference(t, db)
	ctx := context.Background()
	for _, table := range models.ReferenceTables {
		n, err := ref.Reload(ctx, table)
		if err != nil {
			t.Fatalf("Reload(%s): %v", table, err)
		}
		if n == 0 {
			t.Errorf("seed for %s is empty", table)
		}
	}
	status, err := ref.Status(ctx)
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range status {
		if s.Rows == 0 || s.LastLoad == nil {
			t.Errorf("status %+v", s)
		}
	}
}
