package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/gewnthar/flightops/config"
	"github.com/gewnthar/flightops/database"
	"github.com/gewnthar/flightops/external"
	"github.com/gewnthar/flightops/logging"
	"github.com/gewnthar/flightops/models"
	"github.com/gewnthar/flightops/seed"
)

func newTestDB(t *testing.T) *database.DB {
	t.Helper()
	ctx := context.Background()
	db, err := database.Open(ctx, config.DatabaseConfig{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "services.db"),
	}, logging.Discard())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.CreateSchema(ctx); err != nil {
		t.Fatalf("CreateSchema: %v", err)
	}
	return db
}

func newTestReference(t *testing.T, db *database.DB) *ReferenceService {
	t.Helper()
	client := external.NewClient(nil, 5*time.Second, 0, logging.Discard())
	return NewReferenceService(db, client, seed.FS, nil, t.TempDir(), logging.Discard())
}

type fakeStations struct {
	coords map[string]models.Coordinate
	calls  int
}

func (f *fakeStations) StationCoordinate(_ context.Context, code string) (models.Coordinate, bool, error) {
	f.calls++
	c, ok := f.coords[code]
	if !ok {
		return models.Coordinate{}, false, external.ErrNoRecords
	}
	return c, true, nil
}
