// services/reference_service.go
package services

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/gewnthar/flightops/database"
	"github.com/gewnthar/flightops/external"
	"github.com/gewnthar/flightops/models"
	"github.com/gewnthar/flightops/seed"
)

// ReferenceService populates the reference tables lazily, the first time a
// request needs one and finds it empty, and on admin reloads.
type ReferenceService struct {
	db          *database.DB
	client      *external.Client
	seeds       fs.FS
	sources     map[string]string // table -> path or URL; absent tables use seeds
	downloadDir string
	log         *slog.Logger

	group  singleflight.Group
	mu     sync.Mutex
	loaded map[string]bool
}

func NewReferenceService(db *database.DB, client *external.Client, seeds fs.FS, sources map[string]string, downloadDir string, logger *slog.Logger) *ReferenceService {
	return &ReferenceService{
		db:          db,
		client:      client,
		seeds:       seeds,
		sources:     sources,
		downloadDir: downloadDir,
		log:         logger,
		loaded:      make(map[string]bool),
	}
}

// Ensure loads table when it is empty. Concurrent first requests share one load.
func (s *ReferenceService) Ensure(ctx context.Context, table string) error {
	if !database.IsReferenceTable(table) {
		return fmt.Errorf("unknown reference table %q", table)
	}
	s.mu.Lock()
	done := s.loaded[table]
	s.mu.Unlock()
	if done {
		return nil
	}

	// Detached: the load is shared by every waiting caller.
	lctx := context.WithoutCancel(ctx)
	_, err, _ := s.group.Do(table, func() (any, error) {
		n, err := s.db.CountRows(lctx, table)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			s.log.Info("Service: reference table empty, populating", slog.String("table", table))
			if _, err := s.load(lctx, table); err != nil {
				return nil, err
			}
		}
		s.markLoaded(table)
		return nil, nil
	})
	return err
}

// Reload replaces table from its source regardless of its current contents
// and returns the number of rows now loaded.
func (s *ReferenceService) Reload(ctx context.Context, table string) (int, error) {
	if !database.IsReferenceTable(table) {
		return 0, fmt.Errorf("unknown reference table %q", table)
	}
	lctx := context.WithoutCancel(ctx)
	v, err, _ := s.group.Do("reload:"+table, func() (any, error) {
		n, err := s.load(lctx, table)
		if err != nil {
			return 0, err
		}
		s.markLoaded(table)
		return n, nil
	})
	if err != nil {
		return 0, err
	}
	return v.(int), nil
}

// Status summarises every reference table.
func (s *ReferenceService) Status(ctx context.Context) ([]models.ReferenceTableStatus, error) {
	return s.db.ReferenceStatus(ctx)
}

func (s *ReferenceService) markLoaded(table string) {
	s.mu.Lock()
	s.loaded[table] = true
	s.mu.Unlock()
}

func (s *ReferenceService) open(ctx context.Context, table string) (io.ReadCloser, string, error) {
	if src := s.sources[table]; src != "" {
		rc, err := s.client.OpenCSVSource(ctx, src, s.downloadDir, table)
		return rc, src, err
	}
	name := seed.FileName(table)
	f, err := s.seeds.Open(name)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open seed %s: %w", name, err)
	}
	return f, "seed:" + name, nil
}

func (s *ReferenceService) load(ctx context.Context, table string) (int, error) {
	rc, source, err := s.open(ctx, table)
	if err != nil {
		return 0, err
	}
	defer rc.Close()

	var n int
	switch table {
	case models.TableAirports:
		var rows []models.Airport
		if rows, err = external.ParseCSV[models.Airport](rc); err == nil {
			n, err = len(rows), s.db.ReplaceAirports(ctx, rows, source)
		}
	case models.TableIcaoCodes:
		var rows []models.IcaoCode
		if rows, err = external.ParseCSV[models.IcaoCode](rc); err == nil {
			n, err = len(rows), s.db.ReplaceIcaoCodes(ctx, rows, source)
		}
	case models.TableCountries:
		var rows []models.Country
		if rows, err = external.ParseCSV[models.Country](rc); err == nil {
			n, err = len(rows), s.db.ReplaceCountries(ctx, rows, source)
		}
	case models.TableAircraft:
		var rows []models.Aircraft
		if rows, err = external.ParseAircraftCSV(rc); err == nil {
			n, err = len(rows), s.db.ReplaceAircraft(ctx, rows, source)
		}
	case models.TableIataIcao:
		var rows []models.IataIcao
		if rows, err = external.ParseIataIcaoCSV(rc); err == nil {
			n, err = len(rows), s.db.ReplaceIataIcao(ctx, rows, source)
		}
	}
	if err != nil {
		return 0, fmt.Errorf("failed to load %s from %s: %w", table, source, err)
	}
	return n, nil
}

// Airports returns the airports table, populating it first if needed.
func (s *ReferenceService) Airports(ctx context.Context) ([]models.Airport, error) {
	if err := s.Ensure(ctx, models.TableAirports); err != nil {
		return nil, err
	}
	return s.db.ListAirports(ctx)
}

// IcaoCodes returns the icao_codes table, populating it first if needed.
func (s *ReferenceService) IcaoCodes(ctx context.Context) ([]models.IcaoCode, error) {
	if err := s.Ensure(ctx, models.TableIcaoCodes); err != nil {
		return nil, err
	}
	return s.db.ListIcaoCodes(ctx)
}
