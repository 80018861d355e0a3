// services/distance_service.go
package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gewnthar/flightops/calc"
	"github.com/gewnthar/flightops/external"
	"github.com/gewnthar/flightops/models"
	"github.com/gewnthar/flightops/utils"
)

// CrosswalkStore finds an airport in the iata_to_icao table by either code.
type CrosswalkStore interface {
	FindCrosswalk(ctx context.Context, code string) (*models.IataIcao, error)
}

// StationLocator resolves a code through the weather station API.
type StationLocator interface {
	StationCoordinate(ctx context.Context, code string) (models.Coordinate, bool, error)
}

// DistanceService turns airport codes into great-circle distances.
type DistanceService struct {
	store    CrosswalkStore
	ref      ReferenceLoader
	stations StationLocator
	log      *slog.Logger
}

// NewDistanceService builds the service; stations may be nil.
func NewDistanceService(store CrosswalkStore, ref ReferenceLoader, stations StationLocator, logger *slog.Logger) *DistanceService {
	return &DistanceService{store: store, ref: ref, stations: stations, log: logger}
}

// Resolve finds coordinates for an IATA or ICAO code, first in the crosswalk
// and then through the station API. Lookup failures are logged and reported
// as absent.
func (s *DistanceService) Resolve(ctx context.Context, code string) (models.Coordinate, bool) {
	code = utils.NormalizeCode(code)
	if !utils.IsIATA(code) && !utils.IsICAO(code) {
		return models.Coordinate{}, false
	}

	if err := s.ref.Ensure(ctx, models.TableIataIcao); err != nil {
		s.log.Error("Service: crosswalk unavailable", slog.Any("error", err))
	} else if entry, err := s.store.FindCrosswalk(ctx, code); err != nil {
		s.log.Error("Service: crosswalk lookup failed", slog.String("code", code), slog.Any("error", err))
	} else if entry != nil {
		return models.Coordinate{Latitude: entry.Latitude, Longitude: entry.Longitude}, true
	}

	if s.stations == nil {
		return models.Coordinate{}, false
	}
	coord, ok, err := s.stations.StationCoordinate(ctx, code)
	if err != nil {
		if !errors.Is(err, external.ErrNoRecords) {
			s.log.Warn("Service: station lookup failed", slog.String("code", code), slog.Any("error", err))
		}
		return models.Coordinate{}, false
	}
	return coord, ok
}

// Distance returns the great-circle distance between two codes in km, or
// false when either cannot be resolved.
func (s *DistanceService) Distance(ctx context.Context, src, dest string) (float64, bool) {
	a, ok := s.Resolve(ctx, src)
	if !ok {
		return 0, false
	}
	b, ok := s.Resolve(ctx, dest)
	if !ok {
		return 0, false
	}
	return calc.GreatCircleKM(a, b), true
}
