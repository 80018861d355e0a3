// services/fuel_service.go
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gewnthar/flightops/calc"
	"github.com/gewnthar/flightops/models"
	"github.com/gewnthar/flightops/utils"
)

// AircraftStore reads the aircraft reference table.
type AircraftStore interface {
	GetAircraft(ctx context.Context, icaoType string) (*models.Aircraft, error)
	ListAircraft(ctx context.Context) ([]models.Aircraft, error)
}

// FuelService is the lookup-mode fuel-burn estimator.
type FuelService struct {
	store    AircraftStore
	ref      ReferenceLoader
	distance *DistanceService
	log      *slog.Logger
}

func NewFuelService(store AircraftStore, ref ReferenceLoader, distance *DistanceService, logger *slog.Logger) *FuelService {
	return &FuelService{store: store, ref: ref, distance: distance, log: logger}
}

// Aircraft lists the known types for the estimator form.
func (s *FuelService) Aircraft(ctx context.Context) ([]models.Aircraft, error) {
	if err := s.ref.Ensure(ctx, models.TableAircraft); err != nil {
		return nil, err
	}
	return s.store.ListAircraft(ctx)
}

// Estimate multiplies the type's kg/km coefficient by distanceKM and the
// correction factor. Unknown types return ErrAircraftNotFound.
func (s *FuelService) Estimate(ctx context.Context, icaoType string, distanceKM float64) (*models.FuelEstimate, error) {
	icaoType = utils.NormalizeCode(icaoType)
	if distanceKM < 0 {
		return nil, fmt.Errorf("%w: distance must not be negative", ErrInvalidInput)
	}
	if err := s.ref.Ensure(ctx, models.TableAircraft); err != nil {
		return nil, err
	}
	a, err := s.store.GetAircraft(ctx, icaoType)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, fmt.Errorf("%w: %q", ErrAircraftNotFound, icaoType)
	}

	est := &models.FuelEstimate{
		AircraftType: a.ICAOType,
		AircraftName: a.Name,
		PerKM:        a.FuelBurnPerKM,
		DistanceKM:   distanceKM,
		FuelKG:       calc.FuelBurnKG(a.FuelBurnPerKM, distanceKM),
	}
	s.log.Debug("Service: fuel estimate", slog.String("type", est.AircraftType), slog.Float64("km", distanceKM), slog.Float64("kg", est.FuelKG))
	return est, nil
}

// EstimateRoute resolves the distance between two airport codes and estimates it.
func (s *FuelService) EstimateRoute(ctx context.Context, icaoType, src, dest string) (*models.FuelEstimate, error) {
	km, ok := s.distance.Distance(ctx, src, dest)
	if !ok {
		return nil, fmt.Errorf("%w: cannot resolve %s-%s", ErrUnknownCode, src, dest)
	}
	return s.Estimate(ctx, icaoType, km)
}
