// services/prediction_service.go
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gewnthar/flightops/calc"
	"github.com/gewnthar/flightops/models"
	"github.com/gewnthar/flightops/predict"
)

// PredictionService wraps the trained emissions model.
type PredictionService struct {
	model    *predict.Model
	distance *DistanceService
	log      *slog.Logger
}

// NewPredictionService builds the service; a nil model leaves it unavailable.
func NewPredictionService(model *predict.Model, distance *DistanceService, logger *slog.Logger) *PredictionService {
	return &PredictionService{model: model, distance: distance, log: logger}
}

// Available reports whether a model is loaded.
func (s *PredictionService) Available() bool {
	return s.model != nil
}

// Predict assembles the feature row and runs the model. A zero distance is
// resolved from the departure and arrival codes.
func (s *PredictionService) Predict(ctx context.Context, in models.PredictionInput) (*models.PredictionResult, error) {
	if s.model == nil {
		return nil, predict.ErrModelUnavailable
	}
	if in.Seats < 0 || in.Flights < 0 || in.FuelBurnPerFlight < 0 || in.DistanceKM < 0 {
		return nil, fmt.Errorf("%w: values must not be negative", ErrInvalidInput)
	}

	km := in.DistanceKM
	if km == 0 {
		var ok bool
		if km, ok = s.distance.Distance(ctx, in.DepartureIATA, in.ArrivalIATA); !ok {
			return nil, fmt.Errorf("%w: cannot resolve %s-%s", ErrUnknownCode, in.DepartureIATA, in.ArrivalIATA)
		}
	}

	f := predict.AssembleFeatures(in, km)
	total := s.model.Predict(f)
	res := &models.PredictionResult{
		DistanceKM:       km,
		RPK:              f.RPK,
		TotalFuelBurn:    f.TotalFuelBurn,
		PredictedTotal:   total,
		PerFlightAverage: calc.PerFlightAverage(total, in.Flights),
	}
	s.log.Info("Service: emissions predicted", slog.String("route", f.DepartureIATA+"-"+f.ArrivalIATA), slog.Float64("predicted", total))
	return res, nil
}
