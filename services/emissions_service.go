// services/emissions_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gewnthar/flightops/calc"
	"github.com/gewnthar/flightops/external"
	"github.com/gewnthar/flightops/models"
)

// EmissionsSource fetches observations from the statistics service.
type EmissionsSource interface {
	CountryEmissions(ctx context.Context, req models.ReportRequest) ([]models.EmissionObservation, error)
	MonthlyEmissions(ctx context.Context, req models.RankingRequest) ([]models.EmissionObservation, error)
}

// EmissionsService builds country reports and cross-country rankings.
// Observations are fetched per request and never stored.
type EmissionsService struct {
	source    EmissionsSource
	countries *CountryService
	log       *slog.Logger
}

func NewEmissionsService(source EmissionsSource, countries *CountryService, logger *slog.Logger) *EmissionsService {
	return &EmissionsService{source: source, countries: countries, log: logger}
}

// Countries lists the selectable countries.
func (s *EmissionsService) Countries(ctx context.Context) ([]models.Country, error) {
	return s.countries.List(ctx)
}

// Report aggregates one country's observations. No data yields calc.ErrNoRecords.
func (s *EmissionsService) Report(ctx context.Context, req models.ReportRequest) (*models.EmissionsReport, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, errs[0])
	}
	if !s.countries.Known(ctx, req.Country) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, models.FieldError{Field: "country", Message: "Not a valid choice."})
	}
	obs, err := s.source.CountryEmissions(ctx, req)
	if err != nil {
		if errors.Is(err, external.ErrNoRecords) {
			return nil, calc.ErrNoRecords
		}
		return nil, err
	}
	summary, err := calc.AggregateEmissions(obs)
	if err != nil {
		return nil, err
	}
	s.log.Info("Service: emissions report built", slog.String("country", req.Country), slog.Int("periods", len(summary.Periods)))
	return &models.EmissionsReport{
		Request:     req,
		CountryName: s.countries.Name(ctx, req.Country),
		Summary:     summary,
	}, nil
}

// Ranking ranks every country over one month range.
func (s *EmissionsService) Ranking(ctx context.Context, req models.RankingRequest) (*models.EmissionsRanking, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, errs[0])
	}
	obs, err := s.source.MonthlyEmissions(ctx, req)
	if err != nil {
		if errors.Is(err, external.ErrNoRecords) {
			return nil, calc.ErrNoRecords
		}
		return nil, err
	}
	ranking, err := calc.RankCountries(obs, req.Order)
	if err != nil {
		return nil, err
	}
	ranking.Request = req

	names := s.countries.Names(ctx)
	for i := range ranking.Entries {
		e := &ranking.Entries[i]
		e.CountryName = e.CountryCode
		if name, ok := names[e.CountryCode]; ok {
			e.CountryName = name
		}
	}
	return &ranking, nil
}
