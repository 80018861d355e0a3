// services/country_service.go
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/gewnthar/flightops/models"
)

const countriesCacheKey = "all"

// CountryDirectory lists countries from a remote source.
type CountryDirectory interface {
	All(ctx context.Context) ([]models.Country, error)
}

// CountryStore lists the countries reference table.
type CountryStore interface {
	ListCountries(ctx context.Context) ([]models.Country, error)
}

// CountryService resolves ISO-3166 alpha-3 codes to names. Remote results are
// cached for ttl; the countries table is the fallback when the remote fails.
type CountryService struct {
	remote CountryDirectory
	store  CountryStore
	ref    ReferenceLoader
	cache  *expirable.LRU[string, []models.Country]
	log    *slog.Logger
}

// NewCountryService builds the service; remote may be nil.
func NewCountryService(remote CountryDirectory, store CountryStore, ref ReferenceLoader, ttl time.Duration, logger *slog.Logger) *CountryService {
	return &CountryService{
		remote: remote,
		store:  store,
		ref:    ref,
		cache:  expirable.NewLRU[string, []models.Country](1, nil, ttl),
		log:    logger,
	}
}

// List returns all known countries sorted by name.
func (s *CountryService) List(ctx context.Context) ([]models.Country, error) {
	if cached, ok := s.cache.Get(countriesCacheKey); ok {
		return cached, nil
	}
	if s.remote != nil {
		countries, err := s.remote.All(ctx)
		if err == nil {
			s.cache.Add(countriesCacheKey, countries)
			return countries, nil
		}
		s.log.Warn("Service: country directory unavailable, using countries table", slog.Any("error", err))
	}
	if err := s.ref.Ensure(ctx, models.TableCountries); err != nil {
		return nil, err
	}
	return s.store.ListCountries(ctx)
}

// Names maps country codes to names. Failures yield an empty map.
func (s *CountryService) Names(ctx context.Context) map[string]string {
	countries, err := s.List(ctx)
	if err != nil {
		s.log.Error("Service: failed to list countries", slog.Any("error", err))
		return map[string]string{}
	}
	names := make(map[string]string, len(countries))
	for _, c := range countries {
		names[c.Code] = c.Name
	}
	return names
}

// Known reports whether code is one of the selectable countries.
func (s *CountryService) Known(ctx context.Context, code string) bool {
	_, ok := s.Names(ctx)[code]
	return ok
}

// Name returns the name for code, or code itself when unknown.
func (s *CountryService) Name(ctx context.Context, code string) string {
	if name, ok := s.Names(ctx)[code]; ok {
		return name
	}
	return code
}
