// services/flight_service.go
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gewnthar/flightops/models"
	"github.com/gewnthar/flightops/utils"
)

// OfferSearcher searches priced flight offers.
type OfferSearcher interface {
	FlightOffers(ctx context.Context, src, dest, date string) (*models.FlightOffersResponse, error)
}

// FlightService summarises flight offers for the flights page.
type FlightService struct {
	offers   OfferSearcher
	ref      *ReferenceService
	distance *DistanceService
	log      *slog.Logger
}

// NewFlightService builds the service; offers is nil when no credentials are configured.
func NewFlightService(offers OfferSearcher, ref *ReferenceService, distance *DistanceService, logger *slog.Logger) *FlightService {
	return &FlightService{offers: offers, ref: ref, distance: distance, log: logger}
}

// Airports lists the airports offered as origins and destinations.
func (s *FlightService) Airports(ctx context.Context) ([]models.Airport, error) {
	return s.ref.Airports(ctx)
}

// Itineraries searches offers from src to dest on date (YYYY-MM-DD) and
// summarises each itinerary with per-segment great-circle distances.
func (s *FlightService) Itineraries(ctx context.Context, src, dest, date string) ([]models.ItinerarySummary, error) {
	if s.offers == nil {
		return nil, fmt.Errorf("%w: flight offer search", ErrNotConfigured)
	}
	src, dest = utils.NormalizeCode(src), utils.NormalizeCode(dest)
	if !utils.IsIATA(src) || !utils.IsIATA(dest) {
		return nil, fmt.Errorf("%w: airport codes must be three-letter IATA codes", ErrInvalidInput)
	}
	if _, err := time.Parse(time.DateOnly, date); err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}

	resp, err := s.offers.FlightOffers(ctx, src, dest, date)
	if err != nil {
		return nil, err
	}

	legs := make(map[[2]string]*float64)
	legKM := func(from, to string) *float64 {
		key := [2]string{from, to}
		if km, seen := legs[key]; seen {
			return km
		}
		var km *float64
		if d, ok := s.distance.Distance(ctx, from, to); ok {
			km = &d
		}
		legs[key] = km
		return km
	}

	var out []models.ItinerarySummary
	for _, offer := range resp.Data {
		for _, it := range offer.Itineraries {
			sum := models.ItinerarySummary{
				OfferID:       offer.ID,
				NumSegments:   len(it.Segments),
				DepIATACodes:  make([]string, 0, len(it.Segments)),
				ArrIATACodes:  make([]string, 0, len(it.Segments)),
				AircraftCodes: make([]string, 0, len(it.Segments)),
				SegmentKM:     make([]*float64, 0, len(it.Segments)),
			}
			if offer.Price != nil {
				sum.Price = offer.Price.GrandTotal + " " + offer.Price.Currency
			}
			for _, seg := range it.Segments {
				sum.DepIATACodes = append(sum.DepIATACodes, seg.Departure.IATACode)
				sum.ArrIATACodes = append(sum.ArrIATACodes, seg.Arrival.IATACode)
				sum.AircraftCodes = append(sum.AircraftCodes, seg.AircraftCode())
				sum.SegmentKM = append(sum.SegmentKM, legKM(seg.Departure.IATACode, seg.Arrival.IATACode))
			}
			out = append(out, sum)
		}
	}
	s.log.Info("Service: itineraries summarised", slog.String("route", src+"-"+dest), slog.Int("itineraries", len(out)))
	return out, nil
}
