// handlers/flight_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gewnthar/flightops/auth"
	"github.com/gewnthar/flightops/models"
	"github.com/gewnthar/flightops/services"
)

type flightsData struct {
	Airports []models.Airport
}

func (h *Handler) flights(w http.ResponseWriter, r *http.Request) {
	airports, err := h.app.Flights.Airports(r.Context())
	if err != nil {
		h.log.Error("Handler: failed to list airports", slog.Any("error", err))
		h.flash(w, r, auth.FlashWarning, "Airport reference data is unavailable.")
	}
	h.render(w, r, http.StatusOK, "flights", "Flight Search", flightsData{Airports: airports})
}

// flightOffers returns itinerary summaries for one route and date.
// GET /flights/{src}/{dest}/{date}
func (h *Handler) flightOffers(w http.ResponseWriter, r *http.Request) {
	src, dest, date := chi.URLParam(r, "src"), chi.URLParam(r, "dest"), chi.URLParam(r, "date")
	summaries, err := h.app.Flights.Itineraries(r.Context(), src, dest, date)
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		h.respondWithError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, services.ErrNotConfigured):
		h.respondWithError(w, http.StatusServiceUnavailable, "Flight search is not configured")
		return
	case err != nil:
		h.log.Error("Handler: flight offer search failed", slog.String("src", src), slog.String("dest", dest), slog.Any("error", err))
		h.respondWithError(w, http.StatusBadGateway, "Flight search is unavailable. Please try again later.")
		return
	}
	if summaries == nil {
		summaries = []models.ItinerarySummary{}
	}
	h.respondWithJSON(w, http.StatusOK, summaries)
}

// getDistance answers {src, dest} with {distance: km|null}.
// POST /ajax/getDistance
func (h *Handler) getDistance(w http.ResponseWriter, r *http.Request) {
	var req models.DistanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	var resp models.DistanceResponse
	if km, ok := h.app.Distance.Distance(r.Context(), req.Src, req.Dest); ok {
		resp.Distance = &km
	}
	h.respondWithJSON(w, http.StatusOK, resp)
}
