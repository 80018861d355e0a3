// handlers/weather_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/gewnthar/flightops/auth"
	"github.com/gewnthar/flightops/models"
	"github.com/gewnthar/flightops/services"
)

// weather renders current conditions and forecast impacts for one station.
// GET /weather/{icao}
func (h *Handler) weather(w http.ResponseWriter, r *http.Request) {
	icao := chi.URLParam(r, "icao")
	report, err := h.app.Weather.Report(r.Context(), icao)
	if err != nil {
		if errors.Is(err, services.ErrUnknownCode) {
			h.flash(w, r, auth.FlashWarning, "Incorrect ICAO code")
		} else {
			h.log.Error("Handler: weather lookup failed", slog.String("icao", icao), slog.Any("error", err))
			h.flash(w, r, auth.FlashDanger, "The weather service is unavailable. Please try again later.")
		}
		h.redirect(w, r, "/")
		return
	}
	h.render(w, r, http.StatusOK, "weather", "Weather "+report.ICAO, report)
}

func (h *Handler) chatPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "chat", "Weather Assistant", nil)
}

// chat answers {icao_code, flight_distance} with {message} or {error}.
// POST /api/chat/
func (h *Handler) chat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if errors.Is(err, models.ErrInvalidNumber) {
			h.respondWithJSON(w, http.StatusBadRequest, models.ChatResponse{Error: "Invalid flight distance format"})
			return
		}
		h.respondWithJSON(w, http.StatusBadRequest, models.ChatResponse{Error: "Invalid request body"})
		return
	}

	icao := strings.TrimSpace(req.ICAOCode)
	if icao == "" {
		h.respondWithJSON(w, http.StatusBadRequest, models.ChatResponse{Error: "Missing ICAO code"})
		return
	}
	if !req.FlightDistance.Set || req.FlightDistance.Value < 0 {
		h.respondWithJSON(w, http.StatusBadRequest, models.ChatResponse{Error: "Invalid flight distance format"})
		return
	}

	msg, err := h.app.Weather.Chat(r.Context(), icao, req.FlightDistance.Value)
	if err != nil {
		if errors.Is(err, services.ErrUnknownCode) {
			h.respondWithJSON(w, http.StatusNotFound, models.ChatResponse{Error: "Invalid ICAO code or no data available"})
			return
		}
		h.log.Error("Handler: chat failed", slog.String("icao", icao), slog.Any("error", err))
		h.respondWithJSON(w, http.StatusInternalServerError, models.ChatResponse{Error: "Error processing request: " + err.Error()})
		return
	}
	h.respondWithJSON(w, http.StatusOK, models.ChatResponse{Message: msg})
}
