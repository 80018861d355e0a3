// handlers/fuel_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gewnthar/flightops/auth"
	"github.com/gewnthar/flightops/models"
	"github.com/gewnthar/flightops/predict"
	"github.com/gewnthar/flightops/services"
)

type fuelBurnData struct {
	Aircraft []models.Aircraft
	Type     string
	Distance string
	Src      string
	Dest     string
	Estimate *models.FuelEstimate
}

type predictionData struct {
	Classes   []struct{ Code, Label string }
	Available bool
	Form      map[string]string
	Result    *models.PredictionResult
}

var predictionFields = []string{
	"airline_iata", "acft_icao", "acft_class", "seymour_proxy", "seats",
	"n_flights", "iata_departure", "iata_arrival", "distance_km", "fuel_burn_seymour",
}

func (h *Handler) fuelBurnForm(w http.ResponseWriter, r *http.Request) {
	h.renderFuelBurn(w, r, http.StatusOK, fuelBurnData{})
}

// fuelBurn estimates fuel for an aircraft type over either an explicit
// distance or the great-circle distance between two airports.
func (h *Handler) fuelBurn(w http.ResponseWriter, r *http.Request) {
	f := newForm(r)
	data := fuelBurnData{
		Type:     f.required("aircraft_type", "aircraft_type"),
		Distance: f.str("distance_km"),
		Src:      f.str("src"),
		Dest:     f.str("dest"),
	}
	km := f.optionalFloat("distance_km", "distance_km")
	if data.Distance == "" && (data.Src == "" || data.Dest == "") {
		f.errors = append(f.errors, "Error in distance_km: Enter a distance or both airports.")
	}
	if !f.valid() {
		for _, msg := range f.errors {
			h.flash(w, r, auth.FlashDanger, msg)
		}
		h.renderFuelBurn(w, r, http.StatusOK, data)
		return
	}

	var (
		est *models.FuelEstimate
		err error
	)
	if data.Distance != "" {
		est, err = h.app.Fuel.Estimate(r.Context(), data.Type, km)
	} else {
		est, err = h.app.Fuel.EstimateRoute(r.Context(), data.Type, data.Src, data.Dest)
	}
	switch {
	case errors.Is(err, services.ErrAircraftNotFound):
		h.flash(w, r, auth.FlashWarning, "Aircraft type not found")
	case errors.Is(err, services.ErrUnknownCode):
		h.flash(w, r, auth.FlashWarning, "Could not compute the distance between those airports")
	case errors.Is(err, services.ErrInvalidInput):
		h.flash(w, r, auth.FlashDanger, "Error in distance_km: Distance must not be negative.")
	case err != nil:
		h.log.Error("Handler: fuel estimate failed", slog.String("type", data.Type), slog.Any("error", err))
		h.flash(w, r, auth.FlashDanger, "There was an error processing your request. Please try again later.")
	default:
		data.Estimate = est
	}
	h.renderFuelBurn(w, r, http.StatusOK, data)
}

func (h *Handler) renderFuelBurn(w http.ResponseWriter, r *http.Request, status int, data fuelBurnData) {
	aircraft, err := h.app.Fuel.Aircraft(r.Context())
	if err != nil {
		h.log.Error("Handler: failed to list aircraft", slog.Any("error", err))
	}
	data.Aircraft = aircraft
	h.render(w, r, status, "fuel_burn", "Fuel Burn Estimate", data)
}

func (h *Handler) predictionForm(w http.ResponseWriter, r *http.Request) {
	if !h.app.Prediction.Available() {
		h.flash(w, r, auth.FlashWarning, "The prediction model is not available.")
	}
	h.render(w, r, http.StatusOK, "prediction", "Emissions Prediction", h.newPredictionData(nil))
}

// prediction runs the emissions model on the submitted route and aircraft.
func (h *Handler) prediction(w http.ResponseWriter, r *http.Request) {
	f := newForm(r)
	in := models.PredictionInput{
		AirlineIATA:       f.required("airline_iata", "airline_iata"),
		AircraftICAO:      f.required("acft_icao", "acft_icao"),
		AircraftClass:     f.required("acft_class", "acft_class"),
		ProxyAircraft:     f.str("seymour_proxy"),
		Seats:             f.float("seats", "seats"),
		Flights:           f.float("n_flights", "n_flights"),
		DepartureIATA:     f.required("iata_departure", "iata_departure"),
		ArrivalIATA:       f.required("iata_arrival", "iata_arrival"),
		DistanceKM:        f.optionalFloat("distance_km", "distance_km"),
		FuelBurnPerFlight: f.float("fuel_burn_seymour", "fuel_burn_seymour"),
	}
	if in.ProxyAircraft == "" {
		in.ProxyAircraft = in.AircraftICAO
	}
	data := h.newPredictionData(r)
	if !f.valid() {
		for _, msg := range f.errors {
			h.flash(w, r, auth.FlashDanger, msg)
		}
		h.render(w, r, http.StatusOK, "prediction", "Emissions Prediction", data)
		return
	}

	res, err := h.app.Prediction.Predict(r.Context(), in)
	switch {
	case errors.Is(err, predict.ErrModelUnavailable):
		h.flash(w, r, auth.FlashWarning, "The prediction model is not available.")
	case errors.Is(err, services.ErrUnknownCode):
		h.flash(w, r, auth.FlashWarning, "Could not compute the distance between those airports")
	case errors.Is(err, services.ErrInvalidInput):
		h.flash(w, r, auth.FlashDanger, "Values must not be negative.")
	case err != nil:
		h.log.Error("Handler: prediction failed", slog.Any("error", err))
		h.flash(w, r, auth.FlashDanger, "There was an error processing your request. Please try again later.")
	default:
		data.Result = res
	}
	h.render(w, r, http.StatusOK, "prediction", "Emissions Prediction", data)
}

// newPredictionData echoes the submitted fields back into the form.
func (h *Handler) newPredictionData(r *http.Request) predictionData {
	data := predictionData{
		Classes:   models.AircraftClasses,
		Available: h.app.Prediction.Available(),
		Form:      make(map[string]string, len(predictionFields)),
	}
	if r != nil {
		for _, name := range predictionFields {
			data.Form[name] = strings.TrimSpace(r.Form.Get(name))
		}
	}
	return data
}
