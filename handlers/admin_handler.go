// handlers/admin_handler.go
package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/gewnthar/flightops/auth"
	"github.com/gewnthar/flightops/database"
	"github.com/gewnthar/flightops/models"
	"github.com/gewnthar/flightops/services"
)

const recentLoadsLimit = 20

type adminData struct {
	Users       []models.UserProfile
	Tables      []models.ReferenceTableStatus
	RecentLoads []models.ReferenceLoad
	Roles       []models.Role
}

type atcData struct {
	IcaoCodes []models.IcaoCode
}

func (h *Handler) adminDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	data := adminData{Roles: models.AllRoles}
	var err error
	if data.Users, err = h.app.Users.List(ctx); err != nil {
		h.log.Error("Handler: failed to list users", slog.Any("error", err))
		h.flash(w, r, auth.FlashDanger, "Could not load user profiles.")
	}
	if data.Tables, err = h.app.Reference.Status(ctx); err != nil {
		h.log.Error("Handler: failed to read reference status", slog.Any("error", err))
	}
	if data.RecentLoads, err = h.app.DB.ListReferenceLoads(ctx, recentLoadsLimit); err != nil {
		h.log.Error("Handler: failed to list reference loads", slog.Any("error", err))
	}
	h.render(w, r, http.StatusOK, "admin", "Admin Dashboard", data)
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	f := newForm(r)
	in := services.NewUser{
		FirstName: f.str("first_name"),
		LastName:  f.str("last_name"),
		Username:  f.str("username"),
		Password:  f.r.Form.Get("password"),
		Role:      f.str("role"),
	}
	u, err := h.app.Users.CreateUser(r.Context(), in)
	switch {
	case errors.Is(err, database.ErrDuplicateUsername):
		h.flash(w, r, auth.FlashDanger, fmt.Sprintf("Username %q already exists", in.Username))
	case errors.Is(err, services.ErrInvalidInput):
		h.flash(w, r, auth.FlashDanger, strings.TrimPrefix(err.Error(), services.ErrInvalidInput.Error()+": "))
	case err != nil:
		h.log.Error("Handler: failed to create user", slog.Any("error", err))
		h.flash(w, r, auth.FlashDanger, "There was an error processing your request. Please try again later.")
	default:
		h.flash(w, r, auth.FlashSuccess, fmt.Sprintf("User %s created with role %s", u.Username, u.Role))
	}
	h.redirect(w, r, "/admin")
}

// reloadReference replaces one reference table from its configured source.
// POST /admin/reference/reload/{table}
func (h *Handler) reloadReference(w http.ResponseWriter, r *http.Request) {
	table := strings.ToLower(chi.URLParam(r, "table"))
	if !database.IsReferenceTable(table) {
		if wantsJSON(r) {
			h.respondWithError(w, http.StatusNotFound, fmt.Sprintf("Unknown reference table %q", table))
			return
		}
		h.flash(w, r, auth.FlashWarning, fmt.Sprintf("Unknown reference table %q", table))
		h.redirect(w, r, "/admin")
		return
	}

	h.log.Info("Handler: manual reference reload requested", slog.String("table", table))
	n, err := h.app.Reference.Reload(r.Context(), table)
	if err != nil {
		h.log.Error("Handler: reference reload failed", slog.String("table", table), slog.Any("error", err))
		if wantsJSON(r) {
			h.respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to reload %s: %v", table, err))
			return
		}
		h.flash(w, r, auth.FlashDanger, fmt.Sprintf("Failed to reload %s", table))
		h.redirect(w, r, "/admin")
		return
	}

	msg := fmt.Sprintf("Reloaded %s: %d rows", table, n)
	if wantsJSON(r) {
		h.respondWithJSON(w, http.StatusOK, map[string]any{"message": msg, "table": table, "rows": n})
		return
	}
	h.flash(w, r, auth.FlashSuccess, msg)
	h.redirect(w, r, "/admin")
}

func (h *Handler) atcDashboard(w http.ResponseWriter, r *http.Request) {
	codes, err := h.app.Reference.IcaoCodes(r.Context())
	if err != nil {
		h.log.Error("Handler: failed to list ICAO codes", slog.Any("error", err))
		h.flash(w, r, auth.FlashWarning, "ICAO reference data is unavailable.")
	}
	h.render(w, r, http.StatusOK, "atc", "ATC Dashboard", atcData{IcaoCodes: codes})
}

func (h *Handler) regulatorDashboard(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "regulator", "Regulator Dashboard", nil)
}
