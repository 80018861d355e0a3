// handlers/auth_handler.go
package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gewnthar/flightops/auth"
	"github.com/gewnthar/flightops/services"
)

type loginData struct {
	Username string
}

func (h *Handler) home(w http.ResponseWriter, r *http.Request) {
	u := auth.UserFrom(r.Context())
	if u == nil {
		h.redirect(w, r, "/login")
		return
	}
	h.redirect(w, r, u.Role.DashboardPath())
}

func (h *Handler) about(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "about", "About", nil)
}

// health reports database reachability.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := h.app.DB.PingContext(ctx); err != nil {
		h.log.Error("Handler: health check failed", slog.Any("error", err))
		h.respondWithJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "database": err.Error()})
		return
	}
	h.respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok", "database": h.app.DB.Driver()})
}

func (h *Handler) loginForm(w http.ResponseWriter, r *http.Request) {
	if u := auth.UserFrom(r.Context()); u != nil {
		h.redirect(w, r, u.Role.DashboardPath())
		return
	}
	h.render(w, r, http.StatusOK, "login", "Log In", loginData{})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	f := newForm(r)
	username := f.required("username", "username")
	password := f.required("password", "password")
	if !f.valid() {
		for _, msg := range f.errors {
			h.flash(w, r, auth.FlashDanger, msg)
		}
		h.render(w, r, http.StatusOK, "login", "Log In", loginData{Username: username})
		return
	}

	u, err := h.app.Users.Authenticate(r.Context(), username, password)
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		h.flash(w, r, auth.FlashDanger, "User not found")
		h.redirect(w, r, "/login")
		return
	case errors.Is(err, services.ErrIncorrectPassword):
		h.flash(w, r, auth.FlashDanger, "Incorrect password")
		h.render(w, r, http.StatusOK, "login", "Log In", loginData{Username: username})
		return
	case err != nil:
		h.log.Error("Handler: login failed", slog.String("username", username), slog.Any("error", err))
		h.flash(w, r, auth.FlashDanger, "There was an error processing your request. Please try again later.")
		h.redirect(w, r, "/login")
		return
	}

	if err := h.app.Sessions.Login(w, r, u.Username); err != nil {
		h.log.Error("Handler: failed to save session", slog.Any("error", err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	h.log.Info("Handler: user logged in", slog.String("username", u.Username), slog.String("role", string(u.Role)))
	h.redirect(w, r, "/")
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.app.Sessions.Logout(w, r); err != nil {
		h.log.Error("Handler: failed to clear session", slog.Any("error", err))
	}
	h.flash(w, r, auth.FlashSuccess, "You are now logged out")
	h.redirect(w, r, "/login")
}
