// auth/gate.go
package auth

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gewnthar/flightops/models"
)

// UserLookup loads a profile by username; (nil, nil) when absent.
type UserLookup interface {
	GetUserByUsername(ctx context.Context, username string) (*models.UserProfile, error)
}

type ctxKey struct{}

// WithUser attaches the authenticated user to ctx.
func WithUser(ctx context.Context, u *models.UserProfile) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

// UserFrom returns the user attached by the Gate, or nil.
func UserFrom(ctx context.Context) *models.UserProfile {
	u, _ := ctx.Value(ctxKey{}).(*models.UserProfile)
	return u
}

// Gate enforces a Policy for every request before routing reaches a handler.
type Gate struct {
	policy   Policy
	sessions *Sessions
	users    UserLookup
	log      *slog.Logger
}

func NewGate(policy Policy, sessions *Sessions, users UserLookup, logger *slog.Logger) *Gate {
	return &Gate{policy: policy, sessions: sessions, users: users, log: logger}
}

// Middleware wraps next with the policy check.
func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rule := g.policy.Lookup(r.URL.Path)

		user, err := g.currentUser(r)
		if err != nil {
			g.log.Error("Auth: failed to load session user", "path", r.URL.Path, "error", err)
			if rule.Public {
				next.ServeHTTP(w, r)
				return
			}
			g.fail(w, r, http.StatusInternalServerError, "Internal server error")
			return
		}
		if user != nil {
			r = r.WithContext(WithUser(r.Context(), user))
		}

		switch {
		case rule.Public:
		case user == nil:
			if isAPI(r) {
				writeJSONError(w, http.StatusUnauthorized, "Authentication required")
				return
			}
			g.sessions.AddFlash(w, r, FlashInfo, "Please log in to access this page.")
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		case !rule.Permits(user.Role):
			g.log.Warn("Auth: access denied", "user", user.Username, "role", user.Role, "path", r.URL.Path)
			if isAPI(r) {
				writeJSONError(w, http.StatusForbidden, "You do not have permission to access this resource")
				return
			}
			g.sessions.AddFlash(w, r, FlashDanger, "You do not have permission to access that page.")
			http.Redirect(w, r, user.Role.DashboardPath(), http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// currentUser resolves the session username with a direct role lookup.
// A session naming a deleted user counts as logged out.
func (g *Gate) currentUser(r *http.Request) (*models.UserProfile, error) {
	name := g.sessions.Username(r)
	if name == "" {
		return nil, nil
	}
	return g.users.GetUserByUsername(r.Context(), name)
}

func (g *Gate) fail(w http.ResponseWriter, r *http.Request, code int, msg string) {
	if isAPI(r) {
		writeJSONError(w, code, msg)
		return
	}
	http.Error(w, msg, code)
}

func isAPI(r *http.Request) bool {
	p := r.URL.Path
	return strings.HasPrefix(p, "/api/") || strings.HasPrefix(p, "/ajax/") ||
		strings.Contains(r.Header.Get("Accept"), "application/json")
}

func writeJSONError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
