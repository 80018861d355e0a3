// auth/sessions.go
package auth

import (
	"encoding/gob"
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"
)

const (
	sessionName = "flightops_session"
	keyUsername = "username"
)

// Flash categories, used as CSS classes by the templates.
const (
	FlashSuccess = "success"
	FlashInfo    = "info"
	FlashWarning = "warning"
	FlashDanger  = "danger"
)

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Category string
	Message  string
}

func init() {
	gob.Register(Flash{})
}

// Sessions wraps a signed cookie store holding the logged-in username and flashes.
type Sessions struct {
	store *sessions.CookieStore
	log   *slog.Logger
}

// NewSessions builds a cookie store keyed by key (at least 32 bytes).
func NewSessions(key []byte, secure bool, logger *slog.Logger) *Sessions {
	store := sessions.NewCookieStore(key)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &Sessions{store: store, log: logger}
}

// session returns the request's session. A cookie that fails to decode
// (rotated key, tampering) yields a fresh session.
func (s *Sessions) session(r *http.Request) *sessions.Session {
	sess, err := s.store.Get(r, sessionName)
	if err != nil {
		s.log.Debug("Auth: discarding undecodable session cookie", "error", err)
	}
	return sess
}

// Username returns the logged-in username, or "" when there is none.
func (s *Sessions) Username(r *http.Request) string {
	name, _ := s.session(r).Values[keyUsername].(string)
	return name
}

// Login records username in the session.
func (s *Sessions) Login(w http.ResponseWriter, r *http.Request, username string) error {
	sess := s.session(r)
	sess.Values[keyUsername] = username
	return sess.Save(r, w)
}

// Logout drops the username, keeping pending flashes.
func (s *Sessions) Logout(w http.ResponseWriter, r *http.Request) error {
	sess := s.session(r)
	delete(sess.Values, keyUsername)
	return sess.Save(r, w)
}

// AddFlash queues a message for the next page render.
func (s *Sessions) AddFlash(w http.ResponseWriter, r *http.Request, category, message string) {
	sess := s.session(r)
	sess.AddFlash(Flash{Category: category, Message: message})
	if err := sess.Save(r, w); err != nil {
		s.log.Error("Auth: failed to save flash", "error", err)
	}
}

// Flashes pops all pending messages. It must run before the response body is written.
func (s *Sessions) Flashes(w http.ResponseWriter, r *http.Request) []Flash {
	sess := s.session(r)
	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := sess.Save(r, w); err != nil {
		s.log.Error("Auth: failed to clear flashes", "error", err)
	}
	out := make([]Flash, 0, len(raw))
	for _, v := range raw {
		if f, ok := v.(Flash); ok {
			out = append(out, f)
		}
	}
	return out
}
