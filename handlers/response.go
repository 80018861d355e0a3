// handlers/response.go
package handlers

import (
	"encoding/json"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"
)

// respondWithJSON writes payload as a JSON response.
func (h *Handler) respondWithJSON(w http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		h.log.Error("Handler: failed to marshal JSON response", slog.Any("error", err))
		http.Error(w, `{"error":"Failed to marshal JSON response"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// respondWithError writes {"error": message}.
func (h *Handler) respondWithError(w http.ResponseWriter, code int, message string) {
	h.log.Warn("Handler: API error", slog.Int("status", code), slog.String("error", message))
	h.respondWithJSON(w, code, map[string]string{"error": message})
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

// form reads typed fields from a parsed form and collects one message per bad field.
type form struct {
	r      *http.Request
	errors []string
}

func newForm(r *http.Request) *form {
	r.ParseForm()
	return &form{r: r}
}

func (f *form) str(name string) string {
	return strings.TrimSpace(f.r.Form.Get(name))
}

func (f *form) required(name, label string) string {
	v := f.str(name)
	if v == "" {
		f.errors = append(f.errors, "Error in "+label+": This field is required.")
	}
	return v
}

func (f *form) int(name, label string) int {
	v := f.str(name)
	n, err := strconv.Atoi(v)
	if err != nil {
		f.errors = append(f.errors, "Error in "+label+": Not a valid integer value.")
	}
	return n
}

// optionalInt returns 0 when the field is empty.
func (f *form) optionalInt(name, label string) int {
	if f.str(name) == "" {
		return 0
	}
	return f.int(name, label)
}

func (f *form) float(name, label string) float64 {
	v := f.str(name)
	n, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		f.errors = append(f.errors, "Error in "+label+": Not a valid float value.")
	}
	return n
}

func (f *form) optionalFloat(name, label string) float64 {
	if f.str(name) == "" {
		return 0
	}
	return f.float(name, label)
}

func (f *form) valid() bool {
	return len(f.errors) == 0
}
