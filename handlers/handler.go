// handlers/handler.go
package handlers

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/gewnthar/flightops/app"
	"github.com/gewnthar/flightops/auth"
	"github.com/gewnthar/flightops/models"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var pageNames = []string{
	"login", "about", "not_found",
	"admin", "atc", "regulator",
	"weather", "flights", "chat",
	"fuel_burn", "prediction",
	"report_form", "report", "ranking",
}

var templateFuncs = template.FuncMap{
	"num": func(v float64) string { return fmt.Sprintf("%.2f", v) },
}

// Handler serves every route. It holds the application context and the parsed pages.
type Handler struct {
	app   *app.App
	pages map[string]*template.Template
	log   *slog.Logger
	now   func() time.Time
}

// New parses the embedded templates.
func New(a *app.App) (*Handler, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.New("layout.html").Funcs(templateFuncs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		pages[name] = t
	}
	return &Handler{app: a, pages: pages, log: a.Log, now: time.Now}, nil
}

// Router wires middleware, the authorization gate and every route.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(h.app.Config.Server.RequestTimeout))
	r.Use(h.app.Gate.Middleware)

	r.NotFound(h.notFound)

	static, _ := fs.Sub(staticFS, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	r.Get("/", h.home)
	r.Get("/about/", h.about)
	r.Get("/api/health", h.health)
	r.Get("/login", h.loginForm)
	r.Post("/login", h.login)
	r.Get("/logout", h.logout)

	r.Get("/admin", h.adminDashboard)
	r.Post("/admin/users", h.createUser)
	r.Post("/admin/reference/reload/{table}", h.reloadReference)
	r.Get("/atc", h.atcDashboard)
	r.Get("/regulator", h.regulatorDashboard)

	r.Get("/weather/", h.redirectHome)
	r.Get("/weather/{icao}", h.weather)
	r.Get("/chat/", h.chatPage)
	r.Post("/api/chat/", h.chat)

	r.Get("/flights/", h.flights)
	r.Get("/flights/{src}/{dest}/{date}", h.flightOffers)
	r.Post("/ajax/getDistance", h.getDistance)

	r.Get("/fuel-burn/", h.fuelBurnForm)
	r.Post("/fuel-burn/", h.fuelBurn)
	r.Get("/prediction/", h.predictionForm)
	r.Post("/prediction/", h.prediction)

	r.Get("/emissions-report/", h.reportForm)
	r.Post("/emissions-report/", h.report)
	r.Get("/emissions-report/pdf", h.reportPDF)
	r.Get("/emissions-ranking", h.rankingForm)
	r.Post("/emissions-ranking", h.ranking)
	r.Get("/emissions-ranking/csv", h.rankingCSV)

	return r
}

// page is the data every template receives.
type page struct {
	Title   string
	User    *models.UserProfile
	Flashes []auth.Flash
	Data    any
}

// render executes a page into a buffer first so a template error never
// leaves a half-written response.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, name, title string, data any) {
	t, ok := h.pages[name]
	if !ok {
		h.log.Error("Handler: unknown template", slog.String("name", name))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	p := page{
		Title:   title,
		User:    auth.UserFrom(r.Context()),
		Flashes: h.app.Sessions.Flashes(w, r),
		Data:    data,
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", p); err != nil {
		h.log.Error("Handler: failed to render template", slog.String("name", name), slog.Any("error", err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func (h *Handler) flash(w http.ResponseWriter, r *http.Request, category, message string) {
	h.app.Sessions.AddFlash(w, r, category, message)
}

func (h *Handler) flashFieldErrors(w http.ResponseWriter, r *http.Request, errs []models.FieldError) {
	for _, e := range errs {
		h.flash(w, r, auth.FlashDanger, e.Error())
	}
}

func (h *Handler) redirect(w http.ResponseWriter, r *http.Request, path string) {
	http.Redirect(w, r, path, http.StatusSeeOther)
}

func (h *Handler) redirectHome(w http.ResponseWriter, r *http.Request) {
	h.redirect(w, r, "/")
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusNotFound, "not_found", "Page Not Found", nil)
}
