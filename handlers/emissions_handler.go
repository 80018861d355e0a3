// handlers/emissions_handler.go
package handlers

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gewnthar/flightops/auth"
	"github.com/gewnthar/flightops/calc"
	"github.com/gewnthar/flightops/models"
	"github.com/gewnthar/flightops/report"
	"github.com/gewnthar/flightops/services"
)

const (
	msgNoData       = "No data available for the selected parameters."
	msgRequestError = "There was an error processing your request. Please try again later."
)

type reportFormData struct {
	Countries  []models.Country
	Timeframes []models.Timeframe
	Form       map[string]string
}

type reportData struct {
	Report  *models.EmissionsReport
	PDFLink string
}

type rankingData struct {
	Form    map[string]string
	Ranking *models.EmissionsRanking
	CSVLink string
}

var (
	reportFields  = []string{"country", "timeframe", "start_year", "end_year", "month", "end_month", "quarter", "end_quarter"}
	rankingFields = []string{"year", "start_month", "end_month", "order"}
)

// readReportRequest parses the report fields from the query string or the posted form.
func readReportRequest(f *form) models.ReportRequest {
	return models.ReportRequest{
		Country:      strings.ToUpper(f.str("country")),
		Timeframe:    models.Timeframe(strings.ToLower(f.str("timeframe"))),
		StartYear:    f.int("start_year", "start_year"),
		EndYear:      f.int("end_year", "end_year"),
		StartMonth:   f.optionalInt("month", "month"),
		EndMonth:     f.optionalInt("end_month", "end_month"),
		StartQuarter: f.optionalInt("quarter", "quarter"),
		EndQuarter:   f.optionalInt("end_quarter", "end_quarter"),
	}
}

func readRankingRequest(f *form) models.RankingRequest {
	return models.RankingRequest{
		Year:       f.int("year", "year"),
		StartMonth: f.int("start_month", "start_month"),
		EndMonth:   f.int("end_month", "end_month"),
		Order:      models.ParseSortOrder(f.str("order")),
	}
}

// validate flashes every parse and range error and reports whether there were none.
func (h *Handler) validate(w http.ResponseWriter, r *http.Request, f *form, errs []models.FieldError) bool {
	for _, msg := range f.errors {
		h.flash(w, r, auth.FlashDanger, msg)
	}
	if len(f.errors) > 0 {
		return false
	}
	h.flashFieldErrors(w, r, errs)
	return len(errs) == 0
}

func echoFields(r *http.Request, names []string) map[string]string {
	out := make(map[string]string, len(names))
	if r == nil {
		return out
	}
	for _, name := range names {
		out[name] = strings.TrimSpace(r.Form.Get(name))
	}
	return out
}

func queryFor(r *http.Request, names []string) string {
	q := url.Values{}
	for _, name := range names {
		if v := strings.TrimSpace(r.Form.Get(name)); v != "" {
			q.Set(name, v)
		}
	}
	return q.Encode()
}

func (h *Handler) reportForm(w http.ResponseWriter, r *http.Request) {
	h.renderReportForm(w, r, nil)
}

func (h *Handler) renderReportForm(w http.ResponseWriter, r *http.Request, submitted *http.Request) {
	countries, err := h.app.Emissions.Countries(r.Context())
	if err != nil {
		h.log.Error("Handler: failed to list countries", slog.Any("error", err))
		h.flash(w, r, auth.FlashWarning, "Country list is unavailable.")
	}
	h.render(w, r, http.StatusOK, "report_form", "Emissions Report", reportFormData{
		Countries:  countries,
		Timeframes: []models.Timeframe{models.TimeframeAnnual, models.TimeframeMonthly, models.TimeframeQuarterly},
		Form:       echoFields(submitted, reportFields),
	})
}

// report aggregates one country's emissions and renders the summary.
// POST /emissions-report/
func (h *Handler) report(w http.ResponseWriter, r *http.Request) {
	f := newForm(r)
	req := readReportRequest(f)
	if !h.validate(w, r, f, req.Validate()) {
		h.renderReportForm(w, r, r)
		return
	}

	rep, err := h.app.Emissions.Report(r.Context(), req)
	if err != nil {
		h.emissionsFailed(w, r, err, "/emissions-report/")
		return
	}
	h.render(w, r, http.StatusOK, "report", "Emissions Report", reportData{
		Report:  rep,
		PDFLink: "/emissions-report/pdf?" + queryFor(r, reportFields),
	})
}

// reportPDF renders the same report as a downloadable PDF.
// GET /emissions-report/pdf?country=...&timeframe=...
func (h *Handler) reportPDF(w http.ResponseWriter, r *http.Request) {
	f := newForm(r)
	req := readReportRequest(f)
	if !h.validate(w, r, f, req.Validate()) {
		h.redirect(w, r, "/emissions-report/")
		return
	}
	rep, err := h.app.Emissions.Report(r.Context(), req)
	if err != nil {
		h.emissionsFailed(w, r, err, "/emissions-report/")
		return
	}

	var buf bytes.Buffer
	if err := report.WriteEmissionsPDF(&buf, rep, h.now()); err != nil {
		h.log.Error("Handler: failed to render PDF", slog.Any("error", err))
		h.flash(w, r, auth.FlashDanger, msgRequestError)
		h.redirect(w, r, "/emissions-report/")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+report.PDFFileName(rep)+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	buf.WriteTo(w)
}

func (h *Handler) rankingForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "ranking", "Emissions Ranking", rankingData{Form: echoFields(nil, rankingFields)})
}

// ranking ranks every country over a month range.
// POST /emissions-ranking
func (h *Handler) ranking(w http.ResponseWriter, r *http.Request) {
	f := newForm(r)
	req := readRankingRequest(f)
	data := rankingData{Form: echoFields(r, rankingFields)}
	if !h.validate(w, r, f, req.Validate()) {
		h.render(w, r, http.StatusOK, "ranking", "Emissions Ranking", data)
		return
	}

	ranking, err := h.app.Emissions.Ranking(r.Context(), req)
	if err != nil {
		h.emissionsFailed(w, r, err, "/emissions-ranking")
		return
	}
	data.Ranking = ranking
	data.CSVLink = "/emissions-ranking/csv?" + queryFor(r, rankingFields)
	h.render(w, r, http.StatusOK, "ranking", "Emissions Ranking", data)
}

// rankingCSV exports a ranking.
// GET /emissions-ranking/csv?year=...&start_month=...&end_month=...&order=...
func (h *Handler) rankingCSV(w http.ResponseWriter, r *http.Request) {
	f := newForm(r)
	req := readRankingRequest(f)
	if !h.validate(w, r, f, req.Validate()) {
		h.redirect(w, r, "/emissions-ranking")
		return
	}
	ranking, err := h.app.Emissions.Ranking(r.Context(), req)
	if err != nil {
		h.emissionsFailed(w, r, err, "/emissions-ranking")
		return
	}

	var buf bytes.Buffer
	if err := report.WriteRankingCSV(&buf, ranking); err != nil {
		h.log.Error("Handler: failed to write CSV", slog.Any("error", err))
		h.flash(w, r, auth.FlashDanger, msgRequestError)
		h.redirect(w, r, "/emissions-ranking")
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+report.CSVFileName(ranking)+`"`)
	buf.WriteTo(w)
}

// emissionsFailed maps a service error to a flash and redirects back to the form.
func (h *Handler) emissionsFailed(w http.ResponseWriter, r *http.Request, err error, back string) {
	var fe models.FieldError
	switch {
	case errors.Is(err, calc.ErrNoRecords):
		h.flash(w, r, auth.FlashInfo, msgNoData)
	case errors.Is(err, services.ErrInvalidInput) && errors.As(err, &fe):
		h.flash(w, r, auth.FlashDanger, fe.Error())
	default:
		h.log.Error("Handler: emissions request failed", slog.String("path", r.URL.Path), slog.Any("error", err))
		h.flash(w, r, auth.FlashDanger, msgRequestError)
	}
	h.redirect(w, r, back)
}
