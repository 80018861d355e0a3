// report/pdf.go
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/gewnthar/flightops/models"
)

const (
	pageMargin   = 15.0
	rowHeight    = 7.0
	periodColumn = 60.0
	valueColumn  = 60.0
)

// WriteEmissionsPDF renders a country report as a one-table PDF.
func WriteEmissionsPDF(w io.Writer, rep *models.EmissionsReport, generated time.Time) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	// Core fonts are cp1252.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr("Air transport emissions: "+rep.CountryName), false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Air Transport Emissions Report")
	pdf.Ln(12)

	req := rep.Request
	pdf.SetFont("Arial", "", 11)
	for _, line := range []string{
		fmt.Sprintf("Country: %s (%s)", rep.CountryName, req.Country),
		fmt.Sprintf("Timeframe: %s, %s to %s", titleCase(string(req.Timeframe)), req.StartPeriod(), req.EndPeriod()),
		fmt.Sprintf("Generated: %s", generated.UTC().Format("2006-01-02 15:04 MST")),
	} {
		pdf.Cell(0, rowHeight, tr(line))
		pdf.Ln(rowHeight)
	}
	pdf.Ln(4)

	unit := rep.Summary.Unit
	if unit == "" {
		unit = "value"
	}
	pdf.SetFont("Arial", "B", 11)
	pdf.SetFillColor(220, 230, 241)
	pdf.CellFormat(periodColumn, rowHeight, "Period", "1", 0, "L", true, 0, "")
	pdf.CellFormat(valueColumn, rowHeight, tr("Emissions ("+unit+")"), "1", 1, "R", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	for _, p := range rep.Summary.Periods {
		pdf.CellFormat(periodColumn, rowHeight, p.Period, "1", 0, "L", false, 0, "")
		pdf.CellFormat(valueColumn, rowHeight, formatValue(p.Value), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 11)
	s := rep.Summary
	for _, row := range [][2]string{
		{"Total", formatValue(s.Total)},
		{"Average per period", formatValue(s.Average)},
		{"Maximum (" + s.Max.Period + ")", formatValue(s.Max.Value)},
		{"Minimum (" + s.Min.Period + ")", formatValue(s.Min.Value)},
	} {
		pdf.CellFormat(periodColumn, rowHeight, row[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(valueColumn, rowHeight, row[1], "1", 1, "R", false, 0, "")
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render emissions PDF: %w", err)
	}
	return nil
}

// PDFFileName is the download name for a report.
func PDFFileName(rep *models.EmissionsReport) string {
	r := rep.Request
	return fmt.Sprintf("emissions_%s_%s_%s.pdf", r.Country, r.StartPeriod(), r.EndPeriod())
}

func formatValue(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
