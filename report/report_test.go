package report

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/gewnthar/flightops/models"
)

func TestWriteEmissionsPDF(t *testing.T) {
	rep := &models.EmissionsReport{
		Request:     models.ReportRequest{Country: "JAM", Timeframe: models.TimeframeAnnual, StartYear: 2020, EndYear: 2021},
		CountryName: "Jamaica",
		Summary: models.EmissionsSummary{
			Periods: []models.PeriodTotal{{Period: "2020", Value: 150}, {Period: "2021", Value: 200}},
			Total:   350,
			Average: 175,
			Max:     models.PeriodTotal{Period: "2021", Value: 200},
			Min:     models.PeriodTotal{Period: "2020", Value: 150},
			Unit:    "T_CO2E",
		},
	}
	var buf bytes.Buffer
	if err := WriteEmissionsPDF(&buf, rep, time.Date(2024, 1, 2, 3, 4, 0, 0, time.UTC)); err != nil {
		t.Fatalf("WriteEmissionsPDF: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Errorf("output does not start with a PDF header: %q", buf.Bytes()[:min(8, buf.Len())])
	}
	if got := PDFFileName(rep); got != "emissions_JAM_2020_2021.pdf" {
		t.Errorf("PDFFileName = %q", got)
	}
}

func TestWriteEmissionsPDFTranslatesCountryName(t *testing.T) {
	rep := &models.EmissionsReport{
		Request:     models.ReportRequest{Country: "CUW", Timeframe: models.TimeframeAnnual, StartYear: 2020, EndYear: 2020},
		CountryName: "Curaçao",
		Summary: models.EmissionsSummary{
			Periods: []models.PeriodTotal{{Period: "2020", Value: 12}},
			Total:   12,
			Average: 12,
			Max:     models.PeriodTotal{Period: "2020", Value: 12},
			Min:     models.PeriodTotal{Period: "2020", Value: 12},
		},
	}
	var buf bytes.Buffer
	if err := WriteEmissionsPDF(&buf, rep, time.Date(2024, 1, 2, 3, 4, 0, 0, time.UTC)); err != nil {
		t.Fatalf("WriteEmissionsPDF: %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("Cura\xe7ao")) {
		t.Error("title is not cp1252 encoded")
	}
	if bytes.Contains(buf.Bytes(), []byte("Cura\xc3\xa7ao")) {
		t.Error("raw UTF-8 written with a core font")
	}
}

func TestWriteRankingCSV(t *testing.T) {
	ranking := &models.EmissionsRanking{
		Request: models.RankingRequest{Year: 2022, StartMonth: 1, EndMonth: 3},
		Entries: []models.RankingEntry{
			{Rank: 1, CountryCode: "USA", CountryName: "United States", Emissions: 1000, SharePercent: 90.9, Tier: models.TierHigh},
			{Rank: 2, CountryCode: "JAM", CountryName: "Jamaica", Emissions: 100, SharePercent: 9.1, Tier: models.TierLow},
		},
	}
	var buf bytes.Buffer
	if err := WriteRankingCSV(&buf, ranking); err != nil {
		t.Fatalf("WriteRankingCSV: %v", err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Fatalf("records = %d, want header + 2", len(records))
	}
	if strings.Join(records[0], ",") != "rank,country_code,country_name,emissions,share_percent,tier" {
		t.Errorf("header = %v", records[0])
	}
	if records[2][1] != "JAM" || records[2][5] != "low" {
		t.Errorf("row = %v", records[2])
	}
	if got := CSVFileName(ranking); got != "emissions_ranking_2022-01_2022-03.csv" {
		t.Errorf("CSVFileName = %q", got)
	}
}

func TestWriteRankingCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteRankingCSV(&buf, &models.EmissionsRanking{}); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "rank,") {
		t.Errorf("output = %q, want header only", buf.String())
	}
}
