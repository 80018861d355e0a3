package calc

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/gewnthar/flightops/models"
)

const tafFixture = `{
  "results": 1,
  "data": [{
    "icao": "MKJP",
    "forecast": [
      {
        "timestamp": {"from": "2024-04-01T12:00:00", "to": "2024-04-01T18:00:00"},
        "wind": {"speed_kts": 25},
        "visibility": {"miles": "1/2", "miles_float": 0.5},
        "conditions": [{"code": "FG", "text": "Fog"}, {"code": "RA", "text": "Rain"}]
      },
      {
        "timestamp": {"from": "2024-04-01T18:00:00", "to": "2024-04-02T00:00:00"},
        "wind": {"speed_kts": 12},
        "conditions": [{"code": "TS", "text": "Thunderstorm"}, {"code": "TB", "text": "Moderate turbulence"}]
      },
      {
        "timestamp": {"from": "2024-04-02T00:00:00", "to": "2024-04-02T06:00:00"}
      }
    ]
  }]
}`

func TestTAFImpacts(t *testing.T) {
	var resp models.TafResponse
	if err := json.Unmarshal([]byte(tafFixture), &resp); err != nil {
		t.Fatal(err)
	}
	impacts := TAFImpacts(&resp)
	if len(impacts) != 3 {
		t.Fatalf("impacts = %d, want 3", len(impacts))
	}

	first := impacts[0]
	if first.ICAO != "MKJP" || first.Period != "From 2024-04-01T12:00:00 to 2024-04-01T18:00:00" {
		t.Errorf("first impact header = %+v", first)
	}
	// Rules fire in a fixed order: wind, visibility, de-icing, rain.
	order := []string{"High winds (25 kts)", "Low visibility", "de-icing", "braking distances"}
	last := -1
	for _, frag := range order {
		i := strings.Index(first.Description, frag)
		if i < 0 {
			t.Fatalf("missing %q in %q", frag, first.Description)
		}
		if i < last {
			t.Errorf("%q out of order in %q", frag, first.Description)
		}
		last = i
	}
	if strings.Contains(first.Description, "Thunderstorms") {
		t.Errorf("unexpected thunderstorm text: %q", first.Description)
	}

	second := impacts[1].Description
	if strings.Contains(second, "High winds") {
		t.Errorf("12 kt wind flagged as high: %q", second)
	}
	if !strings.Contains(second, "rerouting") || !strings.Contains(second, "Turbulence could lead") {
		t.Errorf("second impact = %q", second)
	}

	if impacts[2].Description != "No significant weather." {
		t.Errorf("quiet period = %q", impacts[2].Description)
	}
}

func TestTAFImpactsNil(t *testing.T) {
	if got := TAFImpacts(nil); got != nil {
		t.Errorf("TAFImpacts(nil) = %v", got)
	}
}

func TestSIGMETImpacts(t *testing.T) {
	hazard := func(text string) *models.SigmetHazard {
		return &models.SigmetHazard{Type: &models.WeatherCode{Text: text}}
	}
	resp := &models.SigmetResponse{Data: []models.Sigmet{
		{ICAO: "KZMA", Hazard: hazard("Thunderstorm")},
		{ICAO: "KZMA", Hazard: hazard("Volcanic ash")},
		{ICAO: "KZMA", Hazard: hazard("Turbulence")},
		{},
	}}
	impacts := SIGMETImpacts(resp)
	if len(impacts) != 4 {
		t.Fatalf("impacts = %d, want 4", len(impacts))
	}
	want := []string{
		"Hazard type: Thunderstorm. Potential rerouting increases fuel.",
		"Hazard type: Volcanic ash. Avoidance increases fuel usage.",
		"Hazard type: Turbulence. Operational adjustments may reduce fuel efficiency.",
		"Hazard type: Unknown.",
	}
	for i, w := range want {
		if impacts[i].Description != w {
			t.Errorf("impact %d = %q, want %q", i, impacts[i].Description, w)
		}
	}
	if impacts[3].ICAO != "Unknown" {
		t.Errorf("missing icao = %q, want Unknown", impacts[3].ICAO)
	}
}

func TestSIGMETImpactsNone(t *testing.T) {
	impacts := SIGMETImpacts(&models.SigmetResponse{})
	if len(impacts) != 1 || !strings.HasPrefix(impacts[0].Description, "No significant SIGMET advisories") {
		t.Errorf("impacts = %+v", impacts)
	}
}
