// calc/impact.go
package calc

import (
	"fmt"
	"strings"

	"github.com/gewnthar/flightops/models"
)

const (
	highWindKts       = 20.0
	lowVisibilityMile = 1.0
)

// Impact texts, appended in this order when their rule fires.
const (
	highWindText      = " High winds (%s kts) might increase fuel usage."
	lowVisibilityText = " Low visibility could lead to delays and increased fuel usage."
	deIcingText       = " Conditions like snow, ice, or fog may require de-icing and can cause delays, increasing fuel usage."
	rainText          = " Rain may lead to increased braking distances and reduced runway friction, potentially affecting fuel usage due to longer taxi and rollout times."
	thunderstormText  = " Thunderstorms may necessitate significant rerouting."
	turbulenceText    = " Turbulence could lead to operational adjustments and potential fuel inefficiencies."

	sigmetThunderstorm = "Potential rerouting increases fuel."
	sigmetVolcanicAsh  = "Avoidance increases fuel usage."
	sigmetTurbulence   = "Operational adjustments may reduce fuel efficiency."
	noSigmetText       = "No significant SIGMET advisories affecting fuel emissions."
)

// TAFImpacts evaluates every forecast period of every TAF and returns one
// impact line per period. A nil response yields no impacts.
func TAFImpacts(resp *models.TafResponse) []models.FuelImpact {
	if resp == nil {
		return nil
	}
	var impacts []models.FuelImpact
	for _, report := range resp.Data {
		icao := report.ICAO
		if icao == "" {
			icao = "Unknown"
		}
		for _, f := range report.Forecast {
			impacts = append(impacts, models.FuelImpact{
				ICAO:        icao,
				Period:      forecastPeriod(f.Timestamp),
				Description: forecastImpact(f),
			})
		}
	}
	return impacts
}

func forecastPeriod(p *models.TafPeriod) string {
	if p == nil {
		return "Unspecified period"
	}
	return fmt.Sprintf("From %s to %s", p.From, p.To)
}

func forecastImpact(f models.TafForecast) string {
	texts := make([]string, 0, len(f.Conditions))
	for _, c := range f.Conditions {
		texts = append(texts, c.Text)
	}
	var b strings.Builder
	if len(texts) == 0 {
		b.WriteString("No significant weather.")
	} else {
		b.WriteString(strings.Join(texts, ", "))
		b.WriteString(".")
	}

	if f.Wind != nil && f.Wind.SpeedKts != nil && *f.Wind.SpeedKts > highWindKts {
		fmt.Fprintf(&b, highWindText, formatNumber(*f.Wind.SpeedKts))
	}
	if f.Visibility != nil && f.Visibility.MilesFloat < lowVisibilityMile {
		b.WriteString(lowVisibilityText)
	}
	if mentions(f.Conditions, "snow", "ice", "fog") {
		b.WriteString(deIcingText)
	}
	if mentions(f.Conditions, "rain") {
		b.WriteString(rainText)
	}
	if mentions(f.Conditions, "thunderstorm") {
		b.WriteString(thunderstormText)
	}
	if mentions(f.Conditions, "turbulence") {
		b.WriteString(turbulenceText)
	}
	return b.String()
}

// mentions reports whether any condition text contains one of words, case-insensitively.
func mentions(conds []models.WeatherCode, words ...string) bool {
	for _, c := range conds {
		text := strings.ToLower(c.Text)
		for _, w := range words {
			if strings.Contains(text, w) {
				return true
			}
		}
	}
	return false
}

// SIGMETImpacts describes each advisory's hazard. When a response carries no
// advisories a single "no significant advisories" entry is returned instead.
func SIGMETImpacts(resp *models.SigmetResponse) []models.FuelImpact {
	if resp == nil {
		return nil
	}
	impacts := make([]models.FuelImpact, 0, len(resp.Data))
	for _, s := range resp.Data {
		icao := s.ICAO
		if icao == "" {
			icao = "Unknown"
		}
		hazard := s.HazardText()
		desc := fmt.Sprintf("Hazard type: %s.", hazard)
		switch h := strings.ToLower(hazard); {
		case strings.Contains(h, "thunderstorm"):
			desc += " " + sigmetThunderstorm
		case strings.Contains(h, "volcanic ash"):
			desc += " " + sigmetVolcanicAsh
		case strings.Contains(h, "turbulence"):
			desc += " " + sigmetTurbulence
		}
		impacts = append(impacts, models.FuelImpact{ICAO: icao, Description: desc})
	}
	if len(impacts) == 0 {
		impacts = append(impacts, models.FuelImpact{ICAO: "N/A", Period: "N/A", Description: noSigmetText})
	}
	return impacts
}
