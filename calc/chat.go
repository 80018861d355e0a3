// calc/chat.go
package calc

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gewnthar/flightops/models"
)

const (
	chatEmissionsPerKM = 0.1
	tailwindFactor     = 0.9
	tailwindKts        = 10.0
)

// Conditions is the subset of a METAR the chat assistant reports on.
type Conditions struct {
	TemperatureC *float64
	WindKts      *float64
	Rain         bool
	Thunderstorm bool
}

// CurrentConditions extracts Conditions from a decoded METAR; a nil METAR yields zero values.
func CurrentConditions(m *models.Metar) Conditions {
	var c Conditions
	if t, ok := m.TemperatureC(); ok {
		c.TemperatureC = &t
	}
	if w, ok := m.WindSpeedKts(); ok {
		c.WindKts = &w
	}
	if m == nil {
		return c
	}
	for _, wx := range m.Conditions {
		code := strings.TrimLeft(wx.Code, "+-")
		if strings.Contains(code, "RA") {
			c.Rain = true
		}
		if strings.HasPrefix(code, "TS") {
			c.Thunderstorm = true
		}
	}
	return c
}

// ChatEmissionsKG is the assistant's rough estimate: 0.1 kg per km, reduced
// by 10% when the reported wind exceeds 10 kt.
func ChatEmissionsKG(distanceKM float64, windKts *float64) float64 {
	kg := distanceKM * chatEmissionsPerKM
	if windKts != nil && *windKts > tailwindKts {
		kg *= tailwindFactor
	}
	return kg
}

// Recommendation picks advice for an emissions estimate.
func Recommendation(kg float64) string {
	switch {
	case kg < 100:
		return "Your flight emissions are relatively low. Consider offsetting them with a carbon offset program."
	case kg < 200:
		return "Your flight emissions are moderate. You may want to choose a more fuel-efficient airline for future flights."
	}
	return "Your flight emissions are high. Consider alternative transportation options or carbon offset programs."
}

// ChatMessage renders the assistant reply.
func ChatMessage(c Conditions, kg float64) string {
	lines := []string{"Current Weather Conditions:"}
	if c.TemperatureC != nil {
		lines = append(lines, fmt.Sprintf("Temperature: %s °C", formatNumber(*c.TemperatureC)))
	}
	if c.WindKts != nil {
		lines = append(lines, fmt.Sprintf("Wind Speed: %s kt", formatNumber(*c.WindKts)))
	}
	lines = append(lines,
		"Rainfall: "+yesNo(c.Rain),
		"Thunderstorms: "+yesNo(c.Thunderstorm),
	)
	return strings.Join(lines, "\n") + fmt.Sprintf("\n\nEmissions: %.2f kg CO2. %s", kg, Recommendation(kg))
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
