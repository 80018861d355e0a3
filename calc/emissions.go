// calc/emissions.go
package calc

import (
	"errors"
	"sort"

	"github.com/gewnthar/flightops/models"
)

// ErrNoRecords is returned when there is nothing to aggregate.
var ErrNoRecords = errors.New("no records found")

// AggregateEmissions groups observations by period and sums within each one.
// Average is the mean of the period totals.
func AggregateEmissions(obs []models.EmissionObservation) (models.EmissionsSummary, error) {
	if len(obs) == 0 {
		return models.EmissionsSummary{}, ErrNoRecords
	}

	byPeriod := make(map[string]float64)
	var unit string
	for _, o := range obs {
		byPeriod[o.TimePeriod] += o.Value
		if unit == "" {
			unit = o.Unit
		}
	}

	periods := make([]models.PeriodTotal, 0, len(byPeriod))
	for p, v := range byPeriod {
		periods = append(periods, models.PeriodTotal{Period: p, Value: v})
	}
	sort.Slice(periods, func(i, j int) bool { return periods[i].Period < periods[j].Period })

	s := models.EmissionsSummary{
		Periods: periods,
		Unit:    unit,
		Max:     periods[0],
		Min:     periods[0],
	}
	for _, p := range periods {
		s.Total += p.Value
		if p.Value > s.Max.Value {
			s.Max = p
		}
		if p.Value < s.Min.Value {
			s.Min = p
		}
	}
	s.Average = s.Total / float64(len(periods))
	return s, nil
}
