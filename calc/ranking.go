// calc/ranking.go
package calc

import (
	"slices"
	"sort"

	"github.com/gewnthar/flightops/models"
)

const (
	lowPercentile  = 0.33
	highPercentile = 0.66
)

// TierCutoffs returns the 33rd and 66th percentile points of the span of values.
func TierCutoffs(values []float64) (low, high float64) {
	if len(values) == 0 {
		return 0, 0
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	span := hi - lo
	return lo + lowPercentile*span, lo + highPercentile*span
}

// TierFor classifies v against the cutoffs: <= low is low, <= high is medium.
func TierFor(v, low, high float64) models.Tier {
	switch {
	case v <= low:
		return models.TierLow
	case v <= high:
		return models.TierMedium
	}
	return models.TierHigh
}

// RankCountries sums observations per country, computes each country's share
// of the grand total, assigns tiers and sorts by emissions in the given order.
// Ties are broken by country code, so descending is the exact reverse of ascending.
func RankCountries(obs []models.EmissionObservation, order models.SortOrder) (models.EmissionsRanking, error) {
	if len(obs) == 0 {
		return models.EmissionsRanking{}, ErrNoRecords
	}

	totals := make(map[string]float64)
	for _, o := range obs {
		totals[o.Country] += o.Value
	}

	entries := make([]models.RankingEntry, 0, len(totals))
	values := make([]float64, 0, len(totals))
	var grand float64
	for code, v := range totals {
		entries = append(entries, models.RankingEntry{CountryCode: code, Emissions: v})
		values = append(values, v)
		grand += v
	}

	low, high := TierCutoffs(values)
	for i := range entries {
		if grand != 0 {
			entries[i].SharePercent = entries[i].Emissions / grand * 100
		}
		entries[i].Tier = TierFor(entries[i].Emissions, low, high)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Emissions != entries[j].Emissions {
			return entries[i].Emissions < entries[j].Emissions
		}
		return entries[i].CountryCode < entries[j].CountryCode
	})
	if order != models.Ascending {
		slices.Reverse(entries)
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}

	return models.EmissionsRanking{
		Entries:    entries,
		Total:      grand,
		LowCutoff:  low,
		HighCutoff: high,
	}, nil
}
