// models/emissions.go
package models

import "fmt"

// EmissionObservation is one (time_period, value, unit) triple from the statistics service.
// Never persisted.
type EmissionObservation struct {
	Country    string  `json:"country"`
	TimePeriod string  `json:"time_period"`
	Value      float64 `json:"emissions"`
	Unit       string  `json:"unit"`
}

// Timeframe is the observation frequency of a report.
type Timeframe string

const (
	TimeframeAnnual    Timeframe = "annual"
	TimeframeMonthly   Timeframe = "monthly"
	TimeframeQuarterly Timeframe = "quarterly"
)

// ParseTimeframe validates a form value.
func ParseTimeframe(s string) (Timeframe, error) {
	switch t := Timeframe(s); t {
	case TimeframeAnnual, TimeframeMonthly, TimeframeQuarterly:
		return t, nil
	}
	return "", fmt.Errorf("unknown timeframe %q", s)
}

// FrequencyCode is the SDMX FREQ dimension value.
func (t Timeframe) FrequencyCode() string {
	switch t {
	case TimeframeMonthly:
		return "M"
	case TimeframeQuarterly:
		return "Q"
	}
	return "A"
}

// ReportRequest is a validated emissions report query for one country.
type ReportRequest struct {
	Country      string
	Timeframe    Timeframe
	StartYear    int
	StartMonth   int // monthly only
	StartQuarter int // quarterly only
	EndYear      int
	EndMonth     int
	EndQuarter   int
}

// StartPeriod renders the SDMX startPeriod for the request's timeframe.
func (r ReportRequest) StartPeriod() string {
	return formatPeriod(r.Timeframe, r.StartYear, r.StartMonth, r.StartQuarter)
}

// EndPeriod renders the SDMX endPeriod for the request's timeframe.
func (r ReportRequest) EndPeriod() string {
	return formatPeriod(r.Timeframe, r.EndYear, r.EndMonth, r.EndQuarter)
}

func formatPeriod(t Timeframe, year, month, quarter int) string {
	switch t {
	case TimeframeMonthly:
		return fmt.Sprintf("%d-%02d", year, month)
	case TimeframeQuarterly:
		return fmt.Sprintf("%d-Q%d", year, quarter)
	}
	return fmt.Sprintf("%d", year)
}

// PeriodTotal is the summed emissions of one period.
type PeriodTotal struct {
	Period string  `json:"period" csv:"period"`
	Value  float64 `json:"value" csv:"value"`
}

// EmissionsSummary is the aggregate over a set of observations.
type EmissionsSummary struct {
	Periods []PeriodTotal // ordered by period
	Total   float64
	Average float64 // mean of period totals
	Max     PeriodTotal
	Min     PeriodTotal
	Unit    string
}

// ByPeriod returns the period totals as a map.
func (s EmissionsSummary) ByPeriod() map[string]float64 {
	m := make(map[string]float64, len(s.Periods))
	for _, p := range s.Periods {
		m[p.Period] = p.Value
	}
	return m
}

// EmissionsReport is a rendered country report.
type EmissionsReport struct {
	Request     ReportRequest
	CountryName string
	Summary     EmissionsSummary
}

// Tier classifies a country's share of the emissions distribution.
type Tier string

const (
	TierLow    Tier = "low"
	TierMedium Tier = "medium"
	TierHigh   Tier = "high"
)

// SortOrder of a ranking.
type SortOrder string

const (
	Ascending  SortOrder = "ascending"
	Descending SortOrder = "descending"
)

// ParseSortOrder defaults to descending for anything unrecognised.
func ParseSortOrder(s string) SortOrder {
	if SortOrder(s) == Ascending {
		return Ascending
	}
	return Descending
}

// RankingRequest asks for a cross-country ranking over one month range of one year.
type RankingRequest struct {
	Year       int
	StartMonth int
	EndMonth   int
	Order      SortOrder
}

// StartPeriod renders the SDMX startPeriod.
func (r RankingRequest) StartPeriod() string {
	return formatPeriod(TimeframeMonthly, r.Year, r.StartMonth, 0)
}

// EndPeriod renders the SDMX endPeriod.
func (r RankingRequest) EndPeriod() string {
	return formatPeriod(TimeframeMonthly, r.Year, r.EndMonth, 0)
}

// RankingEntry is one country's line in a ranking.
type RankingEntry struct {
	Rank         int     `json:"rank" csv:"rank"`
	CountryCode  string  `json:"country_code" csv:"country_code"`
	CountryName  string  `json:"country_name" csv:"country_name"`
	Emissions    float64 `json:"emissions" csv:"emissions"`
	SharePercent float64 `json:"share_percent" csv:"share_percent"`
	Tier         Tier    `json:"tier" csv:"tier"`
}

// EmissionsRanking is the rendered cross-country ranking.
type EmissionsRanking struct {
	Request    RankingRequest
	Entries    []RankingEntry
	Total      float64
	LowCutoff  float64
	HighCutoff float64
}

// EarliestReportYear is the first year the statistics service carries data for.
const EarliestReportYear = 2013

// FieldError is one invalid form field.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("Error in %s: %s", e.Field, e.Message)
}

// IsCountryCode reports whether code is three upper-case ASCII letters.
func IsCountryCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < 'A' || code[i] > 'Z' {
			return false
		}
	}
	return true
}

// Validate checks year, month and quarter ranges and that the range is not inverted.
func (r ReportRequest) Validate() []FieldError {
	var errs []FieldError
	switch {
	case r.Country == "":
		errs = append(errs, FieldError{"country", "This field is required."})
	case !IsCountryCode(r.Country):
		errs = append(errs, FieldError{"country", "Not a valid choice."})
	}
	if r.StartYear < EarliestReportYear {
		errs = append(errs, FieldError{"start_year", fmt.Sprintf("Start year must be %d or later.", EarliestReportYear)})
	}
	if r.EndYear < r.StartYear {
		errs = append(errs, FieldError{"end_year", "End year must not be before start year."})
	}
	switch r.Timeframe {
	case TimeframeMonthly:
		errs = append(errs, checkRange("month", r.StartMonth, 12)...)
		errs = append(errs, checkRange("end_month", r.EndMonth, 12)...)
		if r.EndYear == r.StartYear && r.EndMonth < r.StartMonth {
			errs = append(errs, FieldError{"end_month", "End month must not be before start month."})
		}
	case TimeframeQuarterly:
		errs = append(errs, checkRange("quarter", r.StartQuarter, 4)...)
		errs = append(errs, checkRange("end_quarter", r.EndQuarter, 4)...)
		if r.EndYear == r.StartYear && r.EndQuarter < r.StartQuarter {
			errs = append(errs, FieldError{"end_quarter", "End quarter must not be before start quarter."})
		}
	case TimeframeAnnual:
	default:
		errs = append(errs, FieldError{"timeframe", "Not a valid choice."})
	}
	return errs
}

// Validate checks the year and month range of a ranking request.
func (r RankingRequest) Validate() []FieldError {
	var errs []FieldError
	if r.Year < EarliestReportYear {
		errs = append(errs, FieldError{"year", fmt.Sprintf("Year must be %d or later.", EarliestReportYear)})
	}
	errs = append(errs, checkRange("start_month", r.StartMonth, 12)...)
	errs = append(errs, checkRange("end_month", r.EndMonth, 12)...)
	if r.EndMonth < r.StartMonth {
		errs = append(errs, FieldError{"end_month", "End month must not be before start month."})
	}
	return errs
}

func checkRange(field string, v, hi int) []FieldError {
	if v < 1 || v > hi {
		return []FieldError{{field, fmt.Sprintf("Must be between 1 and %d.", hi)}}
	}
	return nil
}
