package models

import (
	"encoding/json"
	"testing"
)

func TestReportPeriods(t *testing.T) {
	tests := []struct {
		req        ReportRequest
		start, end string
	}{
		{ReportRequest{Timeframe: TimeframeAnnual, StartYear: 2019, EndYear: 2021}, "2019", "2021"},
		{ReportRequest{Timeframe: TimeframeMonthly, StartYear: 2020, StartMonth: 3, EndYear: 2020, EndMonth: 11}, "2020-03", "2020-11"},
		{ReportRequest{Timeframe: TimeframeQuarterly, StartYear: 2020, StartQuarter: 2, EndYear: 2021, EndQuarter: 1}, "2020-Q2", "2021-Q1"},
	}
	for _, tt := range tests {
		if got := tt.req.StartPeriod(); got != tt.start {
			t.Errorf("StartPeriod = %q, want %q", got, tt.start)
		}
		if got := tt.req.EndPeriod(); got != tt.end {
			t.Errorf("EndPeriod = %q, want %q", got, tt.end)
		}
	}
}

func TestReportRequestValidate(t *testing.T) {
	valid := ReportRequest{Country: "JAM", Timeframe: TimeframeMonthly, StartYear: 2020, StartMonth: 1, EndYear: 2020, EndMonth: 6}
	if errs := valid.Validate(); len(errs) != 0 {
		t.Fatalf("valid request rejected: %v", errs)
	}

	tests := []struct {
		name   string
		mutate func(*ReportRequest)
		field  string
	}{
		{"early start", func(r *ReportRequest) { r.StartYear = 2012 }, "start_year"},
		{"inverted years", func(r *ReportRequest) { r.EndYear = 2019 }, "end_year"},
		{"bad month", func(r *ReportRequest) { r.StartMonth = 13 }, "month"},
		{"inverted months", func(r *ReportRequest) { r.StartMonth = 7 }, "end_month"},
		{"missing country", func(r *ReportRequest) { r.Country = "" }, "country"},
		{"path in country", func(r *ReportRequest) { r.Country = "USA.A/../../other?x=" }, "country"},
		{"short country", func(r *ReportRequest) { r.Country = "US" }, "country"},
		{"lower-case country", func(r *ReportRequest) { r.Country = "jam" }, "country"},
		{"bad timeframe", func(r *ReportRequest) { r.Timeframe = "weekly" }, "timeframe"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			tt.mutate(&r)
			errs := r.Validate()
			found := false
			for _, e := range errs {
				found = found || e.Field == tt.field
			}
			if !found {
				t.Errorf("Validate() = %v, want error on %s", errs, tt.field)
			}
		})
	}
}

func TestRankingRequestValidate(t *testing.T) {
	if errs := (RankingRequest{Year: 2022, StartMonth: 1, EndMonth: 12}).Validate(); len(errs) != 0 {
		t.Errorf("valid ranking rejected: %v", errs)
	}
	if errs := (RankingRequest{Year: 2022, StartMonth: 5, EndMonth: 2}).Validate(); len(errs) == 0 {
		t.Error("inverted month range accepted")
	}
}

func TestParseRole(t *testing.T) {
	if r, err := ParseRole(" ATC "); err != nil || r != RoleATC {
		t.Errorf("ParseRole = %q, %v", r, err)
	}
	if _, err := ParseRole("pilot"); err == nil {
		t.Error("ParseRole accepted a role outside the closed set")
	}
	if RoleRegulator.DashboardPath() != "/regulator" {
		t.Errorf("DashboardPath = %q", RoleRegulator.DashboardPath())
	}
}

func TestFlexibleNumber(t *testing.T) {
	tests := []struct {
		in      string
		want    FlexibleNumber
		wantErr bool
	}{
		{`{"icao_code":"KJFK","flight_distance":1200.5}`, FlexibleNumber{1200.5, true}, false},
		{`{"icao_code":"KJFK","flight_distance":" 800 "}`, FlexibleNumber{800, true}, false},
		{`{"icao_code":"KJFK","flight_distance":null}`, FlexibleNumber{}, false},
		{`{"icao_code":"KJFK"}`, FlexibleNumber{}, false},
		{`{"icao_code":"KJFK","flight_distance":"far"}`, FlexibleNumber{}, true},
		{`{"icao_code":"KJFK","flight_distance":"NaN"}`, FlexibleNumber{}, true},
		{`{"icao_code":"KJFK","flight_distance":"Inf"}`, FlexibleNumber{}, true},
		{`{"icao_code":"KJFK","flight_distance":"-infinity"}`, FlexibleNumber{}, true},
	}
	for _, tt := range tests {
		var req ChatRequest
		err := json.Unmarshal([]byte(tt.in), &req)
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: err = %v", tt.in, err)
			continue
		}
		if !tt.wantErr && req.FlightDistance != tt.want {
			t.Errorf("%s: got %+v, want %+v", tt.in, req.FlightDistance, tt.want)
		}
	}
}

func TestNilSafeAccessors(t *testing.T) {
	var m *Metar
	if _, ok := m.WindSpeedKts(); ok {
		t.Error("nil METAR reported wind")
	}
	var resp *MetarResponse
	if _, ok := resp.First(); ok {
		t.Error("nil response reported data")
	}
	var g *Geometry
	if _, ok := g.Coordinate(); ok {
		t.Error("nil geometry reported a point")
	}
	if (Sigmet{}).HazardText() != "Unknown" {
		t.Error("HazardText default")
	}
}
