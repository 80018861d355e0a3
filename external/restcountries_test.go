package external

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRestCountriesAll(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"cca3":"JAM","name":{"common":"Jamaica"}},
			{"cca3":"gbr","name":{"common":"United Kingdom"}},
			{"cca3":"","name":{"common":"Nowhere"}},
			{"cca3":"BRB","name":{"common":"Barbados"}}
		]`))
	}))
	defer srv.Close()

	countries, err := NewRestCountries(newTestClient(), srv.URL).All(context.Background())
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	want := []string{"BRB", "JAM", "GBR"}
	if len(countries) != len(want) {
		t.Fatalf("countries = %+v", countries)
	}
	for i, code := range want {
		if countries[i].Code != code {
			t.Errorf("countries[%d] = %+v, want %s", i, countries[i], code)
		}
	}
}

func TestRestCountriesEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	if _, err := NewRestCountries(newTestClient(), srv.URL).All(context.Background()); !errors.Is(err, ErrMalformedPayload) {
		t.Errorf("err = %v, want ErrMalformedPayload", err)
	}
}
