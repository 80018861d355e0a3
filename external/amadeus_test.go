package external

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gewnthar/flightops/logging"
)

const offersFixture = `{"data":[{"id":"1","itineraries":[{"duration":"PT11H","segments":[
  {"departure":{"iataCode":"KIN","at":"2024-05-01T08:00:00"},"arrival":{"iataCode":"MIA","at":"2024-05-01T10:00:00"},"carrierCode":"AA","number":"1","aircraft":{"code":"738"}},
  {"departure":{"iataCode":"MIA","at":"2024-05-01T12:00:00"},"arrival":{"iataCode":"LHR","at":"2024-05-02T01:00:00"},"carrierCode":"BA","number":"2"}
]}],"price":{"currency":"USD","grandTotal":"812.40"}}]}`

func TestAmadeusFlightOffers(t *testing.T) {
	var tokenCalls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/security/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		tokenCalls.Add(1)
		if err := r.ParseForm(); err != nil || r.PostForm.Get("grant_type") != "client_credentials" || r.PostForm.Get("client_id") != "id" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"tok","token_type":"Bearer","expires_in":1799}`))
	})
	mux.HandleFunc("/v2/shopping/flight-offers", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		q := r.URL.Query()
		if q.Get("originLocationCode") != "KIN" || q.Get("destinationLocationCode") != "LHR" || q.Get("departureDate") != "2024-05-01" || q.Get("adults") != "1" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Write([]byte(offersFixture))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	ctx := context.Background()
	a := NewAmadeus(ctx, newTestClient(), srv.URL, srv.URL+"/v1/security/oauth2/token", "id", "secret", 5, logging.Discard())

	for i := 0; i < 2; i++ {
		resp, err := a.FlightOffers(ctx, "KIN", "LHR", "2024-05-01")
		if err != nil {
			t.Fatalf("FlightOffers: %v", err)
		}
		if len(resp.Data) != 1 || len(resp.Data[0].Itineraries[0].Segments) != 2 {
			t.Fatalf("offers = %+v", resp)
		}
		segs := resp.Data[0].Itineraries[0].Segments
		if segs[0].AircraftCode() != "738" || segs[1].AircraftCode() != "" {
			t.Errorf("aircraft codes = %q, %q", segs[0].AircraftCode(), segs[1].AircraftCode())
		}
	}
	if tokenCalls.Load() != 1 {
		t.Errorf("token fetched %d times, want 1 (cached)", tokenCalls.Load())
	}
}

func TestAmadeusBadCredentials(t *testing.T) {
	var tokenCalls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenCalls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"invalid_client"}`))
	}))
	defer srv.Close()

	ctx := context.Background()
	a := NewAmadeus(ctx, newTestClient(), srv.URL, srv.URL+"/token", "id", "bad", 5, logging.Discard())
	_, err := a.FlightOffers(ctx, "KIN", "LHR", "2024-05-01")
	if !errors.Is(err, ErrUpstreamUnavailable) {
		t.Errorf("err = %v, want ErrUpstreamUnavailable", err)
	}
	if tokenCalls.Load() != 1 {
		t.Errorf("token endpoint hit %d times, want 1 (no retry on rejected credentials)", tokenCalls.Load())
	}
}
