package external

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gewnthar/flightops/logging"
)

func newTestClient() *Client {
	return NewClient(nil, 5*time.Second, 1, logging.Discard())
}

func TestGetJSONRetriesTransientFailure(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			conn, _, err := w.(http.Hijacker).Hijack()
			if err != nil {
				t.Errorf("hijack: %v", err)
				return
			}
			conn.Close()
			return
		}
		w.Write([]byte(`{"ok": true}`))
	}))
	defer srv.Close()

	var out struct{ OK bool }
	if err := newTestClient().GetJSON(context.Background(), srv.URL, nil, &out); err != nil {
		t.Fatalf("GetJSON: %v", err)
	}
	if !out.OK || calls.Load() != 2 {
		t.Errorf("ok = %v, calls = %d; want true, 2", out.OK, calls.Load())
	}
}

func TestGetJSONStatusMapping(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantErr   error
		wantCalls int32
	}{
		{"server error is not retried", http.StatusInternalServerError, "<html><body><h1>Oops</h1></body></html>", ErrUpstreamUnavailable, 1},
		{"not found", http.StatusNotFound, "", ErrNoRecords, 1},
		{"bad json", http.StatusOK, "{not json", ErrMalformedPayload, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			var out map[string]any
			err := newTestClient().GetJSON(context.Background(), srv.URL, nil, &out)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
			if calls.Load() != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls.Load(), tt.wantCalls)
			}
		})
	}
}

func TestGetJSONOversizeBody(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"values": [1, 2, 3, 4, 5, 6, 7, 8]}`))
	}))
	defer srv.Close()

	c := newTestClient()
	c.maxBody = 16
	var out map[string]any
	err := c.GetJSON(context.Background(), srv.URL, nil, &out)
	if !errors.Is(err, ErrMalformedPayload) || errors.Is(err, ErrUpstreamUnavailable) {
		t.Errorf("err = %v, want ErrMalformedPayload only", err)
	}
	if calls.Load() != 1 {
		t.Errorf("calls = %d, want 1", calls.Load())
	}

	c.maxBody = 64
	if err := c.GetJSON(context.Background(), srv.URL, nil, &out); err != nil {
		t.Errorf("body under the cap: %v", err)
	}
}

func TestGetJSONUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	var out map[string]any
	err := newTestClient().GetJSON(context.Background(), url, nil, &out)
	if !errors.Is(err, ErrUpstreamUnavailable) {
		t.Errorf("err = %v, want ErrUpstreamUnavailable", err)
	}
}

func TestGetJSONTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	c := NewClient(nil, 50*time.Millisecond, 0, logging.Discard())
	var out map[string]any
	if err := c.GetJSON(context.Background(), srv.URL, nil, &out); !errors.Is(err, ErrUpstreamUnavailable) {
		t.Errorf("err = %v, want ErrUpstreamUnavailable", err)
	}
}

func TestPlainText(t *testing.T) {
	html := []byte("<html><head><title>x</title><style>p{}</style></head><body><h1>Service   Unavailable</h1><p>Try later</p></body></html>")
	got := PlainText(html)
	if got != "Service Unavailable Try later" {
		t.Errorf("PlainText(html) = %q", got)
	}
	if got := PlainText([]byte("  plain\n\n error ")); got != "plain error" {
		t.Errorf("PlainText(text) = %q", got)
	}
	long := strings.Repeat("a", 400)
	if got := PlainText([]byte(long)); len(got) != maxSnippet+3 {
		t.Errorf("PlainText(long) length = %d", len(got))
	}
}
