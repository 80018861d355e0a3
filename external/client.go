// external/client.go
package external

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

// maxBody caps how much of an upstream response is read.
const maxBody = 32 << 20

// Client is the shared outbound HTTP client: a per-call timeout from the
// underlying http.Client and a bounded retry on transient network failures.
type Client struct {
	http    *http.Client
	retries int
	maxBody int64
	log     *slog.Logger
}

// NewClient wraps hc. A nil hc gets a client with the given timeout.
func NewClient(hc *http.Client, timeout time.Duration, retries int, logger *slog.Logger) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}
	return &Client{http: hc, retries: retries, maxBody: maxBody, log: logger}
}

// WithHTTPClient returns a copy of c that sends requests through hc.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	cp := *c
	cp.http = hc
	return &cp
}

// HTTP exposes the underlying client, e.g. for OAuth2 token fetches.
func (c *Client) HTTP() *http.Client {
	return c.http
}

// Do sends a GET to url with headers and returns the status and body.
// Transport errors are retried; HTTP error statuses are not.
func (c *Client) Do(ctx context.Context, url string, headers map[string]string) (int, []byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			c.log.Warn("External: retrying request", slog.String("url", url), slog.Int("attempt", attempt), slog.Any("error", lastErr))
		}
		status, body, err := c.once(ctx, url, headers)
		if err == nil {
			return status, body, nil
		}
		if errors.Is(err, ErrMalformedPayload) {
			return 0, nil, err
		}
		lastErr = err
		if !isTransient(ctx, err) {
			break
		}
	}
	return 0, nil, fmt.Errorf("%w: GET %s: %w", ErrUpstreamUnavailable, url, lastErr)
}

func (c *Client) once(ctx context.Context, url string, headers map[string]string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, nil, err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return 0, nil, err
	}
	if int64(len(body)) > c.maxBody {
		return 0, nil, fmt.Errorf("%w: GET %s: body exceeds %d bytes", ErrMalformedPayload, url, c.maxBody)
	}
	return resp.StatusCode, body, nil
}

// isTransient reports whether a failed attempt is worth repeating.
func isTransient(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	var tokenErr *oauth2.RetrieveError
	if errors.As(err, &tokenErr) {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF)
}

// GetJSON fetches url and decodes a 200 response into dst.
// 404 maps to ErrNoRecords and any other status to ErrUpstreamUnavailable.
func (c *Client) GetJSON(ctx context.Context, url string, headers map[string]string, dst any) error {
	body, err := c.get(ctx, url, headers)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("%w: decoding %s: %v", ErrMalformedPayload, url, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	status, body, err := c.Do(ctx, url, headers)
	if err != nil {
		return nil, err
	}
	switch {
	case status == http.StatusOK:
		return body, nil
	case status == http.StatusNotFound:
		return nil, fmt.Errorf("%w: GET %s returned 404", ErrNoRecords, url)
	}
	c.log.Warn("External: unexpected status", slog.String("url", url), slog.Int("status", status), slog.String("body", PlainText(body)))
	return nil, fmt.Errorf("%w: GET %s returned status %d", ErrUpstreamUnavailable, url, status)
}
