// external/checkwx.go
package external

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/gewnthar/flightops/models"
)

// CheckWX fetches decoded METAR, TAF, SIGMET and station data.
type CheckWX struct {
	client  *Client
	baseURL string
	apiKey  string
	log     *slog.Logger
}

// NewCheckWX builds a CheckWX client against baseURL.
func NewCheckWX(client *Client, baseURL, apiKey string, logger *slog.Logger) *CheckWX {
	return &CheckWX{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		log:     logger,
	}
}

func (c *CheckWX) headers() map[string]string {
	return map[string]string{"X-API-Key": c.apiKey, "Accept": "application/json"}
}

func (c *CheckWX) endpoint(parts ...string) string {
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return c.baseURL + "/" + strings.Join(parts, "/")
}

// Metar returns the nearest decoded METAR for icao. An empty data array is ErrNoRecords.
func (c *CheckWX) Metar(ctx context.Context, icao string) (*models.MetarResponse, error) {
	var resp models.MetarResponse
	if err := c.client.GetJSON(ctx, c.endpoint("metar", icao, "nearest", "decoded"), c.headers(), &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch METAR for %s: %w", icao, err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("no METAR for %s: %w", icao, ErrNoRecords)
	}
	return &resp, nil
}

// Taf returns the decoded TAFs for icao; an empty response is not an error.
func (c *CheckWX) Taf(ctx context.Context, icao string) (*models.TafResponse, error) {
	var resp models.TafResponse
	if err := c.client.GetJSON(ctx, c.endpoint("taf", icao, "decoded"), c.headers(), &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch TAF for %s: %w", icao, err)
	}
	return &resp, nil
}

// Sigmet returns the decoded SIGMETs around icao; an empty response is not an error.
func (c *CheckWX) Sigmet(ctx context.Context, icao string) (*models.SigmetResponse, error) {
	var resp models.SigmetResponse
	if err := c.client.GetJSON(ctx, c.endpoint("sigmet", icao, "decoded"), c.headers(), &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch SIGMET for %s: %w", icao, err)
	}
	return &resp, nil
}

// StationCoordinate resolves an ICAO or IATA station code to its location.
// Returns false when the station is unknown or has no usable geometry.
func (c *CheckWX) StationCoordinate(ctx context.Context, code string) (models.Coordinate, bool, error) {
	var resp models.StationResponse
	if err := c.client.GetJSON(ctx, c.endpoint("station", code), c.headers(), &resp); err != nil {
		return models.Coordinate{}, false, fmt.Errorf("failed to fetch station %s: %w", code, err)
	}
	for _, s := range resp.Data {
		if coord, ok := s.Geometry.Coordinate(); ok {
			return coord, true, nil
		}
	}
	c.log.Debug("External: station has no coordinates", slog.String("code", code))
	return models.Coordinate{}, false, nil
}
