// external/amadeus.go
package external

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/gewnthar/flightops/models"
)

// Amadeus searches flight offers with an OAuth2 client-credentials token.
type Amadeus struct {
	client    *Client
	baseURL   string
	maxOffers int
	log       *slog.Logger
}

// NewAmadeus builds a client whose requests carry a cached bearer token.
// Token fetches go through the same base http.Client as every other call.
func NewAmadeus(ctx context.Context, client *Client, baseURL, tokenURL, clientID, clientSecret string, maxOffers int, logger *slog.Logger) *Amadeus {
	cc := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
		AuthStyle:    oauth2.AuthStyleInParams,
	}
	base := client.HTTP()
	ctx = context.WithValue(ctx, oauth2.HTTPClient, base)
	authed := oauth2.NewClient(ctx, cc.TokenSource(ctx))
	authed.Timeout = base.Timeout

	return &Amadeus{
		client:    client.WithHTTPClient(authed),
		baseURL:   strings.TrimRight(baseURL, "/"),
		maxOffers: maxOffers,
		log:       logger,
	}
}

// FlightOffers searches one-adult offers from src to dest on date (YYYY-MM-DD).
func (a *Amadeus) FlightOffers(ctx context.Context, src, dest, date string) (*models.FlightOffersResponse, error) {
	q := url.Values{}
	q.Set("originLocationCode", src)
	q.Set("destinationLocationCode", dest)
	q.Set("departureDate", date)
	q.Set("adults", "1")
	if a.maxOffers > 0 {
		q.Set("max", strconv.Itoa(a.maxOffers))
	}
	u := a.baseURL + "/v2/shopping/flight-offers?" + q.Encode()

	var resp models.FlightOffersResponse
	if err := a.client.GetJSON(ctx, u, map[string]string{"Accept": "application/json"}, &resp); err != nil {
		return nil, fmt.Errorf("failed to search flight offers %s-%s on %s: %w", src, dest, date, err)
	}
	a.log.Info("External: flight offers fetched", slog.String("route", src+"-"+dest), slog.Int("offers", len(resp.Data)))
	return &resp, nil
}
