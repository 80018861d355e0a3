// external/restcountries.go
package external

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/gewnthar/flightops/models"
)

// RestCountries fetches ISO-3166 alpha-3 codes and common names.
type RestCountries struct {
	client *Client
	url    string
}

// NewRestCountries builds a client for the given "all countries" URL.
func NewRestCountries(client *Client, url string) *RestCountries {
	return &RestCountries{client: client, url: url}
}

type restCountry struct {
	CCA3 string `json:"cca3"`
	Name struct {
		Common string `json:"common"`
	} `json:"name"`
}

// All returns every country sorted by common name. Entries without a code or name are skipped.
func (c *RestCountries) All(ctx context.Context) ([]models.Country, error) {
	var raw []restCountry
	if err := c.client.GetJSON(ctx, c.url, map[string]string{"Accept": "application/json"}, &raw); err != nil {
		return nil, fmt.Errorf("failed to fetch countries: %w", err)
	}

	countries := make([]models.Country, 0, len(raw))
	for _, rc := range raw {
		code := strings.ToUpper(strings.TrimSpace(rc.CCA3))
		if code == "" || rc.Name.Common == "" {
			continue
		}
		countries = append(countries, models.Country{Code: code, Name: rc.Name.Common})
	}
	if len(countries) == 0 {
		return nil, fmt.Errorf("%w: country list is empty", ErrMalformedPayload)
	}
	sort.Slice(countries, func(i, j int) bool { return countries[i].Name < countries[j].Name })
	return countries, nil
}
