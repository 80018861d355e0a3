// external/sdmx.go
package external

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/gewnthar/flightops/models"
)

// Trailing key dimensions after REF_AREA and FREQ, all wildcarded.
const sdmxKeySuffix = "......."

// SDMX queries the air transport emissions dataflow of an SDMX REST endpoint.
type SDMX struct {
	client   *Client
	baseURL  string
	dataflow string
	log      *slog.Logger
}

// NewSDMX builds an SDMX client.
func NewSDMX(client *Client, baseURL, dataflow string, logger *slog.Logger) *SDMX {
	return &SDMX{
		client:   client,
		baseURL:  strings.TrimRight(baseURL, "/"),
		dataflow: dataflow,
		log:      logger,
	}
}

// DataURL builds the query URL. An empty country wildcards REF_AREA.
func (s *SDMX) DataURL(country, freq, start, end string) string {
	q := url.Values{}
	q.Set("startPeriod", start)
	q.Set("endPeriod", end)
	q.Set("dimensionAtObservation", "AllDimensions")
	key := country + "." + freq + sdmxKeySuffix
	return fmt.Sprintf("%s/%s/%s?%s", s.baseURL, s.dataflow, url.PathEscape(key), q.Encode())
}

// CountryEmissions fetches one country's observations for a report request.
func (s *SDMX) CountryEmissions(ctx context.Context, req models.ReportRequest) ([]models.EmissionObservation, error) {
	u := s.DataURL(req.Country, req.Timeframe.FrequencyCode(), req.StartPeriod(), req.EndPeriod())
	return s.fetch(ctx, u, req.Country)
}

// MonthlyEmissions fetches every country's monthly observations for a ranking request.
func (s *SDMX) MonthlyEmissions(ctx context.Context, req models.RankingRequest) ([]models.EmissionObservation, error) {
	u := s.DataURL("", models.TimeframeMonthly.FrequencyCode(), req.StartPeriod(), req.EndPeriod())
	return s.fetch(ctx, u, "")
}

func (s *SDMX) fetch(ctx context.Context, u, country string) ([]models.EmissionObservation, error) {
	s.log.Info("External: requesting emissions", slog.String("url", u))
	body, err := s.client.get(ctx, u, map[string]string{
		"Accept": "application/vnd.sdmx.genericdata+xml;version=2.1, application/xml",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch emissions: %w", err)
	}
	obs, err := ParseGenericData(bytes.NewReader(body), country)
	if err != nil {
		return nil, err
	}
	if len(obs) == 0 {
		return nil, fmt.Errorf("empty emissions dataset: %w", ErrNoRecords)
	}
	return obs, nil
}

type sdmxValue struct {
	ID    string `xml:"id,attr"`
	Value string `xml:"value,attr"`
}

type sdmxObs struct {
	Key        []sdmxValue `xml:"ObsKey>Value"`
	Value      *sdmxValue  `xml:"ObsValue"`
	Attributes []sdmxValue `xml:"Attributes>Value"`
}

// ParseGenericData streams an SDMX-ML 2.1 generic data message and returns its
// observations. defaultCountry fills REF_AREA when the key omits it.
func ParseGenericData(r io.Reader, defaultCountry string) ([]models.EmissionObservation, error) {
	dec := xml.NewDecoder(r)
	var out []models.EmissionObservation
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: parsing SDMX XML: %v", ErrMalformedPayload, err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "Obs" {
			continue
		}

		var o sdmxObs
		if err := dec.DecodeElement(&o, &start); err != nil {
			return nil, fmt.Errorf("%w: decoding SDMX observation: %v", ErrMalformedPayload, err)
		}
		obs, keep, err := o.observation(defaultCountry)
		if err != nil {
			return nil, err
		}
		if keep {
			out = append(out, obs)
		}
	}
	return out, nil
}

func (o sdmxObs) observation(defaultCountry string) (models.EmissionObservation, bool, error) {
	dims := make(map[string]string, len(o.Key)+len(o.Attributes))
	for _, v := range o.Attributes {
		dims[v.ID] = v.Value
	}
	for _, v := range o.Key {
		dims[v.ID] = v.Value
	}

	period := dims["TIME_PERIOD"]
	if period == "" {
		return models.EmissionObservation{}, false, fmt.Errorf("%w: observation without TIME_PERIOD", ErrMalformedPayload)
	}
	if o.Value == nil {
		return models.EmissionObservation{}, false, fmt.Errorf("%w: observation %s without ObsValue", ErrMalformedPayload, period)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(o.Value.Value), 64)
	if err != nil {
		return models.EmissionObservation{}, false, fmt.Errorf("%w: observation %s value %q", ErrMalformedPayload, period, o.Value.Value)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return models.EmissionObservation{}, false, nil
	}

	country := dims["REF_AREA"]
	if country == "" {
		country = defaultCountry
	}
	return models.EmissionObservation{
		Country:    country,
		TimePeriod: period,
		Value:      v,
		Unit:       dims["UNIT_MEASURE"],
	}, true, nil
}
