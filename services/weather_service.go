// services/weather_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/gewnthar/flightops/calc"
	"github.com/gewnthar/flightops/external"
	"github.com/gewnthar/flightops/models"
	"github.com/gewnthar/flightops/utils"
)

const notReported = "Not Reported"

// WeatherSource fetches decoded reports for a station.
type WeatherSource interface {
	Metar(ctx context.Context, icao string) (*models.MetarResponse, error)
	Taf(ctx context.Context, icao string) (*models.TafResponse, error)
	Sigmet(ctx context.Context, icao string) (*models.SigmetResponse, error)
}

// WeatherService builds the weather page and the chat assistant replies.
type WeatherService struct {
	wx  WeatherSource
	log *slog.Logger
}

func NewWeatherService(wx WeatherSource, logger *slog.Logger) *WeatherService {
	return &WeatherService{wx: wx, log: logger}
}

// Report fetches METAR, TAF and SIGMET for icao concurrently. A missing
// METAR means the code is unknown; TAF and SIGMET failures only drop their
// impact lists.
func (s *WeatherService) Report(ctx context.Context, icao string) (*models.WeatherReport, error) {
	icao = utils.NormalizeCode(icao)
	if !utils.IsICAO(icao) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCode, icao)
	}

	var (
		metar  *models.MetarResponse
		taf    *models.TafResponse
		sigmet *models.SigmetResponse
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		metar, err = s.wx.Metar(gctx, icao)
		return err
	})
	g.Go(func() error {
		var err error
		if taf, err = s.wx.Taf(gctx, icao); err != nil {
			s.log.Warn("Service: TAF unavailable", slog.String("icao", icao), slog.Any("error", err))
			taf = nil
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if sigmet, err = s.wx.Sigmet(gctx, icao); err != nil {
			s.log.Warn("Service: SIGMET unavailable", slog.String("icao", icao), slog.Any("error", err))
			sigmet = nil
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, external.ErrNoRecords) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCode, icao)
		}
		return nil, err
	}

	m, ok := metar.First()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCode, icao)
	}
	return buildWeatherReport(icao, m, taf, sigmet), nil
}

func buildWeatherReport(icao string, m *models.Metar, taf *models.TafResponse, sigmet *models.SigmetResponse) *models.WeatherReport {
	r := &models.WeatherReport{
		ICAO:          icao,
		RawText:       m.RawText,
		SpeedKPH:      notReported,
		SpeedMPH:      notReported,
		ForecastDesc:  notReported,
		Humidity:      notReported,
		TAFImpacts:    calc.TAFImpacts(taf),
		SIGMETImpacts: calc.SIGMETImpacts(sigmet),
	}
	if m.Station != nil {
		r.StationName = m.Station.Name
	}
	if m.Temperature != nil {
		r.DegreesC = m.Temperature.Celsius
		r.DegreesF = m.Temperature.Fahrenheit
		r.HasTemperature = true
	}
	if m.Wind != nil {
		if m.Wind.SpeedKph != nil {
			r.SpeedKPH = formatFloat(*m.Wind.SpeedKph)
		}
		if m.Wind.SpeedMph != nil {
			r.SpeedMPH = formatFloat(*m.Wind.SpeedMph)
		}
	}
	if len(m.Clouds) > 0 && m.Clouds[0].Text != "" {
		r.ForecastDesc = m.Clouds[0].Text
	}
	if m.Humidity != nil {
		r.Humidity = formatFloat(m.Humidity.Percent)
	}
	return r
}

// Chat answers the assistant: current conditions at icao plus an emissions
// estimate for a flight of distanceKM.
func (s *WeatherService) Chat(ctx context.Context, icao string, distanceKM float64) (string, error) {
	icao = utils.NormalizeCode(icao)
	if !utils.IsICAO(icao) {
		return "", fmt.Errorf("%w: %q", ErrUnknownCode, icao)
	}
	resp, err := s.wx.Metar(ctx, icao)
	if err != nil {
		if errors.Is(err, external.ErrNoRecords) {
			return "", fmt.Errorf("%w: %q", ErrUnknownCode, icao)
		}
		return "", err
	}
	m, ok := resp.First()
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCode, icao)
	}

	cond := calc.CurrentConditions(m)
	kg := calc.ChatEmissionsKG(distanceKM, cond.WindKts)
	return calc.ChatMessage(cond, kg), nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
