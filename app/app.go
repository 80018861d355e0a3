// app/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gewnthar/flightops/auth"
	"github.com/gewnthar/flightops/config"
	"github.com/gewnthar/flightops/database"
	"github.com/gewnthar/flightops/external"
	"github.com/gewnthar/flightops/predict"
	"github.com/gewnthar/flightops/seed"
	"github.com/gewnthar/flightops/services"
)

// App is the application context built once at startup and handed to the
// HTTP layer. Nothing in it is a package-level singleton.
type App struct {
	Config *config.Config
	Log    *slog.Logger
	DB     *database.DB

	Sessions *auth.Sessions
	Gate     *auth.Gate

	Users      *services.UserService
	Reference  *services.ReferenceService
	Countries  *services.CountryService
	Distance   *services.DistanceService
	Weather    *services.WeatherService
	Fuel       *services.FuelService
	Prediction *services.PredictionService
	Emissions  *services.EmissionsService
	Flights    *services.FlightService
}

// New connects the database, creates the schema and wires every service.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := database.Open(ctx, cfg.Database, logger)
	if err != nil {
		return nil, err
	}
	if err := db.CreateSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	client := external.NewClient(nil, cfg.HTTPClient.Timeout, cfg.HTTPClient.Retries, logger)
	checkwx := external.NewCheckWX(client, cfg.CheckWX.BaseURL, cfg.CheckWX.APIKey, logger)
	sdmx := external.NewSDMX(client, cfg.SDMX.BaseURL, cfg.SDMX.Dataflow, logger)

	var directory services.CountryDirectory
	if cfg.Countries.URL != "" {
		directory = external.NewRestCountries(client, cfg.Countries.URL)
	}

	var offers services.OfferSearcher
	if cfg.Amadeus.ClientID != "" && cfg.Amadeus.ClientSecret != "" {
		offers = external.NewAmadeus(ctx, client, cfg.Amadeus.BaseURL, cfg.Amadeus.TokenURL,
			cfg.Amadeus.ClientID, cfg.Amadeus.ClientSecret, cfg.Amadeus.MaxOffers, logger)
	} else {
		logger.Warn("Service: flight offer search disabled, no client credentials configured")
	}

	model, err := predict.Load(cfg.Prediction.ModelPath)
	if err != nil {
		logger.Warn("Service: prediction model not loaded", slog.String("path", cfg.Prediction.ModelPath), slog.Any("error", err))
	}

	a := &App{Config: cfg, Log: logger, DB: db}
	a.Sessions = auth.NewSessions([]byte(cfg.Server.SessionKey), cfg.Server.SecureCookies, logger)
	a.Users = services.NewUserService(db, cfg.Server.PasswordIterations, logger)
	a.Gate = auth.NewGate(auth.DefaultPolicy, a.Sessions, a.Users, logger)
	a.Reference = services.NewReferenceService(db, client, seed.FS, cfg.Reference.Sources, cfg.Reference.DownloadDir, logger)
	a.Countries = services.NewCountryService(directory, db, a.Reference, cfg.Countries.CacheTTL, logger)
	a.Distance = services.NewDistanceService(db, a.Reference, checkwx, logger)
	a.Weather = services.NewWeatherService(checkwx, logger)
	a.Fuel = services.NewFuelService(db, a.Reference, a.Distance, logger)
	a.Prediction = services.NewPredictionService(model, a.Distance, logger)
	a.Emissions = services.NewEmissionsService(sdmx, a.Countries, logger)
	a.Flights = services.NewFlightService(offers, a.Reference, a.Distance, logger)
	return a, nil
}

// Close releases the database pool.
func (a *App) Close() error {
	return a.DB.Close()
}
