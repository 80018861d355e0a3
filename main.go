// main.go
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gewnthar/flightops/app"
	"github.com/gewnthar/flightops/config"
	"github.com/gewnthar/flightops/handlers"
	"github.com/gewnthar/flightops/logging"
)

func main() {
	configPath := flag.String("config", "", "path to config.yaml (default: search config.yaml, config/config.yaml)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}
	defer logger.Close()
	logger.Info("Starting FlightOps server", slog.String("port", cfg.Server.Port), slog.String("db_driver", cfg.Database.Driver))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, logger.Logger)
	if err != nil {
		logger.Error("Error initializing application", slog.Any("error", err))
		os.Exit(1)
	}
	defer a.Close()

	h, err := handlers.New(a)
	if err != nil {
		logger.Error("Error initializing handlers", slog.Any("error", err))
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           h.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server listening", slog.String("addr", "http://localhost"+srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Error starting server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", slog.Any("error", err))
	}
}
