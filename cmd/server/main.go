package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/ridwan89/swiftbus-booking/internal/app"
	"github.com/ridwan89/swiftbus-booking/internal/config"
	"github.com/ridwan89/swiftbus-booking/internal/domain"
	"github.com/ridwan89/swiftbus-booking/internal/handler"
	"github.com/ridwan89/swiftbus-booking/internal/service"
	"github.com/ridwan89/swiftbus-booking/internal/tracking"
)

func main() {
	// Load configuration.
	cfg := config.Load()
	setupLogger(cfg.Log)

	cliApp := &cli.App{
		Name:        "swiftbus",
		Description: "Intercity bus booking with pick & drop add-ons",
		Commands: []*cli.Command{
			serveCommand(cfg),
			trackCommand(cfg),
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal().Err(err).Send()
	}
}

func setupLogger(cfg config.LogConfig) {
	if !cfg.JSON {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	if cfg.Debug {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}
}

func serveCommand(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the booking HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "port", Usage: "listen port", Value: cfg.Server.Port},
		},
		Action: func(c *cli.Context) error {
			cfg.Server.Port = c.String("port")
			return serve(cfg)
		},
	}
}

func serve(cfg *config.Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic first so Redis can be instrumented.
	var nrApp *newrelic.Application
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		var err error
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			log.Error().Err(err).Msg("failed to initialize New Relic")
		} else {
			log.Info().Str("app", cfg.NewRelic.AppName).Msg("New Relic enabled")
		}
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		client, err := app.NewRedisClient(ctx, cfg.Redis, nrApp)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer client.Close()
		redisClient = client
		log.Info().Str("addr", cfg.Redis.Addr).Msg("Connected to Redis")
	}

	svc, err := app.NewServices(cfg, redisClient, nil)
	if err != nil {
		return err
	}
	defer svc.Close()

	router := app.NewRouter(app.RouterDeps{
		CatalogHandler:  handler.NewCatalogHandler(svc.Catalog, svc.Manifest),
		BookingHandler:  handler.NewBookingHandler(svc.Booking),
		TrackingHandler: handler.NewTrackingHandler(svc.Tracking, svc.Playback),
		PaymentHandler:  handler.NewPaymentHandler(svc.Booking, svc.Payment, svc.Receipt),
		RedisClient:     redisClient,
		NewRelicApp:     nrApp,
		AllowedOrigins:  cfg.Server.CORSAllowedOrigins,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-quit:
	}
	log.Info().Msg("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	if nrApp != nil {
		nrApp.Shutdown(5 * time.Second)
	}

	log.Info().Msg("Server exited")
	return nil
}

func trackCommand(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "track",
		Usage: "book a demo ticket and play its journey in the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "trip", Usage: "catalog trip id", Value: "bus-001"},
			&cli.DurationFlag{Name: "interval", Usage: "time between status changes", Value: cfg.Tracking.Interval},
			&cli.BoolFlag{Name: "loop", Usage: "restart after completed", Value: cfg.Tracking.Loop},
			&cli.BoolFlag{Name: "pickup", Usage: "add a pickup leg", Value: true},
		},
		Action: func(c *cli.Context) error {
			cfg.Tracking.Interval = c.Duration("interval")
			cfg.Tracking.Loop = c.Bool("loop")
			return track(c.Context, cfg, c.String("trip"), c.Bool("pickup"))
		},
	}
}

func track(ctx context.Context, cfg *config.Config, tripID string, pickup bool) error {
	svc, err := app.NewServices(cfg, nil, printView)
	if err != nil {
		return err
	}
	defer svc.Close()

	var addOns domain.AddOnSelection
	if pickup {
		addOns.Pickup = domain.LegSelection{
			Enabled:  true,
			Vehicle:  domain.VehicleMotor,
			Provider: domain.ProviderGojek,
			Location: domain.Location{Address: "Jl. Sudirman No. 1, Jakarta"},
		}
	}

	b, err := svc.Booking.CreateBooking(ctx, service.CreateBookingRequest{
		TripID:    tripID,
		AddOns:    addOns,
		Passenger: domain.Passenger{Name: "Demo Passenger", Phone: "081200000000", Email: "demo@swiftbus.id"},
	})
	if err != nil {
		return err
	}
	fmt.Printf("Booked %s on %s %s → %s, total Rp %d\n", b.Code, b.Trip.Operator, b.Trip.Origin, b.Trip.Destination, b.TotalPrice)

	view, err := svc.Tracking.View(ctx, b.Code)
	if err != nil {
		return err
	}
	printView(view)

	if err := svc.Playback.Start(ctx, b.Code); err != nil {
		return err
	}

	done := make(chan struct{})
	go func() {
		svc.Playback.Wait()
		close(done)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case <-done:
	case <-quit:
		log.Info().Str("booking_code", b.Code).Msg("stopping playback")
	}
	return nil
}

func printView(v *service.TrackingView) {
	fmt.Printf("\n[%s] %s (%.0f%%)\n", v.BookingCode, v.Label, v.Progress*100)
	for _, s := range v.Steps {
		mark := " "
		switch s.State {
		case tracking.StepCompleted:
			mark = "x"
		case tracking.StepActive:
			mark = ">"
		}
		fmt.Printf("  [%s] %d. %s\n", mark, s.ID, s.Title)
	}
}
