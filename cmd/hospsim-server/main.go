package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/hospsim/hospsim/internal/config"
	"github.com/hospsim/hospsim/internal/domain/catalog"
	"github.com/hospsim/hospsim/internal/domain/scheduling"
	"github.com/hospsim/hospsim/internal/platform/metrics"
	"github.com/hospsim/hospsim/internal/platform/middleware"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "hospsim-server",
		Short: "Hospital consultation scheduling API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(catalogCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the scheduling API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func catalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect resource catalogs",
	}

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a catalog seed file",
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("file")
			if file == "" {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				file = cfg.SeedFile
			}

			cat, err := catalog.Load(file)
			if err != nil {
				return fmt.Errorf("catalog validation failed: %w", err)
			}

			fmt.Printf("Catalog %s is valid.\n", file)
			fmt.Printf("  doctors:            %d\n", len(cat.Doctors))
			fmt.Printf("  treatment machines: %d\n", len(cat.Machines))
			fmt.Printf("  treatment rooms:    %d\n", len(cat.Rooms))
			fmt.Printf("  daily capacity:     %d\n", cat.DailyCapacity())
			return nil
		},
	}
	validateCmd.Flags().String("file", "", "Path to the seed file (defaults to SEED_FILE)")
	cmd.AddCommand(validateCmd)

	return cmd
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	// Resource catalog
	cat, err := catalog.Load(cfg.SeedFile)
	if err != nil {
		logger.Fatal().Err(err).Str("file", cfg.SeedFile).Msg("failed to load catalog")
	}
	logger.Info().
		Int("doctors", len(cat.Doctors)).
		Int("machines", len(cat.Machines)).
		Int("rooms", len(cat.Rooms)).
		Int("daily_capacity", cat.DailyCapacity()).
		Msg("catalog loaded")

	// Metrics
	var m metrics.Metrics = metrics.Noop{}
	var prom *metrics.Prom
	if cfg.MetricsEnabled {
		prom = metrics.NewProm("hospsim")
		m = prom
	}

	// Scheduling domain
	ledger := scheduling.NewMemoryLedger()
	patients := scheduling.NewMemoryPatientRegistry()
	engine := scheduling.NewEngine(cat, ledger, cfg.MaxLookaheadDays, logger)
	svc := scheduling.NewService(cat, engine, ledger, patients, m, logger)

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{"Content-Type", "X-Request-ID"},
	}))

	// API group
	api := e.Group("/api")

	rateLimitCfg := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}
	if rateLimitCfg.RequestsPerSecond <= 0 {
		rateLimitCfg = middleware.DefaultRateLimitConfig()
	}
	api.Use(middleware.RateLimit(rateLimitCfg))

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})

	if prom != nil {
		e.GET("/metrics", echo.WrapHandler(prom.Handler()))
	}

	// Domain handlers
	scheduling.NewHandler(svc).RegisterRoutes(api)
	catalog.NewHandler(cat).RegisterRoutes(api)

	// Start server
	addr := ":" + cfg.Port
	go func() {
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server start failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
