package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	fiberSwagger "github.com/swaggo/fiber-swagger"

	changesHttp "insights-display-service/internal/changes/adapters/http/fiber"
	changesRepoPg "insights-display-service/internal/changes/adapters/postgres"
	changesUsecase "insights-display-service/internal/changes/core/usecase"

	insightsHttp "insights-display-service/internal/insights/adapters/http/fiber"
	insightsRepoPg "insights-display-service/internal/insights/adapters/postgres"
	"insights-display-service/internal/insights/core/labels"
	insightsUsecase "insights-display-service/internal/insights/core/usecase"

	"insights-display-service/internal/config"
	"insights-display-service/internal/logging"
	"insights-display-service/internal/observability"

	_ "insights-display-service/docs"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE:  runServe,
	}
}

func newCheckConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check-config",
		Short: "Load and validate the configuration, then exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "config ok: listening on %s, %d property formats\n",
				cfg.HTTP.Addr, len(cfg.Labels.PropertyFormats))
			return nil
		},
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	// Config
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	logger := logging.Init(os.Stderr, cfg.Log.Format, level)

	// DB connection
	db, err := sql.Open("postgres", cfg.Postgres.DSN)
	if err != nil {
		return fmt.Errorf("open postgres: %w", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Postgres.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Postgres.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Postgres.ConnMaxLifetime)

	if err := db.PingContext(cmd.Context()); err != nil {
		return fmt.Errorf("ping postgres: %w", err)
	}

	app, err := newApp(db, cfg, logger)
	if err != nil {
		return err
	}

	// Graceful shutdown
	listenErr := make(chan error, 1)
	go func() {
		listenErr <- app.Listen(cfg.HTTP.Addr)
	}()

	logger.Info("server started", "addr", cfg.HTTP.Addr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("shutting down", "signal", sig.String())
	case err := <-listenErr:
		if err != nil {
			return fmt.Errorf("fiber stopped: %w", err)
		}
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error("fiber shutdown error", "error", err)
	}

	logger.Info("server exiting")
	return nil
}

func newApp(db *sql.DB, cfg *config.Config, logger *slog.Logger) (*fiber.App, error) {
	formats, err := cfg.Labels.Formats()
	if err != nil {
		return nil, err
	}

	// Adapter-level DB wrappers
	insightsDB := insightsRepoPg.NewSQLDB(db)
	changesDB := changesRepoPg.NewSQLDB(db)

	// Repositories
	insightRepository := insightsRepoPg.NewInsightRepository(insightsDB)
	cohortRepository := insightsRepoPg.NewCohortRepository(insightsDB)
	changeRepository := changesRepoPg.NewChangeRepository(changesDB)

	// Usecases
	labelOpts := insightsUsecase.LabelOptions{
		Formatter:            labels.NewPropertyFormatter(formats),
		RenderCount:          labels.RenderHumanFriendly,
		DefaultHistogramBins: cfg.Insights.DefaultHistogramBins,
		EventLabels:          cfg.Labels.EventLabels,
	}
	getInsightUC := insightsUsecase.NewGetInsightUseCase(insightRepository, cohortRepository, labelOpts)
	resolveLabelsUC := insightsUsecase.NewResolveLabelsUseCase(cohortRepository, labelOpts)
	trackChangeUC := changesUsecase.NewTrackFilterChangeUseCase(changeRepository)

	// HTTP (Fiber) app + handlers
	app := fiber.New(fiber.Config{
		AppName:               "insights-display-service",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(logging.Middleware(logger))

	// insights endpoints
	insightHandler := insightsHttp.NewInsightHandler(getInsightUC, logger)
	app.Get("/insights", insightHandler.GetInsight)

	changeHandler := changesHttp.NewChangeHandler(trackChangeUC, logger)
	app.Post("/insights/filter-changes", changeHandler.TrackFilterChange)

	// label endpoints
	labelHandler := insightsHttp.NewLabelHandler(resolveLabelsUC, logger)
	app.Post("/labels/breakdown", labelHandler.BreakdownLabels)
	app.Post("/labels/paths", labelHandler.PathLabels)

	// Prometheus
	app.Get("/metrics", observability.Handler())

	// Swagger
	app.Get("/docs/*", fiberSwagger.WrapHandler)

	return app, nil
}
