package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mathieu-neron/NewsBoard/newsboard-go/internal/chart"
	"github.com/mathieu-neron/NewsBoard/newsboard-go/internal/config"
	"github.com/mathieu-neron/NewsBoard/newsboard-go/internal/db"
	"github.com/mathieu-neron/NewsBoard/newsboard-go/internal/handler"
	"github.com/mathieu-neron/NewsBoard/newsboard-go/internal/middleware"
	"github.com/mathieu-neron/NewsBoard/newsboard-go/internal/repository"
	"github.com/mathieu-neron/NewsBoard/newsboard-go/internal/router"
	"github.com/mathieu-neron/NewsBoard/newsboard-go/internal/service"
)

func main() {
	cfg := config.Load()
	middleware.InitLogger(cfg.LogLevel, "newsboard-api")
	log := middleware.Logger

	format, err := chart.ParseFormat(cfg.ChartFormat)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid CHART_FORMAT")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		pool  *pgxpool.Pool
		store service.PayloadStore
	)
	if cfg.StoreEnabled() {
		pool, err = db.NewPool(ctx, cfg.DatabaseURL, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()

		repo := repository.NewPayloadRepo(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to prepare payload table")
		}
		store = repo
	} else {
		log.Warn().Msg("DATABASE_URL not set, stored dashboard routes disabled")
	}

	handler.InitMetrics(pool)

	svc := service.NewDashboardService(store, service.RenderOptions{
		Format:       format,
		Width:        cfg.ChartWidth,
		Height:       cfg.ChartHeight,
		IsolateSlots: cfg.IsolateSlots,
	}, log.With().Str("component", "dashboard").Logger())

	app := fiber.New(fiber.Config{
		AppName:      "NewsBoard API",
		ServerHeader: "NewsBoard",
		BodyLimit:    cfg.MaxPageBytes,
	})

	router.Setup(app, &router.Handlers{
		Dashboard: handler.NewDashboardHandler(svc, cfg.MaxPageBytes),
		Payload:   handler.NewPayloadHandler(svc),
		Export:    handler.NewExportHandler(svc),
		Health:    handler.NewHealthHandler(pool, string(format)),
	}, cfg.CORSOrigins)

	go func() {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error().Err(err).Msg("shutdown failed")
		}
	}()

	log.Info().
		Str("port", cfg.Port).
		Str("env", cfg.Environment).
		Str("format", string(format)).
		Bool("store", cfg.StoreEnabled()).
		Msg("NewsBoard backend starting")

	if err := app.Listen(":"+cfg.Port, fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
