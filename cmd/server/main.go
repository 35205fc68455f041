package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"github.com/valeriaulyamaeva/controle-mei/internal/config"
	"github.com/valeriaulyamaeva/controle-mei/internal/database"
	"github.com/valeriaulyamaeva/controle-mei/internal/handlers"
	"github.com/valeriaulyamaeva/controle-mei/internal/jobs"
	"github.com/valeriaulyamaeva/controle-mei/internal/logging"
	"github.com/valeriaulyamaeva/controle-mei/internal/mei"
	"github.com/valeriaulyamaeva/controle-mei/internal/metrics"
	"github.com/valeriaulyamaeva/controle-mei/internal/routes"
	"github.com/valeriaulyamaeva/controle-mei/internal/storage"
	"github.com/valeriaulyamaeva/controle-mei/migrations"
)

func newStore(ctx context.Context, cfg config.Config) (storage.Store, error) {
	if cfg.StorageBackend == "s3" {
		return storage.NewS3Store(ctx, storage.S3Options{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
	}
	return storage.NewFileStore(cfg.StorageDir)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	logging.New(cfg.LogLevel, cfg.LogFormat)
	logger := logging.For("server")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect database")
	}
	defer pool.Close()

	if cfg.AutoMigrate {
		if err := database.ApplyMigrations(ctx, pool, migrations.FS); err != nil {
			logger.Fatal().Err(err).Msg("apply migrations")
		}
	}

	docs, err := newStore(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Str("backend", cfg.StorageBackend).Msg("open document store")
	}

	m := metrics.New()
	das := database.NewDasPayments(pool)

	c := cron.New(cron.WithLocation(cfg.Location))
	if _, err := jobs.ScheduleDasOverdue(c, das, cfg, m); err != nil {
		logger.Fatal().Err(err).Msg("schedule jobs")
	}
	c.Start()
	defer c.Stop()

	policy := mei.NewPaymentPolicy(cfg.DasDefaultAmount)
	policy.Now = cfg.Now

	h := handlers.New(handlers.Deps{
		Users:        database.NewUsers(pool),
		Sessions:     database.NewSessions(pool),
		Profiles:     database.NewProfiles(pool),
		Transactions: database.NewTransactions(pool),
		Debts:        database.NewRecurringDebts(pool),
		Das:          das,
		Documents:    docs,
		Metrics:      m,
		Policy:       policy,
		Now:          cfg.Now,
		Options: handlers.Options{
			HistoryMonths:   cfg.HistoryMonths,
			DasHistoryLimit: cfg.DasHistoryLimit,
			SessionTTL:      cfg.SessionTTL,
			SignedURLTTL:    cfg.SignedURLTTL,
			MaxUploadBytes:  cfg.MaxUploadBytes,
		},
	})

	gin.SetMode(gin.ReleaseMode)
	r := routes.SetupRouter(h, routes.Options{
		CORSOrigins: cfg.CORSOrigins,
		Metrics:     m,
		Health:      pool.Ping,
	})
	r.MaxMultipartMemory = cfg.MaxUploadBytes

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", cfg.HTTPAddr).Str("storage", cfg.StorageBackend).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown")
	}
}
