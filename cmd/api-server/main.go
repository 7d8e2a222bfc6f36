package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/careloop/hms-backend/internal/api"
	"github.com/careloop/hms-backend/internal/billing"
	"github.com/careloop/hms-backend/internal/clinical"
	"github.com/careloop/hms-backend/internal/config"
	"github.com/careloop/hms-backend/internal/db"
	"github.com/careloop/hms-backend/internal/identity"
	redisclient "github.com/careloop/hms-backend/internal/redis"
	"github.com/careloop/hms-backend/internal/scheduling"
)

const version = "1.0.0"

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Str("service", "api-server").Logger()
	log.Info().Msg("api-server starting up")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load error")
	}

	log.Info().Str("env", cfg.Env).Str("http_port", cfg.HTTPPort).Msg("configured")

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect Postgres
	pgCtx, cancelPg := context.WithTimeout(rootCtx, 10*time.Second)
	pgPool, err := db.ConnectPostgres(pgCtx, cfg.PostgresDSN)
	cancelPg()
	if err != nil {
		log.Fatal().Err(err).Msg("postgres connection error")
	}
	defer pgPool.Close()
	log.Info().Msg("connected to Postgres")

	migrateCtx, cancelMigrate := context.WithTimeout(rootCtx, 30*time.Second)
	err = db.Migrate(migrateCtx, pgPool)
	cancelMigrate()
	if err != nil {
		log.Fatal().Err(err).Msg("schema migration error")
	}

	// Connect Redis
	rdb, err := redisclient.NewRedisClient(cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword)
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection error")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Warn().Err(err).Msg("error closing redis")
		}
	}()
	log.Info().Msg("connected to Redis")

	identityRepo := identity.NewPgRepository(pgPool)
	schedulingRepo := scheduling.NewPgRepository(pgPool)
	clinicalRepo := clinical.NewPgRepository(pgPool)
	billingRepo := billing.NewPgRepository(pgPool)

	tokens := identity.NewTokenProvider(cfg.JWTSecret, cfg.TokenTTL)
	locker := redisclient.NewRedisAppointmentLocker(rdb, cfg.LockTTL)

	router := api.NewRouter(api.RouterConfig{
		Auth:          identity.NewAuthService(identityRepo, tokens),
		Doctors:       identity.NewDoctorService(identityRepo),
		Patients:      identity.NewPatientService(identityRepo),
		Appointments:  scheduling.NewService(schedulingRepo, identityRepo, log),
		Prescriptions: clinical.NewService(clinicalRepo, schedulingRepo, identityRepo, locker, log),
		Payments:      billing.NewService(billingRepo, schedulingRepo, locker, log),
		Tokens:        tokens,
		PgPool:        pgPool,
		Redis:         rdb,
		Log:           log,
		Env:           cfg.Env,
		Version:       version,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-rootCtx.Done():
		log.Info().Msg("shutting down api-server")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server error")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
