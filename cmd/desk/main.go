package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"

	"github.com/pmarket/parfume-desk/internal/adapter/auth"
	"github.com/pmarket/parfume-desk/internal/adapter/console"
	"github.com/pmarket/parfume-desk/internal/adapter/storage"
	"github.com/pmarket/parfume-desk/internal/config"
	"github.com/pmarket/parfume-desk/internal/core/domain"
	"github.com/pmarket/parfume-desk/internal/core/service"
	"github.com/pmarket/parfume-desk/internal/scheduler"
	"github.com/pmarket/parfume-desk/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	ctx := context.Background()

	store, err := storage.Open(cfg.DatabasePath, log)
	if err != nil {
		log.Error().Err(err).Str("path", cfg.DatabasePath).Msg("failed to open store")
		os.Exit(1)
	}
	defer store.Close()
	log.Info().Str("path", cfg.DatabasePath).Msg("store opened")

	if err := store.EnsureSchema(ctx, cfg.SchemaPath, cfg.SeedPath); err != nil {
		log.Error().Err(err).Msg("schema initialization failed")
		os.Exit(1)
	}

	verifier := auth.NewBcryptVerifier()

	dealService := service.NewDealService(store, log)
	statsService := service.NewStatsService(store, log)
	archiveService := service.NewArchiveService(store, log)
	reportService := service.NewReportService(store)
	catalogService := service.NewCatalogService(store, log)
	authService := service.NewAuthService(store, verifier, log)

	if err := bootstrapAdmin(ctx, cfg, store, authService, log); err != nil {
		log.Error().Err(err).Msg("admin bootstrap failed")
		os.Exit(1)
	}

	if cfg.StatsRefreshCron != "" {
		sched := scheduler.New(log)
		if err := sched.AddJob(cfg.StatsRefreshCron, scheduler.NewStatsRefreshJob(statsService)); err != nil {
			log.Error().Err(err).Msg("invalid stats refresh schedule")
			os.Exit(1)
		}
		sched.Start()
		defer sched.Stop()
	}

	handler := console.New(console.Services{
		Auth:    authService,
		Deals:   dealService,
		Stats:   statsService,
		Archive: archiveService,
		Reports: reportService,
		Catalog: catalogService,
	}, os.Stdin, os.Stdout, cfg.MaxLoginAttempts, log)

	if err := handler.Run(ctx); err != nil {
		log.Error().Err(err).Msg("session aborted")
		os.Exit(1)
	}
	log.Info().Msg("session finished")
}

// bootstrapAdmin creates the first admin account when the users table is
// empty. The password comes from DESK_ADMIN_PASSWORD; refusing to invent one
// keeps unhashed defaults out of the store.
func bootstrapAdmin(ctx context.Context, cfg *config.Config, store *storage.Store, authSvc *service.AuthService, log zerolog.Logger) error {
	exists, err := store.HasAnyUser(ctx)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	if cfg.AdminPassword == "" {
		log.Warn().Msg("no user accounts and DESK_ADMIN_PASSWORD unset, skipping admin bootstrap")
		return nil
	}

	if err := authSvc.Register(ctx, cfg.AdminUser, []byte(cfg.AdminPassword), domain.RoleAdmin, ""); err != nil {
		return err
	}
	log.Info().Str("username", cfg.AdminUser).Msg("bootstrap admin account created")
	return nil
}
