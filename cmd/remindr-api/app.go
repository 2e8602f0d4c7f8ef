package main

import (
	"context"
	"fmt"

	"github.com/JonnyWalker81/remindr/backend/internal/config"
	"github.com/JonnyWalker81/remindr/backend/internal/logger"
	"github.com/JonnyWalker81/remindr/backend/internal/repository"
	"github.com/JonnyWalker81/remindr/backend/internal/service"
	"github.com/JonnyWalker81/remindr/backend/pkg/supabase"
)

// app holds what every command needs: configuration, the process logger,
// the storage backend and the services built on it.
type app struct {
	cfg   *config.Config
	log   logger.Logger
	repos *repository.Repositories

	reminders service.ReminderService
	activity  service.ActivityService
	analytics service.AnalyticsService
	export    service.ExportService
	seed      service.SeedService
}

func bootstrap(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.New(cfg.Log.LoggerConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	logger.SetDefault(log)

	repos, err := openRepositories(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return newApp(cfg, log, repos), nil
}

func newApp(cfg *config.Config, log logger.Logger, repos *repository.Repositories) *app {
	loc := cfg.Analytics.Location()
	return &app{
		cfg:       cfg,
		log:       log,
		repos:     repos,
		reminders: service.NewReminderService(repos.Reminders, nil),
		activity:  service.NewActivityService(repos.Logs, repos.Reminders, nil),
		analytics: service.NewAnalyticsService(repos.Snapshots, nil, loc),
		export:    service.NewExportService(repos.Snapshots, nil, loc),
		seed:      service.NewSeedService(repos.Reminders, repos.Logs, nil, loc),
	}
}

func openRepositories(ctx context.Context, cfg *config.Config) (*repository.Repositories, error) {
	switch cfg.Storage.Driver {
	case config.DriverSupabase:
		logger.Info("using supabase storage", logger.String("url", cfg.Supabase.URL))
		return repository.NewSupabase(supabase.NewClient(cfg.Supabase.URL, cfg.Supabase.ServiceKey)), nil
	default:
		logger.Info("using sqlite storage", logger.String("path", cfg.Storage.SQLitePath))
		repos, err := repository.OpenSQLite(ctx, cfg.Storage.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite storage: %w", err)
		}
		return repos, nil
	}
}

func (a *app) Close() {
	if err := a.repos.Close(); err != nil {
		a.log.Warn("failed to close storage", logger.Err(err))
	}
}
