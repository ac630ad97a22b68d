package cli

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/internal/adapters/store"
	service "github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/internal/app"
	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/internal/config"
	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/pkg/logger"
)

// loadConfig layers defaults, the YAML file and env overrides, then applies
// the configured log format and level.
func loadConfig(ctx context.Context, cmd *cobra.Command, opts *RootOptions) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.ConfigPath != "" {
		cfg, err = config.LoadFrom(ctx, opts.ConfigPath)
	} else {
		cfg, err = config.Load(ctx)
	}
	if err != nil {
		return nil, err
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat), logger.WithWriter(cmd.ErrOrStderr())); err != nil {
		return nil, WrapExitError(ExitCommandError, "init logging", err)
	}
	if opts.Verbose {
		logger.SetLevel(slog.LevelDebug)
	} else if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		logger.Get().Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}
	return cfg, nil
}

// startService builds the executor for cfg and starts a service over it.
func startService(ctx context.Context, cfg *config.Config) (*service.Service, error) {
	log := logger.Get()
	exec, err := store.FromConfig(cfg, store.WithLogger(log.Named("store")))
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "configure store", err)
	}
	svc := service.New(
		service.WithExecutor(exec),
		service.WithQueryCache(cfg.QueryCacheTTL(), cfg.QueryCacheSize),
		service.WithLogger(log.Named("service")),
	)
	if err := svc.Start(ctx); err != nil {
		return nil, err
	}
	log.Debug(ctx, "store configured", logger.String("target", cfg.String()))
	return svc, nil
}

// withService loads the configuration, runs fn against a started service and
// stops it afterwards.
func withService(cmd *cobra.Command, opts *RootOptions, fn func(context.Context, *service.Service) error) error {
	ctx := cmd.Context()
	cfg, err := loadConfig(ctx, cmd, opts)
	if err != nil {
		return err
	}
	svc, err := startService(ctx, cfg)
	if err != nil {
		return err
	}
	defer svc.Stop()
	return fn(ctx, svc)
}
