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
	"github.com/spf13/cobra"

	"medpredict/internal/config"
	"medpredict/internal/httpapi"
	"medpredict/internal/manager"
	"medpredict/internal/registry"
	"medpredict/pkg/types"
)

func runServe(cmd *cobra.Command, opts *options) error {
	cfg, err := resolveConfig(opts)
	if err != nil {
		return err
	}
	log := newLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	reg, err := scanModels(cfg.ModelsDir, log)
	if err != nil {
		return err
	}
	mgr := newManager(cfg, reg, log)
	for _, err := range mgr.Preload(cmd.Context()) {
		log.Error().Err(err).Msg("preload failed")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	httpapi.SetLogger(log)
	httpapi.SetMaxBodyBytes(cfg.MaxBodyBytes)
	httpapi.SetPredictTimeoutSeconds(cfg.PredictTimeout)
	httpapi.SetCORSOptions(cfg.CORSEnabled, cfg.CORSOrigins, nil, nil)
	httpapi.SetBaseContext(ctx)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpapi.NewMux(mgr),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr).Str("models_dir", cfg.ModelsDir).Int("models", len(reg)).Msg("medpredict listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("graceful shutdown error")
	}
	return mgr.Close()
}

func scanModels(dir string, log zerolog.Logger) ([]types.Model, error) {
	sc := registry.NewScanner()
	sc.OnSkip = func(path string, err error) {
		log.Warn().Str("path", path).Err(err).Msg("skipping artifact")
	}
	return sc.Scan(dir)
}

func newManager(cfg config.Config, reg []types.Model, log zerolog.Logger) *manager.Manager {
	return manager.NewWithConfig(manager.ManagerConfig{
		Registry:      reg,
		Bindings:      cfg.Bindings,
		MaxQueueDepth: cfg.MaxQueueDepth,
		MaxConcurrent: cfg.MaxConcurrent,
		MaxWait:       cfg.MaxWait(),
		MaxLoaded:     cfg.MaxLoaded,
		Logger:        &log,
		Publisher: manager.PublisherFunc(func(e manager.Event) {
			log.Debug().Str("event", e.Name).Str("model", e.ModelID).Fields(e.Fields).Msg("manager event")
		}),
	})
}
