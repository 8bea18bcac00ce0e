package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"profanityd/internal/config"
	"profanityd/internal/httpapi"
	"profanityd/internal/manager"
	"profanityd/internal/registry"
)

const shutdownTimeout = 5 * time.Second

// newLogger builds the process logger. Console output is human-readable;
// json emits one object per line.
func newLogger(cfg config.Config, w io.Writer) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	out := w
	if cfg.LogFormat == "console" {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}

// buildManager resolves the model list and constructs the manager.
func buildManager(cfg config.Config, log zerolog.Logger) (*manager.Manager, error) {
	models, err := registry.Resolve(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("resolve models: %w", err)
	}
	mlog := log.With().Str("component", "manager").Logger()
	lowercase := true
	if cfg.Lowercase != nil {
		lowercase = *cfg.Lowercase
	}
	return manager.NewWithConfig(manager.ManagerConfig{
		Models:       models,
		DefaultModel: cfg.DefaultModel,
		ONNX: manager.ONNXOptions{
			LibraryPath: cfg.ONNXLibraryPath,
			MaxSeqLen:   cfg.MaxSeqLen,
			Lowercase:   lowercase,
			UseCUDA:     cfg.UseCUDA,
		},
		LoadTimeout:  cfg.LoadTimeout(),
		InferTimeout: cfg.InferTimeout(),
		Logger:       &mlog,
	})
}

// serve runs the HTTP server until ctx is canceled or SIGINT/SIGTERM arrives.
func serve(ctx context.Context, cfg config.Config) error {
	log, err := newLogger(cfg, os.Stderr)
	if err != nil {
		return err
	}
	mgr, err := buildManager(cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := mgr.Close(); err != nil {
			log.Error().Err(err).Msg("closing models")
		}
	}()

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpapi.SetLogger(log.With().Str("component", "http").Logger())
	httpapi.SetDefaultLogLevel(cfg.LogLevel)
	httpapi.SetMaxBodyBytes(cfg.MaxBodyBytes)
	httpapi.SetCORSOptions(cfg.CORSEnabled, cfg.CORSOrigins, cfg.CORSMethods, cfg.CORSHeaders)
	httpapi.SetBaseContext(ctx)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpapi.NewMux(mgr),
		ReadHeaderTimeout: 10 * time.Second,
	}

	if cfg.Preload {
		go mgr.Preload(ctx)
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr).Strs("models", mgr.Registry().Names()).Str("active", mgr.ActiveModel()).Msg("profanityd listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown error")
	}
	return nil
}
