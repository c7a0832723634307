package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/space-cap/saju-lotto-firebase/internal/infra/config"
)

// Scheduler runs background jobs for the lifetime of the app.
type Scheduler interface {
	Start() error
	Stop()
}

// App encapsulates the HTTP server and scheduler lifecycle.
type App struct {
	cfg       *config.Config
	logger    *slog.Logger
	server    *http.Server
	scheduler Scheduler
}

// NewApp is used by Wire to build the runnable app.
func NewApp(cfg *config.Config, logger *slog.Logger, server *http.Server, scheduler Scheduler) *App {
	return &App{cfg: cfg, logger: logger.With("component", "bootstrap"), server: server, scheduler: scheduler}
}

// Run starts the scheduler and HTTP server and blocks until shutdown.
func (a *App) Run(ctx context.Context) error {
	if a.scheduler != nil {
		if err := a.scheduler.Start(); err != nil {
			return err
		}
		defer a.scheduler.Stop()
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server starting", "address", a.cfg.HTTP.Address)
		if err := a.server.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		a.logger.Info("shutdown signal received")
		return a.server.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
