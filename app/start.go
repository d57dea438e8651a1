package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"
)

// Run serves HTTP and processes events until ctx is cancelled, then shuts
// both down within the configured timeout.
func (app *App) Run(ctx context.Context) error {
	logger := app.Observability.Logger

	srv := &http.Server{
		Addr:    app.Config.HTTP.Address,
		Handler: app.HTTPRouter,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := app.WatermillRouter.Run(gctx); err != nil {
			return fmt.Errorf("watermill router: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		logger.InfoContext(gctx, "Starting HTTP server", slog.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down application...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), app.Config.HTTP.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown failed", slog.Any("error", err))
		}
		return app.WatermillRouter.Close()
	})

	return g.Wait()
}
