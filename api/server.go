package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Crowley723/deploy-monitor/providers"
)

const shutdownTimeout = 10 * time.Second

// NewHandler builds the read-only status routes.
func NewHandler(appCtx *providers.AppContext) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", providers.Wrap(handleHealthGET))
	mux.HandleFunc("GET /report", providers.Wrap(handleReportGET))
	mux.HandleFunc("GET /screenshot", providers.Wrap(handleScreenshotGET))

	return providers.AppContextMiddleware(appCtx)(mux)
}

// StartServer serves the status routes on the configured listen address until
// the app context is cancelled.
func StartServer(appCtx *providers.AppContext) error {
	address := appCtx.Config.Server.Listen

	server := &http.Server{
		Addr:              address,
		Handler:           NewHandler(appCtx),
		ReadHeaderTimeout: 5 * time.Second,
	}

	appCtx.Logger.Info("status server listening", "addr", address)

	done := make(chan error, 1)

	go func() {
		err := server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		done <- err
	}()

	select {
	case err := <-done:
		return err
	case <-appCtx.Done():
	}

	appCtx.Logger.Info("shutting down status server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appCtx.Logger.Error("graceful shutdown failed", "error", err)
		return err
	}

	return <-done
}
