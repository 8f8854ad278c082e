// clinicd runs the in-memory stub clinic backend. It exists so the client
// engine and the CLI can be exercised without the real backend.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/medpro/clinicapp/internal/config"
	"github.com/medpro/clinicapp/internal/stubserver"
	"github.com/medpro/clinicapp/pkg/logging"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting clinicd stub backend", "env", cfg.Env, "port", cfg.Port)

	stub := stubserver.New(logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      stub.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", "error", err)
		os.Exit(1)
	}
}
