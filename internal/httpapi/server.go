package httpapi

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gompdf/quotepdf/internal/config"
	"github.com/gompdf/quotepdf/pkg/api"
)

// NewHandler wires routes and middleware for cfg.
func NewHandler(cfg *config.Config, conv *api.Converter, log logrus.FieldLogger) http.Handler {
	quote := NewQuoteHandler(conv, cfg.Document.Filename, cfg.Server.MaxBodyBytes, log)

	var protected http.Handler = quote
	if cfg.Auth.JWTSecret != "" {
		protected = AuthMiddleware([]byte(cfg.Auth.JWTSecret), cfg.Auth.Issuer)(quote)
	}

	mux := http.NewServeMux()
	mux.Handle("/api/quote", protected)
	mux.HandleFunc("/healthz", healthz)
	mux.Handle("/{$}", protected)

	return Chain(mux,
		RequestIDMiddleware,
		LoggingMiddleware(log),
		RecoveryMiddleware(log),
	)
}

// NewServer builds the http.Server for cfg.
func NewServer(cfg *config.Config, conv *api.Converter, log logrus.FieldLogger) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr(),
		Handler:           NewHandler(cfg, conv, log),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
	}
}

// Run serves until ctx is cancelled, then shuts down within timeout.
func Run(ctx context.Context, server *http.Server, log logrus.FieldLogger, timeout time.Duration) error {
	serverErr := make(chan error, 1)
	go func() {
		log.WithField("addr", server.Addr).Info("listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("server shutdown failed")
	}
	if err := <-serverErr; err != nil {
		return err
	}
	log.Info("shutdown complete")
	return nil
}

// RunWithGracefulShutdown serves until SIGINT or SIGTERM.
func RunWithGracefulShutdown(server *http.Server, log logrus.FieldLogger, timeout time.Duration) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return Run(ctx, server, log, timeout)
}
