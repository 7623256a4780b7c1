package http

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"currencymonitor/internal/config"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	defaultReadHeaderTimeout = 10 * time.Second
	defaultShutdownTimeout   = 10 * time.Second
)

// Start serves handler until ctx is done or serving fails. On cancellation the
// in-flight requests get cfg.ShutdownTimeout to complete.
func Start(ctx context.Context, cfg config.HTTPServer, handler http.Handler) error {
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: orDefault(cfg.ReadHeaderTimeout, defaultReadHeaderTimeout),
		IdleTimeout:       cfg.IdleTimeout,
	}

	listener, err := net.Listen("tcp", server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", server.Addr, err)
	}
	logrus.Infof("✅ HTTP server listening on %s", listener.Addr())

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		if serveErr := server.Serve(listener); !errors.Is(serveErr, http.ErrServerClosed) {
			return serveErr
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), orDefault(cfg.ShutdownTimeout, defaultShutdownTimeout))
		defer cancel()
		logrus.Info("Shutting down HTTP server")
		return server.Shutdown(shutdownCtx)
	})
	return group.Wait()
}

func orDefault(d, fallback time.Duration) time.Duration {
	if d <= 0 {
		return fallback
	}
	return d
}
