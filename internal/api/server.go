package api

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"

	"chronostat/internal/container"
)

// Serve runs the API until ctx is cancelled, then drains in-flight requests
// for up to the configured shutdown timeout
func Serve(ctx context.Context, c *container.Container) error {
	cfg := c.Config.Server
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	srv := &http.Server{
		Addr:    net.JoinHostPort("", cfg.Port),
		Handler: NewRouter(NewHandler(c), cfg.MaxBodyBytes),
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("API listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down API")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
