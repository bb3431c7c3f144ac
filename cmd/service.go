package cmd

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/Atlas-Rhythm/forwardhook/internal/config"
	"github.com/Atlas-Rhythm/forwardhook/internal/runtime"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func cmdService() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "service",
		Aliases: []string{"s", "serve", "standalone", "server"},
		Short:   "Serve webhooks over HTTP",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			config.Global.Mode = config.ModeService
			return runService(cmd.Context())
		},
	}

	bindEnvMap(cmd, svcEnvMapString())
	bindEnvMap(cmd, svcEnvMapInt())
	bindEnvMap(cmd, svcEnvMapDuration())

	return cmd
}

func runService(ctx context.Context) error {
	logger := logger.With("mode", config.ModeService)
	logger.Info("Spawning...")

	rt, shutdown, err := setup(ctx, logger, runtime.WithRequestTimeout(config.Service.Timeout))
	if err != nil {
		return err
	}
	defer func() { _ = shutdown(context.Background()) }()

	s := &http.Server{
		Handler:      rt.Router(config.Service.Path),
		Addr:         net.JoinHostPort(config.Service.Addr, strconv.Itoa(config.Service.Port)),
		WriteTimeout: config.Service.Timeout,
		ReadTimeout:  config.Service.Timeout,
		IdleTimeout:  config.Service.Timeout,
	}

	logger.Info("Serving...", "address", s.Addr, "path", config.Service.Path, "timeout", config.Service.Timeout.String())
	return serve(ctx, s)
}

// serve runs s until it fails or ctx is cancelled, then drains open requests.
func serve(ctx context.Context, s *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "failed to shut down the HTTP server")
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
