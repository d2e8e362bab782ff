package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexanderramin/prodsched/internal/httpapi"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the scheduling JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.Config.HTTP
			if addr != "" {
				cfg.Addr = addr
			}
			srv := &http.Server{
				Addr:         cfg.Addr,
				Handler:      httpapi.New(app.Services, httpapi.WithLogger(app.Logger)),
				ReadTimeout:  time.Duration(cfg.ReadTimeoutMs) * time.Millisecond,
				WriteTimeout: time.Duration(cfg.WriteTimeoutMs) * time.Millisecond,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServer(ctx, srv, time.Duration(cfg.ShutdownTimeoutMs)*time.Millisecond, app)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides config)")

	return cmd
}

// runServer serves until ctx is cancelled, then drains in-flight requests
// for at most grace.
func runServer(ctx context.Context, srv *http.Server, grace time.Duration, app *App) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		app.Logger.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
		defer cancel()
		app.Logger.Info("shutting down", "grace", grace)
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
