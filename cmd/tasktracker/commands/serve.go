package commands

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/yukikurage/task-tracker/internal/handlers"
	"github.com/yukikurage/task-tracker/internal/services"
)

const shutdownTimeout = 5 * time.Second

func newServeCommand(opts *rootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a read-only HTTP feed of tasks, the calendar and metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(a *app) error {
				if addr == "" {
					addr = a.cfg.Server.Addr
				}
				gin.SetMode(a.cfg.Server.GinMode)

				router := handlers.NewRouter(handlers.NewTaskHandler(a.service, a.exporter), handlers.RouterConfig{
					Auth:          services.RegisteredAuthenticator{Service: a.service},
					DefaultUserID: a.actingID,
					Gatherer:      a.registry,
					Logger:        a.log,
				})
				srv := &http.Server{
					Addr:              addr,
					Handler:           router,
					ReadHeaderTimeout: 10 * time.Second,
				}

				ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
				defer cancel()

				if a.cfg.Reminder.Enabled {
					stop := newScheduler(a, cmd.OutOrStdout()).Start(ctx)
					defer stop()
				}

				errCh := make(chan error, 1)
				go func() {
					a.log.Infow("Starting feed server", "addr", addr)
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

				a.log.Infow("Shutting down feed server")
				shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancelShutdown()
				return srv.Shutdown(shutdownCtx)
			})
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default server.addr)")
	return cmd
}
