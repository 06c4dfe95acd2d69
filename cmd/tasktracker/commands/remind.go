package commands

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func newRemindCommand(opts *rootOptions) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Print reminders for incomplete tasks due today",
		Long:  "Runs a single reminder check, or with --watch keeps checking every reminder.interval until interrupted.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(a *app) error {
				scheduler := newScheduler(a, cmd.OutOrStdout())
				if !watch {
					if len(scheduler.Tick()) == 0 {
						fmt.Fprintln(cmd.OutOrStdout(), "No tasks due today.")
					}
					return nil
				}

				ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
				defer cancel()
				if err := scheduler.Run(ctx); !errors.Is(err, context.Canceled) {
					return err
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "keep checking until interrupted")
	return cmd
}
