package commands

import (
	"context"
	"errors"
	"io"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/yukikurage/task-tracker/internal/handlers"
	"github.com/yukikurage/task-tracker/internal/reminder"
)

func newShellCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive menu (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd, opts)
		},
	}
}

// runShell runs the menu with the reminder loop alongside it. Both stop on
// Exit, end of input, SIGINT or SIGTERM.
func runShell(cmd *cobra.Command, opts *rootOptions) error {
	return withApp(opts, func(a *app) error {
		ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		out := cmd.OutOrStdout()
		if a.cfg.Reminder.Enabled {
			out = reminder.SyncWriter(out)
			stop := newScheduler(a, out).Start(ctx)
			defer stop()
		}

		shell := handlers.NewShell(a.service, handlers.ShellConfig{
			ActingUserID: a.actingID,
			Exporter:     a.exporter,
			ExportPath:   a.cfg.Export.Path,
			Logger:       a.log,
		}, cmd.InOrStdin(), out)

		err := shell.Run(ctx)
		if errors.Is(err, context.Canceled) {
			a.log.Debugw("Shell interrupted")
			return nil
		}
		return err
	})
}

func newScheduler(a *app, out io.Writer) *reminder.Scheduler {
	return reminder.NewScheduler(a.service, reminder.WriterNotifier{W: out}, reminder.Config{
		Interval: a.cfg.Reminder.Interval,
		Audit:    a.audit,
		Logger:   a.log.WithComponent("reminder"),
		Metrics:  a.metrics,
	})
}
