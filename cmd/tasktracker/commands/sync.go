package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/yukikurage/task-tracker/internal/gcal"
)

func newSyncCommand(opts *rootOptions) *cobra.Command {
	var calendarID string

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Push pending tasks to Google Calendar",
		Long:  "Creates an all-day event for every pending task and patches events whose task has changed. The first run asks for an OAuth authorization code.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(a *app) error {
				if calendarID == "" {
					calendarID = a.cfg.Google.CalendarID
				}

				srv, err := gcal.NewService(cmd.Context(), gcal.OAuthConfig{
					CredentialsFile: a.cfg.Google.CredentialsFile,
					TokenFile:       a.cfg.Google.TokenFile,
				}, cmd.InOrStdin(), cmd.OutOrStdout())
				if err != nil {
					return err
				}

				result, err := gcal.NewClient(srv, calendarID, a.log).Sync(cmd.Context(), a.service.Tasks())
				if err != nil {
					return err
				}

				a.audit.Record(time.Now(), "Tasks synced to Google Calendar %s", calendarID)
				fmt.Fprintf(cmd.OutOrStdout(), "Synced: %d created, %d updated, %d unchanged\n",
					result.Created, result.Updated, result.Unchanged)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&calendarID, "calendar", "", "calendar ID (default google.calendar_id)")
	return cmd
}
