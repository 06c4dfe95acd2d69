package commands

import (
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configFile   string
	actingUserID uint64
}

// NewRootCommand builds the tasktracker command tree. Without a
// subcommand it starts the interactive shell.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "tasktracker",
		Short:         "Single-user task tracker",
		Long:          "tasktracker keeps tasks and users in a local database, reminds you of tasks due today and exports pending tasks as iCalendar.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd, opts)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file (yaml, json or toml)")
	rootCmd.PersistentFlags().Uint64Var(&opts.actingUserID, "as", 0, "act as this user ID (default session.acting_user_id)")

	rootCmd.AddCommand(
		newShellCommand(opts),
		newTaskCommand(opts),
		newUserCommand(opts),
		newExportCommand(opts),
		newRemindCommand(opts),
		newServeCommand(opts),
		newSyncCommand(opts),
	)

	return rootCmd
}

// withApp opens the app for the duration of fn.
func withApp(opts *rootOptions, fn func(a *app) error) (err error) {
	a, err := openApp(opts)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := a.close(); err == nil {
			err = closeErr
		}
	}()
	return fn(a)
}
