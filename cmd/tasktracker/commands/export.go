package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newExportCommand(opts *rootOptions) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write pending tasks to an iCalendar file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(a *app) error {
				if path == "" {
					path = a.cfg.Export.Path
				}
				count, err := a.service.ExportCalendar(a.exporter, path)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Tasks exported to %s (%d events)\n", path, count)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&path, "output", "o", "", "output file (default export.path)")
	return cmd
}
