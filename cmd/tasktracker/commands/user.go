package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yukikurage/task-tracker/internal/dto"
	"github.com/yukikurage/task-tracker/internal/handlers"
	"github.com/yukikurage/task-tracker/internal/models"
)

func newUserCommand(opts *rootOptions) *cobra.Command {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "User commands",
	}

	var role string
	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(a *app) error {
				user, err := a.service.AddUser(args[0], roleFlag(role))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "User %d added.\n", user.ID)
				return nil
			})
		},
	}
	addCmd.Flags().StringVarP(&role, "role", "r", string(models.RoleMember), "Admin or Member")

	var asJSON bool
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(a *app) error {
				users := a.service.Users()
				if asJSON {
					out := make([]dto.UserDTO, len(users))
					for i, user := range users {
						out[i] = dto.ToUserDTO(user)
					}
					return writeJSON(cmd.OutOrStdout(), out)
				}
				handlers.WriteUserTable(cmd.OutOrStdout(), users)
				return nil
			})
		},
	}
	listCmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")

	userCmd.AddCommand(addCmd, listCmd)
	return userCmd
}

// roleFlag accepts role names in any case. Anything else is passed through
// so validation can reject it.
func roleFlag(s string) models.Role {
	for _, r := range []models.Role{models.RoleAdmin, models.RoleMember} {
		if strings.EqualFold(string(r), s) {
			return r
		}
	}
	return models.Role(s)
}
