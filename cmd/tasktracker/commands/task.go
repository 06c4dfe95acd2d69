package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	apperrors "github.com/yukikurage/task-tracker/internal/errors"
	"github.com/yukikurage/task-tracker/internal/handlers"
	"github.com/yukikurage/task-tracker/internal/models"
	"github.com/yukikurage/task-tracker/internal/services"
	"github.com/yukikurage/task-tracker/internal/utils"
)

func newTaskCommand(opts *rootOptions) *cobra.Command {
	taskCmd := &cobra.Command{
		Use:   "task",
		Short: "Task commands",
		Long:  "Add, list, update, delete and complete tasks without the interactive menu",
	}

	taskCmd.AddCommand(
		newTaskAddCommand(opts),
		newTaskListCommand(opts),
		newTaskUpdateCommand(opts),
		newTaskDeleteCommand(opts),
		newTaskCompleteCommand(opts),
		newTaskGenerateCommand(opts),
	)
	return taskCmd
}

func newTaskAddCommand(opts *rootOptions) *cobra.Command {
	var input struct {
		description string
		category    string
		due         string
		priority    string
		assign      uint64
	}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a task",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(a *app) error {
				assignee := input.assign
				if assignee == 0 {
					assignee = a.actingID
				}

				task, err := a.service.AddTask(services.CreateTaskInput{
					Description: input.description,
					Category:    categoryFlag(input.category),
					DueDate:     input.due,
					AssignedTo:  assignee,
					Priority:    input.priority,
				}, a.actingID)
				if err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Task %d added.\n", task.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&input.description, "description", "d", "", "task description (required)")
	cmd.Flags().StringVarP(&input.category, "category", "c", string(models.CategoryOther), "Work, Personal, Study or Other")
	cmd.Flags().StringVar(&input.due, "due", "", "due date, YYYY-MM-DD (required)")
	cmd.Flags().StringVarP(&input.priority, "priority", "p", "Medium", "priority (High/Medium/Low)")
	cmd.Flags().Uint64Var(&input.assign, "assign", 0, "assignee user ID (default: acting user)")
	_ = cmd.MarkFlagRequired("description")
	_ = cmd.MarkFlagRequired("due")

	return cmd
}

func newTaskListCommand(opts *rootOptions) *cobra.Command {
	var (
		pending bool
		due     string
		page    int
		limit   int
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the tasks visible to the acting user",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(a *app) error {
				params := utils.GetPaginationParams(page, limit)
				resp, err := a.service.ListTasks(services.ListTasksInput{
					ActingUserID: a.actingID,
					PendingOnly:  pending,
					DueOn:        due,
					Page:         params.Page,
					PageSize:     params.Limit,
				})
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if asJSON {
					return writeJSON(out, resp)
				}

				handlers.WriteTaskListing(out, len(a.service.Tasks()), resp.Tasks)
				if resp.TotalPages > 1 {
					fmt.Fprintf(out, "Page %d of %d (%d tasks)\n", resp.Page, resp.TotalPages, resp.TotalCount)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&pending, "pending", false, "only tasks that are not completed")
	cmd.Flags().StringVar(&due, "due", "", "only tasks due on this date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&limit, "limit", 0, "tasks per page")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")

	return cmd
}

func newTaskUpdateCommand(opts *rootOptions) *cobra.Command {
	var (
		description string
		category    string
		due         string
		priority    string
		assign      uint64
	)

	cmd := &cobra.Command{
		Use:   "update <task-id>",
		Short: "Update fields of a task; omitted flags keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := parseTaskID(args[0])
			if err != nil {
				return err
			}

			var input services.UpdateTaskInput
			flags := cmd.Flags()
			if flags.Changed("description") {
				input.Description = &description
			}
			if flags.Changed("category") {
				c := categoryFlag(category)
				input.Category = &c
			}
			if flags.Changed("due") {
				input.DueDate = &due
			}
			if flags.Changed("priority") {
				input.Priority = &priority
			}
			if flags.Changed("assign") {
				input.AssignedTo = &assign
			}

			return withApp(opts, func(a *app) error {
				if _, err := a.service.UpdateTask(taskID, input, a.actingID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Task %d updated.\n", taskID)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "new description")
	cmd.Flags().StringVarP(&category, "category", "c", "", "new category")
	cmd.Flags().StringVar(&due, "due", "", "new due date (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "new priority")
	cmd.Flags().Uint64Var(&assign, "assign", 0, "new assignee user ID")

	return cmd
}

func newTaskDeleteCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <task-id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			return withApp(opts, func(a *app) error {
				if err := a.service.DeleteTask(taskID, a.actingID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Task %d deleted.\n", taskID)
				return nil
			})
		},
	}
}

func newTaskCompleteCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "complete <task-id>",
		Short: "Mark a task complete",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			return withApp(opts, func(a *app) error {
				if _, err := a.service.CompleteTask(taskID, a.actingID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Task %d marked complete.\n", taskID)
				return nil
			})
		},
	}
}

func newTaskGenerateCommand(opts *rootOptions) *cobra.Command {
	var (
		assign uint64
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "generate <text>...",
		Short: "Extract tasks from free text with OpenAI and add them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(a *app) error {
				var ai *services.AIService
				if a.cfg.OpenAI.APIKey != "" {
					ai = services.NewAIService(a.cfg.OpenAI.APIKey, a.cfg.OpenAI.Model)
				}

				drafts, err := a.service.GenerateTasks(cmd.Context(), ai, strings.Join(args, " "))
				if err != nil {
					return err
				}

				assignee := assign
				if assignee == 0 {
					assignee = a.actingID
				}

				out := cmd.OutOrStdout()
				for _, draft := range drafts {
					if dryRun {
						fmt.Fprintf(out, "%s  %s  %s  %s\n", draft.DueDate, draft.Category, draft.Priority, draft.Description)
						continue
					}
					task, err := a.service.AddTask(draft.ToCreateInput(assignee), a.actingID)
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "Task %d added: %s\n", task.ID, task.Description)
				}
				return nil
			})
		},
	}

	cmd.Flags().Uint64Var(&assign, "assign", 0, "assignee user ID (default: acting user)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the extracted tasks without adding them")

	return cmd
}

func parseTaskID(s string) (uint64, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: task ID %q", apperrors.ErrInvalidInput, s)
	}
	return id, nil
}

// categoryFlag accepts category names in any case; unknown names are Other.
func categoryFlag(s string) models.Category {
	for _, c := range models.Categories {
		if strings.EqualFold(string(c), s) {
			return c
		}
	}
	return models.CategoryOther
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
