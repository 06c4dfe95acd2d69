package handlers

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yukikurage/task-tracker/internal/export"
	"github.com/yukikurage/task-tracker/internal/logger"
	"github.com/yukikurage/task-tracker/internal/models"
	"github.com/yukikurage/task-tracker/internal/services"
)

const menu = `
Task Manager CLI
1. Add Task
2. View Tasks
3. Add User
4. Export to iCalendar
5. Update Task
6. Delete Task
7. Mark Task Complete
8. Exit
`

const (
	choiceAddTask = iota + 1
	choiceViewTasks
	choiceAddUser
	choiceExport
	choiceUpdateTask
	choiceDeleteTask
	choiceCompleteTask
	choiceExit
)

// Shell is the interactive numbered menu. Every action runs on behalf of a
// single acting user fixed for the session.
type Shell struct {
	service      *services.TaskService
	exporter     *export.CalendarExporter
	exportPath   string
	actingUserID uint64
	log          *logger.Logger

	out   io.Writer
	lines <-chan string
	in    io.Reader
}

// ShellConfig carries the Shell's settings.
type ShellConfig struct {
	ActingUserID uint64
	Exporter     *export.CalendarExporter
	ExportPath   string
	Logger       *logger.Logger
}

func NewShell(service *services.TaskService, cfg ShellConfig, in io.Reader, out io.Writer) *Shell {
	if cfg.Exporter == nil {
		cfg.Exporter = export.NewCalendarExporter("", "")
	}
	if cfg.ExportPath == "" {
		cfg.ExportPath = "tasks.ics"
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Nop()
	}
	return &Shell{
		service:      service,
		exporter:     cfg.Exporter,
		exportPath:   cfg.ExportPath,
		actingUserID: cfg.ActingUserID,
		log:          cfg.Logger.WithComponent("shell"),
		out:          out,
		in:           in,
	}
}

// Run shows the menu until Exit is chosen, input ends, or ctx is done.
func (s *Shell) Run(ctx context.Context) error {
	s.lines = readLines(s.in)

	for {
		fmt.Fprint(s.out, menu)
		line, ok := s.prompt(ctx, "Enter choice: ")
		if !ok {
			return ctx.Err()
		}

		choice, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			fmt.Fprintln(s.out, "Invalid input.")
			continue
		}
		if choice == choiceExit {
			return nil
		}

		if !s.dispatch(ctx, choice) {
			return ctx.Err()
		}
	}
}

// dispatch runs one menu action. It reports false once input is exhausted.
func (s *Shell) dispatch(ctx context.Context, choice int) bool {
	var err error
	ok := true

	switch choice {
	case choiceAddTask:
		ok, err = s.addTask(ctx)
	case choiceViewTasks:
		WriteTaskListing(s.out, len(s.service.Tasks()), s.service.ViewTasks(s.actingUserID))
	case choiceAddUser:
		ok, err = s.addUser(ctx)
	case choiceExport:
		err = s.exportCalendar()
	case choiceUpdateTask:
		ok, err = s.updateTask(ctx)
	case choiceDeleteTask:
		ok, err = s.deleteTask(ctx)
	case choiceCompleteTask:
		ok, err = s.completeTask(ctx)
	default:
		fmt.Fprintln(s.out, "Invalid choice.")
	}

	if err != nil {
		s.log.Debugw("Menu action failed", "choice", choice, "error", err)
		fmt.Fprintf(s.out, "Error: %v\n", err)
	}
	return ok
}

func (s *Shell) addTask(ctx context.Context) (bool, error) {
	desc, ok := s.prompt(ctx, "Enter description: ")
	if !ok {
		return false, nil
	}
	cat, ok := s.prompt(ctx, "Select category (1=Work, 2=Personal, 3=Study, 4=Other): ")
	if !ok {
		return false, nil
	}
	due, ok := s.prompt(ctx, "Enter due date (YYYY-MM-DD): ")
	if !ok {
		return false, nil
	}
	priority, ok := s.prompt(ctx, "Enter priority (High/Medium/Low): ")
	if !ok {
		return false, nil
	}
	assigned, ok := s.prompt(ctx, "Assign to user ID: ")
	if !ok {
		return false, nil
	}

	assignee, valid := parseID(assigned)
	if !valid {
		fmt.Fprintln(s.out, "Invalid input.")
		return true, nil
	}

	task, err := s.service.AddTask(services.CreateTaskInput{
		Description: desc,
		Category:    categoryChoice(cat),
		DueDate:     strings.TrimSpace(due),
		AssignedTo:  assignee,
		Priority:    priority,
	}, s.actingUserID)
	if err != nil {
		return true, err
	}

	fmt.Fprintf(s.out, "Task %d added.\n", task.ID)
	return true, nil
}

func (s *Shell) addUser(ctx context.Context) (bool, error) {
	name, ok := s.prompt(ctx, "Enter user name: ")
	if !ok {
		return false, nil
	}
	role, ok := s.prompt(ctx, "Select role (1=Admin, 2=Member): ")
	if !ok {
		return false, nil
	}

	user, err := s.service.AddUser(name, roleChoice(role))
	if err != nil {
		return true, err
	}

	fmt.Fprintf(s.out, "User %d added.\n", user.ID)
	return true, nil
}

func (s *Shell) exportCalendar() error {
	if _, err := s.service.ExportCalendar(s.exporter, s.exportPath); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Tasks exported to %s\n", s.exportPath)
	return nil
}

// updateTask prompts for every field; blank answers keep the current value.
func (s *Shell) updateTask(ctx context.Context) (bool, error) {
	taskID, ok, valid := s.promptID(ctx, "Enter task ID: ")
	if !ok {
		return false, nil
	}
	if !valid {
		fmt.Fprintln(s.out, "Invalid input.")
		return true, nil
	}

	var input services.UpdateTaskInput
	fmt.Fprintln(s.out, "Leave a field blank to keep its current value.")

	desc, ok := s.prompt(ctx, "Enter description: ")
	if !ok {
		return false, nil
	}
	if desc != "" {
		input.Description = &desc
	}

	cat, ok := s.prompt(ctx, "Select category (1=Work, 2=Personal, 3=Study, 4=Other): ")
	if !ok {
		return false, nil
	}
	if strings.TrimSpace(cat) != "" {
		category := categoryChoice(cat)
		input.Category = &category
	}

	due, ok := s.prompt(ctx, "Enter due date (YYYY-MM-DD): ")
	if !ok {
		return false, nil
	}
	if due = strings.TrimSpace(due); due != "" {
		input.DueDate = &due
	}

	priority, ok := s.prompt(ctx, "Enter priority (High/Medium/Low): ")
	if !ok {
		return false, nil
	}
	if priority != "" {
		input.Priority = &priority
	}

	assigned, ok := s.prompt(ctx, "Assign to user ID: ")
	if !ok {
		return false, nil
	}
	if strings.TrimSpace(assigned) != "" {
		assignee, valid := parseID(assigned)
		if !valid {
			fmt.Fprintln(s.out, "Invalid input.")
			return true, nil
		}
		input.AssignedTo = &assignee
	}

	if _, err := s.service.UpdateTask(taskID, input, s.actingUserID); err != nil {
		return true, err
	}

	fmt.Fprintf(s.out, "Task %d updated.\n", taskID)
	return true, nil
}

func (s *Shell) deleteTask(ctx context.Context) (bool, error) {
	taskID, ok, valid := s.promptID(ctx, "Enter task ID: ")
	if !ok {
		return false, nil
	}
	if !valid {
		fmt.Fprintln(s.out, "Invalid input.")
		return true, nil
	}

	if err := s.service.DeleteTask(taskID, s.actingUserID); err != nil {
		return true, err
	}

	fmt.Fprintf(s.out, "Task %d deleted.\n", taskID)
	return true, nil
}

func (s *Shell) completeTask(ctx context.Context) (bool, error) {
	taskID, ok, valid := s.promptID(ctx, "Enter task ID: ")
	if !ok {
		return false, nil
	}
	if !valid {
		fmt.Fprintln(s.out, "Invalid input.")
		return true, nil
	}

	if _, err := s.service.CompleteTask(taskID, s.actingUserID); err != nil {
		return true, err
	}

	fmt.Fprintf(s.out, "Task %d marked complete.\n", taskID)
	return true, nil
}

// prompt writes label and waits for the next input line. It reports false
// on EOF or cancellation.
func (s *Shell) prompt(ctx context.Context, label string) (string, bool) {
	fmt.Fprint(s.out, label)
	select {
	case <-ctx.Done():
		return "", false
	case line, ok := <-s.lines:
		return line, ok
	}
}

func (s *Shell) promptID(ctx context.Context, label string) (id uint64, ok, valid bool) {
	line, ok := s.prompt(ctx, label)
	if !ok {
		return 0, false, false
	}
	id, valid = parseID(line)
	return id, true, valid
}

// readLines feeds input lines to a channel so prompts can also watch for
// cancellation. The channel is closed at EOF.
func readLines(r io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			lines <- strings.TrimRight(scanner.Text(), "\r")
		}
	}()
	return lines
}

func parseID(s string) (uint64, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	return id, err == nil
}

// categoryChoice maps the 1..4 menu numbers; anything else is Other.
func categoryChoice(s string) models.Category {
	switch strings.TrimSpace(s) {
	case "1":
		return models.CategoryWork
	case "2":
		return models.CategoryPersonal
	case "3":
		return models.CategoryStudy
	default:
		return models.CategoryOther
	}
}

func roleChoice(s string) models.Role {
	if strings.TrimSpace(s) == "1" {
		return models.RoleAdmin
	}
	return models.RoleMember
}
