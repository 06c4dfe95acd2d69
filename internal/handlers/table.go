package handlers

import (
	"fmt"
	"io"
	"strings"

	"github.com/yukikurage/task-tracker/internal/dto"
	"github.com/yukikurage/task-tracker/internal/models"
)

const maxDescriptionWidth = 29

// WriteTaskListing prints "No tasks found." when the store holds no tasks
// at all. Otherwise it prints the table, which is a bare header when none of
// the stored tasks are visible.
func WriteTaskListing(w io.Writer, stored int, rows []dto.TaskRow) {
	if stored == 0 {
		fmt.Fprintln(w, "No tasks found.")
		return
	}
	WriteTaskTable(w, rows)
}

// WriteTaskTable prints rows as the fixed-width listing used by the shell
// and `task list`.
func WriteTaskTable(w io.Writer, rows []dto.TaskRow) {
	fmt.Fprintf(w, "%-5s%-30s%-10s%-10s%-15s%-10s%-10s\n",
		"ID", "Description", "Status", "Category", "Due Date", "Assigned", "Priority")
	fmt.Fprintln(w, strings.Repeat("-", 90))
	for _, row := range rows {
		fmt.Fprintf(w, "%-5d%-30s%-10s%-10s%-15s%-10s%-10s\n",
			row.ID, truncate(row.Description, maxDescriptionWidth), row.Status,
			row.Category, row.DueDate, row.Assignee, row.Priority)
	}
}

// WriteUserTable prints users one per line.
func WriteUserTable(w io.Writer, users []models.User) {
	fmt.Fprintf(w, "%-5s%-30s%-10s\n", "ID", "Name", "Role")
	fmt.Fprintln(w, strings.Repeat("-", 45))
	for _, user := range users {
		fmt.Fprintf(w, "%-5d%-30s%-10s\n", user.ID, truncate(user.Name, maxDescriptionWidth), user.Role)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
