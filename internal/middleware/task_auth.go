package middleware

import (
	apperrors "github.com/yukikurage/task-tracker/internal/errors"
	"github.com/yukikurage/task-tracker/internal/models"
)

// IsAdmin reports whether userID resolves to an Admin in users.
// An id that resolves to nobody is not an Admin.
func IsAdmin(users []models.User, userID uint64) bool {
	for _, user := range users {
		if user.ID == userID && user.IsAdmin() {
			return true
		}
	}
	return false
}

// CanAccessTask reports whether the acting user may see or modify task:
// Admins see everything, everyone else only what is assigned to them.
func CanAccessTask(users []models.User, actingUserID uint64, task models.Task) bool {
	return IsAdmin(users, actingUserID) || task.AssignedTo == actingUserID
}

// VisibleTasks filters tasks down to those the acting user can access,
// preserving order.
func VisibleTasks(users []models.User, actingUserID uint64, tasks []models.Task) []models.Task {
	admin := IsAdmin(users, actingUserID)
	visible := make([]models.Task, 0, len(tasks))
	for _, task := range tasks {
		if admin || task.AssignedTo == actingUserID {
			visible = append(visible, task)
		}
	}
	return visible
}

// RequireTaskAccess returns a Forbidden error unless the acting user can
// access task.
func RequireTaskAccess(users []models.User, actingUserID uint64, task models.Task) error {
	if !CanAccessTask(users, actingUserID, task) {
		return apperrors.Forbidden("you do not have access to this task")
	}
	return nil
}
