package repository

import (
	"github.com/yukikurage/task-tracker/internal/models"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create inserts a task and sets its store-assigned ID
	Create(task *models.Task) error

	// FindByID finds a task by ID
	FindByID(id uint64) (*models.Task, error)

	// List returns every task in insertion order
	List() ([]models.Task, error)

	// ListPage retrieves tasks with filtering and pagination
	ListPage(filter TaskFilter) ([]models.Task, int64, error)

	// Update saves all fields of an existing task
	Update(task *models.Task) error

	// Delete removes a task
	Delete(id uint64) error
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	AssignedTo *uint64
	Completed  *bool
	DueDate    *string
	Page       int
	PageSize   int
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create inserts a user and sets its store-assigned ID
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// List returns every user in insertion order
	List() ([]models.User, error)

	// Count returns the number of stored users
	Count() (int64, error)
}
