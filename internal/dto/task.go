package dto

import (
	"github.com/yukikurage/task-tracker/internal/constants"
	"github.com/yukikurage/task-tracker/internal/models"
)

// UserDTO represents a user in listings
type UserDTO struct {
	ID   uint64      `json:"id"`
	Name string      `json:"name"`
	Role models.Role `json:"role"`
}

// TaskRow is one line of a task listing with the assignee resolved to a name
type TaskRow struct {
	ID          uint64          `json:"id"`
	Description string          `json:"description"`
	Status      string          `json:"status"`
	Completed   bool            `json:"completed"`
	Category    models.Category `json:"category"`
	DueDate     string          `json:"due_date"`
	AssignedTo  uint64          `json:"assigned_to"`
	Assignee    string          `json:"assignee"`
	Priority    string          `json:"priority"`
}

// TaskListResponse represents a paginated list of task rows
type TaskListResponse struct {
	Tasks      []TaskRow `json:"tasks"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	TotalCount int64     `json:"total_count"`
	TotalPages int       `json:"total_pages"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{ID: user.ID, Name: user.Name, Role: user.Role}
}

// AssigneeName resolves id against users, falling back to "Unknown".
func AssigneeName(users []models.User, id uint64) string {
	for _, user := range users {
		if user.ID == id {
			return user.Name
		}
	}
	return constants.UnknownAssignee
}

// ToTaskRow converts a Task model to a TaskRow
func ToTaskRow(task models.Task, users []models.User) TaskRow {
	return TaskRow{
		ID:          task.ID,
		Description: task.Description,
		Status:      task.Status(),
		Completed:   task.Completed,
		Category:    task.Category,
		DueDate:     task.DueDate,
		AssignedTo:  task.AssignedTo,
		Assignee:    AssigneeName(users, task.AssignedTo),
		Priority:    task.Priority,
	}
}

// ToTaskRows converts tasks in order
func ToTaskRows(tasks []models.Task, users []models.User) []TaskRow {
	rows := make([]TaskRow, len(tasks))
	for i, task := range tasks {
		rows[i] = ToTaskRow(task, users)
	}
	return rows
}

// ToTaskListResponse wraps a page of rows with paging metadata
func ToTaskListResponse(rows []TaskRow, page, pageSize int, totalCount int64) TaskListResponse {
	totalPages := 0
	if pageSize > 0 {
		totalPages = int(totalCount) / pageSize
		if int(totalCount)%pageSize > 0 {
			totalPages++
		}
	}

	return TaskListResponse{
		Tasks:      rows,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
		TotalPages: totalPages,
	}
}
