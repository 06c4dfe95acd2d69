package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/yukikurage/task-tracker/internal/dto"
	apperrors "github.com/yukikurage/task-tracker/internal/errors"
	"github.com/yukikurage/task-tracker/internal/export"
	"github.com/yukikurage/task-tracker/internal/logger"
	"github.com/yukikurage/task-tracker/internal/metrics"
	"github.com/yukikurage/task-tracker/internal/middleware"
	"github.com/yukikurage/task-tracker/internal/models"
	"github.com/yukikurage/task-tracker/internal/repository"
	"gorm.io/gorm"
)

var ErrAssigneeNotFound = apperrors.Validation("assigned user not found")

// TaskService owns the task and user collections. Every mutation goes to
// the store first and then reloads the whole collection into the cache.
type TaskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
	audit    *logger.AuditLog
	metrics  *metrics.Recorder
	validate *validator.Validate
	now      func() time.Time

	mu    sync.RWMutex
	tasks []models.Task
	users []models.User
}

// Option configures a TaskService.
type Option func(*TaskService)

// WithClock overrides time.Now for audit timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *TaskService) { s.now = now }
}

// WithMetrics attaches a metrics recorder.
func WithMetrics(r *metrics.Recorder) Option {
	return func(s *TaskService) { s.metrics = r }
}

// NewTaskService creates a new TaskService. Call Init before use.
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository, audit *logger.AuditLog, opts ...Option) *TaskService {
	s := &TaskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
		audit:    audit,
		validate: newValidator(),
		now:      time.Now,
	}
	if s.audit == nil {
		s.audit = logger.NopAudit()
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Description string `validate:"required"`
	Category    models.Category
	DueDate     string `validate:"isodate"`
	AssignedTo  uint64
	Priority    string
}

// UpdateTaskInput represents a partial update; nil fields are left alone
type UpdateTaskInput struct {
	Description *string `validate:"omitnil,min=1"`
	Category    *models.Category
	DueDate     *string `validate:"omitnil,isodate"`
	AssignedTo  *uint64
	Priority    *string
}

// Init loads both collections, seeds the default admin into an empty
// store, and records the startup in the audit log.
func (s *TaskService) Init() error {
	if err := s.Reload(); err != nil {
		return err
	}

	count, err := s.userRepo.Count()
	if err != nil {
		return apperrors.Store("failed to count users", err)
	}
	if count == 0 {
		if _, err := s.AddUser(defaultAdminName, models.RoleAdmin); err != nil {
			return fmt.Errorf("failed to seed default admin: %w", err)
		}
	}

	s.audit.Record(s.now(), "Database initialized")
	return nil
}

// Reload replaces both cached collections with fresh store snapshots.
func (s *TaskService) Reload() error {
	users, err := s.userRepo.List()
	if err != nil {
		return apperrors.Store("failed to load users", err)
	}
	tasks, err := s.taskRepo.List()
	if err != nil {
		return apperrors.Store("failed to load tasks", err)
	}

	s.mu.Lock()
	s.users = users
	s.tasks = tasks
	s.mu.Unlock()
	return nil
}

func (s *TaskService) reloadTasks() error {
	tasks, err := s.taskRepo.List()
	if err != nil {
		return apperrors.Store("failed to load tasks", err)
	}
	s.mu.Lock()
	s.tasks = tasks
	s.mu.Unlock()
	return nil
}

// Tasks returns a copy of the cached task snapshot.
func (s *TaskService) Tasks() []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Task(nil), s.tasks...)
}

// AddTask validates and inserts a task on behalf of actingUserID. The acting
// user is trusted and only recorded in the audit log.
func (s *TaskService) AddTask(input CreateTaskInput, actingUserID uint64) (*models.Task, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, validationError(err)
	}
	if _, ok := s.FindUser(input.AssignedTo); !ok {
		return nil, ErrAssigneeNotFound
	}

	task := &models.Task{
		Description: input.Description,
		Completed:   false,
		Category:    models.ParseCategory(string(input.Category)),
		DueDate:     input.DueDate,
		AssignedTo:  input.AssignedTo,
		Priority:    input.Priority,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, apperrors.Store("failed to create task", err)
	}
	if err := s.reloadTasks(); err != nil {
		return nil, err
	}

	s.audit.Record(s.now(), "Task added: %s by user %d", task.Description, actingUserID)
	s.metrics.TaskOperation("add")
	return task, nil
}

// ViewTasks lists the tasks visible to actingUserID with assignee names
// resolved.
func (s *TaskService) ViewTasks(actingUserID uint64) []dto.TaskRow {
	s.mu.RLock()
	defer s.mu.RUnlock()

	visible := middleware.VisibleTasks(s.users, actingUserID, s.tasks)
	return dto.ToTaskRows(visible, s.users)
}

// GetTask returns one task the acting user can see.
func (s *TaskService) GetTask(taskID, actingUserID uint64) (dto.TaskRow, error) {
	task, err := s.accessibleTask(taskID, actingUserID)
	if err != nil {
		return dto.TaskRow{}, err
	}
	return dto.ToTaskRow(*task, s.Users()), nil
}

// ListTasksInput selects a page of tasks straight from the store
type ListTasksInput struct {
	ActingUserID uint64
	PendingOnly  bool
	DueOn        string
	Page         int
	PageSize     int
}

// ListTasks returns a page of visible tasks. Admins page over every task;
// other users over their own assignments.
func (s *TaskService) ListTasks(input ListTasksInput) (dto.TaskListResponse, error) {
	s.mu.RLock()
	users := append([]models.User(nil), s.users...)
	s.mu.RUnlock()

	filter := repository.TaskFilter{Page: input.Page, PageSize: input.PageSize}
	if !middleware.IsAdmin(users, input.ActingUserID) {
		filter.AssignedTo = &input.ActingUserID
	}
	if input.PendingOnly {
		pending := false
		filter.Completed = &pending
	}
	if input.DueOn != "" {
		filter.DueDate = &input.DueOn
	}

	tasks, total, err := s.taskRepo.ListPage(filter)
	if err != nil {
		return dto.TaskListResponse{}, apperrors.Store("failed to list tasks", err)
	}

	return dto.ToTaskListResponse(dto.ToTaskRows(tasks, users), input.Page, input.PageSize, total), nil
}

// UpdateTask applies a partial update. The acting user must be able to
// see the task.
func (s *TaskService) UpdateTask(taskID uint64, input UpdateTaskInput, actingUserID uint64) (*models.Task, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, validationError(err)
	}

	task, err := s.accessibleTask(taskID, actingUserID)
	if err != nil {
		return nil, err
	}

	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Category != nil {
		task.Category = models.ParseCategory(string(*input.Category))
	}
	if input.DueDate != nil {
		task.DueDate = *input.DueDate
	}
	if input.Priority != nil {
		task.Priority = *input.Priority
	}
	if input.AssignedTo != nil {
		if _, ok := s.FindUser(*input.AssignedTo); !ok {
			return nil, ErrAssigneeNotFound
		}
		task.AssignedTo = *input.AssignedTo
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, apperrors.Store("failed to update task", err)
	}
	if err := s.reloadTasks(); err != nil {
		return nil, err
	}

	s.audit.Record(s.now(), "Task updated: %d by user %d", task.ID, actingUserID)
	s.metrics.TaskOperation("update")
	return task, nil
}

// DeleteTask removes a task the acting user can see.
func (s *TaskService) DeleteTask(taskID, actingUserID uint64) error {
	task, err := s.accessibleTask(taskID, actingUserID)
	if err != nil {
		return err
	}

	if err := s.taskRepo.Delete(task.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return apperrors.Store("failed to delete task", err)
	}
	if err := s.reloadTasks(); err != nil {
		return err
	}

	s.audit.Record(s.now(), "Task deleted: %d by user %d", task.ID, actingUserID)
	s.metrics.TaskOperation("delete")
	return nil
}

// CompleteTask marks a task completed. Completing a completed task is a
// no-op that still succeeds.
func (s *TaskService) CompleteTask(taskID, actingUserID uint64) (*models.Task, error) {
	task, err := s.accessibleTask(taskID, actingUserID)
	if err != nil {
		return nil, err
	}
	if task.Completed {
		return task, nil
	}

	task.Completed = true
	if err := s.taskRepo.Update(task); err != nil {
		return nil, apperrors.Store("failed to complete task", err)
	}
	if err := s.reloadTasks(); err != nil {
		return nil, err
	}

	s.audit.Record(s.now(), "Task completed: %d by user %d", task.ID, actingUserID)
	s.metrics.TaskOperation("complete")
	return task, nil
}

// ExportCalendar writes every pending task to path as iCalendar.
func (s *TaskService) ExportCalendar(exporter *export.CalendarExporter, path string) (int, error) {
	count, err := exporter.WriteFile(path, s.Tasks())
	if err != nil {
		return 0, err
	}

	s.audit.Record(s.now(), "Tasks exported to %s", path)
	s.metrics.CalendarExported()
	return count, nil
}

// accessibleTask loads a fresh copy of the task from the store and checks
// the acting user's access against the cached users.
func (s *TaskService) accessibleTask(taskID, actingUserID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, apperrors.Store("failed to find task", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := middleware.RequireTaskAccess(s.users, actingUserID, *task); err != nil {
		return nil, err
	}
	return task, nil
}
