package services

import (
	"errors"

	"github.com/yukikurage/task-tracker/internal/constants"
	apperrors "github.com/yukikurage/task-tracker/internal/errors"
	"github.com/yukikurage/task-tracker/internal/models"
	"gorm.io/gorm"
)

const defaultAdminName = constants.DefaultAdminName

var (
	ErrTaskNotFound = apperrors.NotFound("task not found")
	ErrUserNotFound = apperrors.NotFound("user not found")
)

// AddUserInput represents input for creating a user
type AddUserInput struct {
	Name string
	Role models.Role `validate:"role"`
}

// AddUser inserts a user. Names may be empty and are not required to be
// unique.
func (s *TaskService) AddUser(name string, role models.Role) (*models.User, error) {
	input := AddUserInput{Name: name, Role: role}
	if err := s.validate.Struct(input); err != nil {
		return nil, validationError(err)
	}

	user := &models.User{Name: input.Name, Role: input.Role}
	if err := s.userRepo.Create(user); err != nil {
		return nil, apperrors.Store("failed to create user", err)
	}

	if err := s.reloadUsers(); err != nil {
		return nil, err
	}

	s.audit.Record(s.now(), "User added: %s", user.Name)
	s.metrics.UserAdded()
	return user, nil
}

// Users returns a copy of the cached user snapshot.
func (s *TaskService) Users() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.User(nil), s.users...)
}

// FindUser looks id up in the cached users.
func (s *TaskService) FindUser(id uint64) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if user.ID == id {
			return user, true
		}
	}
	return models.User{}, false
}

// GetUser looks id up in the cache and falls back to the store, so users
// added by another process since the last reload are found too. A store
// hit refreshes the cached users.
func (s *TaskService) GetUser(id uint64) (models.User, error) {
	if user, ok := s.FindUser(id); ok {
		return user, nil
	}

	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, apperrors.Store("failed to find user", err)
	}
	if err := s.reloadUsers(); err != nil {
		return models.User{}, err
	}
	return *user, nil
}

func (s *TaskService) reloadUsers() error {
	users, err := s.userRepo.List()
	if err != nil {
		return apperrors.Store("failed to load users", err)
	}
	s.mu.Lock()
	s.users = users
	s.mu.Unlock()
	return nil
}
