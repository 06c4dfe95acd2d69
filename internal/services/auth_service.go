package services

import (
	"errors"

	apperrors "github.com/yukikurage/task-tracker/internal/errors"
	"github.com/yukikurage/task-tracker/internal/middleware"
)

// Authenticator resolves the identity a session acts as. The tracker ships
// without authentication; implementations decide which ids are accepted.
type Authenticator = middleware.Authenticator

// TrustedAuthenticator accepts any id as given. The shell and the task
// commands use it, so an unknown acting user simply sees no tasks.
type TrustedAuthenticator struct{}

func (TrustedAuthenticator) Authenticate(userID uint64) (uint64, error) {
	return userID, nil
}

// RegisteredAuthenticator accepts only ids of known users. The HTTP feed
// uses it. Store failures pass through unchanged.
type RegisteredAuthenticator struct {
	Service *TaskService
}

func (a RegisteredAuthenticator) Authenticate(userID uint64) (uint64, error) {
	if _, err := a.Service.GetUser(userID); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return 0, apperrors.Forbidden("unknown user")
		}
		return 0, err
	}
	return userID, nil
}

var (
	_ Authenticator = TrustedAuthenticator{}
	_ Authenticator = RegisteredAuthenticator{}
)
