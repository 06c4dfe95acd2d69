package services

import (
	"bytes"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "github.com/yukikurage/task-tracker/internal/errors"
	"github.com/yukikurage/task-tracker/internal/logger"
	"github.com/yukikurage/task-tracker/internal/models"
	"github.com/yukikurage/task-tracker/internal/repository"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// newMockedService builds a TaskService over sqlmock with a primed cache, so
// every store call a test triggers must be expected explicitly.
func newMockedService(t *testing.T) (*TaskService, sqlmock.Sqlmock, *bytes.Buffer) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	audit := &bytes.Buffer{}
	svc := NewTaskService(
		repository.NewTaskRepository(db),
		repository.NewUserRepository(db),
		logger.NewAudit(zapcore.AddSync(audit)),
	)
	svc.users = []models.User{{ID: 1, Name: "Admin User", Role: models.RoleAdmin}}
	svc.tasks = []models.Task{{
		ID:          1,
		Description: "existing",
		Category:    models.CategoryWork,
		DueDate:     "2024-06-01",
		AssignedTo:  1,
		Priority:    "Low",
	}}
	return svc, mock, audit
}

func TestAddTask_StoreErrorLeavesCache(t *testing.T) {
	svc, mock, audit := newMockedService(t)
	before := svc.Tasks()
	mock.ExpectExec("INSERT INTO `tasks`").WillReturnError(errors.New("disk full"))

	task, err := svc.AddTask(CreateTaskInput{
		Description: "new",
		Category:    models.CategoryWork,
		DueDate:     "2024-06-02",
		AssignedTo:  1,
	}, 1)

	assert.Nil(t, task)
	assert.True(t, apperrors.IsStore(err))
	assert.EqualError(t, err, "failed to create task: disk full")
	assert.Equal(t, before, svc.Tasks())
	assert.Empty(t, audit.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddUser_StoreErrorLeavesCache(t *testing.T) {
	svc, mock, _ := newMockedService(t)
	mock.ExpectExec("INSERT INTO `users`").WillReturnError(errors.New("database is locked"))

	_, err := svc.AddUser("Bob", models.RoleMember)

	assert.True(t, apperrors.IsStore(err))
	assert.Len(t, svc.Users(), 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReload_StoreErrorLeavesCache(t *testing.T) {
	svc, mock, _ := newMockedService(t)
	users, tasks := svc.Users(), svc.Tasks()
	mock.ExpectQuery("SELECT (.+) FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "role"}).AddRow(1, "Admin User", "Admin"))
	mock.ExpectQuery("SELECT (.+) FROM `tasks`").WillReturnError(errors.New("connection refused"))

	err := svc.Reload()

	assert.True(t, apperrors.IsStore(err))
	assert.EqualError(t, err, "failed to load tasks: connection refused")
	assert.Equal(t, users, svc.Users())
	assert.Equal(t, tasks, svc.Tasks())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisteredAuthenticator_StoreErrorIsNotForbidden(t *testing.T) {
	svc, mock, _ := newMockedService(t)
	mock.ExpectQuery("SELECT (.+) FROM `users`").WillReturnError(errors.New("connection refused"))

	_, err := RegisteredAuthenticator{Service: svc}.Authenticate(7)

	assert.True(t, apperrors.IsStore(err))
	assert.NotErrorIs(t, err, apperrors.ErrForbidden)
	assert.NoError(t, mock.ExpectationsWereMet())
}
