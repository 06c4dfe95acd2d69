package handlers

import (
	"path/filepath"

	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/task-tracker/internal/database"
	"github.com/yukikurage/task-tracker/internal/models"
	"github.com/yukikurage/task-tracker/internal/repository"
	"github.com/yukikurage/task-tracker/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// serviceSuite gives handler tests an initialized TaskService over a
// throwaway SQLite file, with the default admin (ID 1) seeded.
type serviceSuite struct {
	suite.Suite
	db      *gorm.DB
	service *services.TaskService
	admin   models.User
}

func (suite *serviceSuite) SetupTest() {
	var err error
	suite.db, err = gorm.Open(sqlite.Open(filepath.Join(suite.T().TempDir(), "tasks.db")), &gorm.Config{})
	suite.Require().NoError(err)
	suite.Require().NoError(database.Migrate(suite.db))

	suite.service = services.NewTaskService(
		repository.NewTaskRepository(suite.db),
		repository.NewUserRepository(suite.db),
		nil,
	)
	suite.Require().NoError(suite.service.Init())
	suite.admin = suite.service.Users()[0]
}

func (suite *serviceSuite) TearDownTest() {
	suite.Require().NoError(database.Close(suite.db))
}

func (suite *serviceSuite) createUser(name string, role models.Role) models.User {
	user, err := suite.service.AddUser(name, role)
	suite.Require().NoError(err)
	return *user
}

func (suite *serviceSuite) createTask(desc, due string, assignee uint64) models.Task {
	task, err := suite.service.AddTask(services.CreateTaskInput{
		Description: desc,
		Category:    models.CategoryWork,
		DueDate:     due,
		AssignedTo:  assignee,
		Priority:    "High",
	}, suite.admin.ID)
	suite.Require().NoError(err)
	return *task
}
