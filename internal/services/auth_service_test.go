package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	apperrors "github.com/yukikurage/task-tracker/internal/errors"
	"github.com/yukikurage/task-tracker/internal/models"
	"github.com/yukikurage/task-tracker/internal/repository"
)

func TestTrustedAuthenticator(t *testing.T) {
	id, err := TrustedAuthenticator{}.Authenticate(42)
	assert.NoError(t, err)
	assert.Equal(t, uint64(42), id)
}

func (suite *TaskServiceTestSuite) TestRegisteredAuthenticator() {
	auth := RegisteredAuthenticator{Service: suite.service}

	id, err := auth.Authenticate(suite.admin.ID)
	suite.NoError(err)
	suite.Equal(suite.admin.ID, id)

	_, err = auth.Authenticate(999)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.EqualError(err, "unknown user")

	// A user created by another process is accepted without a restart.
	other := &models.User{Name: "Erin", Role: models.RoleMember}
	suite.Require().NoError(repository.NewUserRepository(suite.db).Create(other))
	id, err = auth.Authenticate(other.ID)
	suite.NoError(err)
	suite.Equal(other.ID, id)
}
