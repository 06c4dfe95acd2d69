package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(Validation("bad")))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(fmt.Errorf("get: %w", NotFound(""))))
	assert.Equal(t, http.StatusForbidden, HTTPStatus(Forbidden("")))
	assert.Equal(t, http.StatusServiceUnavailable, HTTPStatus(Unavailable("")))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(Store("insert", stderrors.New("locked"))))
}

func TestRespondWithError_HidesUncodedErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	RespondWithError(c, stderrors.New("sql: connection string with password"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var body AppError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, ErrCodeInternalError, body.Code)
	assert.Equal(t, ErrInternal.Message, body.Message)
	assert.NotContains(t, w.Body.String(), "password")
}
