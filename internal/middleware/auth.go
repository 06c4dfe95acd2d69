package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-tracker/internal/constants"
	apperrors "github.com/yukikurage/task-tracker/internal/errors"
)

// Authenticator resolves the identity a request acts as.
type Authenticator interface {
	Authenticate(userID uint64) (uint64, error)
}

// RequireActingUser resolves the acting user from the user_id query
// parameter, falling back to defaultUserID, and stores it in the context.
func RequireActingUser(auth Authenticator, defaultUserID uint64) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := defaultUserID
		if raw := c.Query(constants.ContextKeyUserID); raw != "" {
			parsed, err := strconv.ParseUint(raw, 10, 64)
			if err != nil {
				apperrors.BadRequest(c, "Invalid user_id")
				c.Abort()
				return
			}
			userID = parsed
		}

		userID, err := auth.Authenticate(userID)
		if err != nil {
			apperrors.RespondWithError(c, err)
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}
}

// GetUserID retrieves the acting user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}
	id, ok := userID.(uint64)
	return id, ok
}
