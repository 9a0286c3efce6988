package middleware

import (
	"github.com/cuatrovientos/retail-api/internal/domain/entity"
	"github.com/cuatrovientos/retail-api/internal/domain/enum"
	"github.com/cuatrovientos/retail-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// SessionSource reports the user currently operating the store
type SessionSource interface {
	CurrentUser() (*entity.User, bool)
}

// SessionMiddleware puts the session user, if any, into the request context
func SessionMiddleware(store SessionSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, ok := store.CurrentUser(); ok {
			c.Set("user", user)
			c.Set("user_id", user.ID)
			c.Set("user_role", user.Role)
		}
		c.Next()
	}
}

// RequireSession aborts with 401 when nobody is logged in
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get("user"); !exists {
			response.Unauthorized(c, "No active session")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRole creates a middleware that requires one of the given roles
func RequireRole(roles ...enum.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		userVal, exists := c.Get("user")
		if !exists {
			response.Unauthorized(c, "No active session")
			c.Abort()
			return
		}

		user, ok := userVal.(*entity.User)
		if !ok || !user.HasRole(roles...) {
			response.Forbidden(c, "Insufficient role privileges")
			c.Abort()
			return
		}

		c.Next()
	}
}
