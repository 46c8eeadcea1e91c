package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/educore-id/educore-api/internal/models"
	appErrors "github.com/educore-id/educore-api/pkg/errors"
	"github.com/educore-id/educore-api/pkg/response"
)

// RequireRole enforces role-based access on routes behind Auth.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	allowed := make(map[models.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		value, exists := c.Get(ContextIdentityKey)
		if !exists {
			response.Error(c, appErrors.ErrUnauthenticated)
			c.Abort()
			return
		}
		identity := value.(*models.Identity)

		if _, ok := allowed[identity.Role]; !ok {
			response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "insufficient role"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireTeacher restricts a route to teacher accounts.
func RequireTeacher() gin.HandlerFunc {
	return RequireRole(models.RoleTeacher)
}

// RequireStudent restricts a route to student accounts.
func RequireStudent() gin.HandlerFunc {
	return RequireRole(models.RoleStudent)
}
