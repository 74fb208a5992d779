package middlewares

import (
	"net/http"

	"github.com/geocoder89/supportdesk/internal/domain/user"
	"github.com/gin-gonic/gin"
)

// RequireRole is a second, independent gate: it runs only after RequireAuth
// has populated the context and reads the role from the verified claims,
// never from the request body.
func (m *AuthMiddleware) RequireRole(required user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := RoleFromContext(c)

		if !ok {
			m.count("missing_token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{
					"code":    "missing_token",
					"message": "Missing identity context",
				},
			})
			return
		}
		if role != required {
			m.count("forbidden")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": gin.H{
					"code":    "forbidden",
					"message": "Admin resource! Access denied",
				},
			})
			return
		}
		c.Next()
	}
}
