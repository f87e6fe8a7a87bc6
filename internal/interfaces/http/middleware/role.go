package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ledgerbook/backend/internal/domain/shared"
)

// RequireRole returns a middleware that rejects requests whose JWT role
// is not in the allowed set. Must run after JWTAuthMiddleware.
func RequireRole(roles ...shared.Role) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[string(r)] = struct{}{}
	}

	return func(c *gin.Context) {
		role := GetJWTRole(c)
		if role == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Authentication required",
				},
			})
			return
		}

		if _, ok := allowed[role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "FORBIDDEN",
					"message": "Insufficient role for this operation",
				},
			})
			return
		}

		c.Next()
	}
}

// RequireAdmin restricts the route to admin users
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(shared.RoleAdmin)
}
