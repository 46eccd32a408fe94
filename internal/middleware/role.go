package middleware

import (
	"net/http" // HTTP status codes

	"referendum_system/internal/store" // User persistence

	"github.com/gin-gonic/gin" // Gin web framework
)

// RequireRoleMiddleware checks the user's role from the database on each
// request, so a role change takes effect without waiting for token expiry.
// Runs after JWTAuthMiddleware.
func RequireRoleMiddleware(users store.UserStore, roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		user, err := users.GetByID(userID.(uint)) // Fetch user from database
		if err != nil {
			// Token subject no longer exists or lookup failed
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient role"})
			return
		}
		// Check if user role is among the allowed roles
		if !allowed[user.Role] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient role"})
			return
		}
		c.Set("userRole", user.Role) // Store role for downstream handlers
		c.Next()                     // Proceed to the next handler
	}
}
