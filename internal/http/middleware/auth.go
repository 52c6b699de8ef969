package middleware

import (
	"net/http"
	"strings"

	"wallet_backend/internal/service"

	"github.com/gin-gonic/gin"
)

// JWT authenticates requests via a Bearer token and stores user_id and
// is_admin in the gin context.
func JWT() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		userID, admin, err := service.ParseJWT(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set("user_id", userID)
		c.Set("is_admin", admin)
		c.Next()
	}
}

// AdminOnly rejects requests whose token lacks the admin claim. Must run
// after JWT().
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		admin, ok := c.Get("is_admin")
		if !ok || admin != true {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	// websocket clients cannot set headers from the browser
	return c.Query("token")
}
