package middleware

import (
	"net/http"
	"strings"

	jwtsvc "trailhub/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
)

// JWTAuth validates the bearer token and stores the caller identity in
// the context under "user_id" and "role".
func JWTAuth(jwt *jwtsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" {
			abortUnauthorized(c, "Missing Authorization header")
			return
		}

		if !strings.HasPrefix(h, "Bearer ") {
			abortUnauthorized(c, "Invalid Authorization header")
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		if tokenStr == "" {
			abortUnauthorized(c, "Empty token")
			return
		}

		claims, err := jwt.ValidateToken(tokenStr)
		if err != nil {
			abortUnauthorized(c, "Invalid token")
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "UNAUTHORIZED",
			"message": message,
		},
	})
}
