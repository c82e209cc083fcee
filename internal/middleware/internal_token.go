package middleware

import (
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

// InternalTokenAuth protects the change-feed endpoints using a static
// bearer token shared with the document-store forwarder.
func InternalTokenAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !changeFeedEnabled() {
			logAuthFailure(c, http.StatusForbidden, "disabled")
			writeInternalError(c, http.StatusForbidden, "AUTH_INVALID", "Change feed disabled")
			c.Abort()
			return
		}

		if !ipAllowed(c) {
			logAuthFailure(c, http.StatusForbidden, "ip_not_allowed")
			writeInternalError(c, http.StatusForbidden, "AUTH_INVALID", "IP not allowed")
			c.Abort()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logAuthFailure(c, http.StatusUnauthorized, "missing_auth")
			writeInternalError(c, http.StatusUnauthorized, "AUTH_MISSING", "Authorization header is required")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			logAuthFailure(c, http.StatusUnauthorized, "invalid_auth_format")
			writeInternalError(c, http.StatusUnauthorized, "AUTH_INVALID", "Authorization header must be 'Bearer <token>'")
			c.Abort()
			return
		}

		expected := os.Getenv("INTERNAL_TOKEN")
		if expected == "" {
			logAuthFailure(c, http.StatusInternalServerError, "token_not_configured")
			writeInternalError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal token is not configured")
			c.Abort()
			return
		}

		if parts[1] != expected {
			logAuthFailure(c, http.StatusForbidden, "invalid_token")
			writeInternalError(c, http.StatusForbidden, "AUTH_INVALID", "Invalid internal token")
			c.Abort()
			return
		}

		c.Next()
	}
}

func writeInternalError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func changeFeedEnabled() bool {
	value := strings.TrimSpace(strings.ToLower(os.Getenv("CHANGE_FEED_ENABLED")))
	if value == "" {
		return true
	}
	return value == "true" || value == "1"
}

func ipAllowed(c *gin.Context) bool {
	allowed := strings.TrimSpace(os.Getenv("CHANGE_FEED_ALLOWED_IPS"))
	if allowed == "" {
		return true
	}
	clientIP := c.ClientIP()
	for _, ip := range strings.Split(allowed, ",") {
		if strings.TrimSpace(ip) == clientIP {
			return true
		}
	}
	return false
}

func logAuthFailure(c *gin.Context, status int, reason string) {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = c.GetHeader("X-Request-Id")
	}
	log.Printf("change_feed_auth status=%d request_id=%s reason=%s", status, requestID, reason)
}
