package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resumeBuilder/internal/auth"
)

const sessionIDKey = "sessionID"

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
}

// SessionAuthMiddleware 校验会话令牌并将 sessionID 注入上下文。
func SessionAuthMiddleware(authService *auth.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c)
			return
		}

		parts := strings.Fields(header)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthorized(c)
			return
		}

		sessionID, err := authService.ValidateToken(parts[1])
		if err != nil {
			LoggerFromContext(c).Debug("reject session token")
			abortUnauthorized(c)
			return
		}

		c.Set(sessionIDKey, sessionID)
		c.Next()
	}
}

// SessionID 返回鉴权中间件写入的会话 ID。
func SessionID(c *gin.Context) (string, bool) {
	id := c.GetString(sessionIDKey)
	return id, id != ""
}
