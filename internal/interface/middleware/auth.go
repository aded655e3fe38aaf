package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/geoexplorer/geoexplorer-api/pkg/helpers"
)

// CtxUserIDKey is the Gin context key carrying the authenticated user id.
const CtxUserIDKey = "userID"

const (
	msgNoToken      = "No token provided, authorization denied"
	msgInvalidToken = "Invalid token"
)

// Auth extracts a bearer token from the Authorization header, verifies it,
// and injects the resolved user id into the request context. Verification
// failures are logged for observability only; clients see a fixed message.
func Auth(jwt *helpers.JWTManager, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if header == "" || !strings.HasPrefix(header, "Bearer ") || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": msgNoToken})
			return
		}
		claims, err := jwt.ParseToken(token)
		if err != nil {
			if logger != nil {
				logger.WithError(err).WithField("path", c.FullPath()).Debug("token verification failed")
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": msgInvalidToken})
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Next()
	}
}
