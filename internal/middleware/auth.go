package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"notifyhub_backend/internal/logger"
	"notifyhub_backend/pkg/apperrors"
)

// ServiceAuthMiddleware verifies the HS256 service token that sibling
// services (mail, tasks, gateway) attach to mutating calls. End-user
// authentication happens upstream; this only proves the caller is inside
// the mesh.
func ServiceAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			abortUnauthorized(c, "Missing bearer token")
			return
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			logger.CtxWarn(c.Request.Context(), "Service token rejected",
				"path", c.Request.URL.Path, "ip", c.ClientIP())
			abortUnauthorized(c, "Invalid or expired service token")
			return
		}

		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			if svc, ok := claims["svc"].(string); ok {
				c.Set("callerService", svc)
			}
		}

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, apperrors.ErrorResponse{
		Error: apperrors.NewUnauthorizedError(message),
	})
}
