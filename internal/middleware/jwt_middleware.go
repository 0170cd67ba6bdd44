package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/phonevilla/store_api/internal/utils"
)

// JWTMiddleware guards the admin surface: every admin route requires the
// session token issued by a successful PIN verification.
type JWTMiddleware struct {
	secret string
}

// NewJWTMiddleware constructs a JWTMiddleware with the signing secret.
func NewJWTMiddleware(secret string) *JWTMiddleware {
	return &JWTMiddleware{secret: secret}
}

// Handle returns a Gin middleware function that enforces the admin token.
func (m *JWTMiddleware) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.Error(c, 401, "UNAUTHORIZED", "Missing authorization header")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.Error(c, 401, "UNAUTHORIZED", "Invalid authorization header")
			c.Abort()
			return
		}

		claims, err := utils.ValidateAdminJWT(parts[1], m.secret)
		if err != nil {
			utils.Error(c, 401, "INVALID_TOKEN", "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("role", claims.Role)
		c.Next()
	}
}
