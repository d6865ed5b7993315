package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/urbanfix/backend/internal/auth"
)

const claimsContextKey = "authClaims"

// Auth verifies the bearer token and attaches the caller's claims to the
// request context.
func Auth(manager *auth.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenString := strings.TrimPrefix(header, "Bearer ")
		if header == "" || tokenString == header {
			abortUnauthorized(c, "Missing bearer token")
			return
		}

		claims, err := manager.Verify(tokenString)
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}
		c.Set(claimsContextKey, claims)
		c.Next()
	}
}

func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := ClaimsFrom(c)
		if claims == nil || claims.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": gin.H{
					"code":    "FORBIDDEN",
					"message": "Insufficient role",
				},
			})
			return
		}
		c.Next()
	}
}

func ClaimsFrom(c *gin.Context) *auth.Claims {
	v, ok := c.Get(claimsContextKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*auth.Claims)
	return claims
}

// SetClaims exists for handler tests that bypass token verification.
func SetClaims(c *gin.Context, claims *auth.Claims) {
	c.Set(claimsContextKey, claims)
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": gin.H{
			"code":    "UNAUTHORIZED",
			"message": message,
		},
	})
}
