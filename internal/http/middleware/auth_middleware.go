package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ademandic/avanox-yudo-musteri-portal-api/domain"
)

// AuthMiddleware creates the bearer-token middleware. On success the request
// context carries the authenticated account id and token claims.
func AuthMiddleware(tokenSvc domain.TokenService) gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			unauthenticated(c, "Authorization header required")
			return
		}

		tokenParts := strings.SplitN(authHeader, " ", 2)
		if len(tokenParts) != 2 || !strings.EqualFold(tokenParts[0], "Bearer") {
			unauthenticated(c, "Invalid authorization header format")
			return
		}

		claims, err := tokenSvc.ValidateAccessToken(tokenParts[1])
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrTokenExpired):
				unauthenticated(c, "Token expired")
			default:
				unauthenticated(c, "Invalid token")
			}
			return
		}

		c.Set("account_id", claims.AccountID)
		c.Set("company_id", claims.CompanyID)
		c.Set("is_admin", claims.IsAdmin)
		if claims.SessionID != "" {
			c.Set("token_session_id", claims.SessionID)
		}

		c.Next()
	})
}

func unauthenticated(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error":   "unauthenticated",
		"message": message,
	})
	c.Abort()
}

// AccountID extracts the authenticated account id set by AuthMiddleware.
func AccountID(c *gin.Context) (uint, bool) {
	v, exists := c.Get("account_id")
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
