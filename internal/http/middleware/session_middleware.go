package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ademandic/avanox-yudo-musteri-portal-api/domain"
)

// SessionHeader carries the session identifier proving the request comes from
// the currently-authorized device.
const SessionHeader = "X-Session-ID"

// SessionGuardMiddleware creates the per-request session gate: idle timeout
// first, then the single-session check, then a best-effort activity bump.
// Requests without the session header pass the single-session check for
// compatibility with older clients.
func SessionGuardMiddleware(sessionSvc domain.SessionService) gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		accountID, ok := AccountID(c)
		if !ok {
			unauthenticated(c, "Account not resolved from token")
			return
		}

		account, err := sessionSvc.Guard(c.Request.Context(), accountID, c.GetHeader(SessionHeader))
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrSessionTimeout):
				c.JSON(http.StatusUnauthorized, gin.H{
					"success": false,
					"error":   "session_timeout",
					"message": "Your session timed out. Please sign in again.",
				})
			case errors.Is(err, domain.ErrSessionInvalidated):
				c.JSON(http.StatusUnauthorized, gin.H{
					"success": false,
					"error":   "session_invalidated",
					"message": "Signed in from another device. This session has ended.",
				})
			default:
				c.JSON(http.StatusUnauthorized, gin.H{
					"success": false,
					"error":   "unauthenticated",
					"message": "Session could not be verified",
				})
			}
			c.Abort()
			return
		}

		c.Set("account", account)
		c.Next()
	})
}
