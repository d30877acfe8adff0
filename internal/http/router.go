package httpx

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/ademandic/avanox-yudo-musteri-portal-api/internal/http/handlers"
	"github.com/ademandic/avanox-yudo-musteri-portal-api/internal/http/middleware"
)

// BuildRouter wires the authentication endpoints. The public group is rate
// limited per client; /auth/refresh needs only a valid bearer token since an
// idle-timed-out session must still be able to learn why it was rejected;
// everything else behind the token also passes the session gate.
func BuildRouter(ah *handlers.AuthHandlers, mw *middleware.AuthMW, rdb *redis.Client, ratePerMin int) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	public := r.Group("/auth").Use(middleware.RateLimitMiddleware(rdb, ratePerMin))
	public.POST("/login", ah.Login)
	public.POST("/verify-2fa", ah.VerifyTwoFactor)
	public.POST("/resend-2fa", ah.ResendTwoFactor)

	tokenOnly := r.Group("/auth").Use(mw.WithJWT())
	tokenOnly.POST("/refresh", ah.Refresh)

	guarded := r.Group("/auth").Use(mw.WithJWT(), mw.WithSessionGuard())
	guarded.GET("/me", ah.Me)
	guarded.POST("/logout", ah.Logout)
	guarded.POST("/change-password", ah.ChangePassword)

	return r
}
