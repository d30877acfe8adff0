package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/ademandic/avanox-yudo-musteri-portal-api/domain"
)

// AuthMW bundles the token service and session service for route wiring
type AuthMW struct {
	tokenSvc   domain.TokenService
	sessionSvc domain.SessionService
}

// NewAuthMW creates a new auth middleware wrapper
func NewAuthMW(tokenSvc domain.TokenService, sessionSvc domain.SessionService) *AuthMW {
	return &AuthMW{
		tokenSvc:   tokenSvc,
		sessionSvc: sessionSvc,
	}
}

// WithJWT returns the bearer-token middleware
func (mw *AuthMW) WithJWT() gin.HandlerFunc {
	return AuthMiddleware(mw.tokenSvc)
}

// WithSessionGuard returns the session gate middleware
func (mw *AuthMW) WithSessionGuard() gin.HandlerFunc {
	return SessionGuardMiddleware(mw.sessionSvc)
}
