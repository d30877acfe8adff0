package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ademandic/avanox-yudo-musteri-portal-api/domain"
	"github.com/ademandic/avanox-yudo-musteri-portal-api/internal/http/middleware"
)

// AuthHandlers handles authentication HTTP requests
type AuthHandlers struct {
	authSvc    domain.AuthService
	sessionSvc domain.SessionService
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authSvc domain.AuthService, sessionSvc domain.SessionService) *AuthHandlers {
	return &AuthHandlers{
		authSvc:    authSvc,
		sessionSvc: sessionSvc,
	}
}

// LoginRequest represents the first login step
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// VerifyTwoFactorRequest represents code verification
type VerifyTwoFactorRequest struct {
	UserID uint   `json:"user_id" binding:"required"`
	Code   string `json:"code" binding:"required"`
}

// ResendTwoFactorRequest represents a code resend request
type ResendTwoFactorRequest struct {
	UserID uint `json:"user_id" binding:"required"`
}

// ChangePasswordRequest represents an authenticated password change
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// Login handles the first authentication step
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), req.Email, req.Password, c.ClientIP())
	if err != nil {
		writeAuthError(c, err)
		return
	}

	if result.RequiresTwoFactor {
		c.JSON(http.StatusOK, gin.H{
			"success":      true,
			"requires_2fa": true,
			"message":      "A verification code has been sent to your email address.",
			"user_id":      result.AccountID,
			"email_masked": result.EmailMasked,
		})
		return
	}

	writeTokenResponse(c, result.Auth)
}

// VerifyTwoFactor handles the second authentication step
func (h *AuthHandlers) VerifyTwoFactor(c *gin.Context) {
	var req VerifyTwoFactorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	result, err := h.authSvc.VerifyTwoFactor(c.Request.Context(), req.UserID, req.Code, c.ClientIP())
	if err != nil {
		writeAuthError(c, err)
		return
	}

	writeTokenResponse(c, result)
}

// ResendTwoFactor handles cooldown-guarded code re-issue
func (h *AuthHandlers) ResendTwoFactor(c *gin.Context) {
	var req ResendTwoFactorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.authSvc.ResendTwoFactor(c.Request.Context(), req.UserID); err != nil {
		writeAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "A new verification code has been sent to your email address.",
	})
}

// Refresh handles token renewal for the current session (requires a valid token)
func (h *AuthHandlers) Refresh(c *gin.Context) {
	accountID, ok := middleware.AccountID(c)
	if !ok {
		writeAuthError(c, domain.ErrUnauthenticated)
		return
	}

	result, err := h.sessionSvc.Refresh(c.Request.Context(), accountID, c.GetHeader(middleware.SessionHeader))
	if err != nil {
		writeAuthError(c, err)
		return
	}

	writeTokenResponse(c, result)
}

// Logout handles session termination (requires authentication)
func (h *AuthHandlers) Logout(c *gin.Context) {
	accountID, ok := middleware.AccountID(c)
	if !ok {
		writeAuthError(c, domain.ErrUnauthenticated)
		return
	}

	if err := h.sessionSvc.Logout(c.Request.Context(), accountID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "logout_failed",
			"message": "Logout failed",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Signed out successfully.",
	})
}

// Me handles the current account profile (requires authentication)
func (h *AuthHandlers) Me(c *gin.Context) {
	accountID, ok := middleware.AccountID(c)
	if !ok {
		writeAuthError(c, domain.ErrUnauthenticated)
		return
	}

	account, err := h.authSvc.GetAccount(c.Request.Context(), accountID)
	if err != nil {
		writeAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    accountPayload(account),
	})
}

// ChangePassword handles an authenticated password change
func (h *AuthHandlers) ChangePassword(c *gin.Context) {
	accountID, ok := middleware.AccountID(c)
	if !ok {
		writeAuthError(c, domain.ErrUnauthenticated)
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.authSvc.ChangePassword(c.Request.Context(), accountID, req.CurrentPassword, req.NewPassword); err != nil {
		writeAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Your password has been changed.",
	})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error":   "validation",
		"message": err.Error(),
	})
}

func writeTokenResponse(c *gin.Context, result *domain.AuthResult) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"access_token": result.AccessToken,
			"token_type":   "bearer",
			"expires_in":   result.ExpiresIn,
			"session_id":   result.SessionID,
			"user":         accountPayload(result.Account),
		},
	})
}

func accountPayload(account *domain.Account) gin.H {
	return gin.H{
		"id":               account.ID,
		"email":            account.Email,
		"first_name":       account.FirstName,
		"surname":          account.Surname,
		"company_id":       account.CompanyID,
		"is_company_admin": account.IsCompanyAdmin,
		"last_login_at":    account.LastLoginAt,
	}
}

// writeAuthError performs the pure tag-to-status mapping for every outcome the
// auth services can report.
func writeAuthError(c *gin.Context, err error) {
	var lockErr *domain.LockedError
	var codeErr *domain.InvalidCodeError
	var tooSoon *domain.TooSoonError

	switch {
	case errors.As(err, &lockErr):
		c.JSON(http.StatusLocked, gin.H{
			"success":           false,
			"error":             "locked",
			"message":           lockErr.Error(),
			"remaining_minutes": lockErr.RemainingMinutes(),
		})
	case errors.As(err, &codeErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success":   false,
			"error":     "invalid_code",
			"message":   codeErr.Error(),
			"remaining": codeErr.Remaining,
		})
	case errors.As(err, &tooSoon):
		c.JSON(http.StatusTooManyRequests, gin.H{
			"success":     false,
			"error":       "too_soon",
			"message":     tooSoon.Error(),
			"retry_after": int(tooSoon.RetryAfter.Seconds()),
		})
	case errors.Is(err, domain.ErrMaxAttemptsExceeded):
		c.JSON(http.StatusLocked, gin.H{
			"success": false,
			"error":   "max_attempts",
			"message": "Too many failed attempts. Your account is temporarily locked.",
		})
	case errors.Is(err, domain.ErrChallengeExpired):
		c.JSON(http.StatusGone, gin.H{
			"success": false,
			"error":   "expired",
			"message": "The verification code has expired. Please request a new one.",
		})
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   "invalid_credentials",
			"message": "Invalid credentials.",
		})
	case errors.Is(err, domain.ErrAccountInactive):
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error":   "inactive",
			"message": "Your account is inactive. Please contact your administrator.",
		})
	case errors.Is(err, domain.ErrAccountNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   "user_not_found",
			"message": "User not found.",
		})
	case errors.Is(err, domain.ErrDeliveryFailed):
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"error":   "delivery_failed",
			"message": "The verification code could not be sent. Please try again later.",
		})
	case errors.Is(err, domain.ErrSessionInvalidated):
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   "session_invalidated",
			"message": "Signed in from another device. This session has ended.",
		})
	case errors.Is(err, domain.ErrSessionTimeout):
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   "session_timeout",
			"message": "Your session timed out. Please sign in again.",
		})
	case errors.Is(err, domain.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   "unauthenticated",
			"message": "Session is not valid.",
		})
	case errors.Is(err, domain.ErrCurrentPasswordInvalid):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"error":   "invalid_current_password",
			"message": "The current password is incorrect.",
		})
	case errors.Is(err, domain.ErrSamePassword):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"error":   "same_password",
			"message": "The new password must differ from the current one.",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "internal_error",
			"message": "Something went wrong. Please try again.",
		})
	}
}
