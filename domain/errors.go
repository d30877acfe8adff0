package domain

import (
	"errors"
	"fmt"
	"time"
)

// Authentication errors
var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account is inactive")
)

// Two-factor errors
var (
	ErrChallengeExpired    = errors.New("verification code has expired")
	ErrMaxAttemptsExceeded = errors.New("maximum verification attempts exceeded")
	ErrDeliveryFailed      = errors.New("verification code could not be delivered")
)

// Token errors
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")
)

// Session errors
var (
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrSessionTimeout     = errors.New("session timed out due to inactivity")
	ErrSessionInvalidated = errors.New("session invalidated by a newer login")
)

// Password change errors
var (
	ErrCurrentPasswordInvalid = errors.New("current password is incorrect")
	ErrSamePassword           = errors.New("new password must differ from the current one")
)

// LockedError reports that the account is under attempt lockout.
type LockedError struct {
	Remaining time.Duration
}

func (e *LockedError) Error() string {
	return fmt.Sprintf("account is locked, retry in %d minute(s)", e.RemainingMinutes())
}

// RemainingMinutes rounds the remaining lockout up so a locked account is
// never reported as lockable again "in 0 minutes".
func (e *LockedError) RemainingMinutes() int {
	m := int((e.Remaining + time.Minute - 1) / time.Minute)
	if m < 0 {
		return 0
	}
	return m
}

// InvalidCodeError reports a wrong code together with the attempts left
// before lockout.
type InvalidCodeError struct {
	Remaining int
}

func (e *InvalidCodeError) Error() string {
	return fmt.Sprintf("invalid verification code, %d attempt(s) remaining", e.Remaining)
}

// TooSoonError reports a resend request inside the cooldown window.
type TooSoonError struct {
	RetryAfter time.Duration
}

func (e *TooSoonError) Error() string {
	return fmt.Sprintf("please wait %d second(s) before requesting a new code", int(e.RetryAfter.Seconds()))
}
