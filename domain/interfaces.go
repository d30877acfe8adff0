package domain

import (
	"context"
	"time"
)

// Clock supplies the current time. Every wall-clock comparison in the service
// goes through a Clock so tests can simulate expiry without waiting.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// AccountRepository defines durable account data access. Lookups return
// portal accounts only; writes are row-scoped single updates so concurrent
// logins resolve to one total order (last writer wins on the session id).
type AccountRepository interface {
	FindByEmail(ctx context.Context, email string) (*Account, error)
	FindByID(ctx context.Context, id uint) (*Account, error)
	// RecordLogin writes the session id, login time, origin and activity time
	// in one update.
	RecordLogin(ctx context.Context, accountID uint, sessionID, origin string, at time.Time) error
	// TouchActivity bumps last_activity_at; it never moves the value backwards.
	TouchActivity(ctx context.Context, accountID uint, at time.Time) error
	ClearSession(ctx context.Context, accountID uint) error
	UpdatePassword(ctx context.Context, accountID uint, passwordHash string) error
}

// ChallengeStore holds per-account one-time-code state: the pending code with
// its validity window, the attempt counter, the resend throttle and the
// lockout. Attempt increments must be atomic in the backing store.
type ChallengeStore interface {
	// State reports the tagged challenge state for the account.
	State(ctx context.Context, accountID uint) (ChallengeState, error)
	// Put stores a fresh code, resetting attempts and arming the resend
	// throttle. Any previous code is superseded.
	Put(ctx context.Context, accountID uint, code string) error
	// Code returns the pending code, or ok=false when none is active.
	Code(ctx context.Context, accountID uint) (code string, ok bool, err error)
	// IncrementAttempts atomically advances the attempt counter and returns
	// the new value.
	IncrementAttempts(ctx context.Context, accountID uint) (int, error)
	// Clear removes the pending code, attempt counter and resend throttle.
	Clear(ctx context.Context, accountID uint) error
	// Lock places the account under lockout and clears the pending challenge.
	Lock(ctx context.Context, accountID uint) error
	// ResendWait returns how long the resend throttle still holds; zero means
	// a new code may be issued.
	ResendWait(ctx context.Context, accountID uint) (time.Duration, error)
}

// CredentialVerifier checks an identifier/secret pair against the account
// store. Check order is fixed: existence, active flag, lockout, then the
// constant-time secret comparison.
type CredentialVerifier interface {
	Verify(ctx context.Context, email, password string) (*Account, error)
}

// TwoFactorService defines one-time-code operations.
type TwoFactorService interface {
	Generate(ctx context.Context, account *Account) error
	Verify(ctx context.Context, account *Account, code string) error
	Resend(ctx context.Context, account *Account) error
}

// SessionService issues, guards, refreshes and terminates sessions.
type SessionService interface {
	// Issue mints a token with a fresh session id after a complete
	// authentication. The token is returned only if the session fields were
	// durably written.
	Issue(ctx context.Context, account *Account, origin string) (*AuthResult, error)
	// Guard is the per-request gate: idle timeout first, then the
	// single-session check, then a best-effort activity bump. An empty
	// sessionID skips the single-session check (legacy clients).
	Guard(ctx context.Context, accountID uint, sessionID string) (*Account, error)
	// Refresh re-issues a token for the same session id with a renewed TTL.
	Refresh(ctx context.Context, accountID uint, sessionID string) (*AuthResult, error)
	// Logout clears the stored session id only; issued tokens run out their
	// natural TTL.
	Logout(ctx context.Context, accountID uint) error
}

// AuthService defines the authentication business logic.
type AuthService interface {
	Login(ctx context.Context, email, password, origin string) (*LoginResult, error)
	VerifyTwoFactor(ctx context.Context, accountID uint, code, origin string) (*AuthResult, error)
	ResendTwoFactor(ctx context.Context, accountID uint) error
	ChangePassword(ctx context.Context, accountID uint, currentPassword, newPassword string) error
	GetAccount(ctx context.Context, accountID uint) (*Account, error)
}

// PasswordService defines password hashing operations.
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService defines bearer-token operations.
type TokenService interface {
	GenerateAccessToken(accountID, companyID uint, isAdmin bool, sessionID string) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
	AccessTTL() time.Duration
}

// NotificationService delivers one-time codes out of band. Dispatch failures
// must be surfaced to the caller, never swallowed.
type NotificationService interface {
	SendSMS(to, message string) error
	SendEmail(to, subject, body string) error
}
