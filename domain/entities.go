package domain

import "time"

// Account represents a portal identity. Accounts are created and deleted by
// identity management; this service only mutates the challenge and session
// fields through the operations below.
type Account struct {
	ID               uint
	Email            string
	Phone            string
	PasswordHash     string
	FirstName        string
	Surname          string
	CompanyID        uint
	IsActive         bool
	IsPortalUser     bool
	IsCompanyAdmin   bool
	SkipTwoFactor    bool
	CurrentSessionID string
	LastLoginAt      *time.Time
	LastLoginIP      string
	LastActivityAt   *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ChallengeKind enumerates the states of an account's two-factor challenge.
type ChallengeKind int

const (
	// ChallengeNone means no code is pending and the account is not locked.
	ChallengeNone ChallengeKind = iota
	// ChallengePending means a code has been issued and not yet consumed.
	ChallengePending
	// ChallengeLocked means attempts were exhausted; no code is pending.
	ChallengeLocked
)

// ChallengeState is the tagged per-account challenge state. Only the fields of
// the active kind are meaningful: IssuedAt/ExpiresAt while pending, LockedFor
// while locked.
type ChallengeState struct {
	Kind      ChallengeKind
	IssuedAt  time.Time
	ExpiresAt time.Time
	LockedFor time.Duration
}

// AuthResult represents a completed authentication: a bearer token bound to a
// fresh session identifier.
type AuthResult struct {
	Account     *Account
	AccessToken string
	SessionID   string
	ExpiresIn   int64
}

// LoginResult is the outcome of the first login step. Either a two-factor code
// is pending (AccountID and EmailMasked set) or the account carries the trusted
// bypass flag and Auth holds the full result.
type LoginResult struct {
	RequiresTwoFactor bool
	AccountID         uint
	EmailMasked       string
	Auth              *AuthResult
}

// TokenClaims represents the claims carried by an access token.
type TokenClaims struct {
	AccountID uint   `json:"account_id"`
	CompanyID uint   `json:"company_id"`
	IsAdmin   bool   `json:"is_admin"`
	SessionID string `json:"session_id,omitempty"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}
