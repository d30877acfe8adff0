package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/ademandic/avanox-yudo-musteri-portal-api/domain"
)

// SessionConfig holds the session lifecycle tunables.
type SessionConfig struct {
	IdleTimeout time.Duration
}

// SessionServiceImpl implements domain.SessionService. At most one session
// identifier is current per account; a newer login supersedes the previous
// one without ceremony. Logout clears the stored identifier only: a token
// used by a client that never sends the session header remains valid until
// its natural TTL expiry, a deliberate compatibility trade-off.
type SessionServiceImpl struct {
	accountRepo domain.AccountRepository
	tokenSvc    domain.TokenService
	clock       domain.Clock
	config      SessionConfig
}

// NewSessionService creates a new session service
func NewSessionService(
	accountRepo domain.AccountRepository,
	tokenSvc domain.TokenService,
	clock domain.Clock,
	config SessionConfig,
) domain.SessionService {
	return &SessionServiceImpl{
		accountRepo: accountRepo,
		tokenSvc:    tokenSvc,
		clock:       clock,
		config:      config,
	}
}

// Issue implements domain.SessionService. The session fields land in one
// durable update before the token is handed out; if that write fails the
// token is discarded (fail closed).
func (s *SessionServiceImpl) Issue(ctx context.Context, account *domain.Account, origin string) (*domain.AuthResult, error) {
	sessionID := uuid.NewString()

	accessToken, err := s.tokenSvc.GenerateAccessToken(account.ID, account.CompanyID, account.IsCompanyAdmin, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	now := s.clock.Now()
	if err := s.accountRepo.RecordLogin(ctx, account.ID, sessionID, origin, now); err != nil {
		return nil, fmt.Errorf("failed to record login: %w", err)
	}

	account.CurrentSessionID = sessionID
	account.LastLoginAt = &now
	account.LastLoginIP = origin
	account.LastActivityAt = &now

	return &domain.AuthResult{
		Account:     account,
		AccessToken: accessToken,
		SessionID:   sessionID,
		ExpiresIn:   int64(s.tokenSvc.AccessTTL().Seconds()),
	}, nil
}

// Guard implements domain.SessionService. Timeout is evaluated before the
// single-session check so a long-idle caller is told to re-authenticate
// rather than misleadingly told another device logged in. An empty sessionID
// skips the single-session check: older clients never send the header.
func (s *SessionServiceImpl) Guard(ctx context.Context, accountID uint, sessionID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, err
	}

	now := s.clock.Now()

	if account.LastActivityAt != nil && now.Sub(*account.LastActivityAt) >= s.config.IdleTimeout {
		if err := s.accountRepo.ClearSession(ctx, accountID); err != nil {
			log.Printf("SESSION_CLEAR_FAILED: account_id=%d error=%v", accountID, err)
		}
		log.Printf("SESSION_TIMEOUT: account_id=%d last_activity=%s timestamp=%s",
			accountID, account.LastActivityAt.UTC().Format(time.RFC3339), now.UTC().Format(time.RFC3339))
		return nil, domain.ErrSessionTimeout
	}

	if sessionID != "" && sessionID != account.CurrentSessionID {
		if err := s.accountRepo.ClearSession(ctx, accountID); err != nil {
			log.Printf("SESSION_CLEAR_FAILED: account_id=%d error=%v", accountID, err)
		}
		log.Printf("SESSION_INVALIDATED: account_id=%d timestamp=%s",
			accountID, now.UTC().Format(time.RFC3339))
		return nil, domain.ErrSessionInvalidated
	}

	// Best effort: a failed activity bump must not fail the request.
	if err := s.accountRepo.TouchActivity(ctx, accountID, now); err != nil {
		log.Printf("ACTIVITY_UPDATE_FAILED: account_id=%d error=%v", accountID, err)
	}

	return account, nil
}

// Refresh implements domain.SessionService. The session identifier is kept;
// only the token TTL is renewed.
func (s *SessionServiceImpl) Refresh(ctx context.Context, accountID uint, sessionID string) (*domain.AuthResult, error) {
	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, err
	}

	if account.CurrentSessionID == "" || sessionID != account.CurrentSessionID {
		return nil, domain.ErrSessionInvalidated
	}

	accessToken, err := s.tokenSvc.GenerateAccessToken(account.ID, account.CompanyID, account.IsCompanyAdmin, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	if err := s.accountRepo.TouchActivity(ctx, accountID, s.clock.Now()); err != nil {
		log.Printf("ACTIVITY_UPDATE_FAILED: account_id=%d error=%v", accountID, err)
	}

	return &domain.AuthResult{
		Account:     account,
		AccessToken: accessToken,
		SessionID:   sessionID,
		ExpiresIn:   int64(s.tokenSvc.AccessTTL().Seconds()),
	}, nil
}

// Logout implements domain.SessionService
func (s *SessionServiceImpl) Logout(ctx context.Context, accountID uint) error {
	return s.accountRepo.ClearSession(ctx, accountID)
}
