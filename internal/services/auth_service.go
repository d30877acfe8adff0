package services

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/ademandic/avanox-yudo-musteri-portal-api/domain"
)

// AuthServiceImpl implements domain.AuthService
type AuthServiceImpl struct {
	verifier    domain.CredentialVerifier
	twoFactor   domain.TwoFactorService
	sessions    domain.SessionService
	accountRepo domain.AccountRepository
	passwordSvc domain.PasswordService
	clock       domain.Clock
}

// NewAuthService creates a new auth service
func NewAuthService(
	verifier domain.CredentialVerifier,
	twoFactor domain.TwoFactorService,
	sessions domain.SessionService,
	accountRepo domain.AccountRepository,
	passwordSvc domain.PasswordService,
	clock domain.Clock,
) domain.AuthService {
	return &AuthServiceImpl{
		verifier:    verifier,
		twoFactor:   twoFactor,
		sessions:    sessions,
		accountRepo: accountRepo,
		passwordSvc: passwordSvc,
		clock:       clock,
	}
}

// Login implements domain.AuthService. Credentials are verified first; a
// trusted-bypass account receives its tokens immediately, everyone else gets
// a one-time code and a masked acknowledgement.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password, origin string) (*domain.LoginResult, error) {
	account, err := s.verifier.Verify(ctx, email, password)
	if err != nil {
		return nil, err
	}

	if account.SkipTwoFactor {
		auth, err := s.sessions.Issue(ctx, account, origin)
		if err != nil {
			return nil, err
		}
		log.Printf("LOGIN_2FA_BYPASSED: account_id=%d origin=%s timestamp=%s",
			account.ID, origin, s.clock.Now().UTC().Format(time.RFC3339))
		return &domain.LoginResult{AccountID: account.ID, Auth: auth}, nil
	}

	if err := s.twoFactor.Generate(ctx, account); err != nil {
		return nil, err
	}

	return &domain.LoginResult{
		RequiresTwoFactor: true,
		AccountID:         account.ID,
		EmailMasked:       maskEmail(account.Email),
	}, nil
}

// VerifyTwoFactor implements domain.AuthService. The account id here is
// session-scoped (handed out by Login), so an unknown id may surface as
// not-found without enabling enumeration.
func (s *AuthServiceImpl) VerifyTwoFactor(ctx context.Context, accountID uint, code, origin string) (*domain.AuthResult, error) {
	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if err := s.twoFactor.Verify(ctx, account, code); err != nil {
		return nil, err
	}

	return s.sessions.Issue(ctx, account, origin)
}

// ResendTwoFactor implements domain.AuthService
func (s *AuthServiceImpl) ResendTwoFactor(ctx context.Context, accountID uint) error {
	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return err
	}

	return s.twoFactor.Resend(ctx, account)
}

// ChangePassword implements domain.AuthService
func (s *AuthServiceImpl) ChangePassword(ctx context.Context, accountID uint, currentPassword, newPassword string) error {
	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return err
	}

	if !s.passwordSvc.Verify(account.PasswordHash, currentPassword) {
		return domain.ErrCurrentPasswordInvalid
	}

	if s.passwordSvc.Verify(account.PasswordHash, newPassword) {
		return domain.ErrSamePassword
	}

	hash, err := s.passwordSvc.Hash(newPassword)
	if err != nil {
		return err
	}

	return s.accountRepo.UpdatePassword(ctx, accountID, hash)
}

// GetAccount implements domain.AuthService
func (s *AuthServiceImpl) GetAccount(ctx context.Context, accountID uint) (*domain.Account, error) {
	return s.accountRepo.FindByID(ctx, accountID)
}

// maskEmail hides the local part of an address, ab***@domain.com style.
func maskEmail(email string) string {
	at := strings.Index(email, "@")
	if at < 0 {
		return email
	}
	name, domainPart := email[:at], email[at+1:]

	if len(name) <= 2 {
		return name + "***@" + domainPart
	}
	return name[:2] + "***@" + domainPart
}
