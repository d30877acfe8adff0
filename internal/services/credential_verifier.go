package services

import (
	"context"
	"errors"

	"github.com/ademandic/avanox-yudo-musteri-portal-api/domain"
)

// CredentialVerifierImpl implements domain.CredentialVerifier
type CredentialVerifierImpl struct {
	accountRepo domain.AccountRepository
	challenges  domain.ChallengeStore
	passwordSvc domain.PasswordService
}

// NewCredentialVerifier creates a new credential verifier
func NewCredentialVerifier(
	accountRepo domain.AccountRepository,
	challenges domain.ChallengeStore,
	passwordSvc domain.PasswordService,
) domain.CredentialVerifier {
	return &CredentialVerifierImpl{
		accountRepo: accountRepo,
		challenges:  challenges,
		passwordSvc: passwordSvc,
	}
}

// Verify implements domain.CredentialVerifier. The check order is fixed:
// existence, active flag, lockout, then the password. Lockout is checked
// before the password so a locked account cannot probe its secret, and an
// unknown account collapses into the same error as a wrong password to
// prevent enumeration.
func (v *CredentialVerifierImpl) Verify(ctx context.Context, email, password string) (*domain.Account, error) {
	account, err := v.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !account.IsActive {
		return nil, domain.ErrAccountInactive
	}

	state, err := v.challenges.State(ctx, account.ID)
	if err != nil {
		return nil, err
	}
	if state.Kind == domain.ChallengeLocked {
		return nil, &domain.LockedError{Remaining: state.LockedFor}
	}

	if !v.passwordSvc.Verify(account.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}

	return account, nil
}
