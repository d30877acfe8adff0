package mocks

import (
	"context"

	"github.com/ademandic/avanox-yudo-musteri-portal-api/domain"
)

// MockAuthService implements domain.AuthService for testing
type MockAuthService struct {
	LoginFunc           func(ctx context.Context, email, password, origin string) (*domain.LoginResult, error)
	VerifyTwoFactorFunc func(ctx context.Context, accountID uint, code, origin string) (*domain.AuthResult, error)
	ResendTwoFactorFunc func(ctx context.Context, accountID uint) error
	ChangePasswordFunc  func(ctx context.Context, accountID uint, currentPassword, newPassword string) error
	GetAccountFunc      func(ctx context.Context, accountID uint) (*domain.Account, error)
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

// Login performs the first authentication step
func (m *MockAuthService) Login(ctx context.Context, email, password, origin string) (*domain.LoginResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password, origin)
	}
	// Default behavior: rejected
	return nil, domain.ErrInvalidCredentials
}

// VerifyTwoFactor completes the second authentication step
func (m *MockAuthService) VerifyTwoFactor(ctx context.Context, accountID uint, code, origin string) (*domain.AuthResult, error) {
	if m.VerifyTwoFactorFunc != nil {
		return m.VerifyTwoFactorFunc(ctx, accountID, code, origin)
	}
	// Default behavior: expired
	return nil, domain.ErrChallengeExpired
}

// ResendTwoFactor re-issues a code
func (m *MockAuthService) ResendTwoFactor(ctx context.Context, accountID uint) error {
	if m.ResendTwoFactorFunc != nil {
		return m.ResendTwoFactorFunc(ctx, accountID)
	}
	// Default behavior: success
	return nil
}

// ChangePassword rotates the account password
func (m *MockAuthService) ChangePassword(ctx context.Context, accountID uint, currentPassword, newPassword string) error {
	if m.ChangePasswordFunc != nil {
		return m.ChangePasswordFunc(ctx, accountID, currentPassword, newPassword)
	}
	// Default behavior: success
	return nil
}

// GetAccount loads the account profile
func (m *MockAuthService) GetAccount(ctx context.Context, accountID uint) (*domain.Account, error) {
	if m.GetAccountFunc != nil {
		return m.GetAccountFunc(ctx, accountID)
	}
	// Default behavior: not found
	return nil, domain.ErrAccountNotFound
}
