package mocks

import (
	"context"

	"github.com/ademandic/avanox-yudo-musteri-portal-api/domain"
)

// MockTwoFactorService implements domain.TwoFactorService for testing
type MockTwoFactorService struct {
	GenerateFunc func(ctx context.Context, account *domain.Account) error
	VerifyFunc   func(ctx context.Context, account *domain.Account, code string) error
	ResendFunc   func(ctx context.Context, account *domain.Account) error
}

// NewMockTwoFactorService creates a new MockTwoFactorService with default behaviors
func NewMockTwoFactorService() *MockTwoFactorService {
	return &MockTwoFactorService{}
}

// Generate issues and dispatches a fresh code
func (m *MockTwoFactorService) Generate(ctx context.Context, account *domain.Account) error {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, account)
	}
	// Default behavior: success
	return nil
}

// Verify checks a submitted code
func (m *MockTwoFactorService) Verify(ctx context.Context, account *domain.Account, code string) error {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, account, code)
	}
	// Default behavior: accept
	return nil
}

// Resend re-issues a code after the cooldown
func (m *MockTwoFactorService) Resend(ctx context.Context, account *domain.Account) error {
	if m.ResendFunc != nil {
		return m.ResendFunc(ctx, account)
	}
	// Default behavior: success
	return nil
}
