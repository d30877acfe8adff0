package mocks

import (
	"context"

	"github.com/ademandic/avanox-yudo-musteri-portal-api/domain"
)

// MockSessionService implements domain.SessionService for testing
type MockSessionService struct {
	IssueFunc   func(ctx context.Context, account *domain.Account, origin string) (*domain.AuthResult, error)
	GuardFunc   func(ctx context.Context, accountID uint, sessionID string) (*domain.Account, error)
	RefreshFunc func(ctx context.Context, accountID uint, sessionID string) (*domain.AuthResult, error)
	LogoutFunc  func(ctx context.Context, accountID uint) error
}

// NewMockSessionService creates a new MockSessionService with default behaviors
func NewMockSessionService() *MockSessionService {
	return &MockSessionService{}
}

// Issue mints a token and session id
func (m *MockSessionService) Issue(ctx context.Context, account *domain.Account, origin string) (*domain.AuthResult, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(ctx, account, origin)
	}
	// Default behavior: fixed result
	return &domain.AuthResult{
		Account:     account,
		AccessToken: "mock_access_token",
		SessionID:   "mock-session-id",
		ExpiresIn:   3600,
	}, nil
}

// Guard runs the per-request session checks
func (m *MockSessionService) Guard(ctx context.Context, accountID uint, sessionID string) (*domain.Account, error) {
	if m.GuardFunc != nil {
		return m.GuardFunc(ctx, accountID, sessionID)
	}
	// Default behavior: pass-through with a bare account
	return &domain.Account{ID: accountID, IsActive: true}, nil
}

// Refresh renews the token for the current session
func (m *MockSessionService) Refresh(ctx context.Context, accountID uint, sessionID string) (*domain.AuthResult, error) {
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx, accountID, sessionID)
	}
	// Default behavior: invalidated
	return nil, domain.ErrSessionInvalidated
}

// Logout clears the stored session id
func (m *MockSessionService) Logout(ctx context.Context, accountID uint) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, accountID)
	}
	// Default behavior: success
	return nil
}
