package mocks

import (
	"context"

	"github.com/ademandic/avanox-yudo-musteri-portal-api/domain"
)

// MockCredentialVerifier implements domain.CredentialVerifier for testing
type MockCredentialVerifier struct {
	VerifyFunc func(ctx context.Context, email, password string) (*domain.Account, error)
}

// NewMockCredentialVerifier creates a new MockCredentialVerifier with default behaviors
func NewMockCredentialVerifier() *MockCredentialVerifier {
	return &MockCredentialVerifier{}
}

// Verify checks an identifier/secret pair
func (m *MockCredentialVerifier) Verify(ctx context.Context, email, password string) (*domain.Account, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, email, password)
	}
	// Default behavior: rejected
	return nil, domain.ErrInvalidCredentials
}
