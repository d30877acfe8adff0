package mocks

import (
	"context"
	"time"

	"github.com/ademandic/avanox-yudo-musteri-portal-api/domain"
)

// MockAccountRepository implements domain.AccountRepository for testing
type MockAccountRepository struct {
	FindByEmailFunc    func(ctx context.Context, email string) (*domain.Account, error)
	FindByIDFunc       func(ctx context.Context, id uint) (*domain.Account, error)
	RecordLoginFunc    func(ctx context.Context, accountID uint, sessionID, origin string, at time.Time) error
	TouchActivityFunc  func(ctx context.Context, accountID uint, at time.Time) error
	ClearSessionFunc   func(ctx context.Context, accountID uint) error
	UpdatePasswordFunc func(ctx context.Context, accountID uint, passwordHash string) error
}

// NewMockAccountRepository creates a new MockAccountRepository with default behaviors
func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{}
}

// FindByEmail finds an account by email
func (m *MockAccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	// Default behavior: not found
	return nil, domain.ErrAccountNotFound
}

// FindByID finds an account by id
func (m *MockAccountRepository) FindByID(ctx context.Context, id uint) (*domain.Account, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	// Default behavior: not found
	return nil, domain.ErrAccountNotFound
}

// RecordLogin writes the session fields
func (m *MockAccountRepository) RecordLogin(ctx context.Context, accountID uint, sessionID, origin string, at time.Time) error {
	if m.RecordLoginFunc != nil {
		return m.RecordLoginFunc(ctx, accountID, sessionID, origin, at)
	}
	// Default behavior: success
	return nil
}

// TouchActivity bumps the activity timestamp
func (m *MockAccountRepository) TouchActivity(ctx context.Context, accountID uint, at time.Time) error {
	if m.TouchActivityFunc != nil {
		return m.TouchActivityFunc(ctx, accountID, at)
	}
	// Default behavior: success
	return nil
}

// ClearSession clears the stored session identifier
func (m *MockAccountRepository) ClearSession(ctx context.Context, accountID uint) error {
	if m.ClearSessionFunc != nil {
		return m.ClearSessionFunc(ctx, accountID)
	}
	// Default behavior: success
	return nil
}

// UpdatePassword replaces the password hash
func (m *MockAccountRepository) UpdatePassword(ctx context.Context, accountID uint, passwordHash string) error {
	if m.UpdatePasswordFunc != nil {
		return m.UpdatePasswordFunc(ctx, accountID, passwordHash)
	}
	// Default behavior: success
	return nil
}
