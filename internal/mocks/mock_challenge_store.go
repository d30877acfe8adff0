package mocks

import (
	"context"
	"time"

	"github.com/ademandic/avanox-yudo-musteri-portal-api/domain"
)

// MockChallengeStore implements domain.ChallengeStore for testing
type MockChallengeStore struct {
	StateFunc             func(ctx context.Context, accountID uint) (domain.ChallengeState, error)
	PutFunc               func(ctx context.Context, accountID uint, code string) error
	CodeFunc              func(ctx context.Context, accountID uint) (string, bool, error)
	IncrementAttemptsFunc func(ctx context.Context, accountID uint) (int, error)
	ClearFunc             func(ctx context.Context, accountID uint) error
	LockFunc              func(ctx context.Context, accountID uint) error
	ResendWaitFunc        func(ctx context.Context, accountID uint) (time.Duration, error)
}

// NewMockChallengeStore creates a new MockChallengeStore with default behaviors
func NewMockChallengeStore() *MockChallengeStore {
	return &MockChallengeStore{}
}

// State reports the challenge state
func (m *MockChallengeStore) State(ctx context.Context, accountID uint) (domain.ChallengeState, error) {
	if m.StateFunc != nil {
		return m.StateFunc(ctx, accountID)
	}
	// Default behavior: no challenge, not locked
	return domain.ChallengeState{Kind: domain.ChallengeNone}, nil
}

// Put stores a fresh code
func (m *MockChallengeStore) Put(ctx context.Context, accountID uint, code string) error {
	if m.PutFunc != nil {
		return m.PutFunc(ctx, accountID, code)
	}
	// Default behavior: success
	return nil
}

// Code returns the pending code
func (m *MockChallengeStore) Code(ctx context.Context, accountID uint) (string, bool, error) {
	if m.CodeFunc != nil {
		return m.CodeFunc(ctx, accountID)
	}
	// Default behavior: no pending code
	return "", false, nil
}

// IncrementAttempts advances the attempt counter
func (m *MockChallengeStore) IncrementAttempts(ctx context.Context, accountID uint) (int, error) {
	if m.IncrementAttemptsFunc != nil {
		return m.IncrementAttemptsFunc(ctx, accountID)
	}
	// Default behavior: first attempt
	return 1, nil
}

// Clear removes the pending challenge
func (m *MockChallengeStore) Clear(ctx context.Context, accountID uint) error {
	if m.ClearFunc != nil {
		return m.ClearFunc(ctx, accountID)
	}
	// Default behavior: success
	return nil
}

// Lock places the account under lockout
func (m *MockChallengeStore) Lock(ctx context.Context, accountID uint) error {
	if m.LockFunc != nil {
		return m.LockFunc(ctx, accountID)
	}
	// Default behavior: success
	return nil
}

// ResendWait reports the remaining cooldown
func (m *MockChallengeStore) ResendWait(ctx context.Context, accountID uint) (time.Duration, error) {
	if m.ResendWaitFunc != nil {
		return m.ResendWaitFunc(ctx, accountID)
	}
	// Default behavior: no cooldown
	return 0, nil
}
