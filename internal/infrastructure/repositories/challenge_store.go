package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ademandic/avanox-yudo-musteri-portal-api/domain"
)

// ChallengeConfig holds the timing windows of the challenge lifecycle.
type ChallengeConfig struct {
	CodeValidity   time.Duration
	LockoutWindow  time.Duration
	ResendCooldown time.Duration
}

// ChallengeStoreImpl implements domain.ChallengeStore using Redis. Expiry of
// codes, lockouts and throttles rides on key TTLs, so every timing decision is
// evaluated against the store's own clock rather than per-process wall clocks,
// and expired state is simply absent instead of swept.
type ChallengeStoreImpl struct {
	client *redis.Client
	clock  domain.Clock
	config ChallengeConfig
}

// NewChallengeStore creates a new Redis-based challenge store
func NewChallengeStore(client *redis.Client, clock domain.Clock, config ChallengeConfig) domain.ChallengeStore {
	return &ChallengeStoreImpl{
		client: client,
		clock:  clock,
		config: config,
	}
}

func (s *ChallengeStoreImpl) codeKey(accountID uint) string {
	return fmt.Sprintf("2fa:code:%d", accountID)
}

func (s *ChallengeStoreImpl) attemptsKey(accountID uint) string {
	return fmt.Sprintf("2fa:att:%d", accountID)
}

func (s *ChallengeStoreImpl) lockKey(accountID uint) string {
	return fmt.Sprintf("2fa:lock:%d", accountID)
}

func (s *ChallengeStoreImpl) resendKey(accountID uint) string {
	return fmt.Sprintf("2fa:res:%d", accountID)
}

// State implements domain.ChallengeStore
func (s *ChallengeStoreImpl) State(ctx context.Context, accountID uint) (domain.ChallengeState, error) {
	lockTTL, err := s.client.TTL(ctx, s.lockKey(accountID)).Result()
	if err != nil {
		return domain.ChallengeState{}, fmt.Errorf("failed to read lockout TTL: %w", err)
	}
	if lockTTL > 0 {
		return domain.ChallengeState{
			Kind:      domain.ChallengeLocked,
			LockedFor: lockTTL,
		}, nil
	}

	codeTTL, err := s.client.TTL(ctx, s.codeKey(accountID)).Result()
	if err != nil {
		return domain.ChallengeState{}, fmt.Errorf("failed to read code TTL: %w", err)
	}
	if codeTTL > 0 {
		now := s.clock.Now()
		return domain.ChallengeState{
			Kind:      domain.ChallengePending,
			IssuedAt:  now.Add(codeTTL - s.config.CodeValidity),
			ExpiresAt: now.Add(codeTTL),
		}, nil
	}

	return domain.ChallengeState{Kind: domain.ChallengeNone}, nil
}

// Put implements domain.ChallengeStore. Writing a fresh code supersedes any
// previous one, zeroes the attempt counter and arms the resend throttle.
func (s *ChallengeStoreImpl) Put(ctx context.Context, accountID uint, code string) error {
	if err := s.client.Set(ctx, s.codeKey(accountID), code, s.config.CodeValidity).Err(); err != nil {
		return fmt.Errorf("failed to store challenge code: %w", err)
	}
	if err := s.client.Set(ctx, s.attemptsKey(accountID), 0, s.config.CodeValidity).Err(); err != nil {
		return fmt.Errorf("failed to reset attempts counter: %w", err)
	}
	if err := s.client.Set(ctx, s.resendKey(accountID), 1, s.config.ResendCooldown).Err(); err != nil {
		return fmt.Errorf("failed to arm resend throttle: %w", err)
	}
	return nil
}

// Code implements domain.ChallengeStore
func (s *ChallengeStoreImpl) Code(ctx context.Context, accountID uint) (string, bool, error) {
	code, err := s.client.Get(ctx, s.codeKey(accountID)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read challenge code: %w", err)
	}
	return code, true, nil
}

// IncrementAttempts implements domain.ChallengeStore. INCR is atomic in
// Redis, so two verifies racing on the same stale count observe distinct
// values and at most one of them sits exactly on the limit.
func (s *ChallengeStoreImpl) IncrementAttempts(ctx context.Context, accountID uint) (int, error) {
	attempts, err := s.client.Incr(ctx, s.attemptsKey(accountID)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment attempts: %w", err)
	}
	if attempts == 1 {
		// Counter was recreated after expiry; re-bound its lifetime.
		s.client.Expire(ctx, s.attemptsKey(accountID), s.config.CodeValidity)
	}
	return int(attempts), nil
}

// Clear implements domain.ChallengeStore. Consuming or abandoning a
// challenge also disarms the resend throttle, mirroring the original
// derivation of the cooldown from the (now absent) expiry.
func (s *ChallengeStoreImpl) Clear(ctx context.Context, accountID uint) error {
	return s.client.Del(ctx, s.codeKey(accountID), s.attemptsKey(accountID), s.resendKey(accountID)).Err()
}

// Lock implements domain.ChallengeStore. A locked account has no pending
// challenge; the code and counter go away with the lock assignment.
func (s *ChallengeStoreImpl) Lock(ctx context.Context, accountID uint) error {
	if err := s.client.Set(ctx, s.lockKey(accountID), 1, s.config.LockoutWindow).Err(); err != nil {
		return fmt.Errorf("failed to set lockout: %w", err)
	}
	return s.Clear(ctx, accountID)
}

// ResendWait implements domain.ChallengeStore
func (s *ChallengeStoreImpl) ResendWait(ctx context.Context, accountID uint) (time.Duration, error) {
	ttl, err := s.client.TTL(ctx, s.resendKey(accountID)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to check resend throttle: %w", err)
	}
	if ttl <= 0 {
		return 0, nil
	}
	return ttl, nil
}
