package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"log"
	"math/big"
	"time"

	"github.com/ademandic/avanox-yudo-musteri-portal-api/domain"
)

// TwoFactorConfig holds the tunables of the one-time-code flow.
type TwoFactorConfig struct {
	CodeLength   int
	CodeValidity time.Duration
	MaxAttempts  int
	Delivery     string // "email" or "sms"
}

// TwoFactorServiceImpl implements domain.TwoFactorService
type TwoFactorServiceImpl struct {
	challenges domain.ChallengeStore
	notifier   domain.NotificationService
	clock      domain.Clock
	config     TwoFactorConfig
}

// NewTwoFactorService creates a new two-factor service
func NewTwoFactorService(
	challenges domain.ChallengeStore,
	notifier domain.NotificationService,
	clock domain.Clock,
	config TwoFactorConfig,
) domain.TwoFactorService {
	return &TwoFactorServiceImpl{
		challenges: challenges,
		notifier:   notifier,
		clock:      clock,
		config:     config,
	}
}

// Generate implements domain.TwoFactorService. A failed dispatch rolls the
// stored challenge back so the caller is never told a code is on its way
// when it is not. No store lock is held across the delivery call.
func (s *TwoFactorServiceImpl) Generate(ctx context.Context, account *domain.Account) error {
	state, err := s.challenges.State(ctx, account.ID)
	if err != nil {
		return err
	}
	if state.Kind == domain.ChallengeLocked {
		return &domain.LockedError{Remaining: state.LockedFor}
	}

	code, err := s.generateSecureCode()
	if err != nil {
		return fmt.Errorf("failed to generate challenge code: %w", err)
	}

	if err := s.challenges.Put(ctx, account.ID, code); err != nil {
		return err
	}

	if err := s.deliver(account, code); err != nil {
		if clearErr := s.challenges.Clear(ctx, account.ID); clearErr != nil {
			log.Printf("CHALLENGE_ROLLBACK_FAILED: account_id=%d error=%v", account.ID, clearErr)
		}
		return fmt.Errorf("%w: %v", domain.ErrDeliveryFailed, err)
	}

	return nil
}

// Verify implements domain.TwoFactorService. Lockout strictly precedes code
// matching, so even the originally-correct code is refused while locked.
// Attempt accounting goes through the store's atomic increment; two verifies
// racing on the same stale count cannot both slip past the limit.
func (s *TwoFactorServiceImpl) Verify(ctx context.Context, account *domain.Account, code string) error {
	state, err := s.challenges.State(ctx, account.ID)
	if err != nil {
		return err
	}
	if state.Kind == domain.ChallengeLocked {
		return &domain.LockedError{Remaining: state.LockedFor}
	}

	stored, ok, err := s.challenges.Code(ctx, account.ID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrChallengeExpired
	}

	if stored != code {
		attempts, err := s.challenges.IncrementAttempts(ctx, account.ID)
		if err != nil {
			return err
		}
		if attempts >= s.config.MaxAttempts {
			if err := s.challenges.Lock(ctx, account.ID); err != nil {
				return err
			}
			log.Printf("ACCOUNT_LOCKED: account_id=%d attempts=%d timestamp=%s",
				account.ID, attempts, s.clock.Now().UTC().Format(time.RFC3339))
			return domain.ErrMaxAttemptsExceeded
		}
		return &domain.InvalidCodeError{Remaining: s.config.MaxAttempts - attempts}
	}

	// Consumed: a verified code can never be replayed.
	return s.challenges.Clear(ctx, account.ID)
}

// Resend implements domain.TwoFactorService. The cooldown runs from the
// previous issuance; once it has elapsed a resend behaves as Generate and
// silently supersedes the previous code.
func (s *TwoFactorServiceImpl) Resend(ctx context.Context, account *domain.Account) error {
	state, err := s.challenges.State(ctx, account.ID)
	if err != nil {
		return err
	}
	if state.Kind == domain.ChallengeLocked {
		return &domain.LockedError{Remaining: state.LockedFor}
	}

	wait, err := s.challenges.ResendWait(ctx, account.ID)
	if err != nil {
		return err
	}
	if wait > 0 {
		return &domain.TooSoonError{RetryAfter: wait}
	}

	return s.Generate(ctx, account)
}

func (s *TwoFactorServiceImpl) deliver(account *domain.Account, code string) error {
	validityMinutes := int(s.config.CodeValidity.Minutes())
	if s.config.Delivery == "sms" && account.Phone != "" {
		message := fmt.Sprintf("Your verification code is: %s. Valid for %d minutes.", code, validityMinutes)
		return s.notifier.SendSMS(account.Phone, message)
	}
	subject := "Your verification code"
	body := fmt.Sprintf("Your verification code is: %s. It is valid for %d minutes.", code, validityMinutes)
	return s.notifier.SendEmail(account.Email, subject, body)
}

// generateSecureCode draws each digit independently from crypto/rand, which
// keeps the distribution uniform without modulo bias.
func (s *TwoFactorServiceImpl) generateSecureCode() (string, error) {
	digits := make([]byte, s.config.CodeLength)

	for i := 0; i < s.config.CodeLength; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		digits[i] = byte('0' + num.Int64())
	}

	return string(digits), nil
}
