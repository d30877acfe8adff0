package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/ademandic/avanox-yudo-musteri-portal-api/domain"
	"github.com/ademandic/avanox-yudo-musteri-portal-api/internal/mocks"
)

func createJWTServiceForTest(t *testing.T) (domain.TokenService, *mocks.MockClock) {
	t.Helper()

	clock := mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	svc := NewJWTService("test-secret-key-with-enough-entropy", "portal-api", 30*time.Minute, clock)
	return svc, clock
}

func TestJWTServiceImpl_RoundTrip(t *testing.T) {
	svc, clock := createJWTServiceForTest(t)

	token, err := svc.GenerateAccessToken(42, 3, true, "session-a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token == "" {
		t.Fatal("expected a signed token")
	}

	claims, err := svc.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.AccountID != 42 {
		t.Errorf("expected account 42, got %d", claims.AccountID)
	}
	if claims.CompanyID != 3 {
		t.Errorf("expected company 3, got %d", claims.CompanyID)
	}
	if !claims.IsAdmin {
		t.Error("expected the admin flag to survive")
	}
	if claims.SessionID != "session-a" {
		t.Errorf("expected session-a, got %q", claims.SessionID)
	}
	if claims.IssuedAt != clock.Now().Unix() {
		t.Errorf("expected iat %d, got %d", clock.Now().Unix(), claims.IssuedAt)
	}
	if claims.ExpiresAt != clock.Now().Add(30*time.Minute).Unix() {
		t.Errorf("expected exp 30m out, got %d", claims.ExpiresAt)
	}
}

func TestJWTServiceImpl_Expiry(t *testing.T) {
	svc, clock := createJWTServiceForTest(t)

	token, err := svc.GenerateAccessToken(42, 3, false, "session-a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	clock.Advance(29 * time.Minute)
	if _, err := svc.ValidateAccessToken(token); err != nil {
		t.Errorf("expected the token to still validate, got %v", err)
	}

	clock.Advance(2 * time.Minute)
	_, err = svc.ValidateAccessToken(token)
	if !errors.Is(err, domain.ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestJWTServiceImpl_RejectsTamperedAndForeignTokens(t *testing.T) {
	svc, _ := createJWTServiceForTest(t)

	t.Run("garbage input", func(t *testing.T) {
		_, err := svc.ValidateAccessToken("not-a-token")
		if !errors.Is(err, domain.ErrTokenInvalid) {
			t.Errorf("expected ErrTokenInvalid, got %v", err)
		}
	})

	t.Run("token signed with another key", func(t *testing.T) {
		clock := mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
		other := NewJWTService("a-completely-different-secret", "portal-api", 30*time.Minute, clock)

		token, err := other.GenerateAccessToken(42, 3, false, "session-a")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		_, err = svc.ValidateAccessToken(token)
		if !errors.Is(err, domain.ErrTokenInvalid) {
			t.Errorf("expected ErrTokenInvalid, got %v", err)
		}
	})

	t.Run("tampered payload", func(t *testing.T) {
		token, err := svc.GenerateAccessToken(42, 3, false, "session-a")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		tampered := token[:len(token)-4] + "AAAA"
		if _, err := svc.ValidateAccessToken(tampered); err == nil {
			t.Error("expected a tampered token to be rejected")
		}
	})
}

func TestJWTServiceImpl_UniqueTokenIDs(t *testing.T) {
	svc, _ := createJWTServiceForTest(t)

	first, err := svc.GenerateAccessToken(42, 3, false, "session-a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.GenerateAccessToken(42, 3, false, "session-a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Same claims, same frozen clock; only the jti separates them.
	if first == second {
		t.Error("expected distinct tokens for identical claims")
	}
}

func TestPasswordService(t *testing.T) {
	svc := NewPasswordService()

	hash, err := svc.Hash("correct-password")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash == "correct-password" {
		t.Fatal("hash must not equal the plaintext")
	}

	if !svc.Verify(hash, "correct-password") {
		t.Error("expected the matching password to verify")
	}
	if svc.Verify(hash, "wrong-password") {
		t.Error("expected a wrong password to fail")
	}
}
