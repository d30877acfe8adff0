package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/ademandic/avanox-yudo-musteri-portal-api/domain"
	"github.com/ademandic/avanox-yudo-musteri-portal-api/internal/mocks"
)

func createChallengeStoreForTest(t *testing.T) (domain.ChallengeStore, *miniredis.Miniredis, *mocks.MockClock) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	clock := mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	store := NewChallengeStore(client, clock, ChallengeConfig{
		CodeValidity:   5 * time.Minute,
		LockoutWindow:  15 * time.Minute,
		ResendCooldown: 60 * time.Second,
	})

	return store, mr, clock
}

func TestChallengeStoreImpl_State(t *testing.T) {
	ctx := context.Background()
	const accountID = 7

	t.Run("no challenge", func(t *testing.T) {
		store, _, _ := createChallengeStoreForTest(t)

		state, err := store.State(ctx, accountID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if state.Kind != domain.ChallengeNone {
			t.Errorf("expected none, got %v", state.Kind)
		}
	})

	t.Run("pending after put", func(t *testing.T) {
		store, _, clock := createChallengeStoreForTest(t)

		if err := store.Put(ctx, accountID, "123456"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		state, err := store.State(ctx, accountID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if state.Kind != domain.ChallengePending {
			t.Fatalf("expected pending, got %v", state.Kind)
		}
		if !state.ExpiresAt.Equal(clock.Now().Add(5 * time.Minute)) {
			t.Errorf("expected expiry 5m out, got %v", state.ExpiresAt)
		}
		if !state.IssuedAt.Equal(clock.Now()) {
			t.Errorf("expected issuance now, got %v", state.IssuedAt)
		}
	})

	t.Run("absent after the validity window", func(t *testing.T) {
		store, mr, _ := createChallengeStoreForTest(t)

		if err := store.Put(ctx, accountID, "123456"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		mr.FastForward(5*time.Minute + time.Second)

		state, err := store.State(ctx, accountID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if state.Kind != domain.ChallengeNone {
			t.Errorf("expected none after expiry, got %v", state.Kind)
		}

		_, ok, err := store.Code(ctx, accountID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ok {
			t.Error("expected the code to be gone")
		}
	})

	t.Run("locked wins over pending", func(t *testing.T) {
		store, _, _ := createChallengeStoreForTest(t)

		if err := store.Put(ctx, accountID, "123456"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := store.Lock(ctx, accountID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		state, err := store.State(ctx, accountID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if state.Kind != domain.ChallengeLocked {
			t.Fatalf("expected locked, got %v", state.Kind)
		}
		if state.LockedFor <= 0 || state.LockedFor > 15*time.Minute {
			t.Errorf("expected lockout within the window, got %v", state.LockedFor)
		}
	})

	t.Run("lock expires on its own", func(t *testing.T) {
		store, mr, _ := createChallengeStoreForTest(t)

		if err := store.Lock(ctx, accountID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		mr.FastForward(15*time.Minute + time.Second)

		state, err := store.State(ctx, accountID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if state.Kind != domain.ChallengeNone {
			t.Errorf("expected none after lockout expiry, got %v", state.Kind)
		}
	})
}

func TestChallengeStoreImpl_Put(t *testing.T) {
	ctx := context.Background()
	const accountID = 7
	store, _, _ := createChallengeStoreForTest(t)

	if err := store.Put(ctx, accountID, "111111"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := store.IncrementAttempts(ctx, accountID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A fresh put supersedes the code and zeroes the counter.
	if err := store.Put(ctx, accountID, "222222"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	code, ok, err := store.Code(ctx, accountID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok || code != "222222" {
		t.Errorf("expected the superseding code, got %q (ok=%v)", code, ok)
	}

	attempts, err := store.IncrementAttempts(ctx, accountID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if attempts != 1 {
		t.Errorf("expected the counter to restart at 1, got %d", attempts)
	}
}

func TestChallengeStoreImpl_IncrementAttempts(t *testing.T) {
	ctx := context.Background()
	const accountID = 7
	store, _, _ := createChallengeStoreForTest(t)

	if err := store.Put(ctx, accountID, "123456"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for want := 1; want <= 3; want++ {
		got, err := store.IncrementAttempts(ctx, accountID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != want {
			t.Errorf("expected attempt %d, got %d", want, got)
		}
	}
}

func TestChallengeStoreImpl_Lock(t *testing.T) {
	ctx := context.Background()
	const accountID = 7
	store, _, _ := createChallengeStoreForTest(t)

	if err := store.Put(ctx, accountID, "123456"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Lock(ctx, accountID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Locking removes the pending code alongside.
	_, ok, err := store.Code(ctx, accountID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected no pending code under lockout")
	}
}

func TestChallengeStoreImpl_ResendWait(t *testing.T) {
	ctx := context.Background()
	const accountID = 7

	t.Run("armed by put and runs down", func(t *testing.T) {
		store, mr, _ := createChallengeStoreForTest(t)

		if err := store.Put(ctx, accountID, "123456"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		wait, err := store.ResendWait(ctx, accountID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if wait <= 0 || wait > 60*time.Second {
			t.Errorf("expected cooldown within 60s, got %v", wait)
		}

		mr.FastForward(61 * time.Second)

		wait, err = store.ResendWait(ctx, accountID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if wait != 0 {
			t.Errorf("expected no cooldown after the window, got %v", wait)
		}
	})

	t.Run("disarmed by clear", func(t *testing.T) {
		store, _, _ := createChallengeStoreForTest(t)

		if err := store.Put(ctx, accountID, "123456"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := store.Clear(ctx, accountID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		wait, err := store.ResendWait(ctx, accountID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if wait != 0 {
			t.Errorf("expected no cooldown after clear, got %v", wait)
		}
	})
}
