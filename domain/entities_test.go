package domain

import (
	"testing"
	"time"
)

func TestChallengeState_Kinds(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		state       ChallengeState
		description string
	}{
		{
			name:        "no challenge",
			state:       ChallengeState{Kind: ChallengeNone},
			description: "fresh account carries neither code nor lockout",
		},
		{
			name: "pending challenge",
			state: ChallengeState{
				Kind:      ChallengePending,
				IssuedAt:  now,
				ExpiresAt: now.Add(5 * time.Minute),
			},
			description: "issued code carries both issue and expiry times",
		},
		{
			name: "locked",
			state: ChallengeState{
				Kind:      ChallengeLocked,
				LockedFor: 15 * time.Minute,
			},
			description: "locked account has no pending code",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			switch tt.state.Kind {
			case ChallengePending:
				if tt.state.ExpiresAt.IsZero() || tt.state.IssuedAt.IsZero() {
					t.Error("pending challenge must carry issue and expiry times")
				}
				if !tt.state.ExpiresAt.After(tt.state.IssuedAt) {
					t.Error("expiry must follow issuance")
				}
				if tt.state.LockedFor != 0 {
					t.Error("pending challenge must not carry a lockout")
				}
			case ChallengeLocked:
				if tt.state.LockedFor <= 0 {
					t.Error("locked state must carry a positive remaining duration")
				}
				if !tt.state.ExpiresAt.IsZero() {
					t.Error("locked account must not carry a pending code")
				}
			case ChallengeNone:
				if !tt.state.ExpiresAt.IsZero() || tt.state.LockedFor != 0 {
					t.Error("empty state must carry no challenge data")
				}
			}
		})
	}
}

func TestSystemClock_Now(t *testing.T) {
	clock := SystemClock{}

	before := time.Now()
	got := clock.Now()
	after := time.Now()

	if got.Before(before) || got.After(after) {
		t.Errorf("SystemClock.Now() = %v, want within [%v, %v]", got, before, after)
	}
}
