package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/piresc/secureword/internal/pkg/models"
	"github.com/piresc/secureword/services/auth"
	"github.com/piresc/secureword/services/auth/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticCodeVerifier(t *testing.T) {
	verifier := NewStaticCodeVerifier("123456")

	assert.True(t, verifier.Verify("alice", "123456"))
	assert.False(t, verifier.Verify("alice", "000000"))
	assert.False(t, verifier.Verify("alice", "1234567"))
	assert.False(t, verifier.Verify("alice", ""))
	assert.False(t, NewStaticCodeVerifier("").Verify("alice", ""))
}

func TestVerifyMFA_AliceScenario(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gw := mocks.NewMockAuthGW(ctrl)
	gw.EXPECT().PublishMFALocked(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event *models.AuthEvent) error {
			assert.Equal(t, "alice", event.Username)
			assert.Equal(t, models.OutcomeLocked, event.Outcome)
			assert.Equal(t, 3, event.Attempts)
			return nil
		}).Times(1)

	env := setupTestEnv(t, gw)
	ctx := context.Background()

	_, err := env.uc.VerifyMFA(ctx, "alice", "000000")
	var rejected *auth.MFARejectedError
	require.True(t, errors.As(err, &rejected))
	assert.Equal(t, 2, rejected.AttemptsRemaining)

	_, err = env.uc.VerifyMFA(ctx, "alice", "000000")
	require.True(t, errors.As(err, &rejected))
	assert.Equal(t, 1, rejected.AttemptsRemaining)

	_, err = env.uc.VerifyMFA(ctx, "alice", "000000")
	assert.ErrorIs(t, err, auth.ErrMFALocked)

	// locked regardless of correctness
	grant, err := env.uc.VerifyMFA(ctx, "alice", "123456")
	assert.Nil(t, grant)
	assert.ErrorIs(t, err, auth.ErrMFALocked)

	_, err = env.uc.VerifyMFA(ctx, "alice", "000000")
	assert.ErrorIs(t, err, auth.ErrMFALocked)

	// locked submissions are not counted
	count, err := env.stores.Attempts.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestVerifyMFA_SuccessAfterFailures(t *testing.T) {
	tests := []struct {
		name     string
		failures int
	}{
		{name: "No failures", failures: 0},
		{name: "One failure", failures: 1},
		{name: "Two failures", failures: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			gw := mocks.NewMockAuthGW(ctrl)
			gw.EXPECT().PublishSessionIssued(gomock.Any(), gomock.Any()).Return(nil).Times(1)

			env := setupTestEnv(t, gw)
			ctx := context.Background()

			for i := 0; i < tt.failures; i++ {
				_, err := env.uc.VerifyMFA(ctx, "alice", "000000")
				require.ErrorIs(t, err, auth.ErrMFARejected)
			}

			grant, err := env.uc.VerifyMFA(ctx, "alice", "123456")
			require.NoError(t, err)
			assert.Equal(t, "alice", grant.Username)
			assert.Equal(t, env.clock.Now().Add(time.Hour).Unix(), grant.ExpiresAt.Unix())

			count, err := env.stores.Attempts.Get(ctx, "alice")
			require.NoError(t, err)
			assert.Equal(t, 0, count)

			info, err := env.uc.ValidateSession(ctx, grant.Token)
			require.NoError(t, err)
			assert.Equal(t, "alice", info.Username)
			assert.Equal(t, models.StageSession, info.Stage)
		})
	}
}

func TestVerifyMFA_UsersAreIndependent(t *testing.T) {
	env := setupTestEnv(t, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, _ = env.uc.VerifyMFA(ctx, "alice", "000000")
	}

	_, err := env.uc.VerifyMFA(ctx, "alice", "123456")
	assert.ErrorIs(t, err, auth.ErrMFALocked)

	_, err = env.uc.VerifyMFA(ctx, "bob", "123456")
	assert.NoError(t, err)
}

func TestVerifyMFA_ConcurrentFailuresAreNotLost(t *testing.T) {
	env := setupTestEnv(t, nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	var mu sync.Mutex
	rejected, locked := 0, 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.uc.VerifyMFA(ctx, "alice", "000000")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case errors.Is(err, auth.ErrMFALocked):
				locked++
			case errors.Is(err, auth.ErrMFARejected):
				rejected++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 2, rejected)
	assert.Equal(t, 18, locked)

	count, err := env.stores.Attempts.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestVerifyMFA_CounterErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	counter := mocks.NewMockAttemptCounter(ctrl)
	env := setupTestEnv(t, nil)
	env.uc.attempts = counter

	counter.EXPECT().Get(gomock.Any(), "alice").Return(0, errors.New("redis down"))
	_, err := env.uc.VerifyMFA(context.Background(), "alice", "123456")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load mfa attempts")

	counter.EXPECT().Get(gomock.Any(), "alice").Return(0, nil)
	counter.EXPECT().Increment(gomock.Any(), "alice").Return(0, errors.New("redis down"))
	_, err = env.uc.VerifyMFA(context.Background(), "alice", "000000")
	require.Error(t, err)
	assert.NotErrorIs(t, err, auth.ErrMFARejected)
	assert.Contains(t, err.Error(), "failed to record mfa attempt")
}

func TestVerifyMFA_PublishFailureDoesNotFailLogin(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gw := mocks.NewMockAuthGW(ctrl)
	gw.EXPECT().PublishSessionIssued(gomock.Any(), gomock.Any()).Return(errors.New("nsqd unavailable"))

	env := setupTestEnv(t, gw)

	grant, err := env.uc.VerifyMFA(context.Background(), "alice", "123456")

	require.NoError(t, err)
	assert.NotEmpty(t, grant.Token)
}

func TestResetMFA(t *testing.T) {
	env := setupTestEnv(t, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, _ = env.uc.VerifyMFA(ctx, "alice", "000000")
	}
	_, err := env.uc.VerifyMFA(ctx, "alice", "123456")
	require.ErrorIs(t, err, auth.ErrMFALocked)

	require.NoError(t, env.uc.ResetMFA(ctx, "alice"))

	grant, err := env.uc.VerifyMFA(ctx, "alice", "123456")
	require.NoError(t, err)
	assert.NotEmpty(t, grant.Token)
}

func TestVerifyMFA_NewLoginLiftsLockout(t *testing.T) {
	env := setupTestEnv(t, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, _ = env.uc.VerifyMFA(ctx, "alice", "000000")
	}

	// retrying the code step alone keeps the lock
	_, err := env.uc.VerifyMFA(ctx, "alice", "123456")
	require.ErrorIs(t, err, auth.ErrMFALocked)

	word, err := env.uc.IssueChallenge(ctx, "alice")
	require.NoError(t, err)
	_, err = env.uc.VerifyCredentials(ctx, "alice", word.SecureWord, "5e884898da28")
	require.NoError(t, err)

	count, err := env.stores.Attempts.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	grant, err := env.uc.VerifyMFA(ctx, "alice", "123456")
	require.NoError(t, err)
	assert.NotEmpty(t, grant.Token)
}

func TestVerifyMFA_FailedLoginKeepsLockout(t *testing.T) {
	env := setupTestEnv(t, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, _ = env.uc.VerifyMFA(ctx, "alice", "000000")
	}

	_, err := env.uc.IssueChallenge(ctx, "alice")
	require.NoError(t, err)
	_, err = env.uc.VerifyCredentials(ctx, "alice", "wrongword123", "5e884898da28")
	require.ErrorIs(t, err, auth.ErrChallengeInvalid)

	_, err = env.uc.VerifyMFA(ctx, "alice", "123456")
	assert.ErrorIs(t, err, auth.ErrMFALocked)
}

func pendingContext(t *testing.T, env *testEnv, username string) context.Context {
	t.Helper()

	ctx := context.Background()
	word, err := env.uc.IssueChallenge(ctx, username)
	require.NoError(t, err)
	grant, err := env.uc.VerifyCredentials(ctx, username, word.SecureWord, "5e884898da28")
	require.NoError(t, err)
	info, err := env.uc.ValidatePending(ctx, grant.Token)
	require.NoError(t, err)

	return auth.WithPendingToken(ctx, info)
}

func TestVerifyMFA_PendingMarkerIsSingleUse(t *testing.T) {
	env := setupTestEnv(t, nil)
	ctx := pendingContext(t, env, "alice")

	// failed codes do not spend the marker
	_, err := env.uc.VerifyMFA(ctx, "alice", "000000")
	require.ErrorIs(t, err, auth.ErrMFARejected)

	grant, err := env.uc.VerifyMFA(ctx, "alice", "123456")
	require.NoError(t, err)
	assert.NotEmpty(t, grant.Token)

	grant, err = env.uc.VerifyMFA(ctx, "alice", "123456")
	assert.Nil(t, grant)
	assert.ErrorIs(t, err, auth.ErrPendingRequired)

	// a spent marker cannot burn attempts either
	_, err = env.uc.VerifyMFA(ctx, "alice", "000000")
	assert.ErrorIs(t, err, auth.ErrPendingRequired)
	count, err := env.stores.Attempts.Get(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	events, err := env.audit.List(context.Background(), models.LoginEventFilter{Username: "alice"})
	require.NoError(t, err)
	assert.Equal(t, models.OutcomePendingRejected, events[0].Outcome)
}

func TestVerifyMFA_PendingMarkerRedeemedOnce(t *testing.T) {
	env := setupTestEnv(t, nil)
	ctx := pendingContext(t, env, "alice")

	var wg sync.WaitGroup
	var mu sync.Mutex
	wins, replays := 0, 0
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.uc.VerifyMFA(ctx, "alice", "123456")
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				wins++
			} else if errors.Is(err, auth.ErrPendingRequired) {
				replays++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
	assert.Equal(t, 4, replays)
}

func TestVerifyMFA_PendingLedgerErrors(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(ledger *mocks.MockPendingLedger)
		wantErr string
	}{
		{
			name: "Lookup fails",
			setup: func(ledger *mocks.MockPendingLedger) {
				ledger.EXPECT().Redeemed(gomock.Any(), "jti-1").Return(false, errors.New("redis down"))
			},
			wantErr: "failed to check pending marker",
		},
		{
			name: "Redeem fails",
			setup: func(ledger *mocks.MockPendingLedger) {
				ledger.EXPECT().Redeemed(gomock.Any(), "jti-1").Return(false, nil)
				ledger.EXPECT().Redeem(gomock.Any(), "jti-1", gomock.Any()).Return(false, errors.New("redis down"))
			},
			wantErr: "failed to redeem pending marker",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			env := setupTestEnv(t, nil)
			pending := &models.SessionInfo{
				Username:  "alice",
				Stage:     models.StagePending,
				TokenID:   "jti-1",
				ExpiresAt: env.clock.Now().Add(5 * time.Minute),
			}
			ledger := mocks.NewMockPendingLedger(ctrl)
			tt.setup(ledger)
			env.uc.pending = ledger

			grant, err := env.uc.VerifyMFA(auth.WithPendingToken(context.Background(), pending), "alice", "123456")

			assert.Nil(t, grant)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestVerifyMFA_ExpiredPendingMarker(t *testing.T) {
	env := setupTestEnv(t, nil)
	pending := &models.SessionInfo{
		Username:  "alice",
		Stage:     models.StagePending,
		TokenID:   "jti-1",
		ExpiresAt: env.clock.Now().Add(-time.Second),
	}

	_, err := env.uc.VerifyMFA(auth.WithPendingToken(context.Background(), pending), "alice", "123456")

	assert.ErrorIs(t, err, auth.ErrPendingRequired)
}
