package usecase

import (
	"context"
	"crypto/subtle"
	"fmt"

	"github.com/piresc/secureword/internal/pkg/logger"
	"github.com/piresc/secureword/internal/pkg/models"
	nrpkg "github.com/piresc/secureword/internal/pkg/newrelic"
	"github.com/piresc/secureword/services/auth"
)

// StaticCodeVerifier accepts one fixed code for every username
type StaticCodeVerifier struct {
	code []byte
}

// NewStaticCodeVerifier creates a verifier for code. An empty code matches nothing.
func NewStaticCodeVerifier(code string) *StaticCodeVerifier {
	return &StaticCodeVerifier{code: []byte(code)}
}

// Verify compares in constant time
func (v *StaticCodeVerifier) Verify(_ string, code string) bool {
	if len(v.code) == 0 {
		return false
	}
	return subtle.ConstantTimeCompare(v.code, []byte(code)) == 1
}

// VerifyMFA checks a one-time code. A locked username is rejected without looking at the code.
// When ctx carries an MFA-pending marker, the marker is redeemed on success and refused afterwards.
func (uc *AuthUC) VerifyMFA(ctx context.Context, username, code string) (*models.SessionGrant, error) {
	if segment := nrpkg.StartSegment(ctx, "AuthUC.VerifyMFA"); segment != nil {
		defer segment.End()
	}

	unlock := uc.locks.Lock(username)
	defer unlock()

	pending := auth.PendingTokenFromContext(ctx)
	if pending != nil {
		used, err := uc.pending.Redeemed(ctx, pending.TokenID)
		if err != nil {
			return nil, fmt.Errorf("failed to check pending marker: %w", err)
		}
		if used {
			return nil, uc.rejectPending(ctx, username, "MFA rejected: pending marker already redeemed")
		}
	}

	maxAttempts := uc.cfg.MFAMaxAttempts

	count, err := uc.attempts.Get(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to load mfa attempts: %w", err)
	}
	if count >= maxAttempts {
		logger.WarnCtx(ctx, "MFA rejected: account locked", logger.String("username", username))
		uc.recordEvent(ctx, username, models.StepMFA, models.OutcomeLocked)
		return nil, auth.ErrMFALocked
	}

	if uc.verifier.Verify(username, code) {
		if pending != nil {
			if err := uc.redeemPending(ctx, username, pending); err != nil {
				return nil, err
			}
		}
		return uc.issueSession(ctx, username)
	}

	failures, err := uc.attempts.Increment(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to record mfa attempt: %w", err)
	}

	if failures >= maxAttempts {
		logger.WarnCtx(ctx, "MFA locked after too many attempts",
			logger.String("username", username),
			logger.Int("attempts", failures))
		uc.recordEvent(ctx, username, models.StepMFA, models.OutcomeLocked)
		if failures == maxAttempts {
			uc.publishEvent(ctx, uc.authGW.PublishMFALocked, username, models.OutcomeLocked, failures)
		}
		return nil, auth.ErrMFALocked
	}

	logger.WarnCtx(ctx, "MFA rejected: invalid code",
		logger.String("username", username),
		logger.Int("attempts", failures))
	uc.recordEvent(ctx, username, models.StepMFA, models.OutcomeRejected)

	return nil, &auth.MFARejectedError{AttemptsRemaining: maxAttempts - failures}
}

func (uc *AuthUC) redeemPending(ctx context.Context, username string, pending *models.SessionInfo) error {
	ttl := pending.ExpiresAt.Sub(uc.nowF())
	if ttl <= 0 {
		return uc.rejectPending(ctx, username, "MFA rejected: pending marker expired")
	}

	redeemed, err := uc.pending.Redeem(ctx, pending.TokenID, ttl)
	if err != nil {
		return fmt.Errorf("failed to redeem pending marker: %w", err)
	}
	if !redeemed {
		return uc.rejectPending(ctx, username, "MFA rejected: pending marker already redeemed")
	}
	return nil
}

func (uc *AuthUC) rejectPending(ctx context.Context, username, msg string) error {
	logger.WarnCtx(ctx, msg, logger.String("username", username))
	uc.recordEvent(ctx, username, models.StepMFA, models.OutcomePendingRejected)
	return auth.ErrPendingRequired
}

func (uc *AuthUC) issueSession(ctx context.Context, username string) (*models.SessionGrant, error) {
	if err := uc.attempts.Reset(ctx, username); err != nil {
		return nil, fmt.Errorf("failed to reset mfa attempts: %w", err)
	}

	token, claims, err := uc.signer.GenerateToken(username, models.StageSession, uc.nowF(), uc.sessionTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	logger.InfoCtx(ctx, "MFA verified, session issued", logger.String("username", username))
	uc.recordEvent(ctx, username, models.StepMFA, models.OutcomeVerified)
	uc.publishEvent(ctx, uc.authGW.PublishSessionIssued, username, models.OutcomeVerified, 0)

	return &models.SessionGrant{
		Username:  username,
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// ResetMFA clears the failure count, lifting a lockout
func (uc *AuthUC) ResetMFA(ctx context.Context, username string) error {
	return nrpkg.TraceUseCase(ctx, "AuthUC.ResetMFA", func(ctx context.Context) error {
		unlock := uc.locks.Lock(username)
		defer unlock()

		if err := uc.attempts.Reset(ctx, username); err != nil {
			return fmt.Errorf("failed to reset mfa attempts: %w", err)
		}

		logger.InfoCtx(ctx, "MFA attempts reset", logger.String("username", username))
		uc.recordEvent(ctx, username, models.StepAdmin, models.OutcomeReset)
		return nil
	})
}
