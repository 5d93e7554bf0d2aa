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

// VerifyCredentials checks the secure word before the password proof and,
// on success, consumes the challenge, clears the MFA failure count and hands
// out an MFA-pending marker.
// There is no credential store: any non-empty password proof is accepted.
func (uc *AuthUC) VerifyCredentials(ctx context.Context, username, secureWord, hashedPassword string) (*models.PendingGrant, error) {
	if segment := nrpkg.StartSegment(ctx, "AuthUC.VerifyCredentials"); segment != nil {
		defer segment.End()
	}

	unlock := uc.locks.Lock(username)
	defer unlock()

	now := uc.nowF()

	stored, err := uc.challenges.Get(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to load challenge: %w", err)
	}

	if stored != nil && !challengeValid(stored, now, uc.cfg.ChallengeTTL) {
		if err := uc.challenges.Delete(ctx, username); err != nil {
			logger.WarnCtx(ctx, "Failed to delete expired challenge",
				logger.String("username", username),
				logger.Err(err))
		}
		stored = nil
	}

	if stored == nil || subtle.ConstantTimeCompare([]byte(stored.Value), []byte(secureWord)) != 1 {
		return nil, uc.rejectChallenge(ctx, username)
	}

	if hashedPassword == "" {
		logger.WarnCtx(ctx, "Login rejected: missing password proof", logger.String("username", username))
		uc.recordEvent(ctx, username, models.StepCredentials, models.OutcomeCredentialsInvalid)
		return nil, auth.ErrCredentialsInvalid
	}

	consumed, err := uc.challenges.Consume(ctx, username, secureWord)
	if err != nil {
		return nil, fmt.Errorf("failed to consume challenge: %w", err)
	}
	if !consumed {
		return nil, uc.rejectChallenge(ctx, username)
	}

	// a completed password step is the external reset that lifts an MFA lockout
	if err := uc.attempts.Reset(ctx, username); err != nil {
		return nil, fmt.Errorf("failed to reset mfa attempts: %w", err)
	}

	token, claims, err := uc.signer.GenerateToken(username, models.StagePending, now, uc.cfg.PendingTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to issue pending token: %w", err)
	}

	logger.InfoCtx(ctx, "Password step passed", logger.String("username", username))
	uc.recordEvent(ctx, username, models.StepCredentials, models.OutcomePending)

	return &models.PendingGrant{
		Username:  username,
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func (uc *AuthUC) rejectChallenge(ctx context.Context, username string) error {
	logger.WarnCtx(ctx, "Login rejected: secure word invalid", logger.String("username", username))
	uc.recordEvent(ctx, username, models.StepCredentials, models.OutcomeChallengeInvalid)
	return auth.ErrChallengeInvalid
}
