package usecase

import (
	"context"
	"fmt"

	"github.com/piresc/secureword/internal/pkg/logger"
	"github.com/piresc/secureword/internal/pkg/models"
	nrpkg "github.com/piresc/secureword/internal/pkg/newrelic"
	"github.com/piresc/secureword/services/auth"
)

// IssueChallenge returns the caller's secure word, reusing a still valid one
func (uc *AuthUC) IssueChallenge(ctx context.Context, username string) (*models.SecureWordResponse, error) {
	if segment := nrpkg.StartSegment(ctx, "AuthUC.IssueChallenge"); segment != nil {
		defer segment.End()
	}

	unlock := uc.locks.Lock(username)
	defer unlock()

	allowed, retryAfter, err := uc.limiter.Allow(ctx, username, uc.cfg.ChallengeCooldown)
	if err != nil {
		return nil, fmt.Errorf("failed to check rate limit: %w", err)
	}
	if !allowed {
		logger.WarnCtx(ctx, "Secure word request rate limited",
			logger.String("username", username),
			logger.Duration("retry_after", retryAfter))
		uc.recordEvent(ctx, username, models.StepChallenge, models.OutcomeRateLimited)
		return nil, &auth.RateLimitError{RetryAfter: retryAfter}
	}

	now := uc.nowF()

	existing, err := uc.challenges.Get(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to load challenge: %w", err)
	}

	if existing != nil && challengeValid(existing, now, uc.cfg.ChallengeTTL) {
		logger.InfoCtx(ctx, "Reusing valid secure word", logger.String("username", username))
		uc.recordEvent(ctx, username, models.StepChallenge, models.OutcomeReused)
		return &models.SecureWordResponse{
			SecureWord: existing.Value,
			ExpiresIn:  expiresIn(existing, now, uc.cfg.ChallengeTTL),
			IssuedAt:   existing.IssuedAt,
		}, nil
	}

	issuedAt := now.UnixMilli()
	challenge := &models.Challenge{
		Username: username,
		Value:    deriveSecureWord(uc.wordKey, username, issuedAt, uc.cfg.ChallengeLength),
		IssuedAt: issuedAt,
	}
	if err := uc.challenges.Put(ctx, challenge, uc.cfg.ChallengeTTL); err != nil {
		return nil, fmt.Errorf("failed to store challenge: %w", err)
	}

	logger.InfoCtx(ctx, "Issued secure word", logger.String("username", username))
	uc.recordEvent(ctx, username, models.StepChallenge, models.OutcomeIssued)

	return &models.SecureWordResponse{
		SecureWord: challenge.Value,
		ExpiresIn:  int(uc.cfg.ChallengeTTL.Seconds()),
		IssuedAt:   issuedAt,
	}, nil
}

// ClearChallenge deletes the stored secure word for username
func (uc *AuthUC) ClearChallenge(ctx context.Context, username string) error {
	unlock := uc.locks.Lock(username)
	defer unlock()

	if err := uc.challenges.Delete(ctx, username); err != nil {
		return fmt.Errorf("failed to clear challenge: %w", err)
	}

	logger.InfoCtx(ctx, "Cleared secure word", logger.String("username", username))
	return nil
}
