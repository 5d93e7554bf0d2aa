package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/piresc/secureword/internal/pkg/logger"
	"github.com/piresc/secureword/internal/pkg/models"
	"github.com/piresc/secureword/services/auth"
)

// recordEvent appends to the audit log. Failures are logged and never fail the flow.
func (uc *AuthUC) recordEvent(ctx context.Context, username, step, outcome string) {
	if uc.auditRepo == nil {
		return
	}

	event := &models.LoginEvent{
		ID:        uuid.New(),
		Username:  username,
		Step:      step,
		Outcome:   outcome,
		ClientIP:  auth.ClientIPFromContext(ctx),
		CreatedAt: uc.nowF().UTC(),
	}

	err := uc.auditBreaker.Execute(ctx, func(ctx context.Context) error {
		return uc.auditRepo.Record(ctx, event)
	})
	if err != nil {
		logger.WarnCtx(ctx, "Failed to record login event",
			logger.String("username", username),
			logger.String("step", step),
			logger.String("outcome", outcome),
			logger.Err(err))
	}
}

// publishEvent sends an auth event through publish. Failures are logged and never fail the flow.
func (uc *AuthUC) publishEvent(
	ctx context.Context,
	publish func(context.Context, *models.AuthEvent) error,
	username, outcome string,
	attempts int,
) {
	event := &models.AuthEvent{
		ID:         uuid.New().String(),
		Username:   username,
		Outcome:    outcome,
		Attempts:   attempts,
		OccurredAt: uc.nowF().UTC(),
	}

	err := uc.eventBreaker.Execute(ctx, func(ctx context.Context) error {
		return publish(ctx, event)
	})
	if err != nil {
		logger.WarnCtx(ctx, "Failed to publish auth event",
			logger.String("username", username),
			logger.String("outcome", outcome),
			logger.Err(err))
	}
}

// ListLoginEvents returns audit log entries, newest first
func (uc *AuthUC) ListLoginEvents(ctx context.Context, filter models.LoginEventFilter) ([]*models.LoginEvent, error) {
	if uc.auditRepo == nil {
		return []*models.LoginEvent{}, nil
	}

	events, err := uc.auditRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list login events: %w", err)
	}
	return events, nil
}
