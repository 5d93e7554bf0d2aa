package gateway

import (
	"context"
	"fmt"

	"github.com/piresc/secureword/internal/pkg/constants"
	"github.com/piresc/secureword/internal/pkg/logger"
	"github.com/piresc/secureword/internal/pkg/models"
)

// authGW handles auth event publishing
type authGW struct {
	publisher Publisher
}

// PublishMFALocked announces that a username hit the attempt limit
func (g *authGW) PublishMFALocked(ctx context.Context, event *models.AuthEvent) error {
	return g.publish(ctx, constants.TopicMFALocked, event)
}

// PublishSessionIssued announces a completed login
func (g *authGW) PublishSessionIssued(ctx context.Context, event *models.AuthEvent) error {
	return g.publish(ctx, constants.TopicSessionIssued, event)
}

func (g *authGW) publish(ctx context.Context, topic string, event *models.AuthEvent) error {
	if err := g.publisher.Publish(topic, event); err != nil {
		return fmt.Errorf("failed to publish %s: %w", topic, err)
	}

	logger.InfoCtx(ctx, "Published auth event",
		logger.String("topic", topic),
		logger.String("username", event.Username),
		logger.String("outcome", event.Outcome))
	return nil
}
