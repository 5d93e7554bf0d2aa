package auth

import (
	"context"

	"github.com/piresc/secureword/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks github.com/piresc/secureword/services/auth AuthGW

// AuthGW publishes login flow events to other services
type AuthGW interface {
	PublishMFALocked(ctx context.Context, event *models.AuthEvent) error
	PublishSessionIssued(ctx context.Context, event *models.AuthEvent) error
}
