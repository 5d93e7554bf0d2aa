package auth

import (
	"context"

	"github.com/piresc/secureword/internal/pkg/models"
)

type (
	clientIPKey     struct{}
	pendingTokenKey struct{}
)

// WithClientIP attaches the caller address for the audit log
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey{}, ip)
}

// ClientIPFromContext returns the caller address or ""
func ClientIPFromContext(ctx context.Context) string {
	ip, _ := ctx.Value(clientIPKey{}).(string)
	return ip
}

// WithPendingToken attaches the validated MFA-pending marker presented with the request
func WithPendingToken(ctx context.Context, pending *models.SessionInfo) context.Context {
	return context.WithValue(ctx, pendingTokenKey{}, pending)
}

// PendingTokenFromContext returns the attached marker or nil
func PendingTokenFromContext(ctx context.Context) *models.SessionInfo {
	pending, _ := ctx.Value(pendingTokenKey{}).(*models.SessionInfo)
	return pending
}
