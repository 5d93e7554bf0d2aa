package auth

import (
	"context"

	"github.com/piresc/secureword/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/piresc/secureword/services/auth AuthUC

// AuthUC represents the login flow usecase interface
type AuthUC interface {
	// secure word step
	IssueChallenge(ctx context.Context, username string) (*models.SecureWordResponse, error)
	ClearChallenge(ctx context.Context, username string) error

	// password step
	VerifyCredentials(ctx context.Context, username, secureWord, hashedPassword string) (*models.PendingGrant, error)
	ValidatePending(ctx context.Context, token string) (*models.SessionInfo, error)

	// one-time code step
	VerifyMFA(ctx context.Context, username, code string) (*models.SessionGrant, error)
	ResetMFA(ctx context.Context, username string) error

	// session
	ValidateSession(ctx context.Context, token string) (*models.SessionInfo, error)
	GetTransactionHistory(ctx context.Context, username string) (*models.TransactionHistory, error)

	// audit
	ListLoginEvents(ctx context.Context, filter models.LoginEventFilter) ([]*models.LoginEvent, error)
}

// MFAVerifier checks a one-time code for a username
type MFAVerifier interface {
	Verify(username, code string) bool
}
