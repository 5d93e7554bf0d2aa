package auth

import (
	"context"
	"time"

	"github.com/piresc/secureword/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/piresc/secureword/services/auth ChallengeStore,RateLimiter,AttemptCounter,AuditRepo,PendingLedger

// ChallengeStore holds at most one challenge per username
type ChallengeStore interface {
	// Get returns nil, nil when no challenge is stored
	Get(ctx context.Context, username string) (*models.Challenge, error)
	// Put replaces the stored challenge. ttl bounds how long the store may keep it.
	Put(ctx context.Context, challenge *models.Challenge, ttl time.Duration) error
	Delete(ctx context.Context, username string) error
	// Consume deletes the challenge only if its value equals value, reporting whether it did
	Consume(ctx context.Context, username, value string) (bool, error)
}

// RateLimiter is a per-key cooldown gate
type RateLimiter interface {
	// Allow records now and returns true when no call was allowed for key within cooldown.
	// A rejected call leaves the stored time untouched and reports the remaining cooldown.
	Allow(ctx context.Context, key string, cooldown time.Duration) (bool, time.Duration, error)
}

// AttemptCounter counts consecutive failed one-time code submissions
type AttemptCounter interface {
	Get(ctx context.Context, username string) (int, error)
	// Increment returns the post-increment value
	Increment(ctx context.Context, username string) (int, error)
	Reset(ctx context.Context, username string) error
}

// PendingLedger remembers redeemed MFA-pending markers until they expire
type PendingLedger interface {
	Redeemed(ctx context.Context, tokenID string) (bool, error)
	// Redeem marks tokenID used for ttl. It returns false when tokenID was already redeemed.
	Redeem(ctx context.Context, tokenID string, ttl time.Duration) (bool, error)
}

// AuditRepo persists login events
type AuditRepo interface {
	Record(ctx context.Context, event *models.LoginEvent) error
	List(ctx context.Context, filter models.LoginEventFilter) ([]*models.LoginEvent, error)
}

// Stores groups the per-username state the login flow reads and writes
type Stores struct {
	Challenges ChallengeStore
	Limiter    RateLimiter
	Attempts   AttemptCounter
	Pending    PendingLedger
}
