package repository

import (
	"fmt"
	"time"

	"github.com/piresc/secureword/internal/pkg/database"
	"github.com/piresc/secureword/internal/pkg/models"
	"github.com/piresc/secureword/services/auth"
)

// NewStores builds the challenge, rate limit, attempt and pending-marker stores for the configured backend
func NewStores(cfg models.AuthConfig, redisClient *database.RedisClient, nowF func() time.Time) (*auth.Stores, error) {
	switch cfg.StoreBackend {
	case models.StoreBackendMemory, "":
		return &auth.Stores{
			Challenges: NewMemoryChallengeStore(),
			Limiter:    NewMemoryRateLimiter(nowF),
			Attempts:   NewMemoryAttemptCounter(cfg.MFALockoutTTL, nowF),
			Pending:    NewMemoryPendingLedger(nowF),
		}, nil
	case models.StoreBackendRedis:
		if redisClient == nil {
			return nil, fmt.Errorf("store backend %q requires a redis client", cfg.StoreBackend)
		}
		return &auth.Stores{
			Challenges: NewRedisChallengeStore(redisClient),
			Limiter:    NewRedisRateLimiter(redisClient, nowF),
			Attempts:   NewRedisAttemptCounter(redisClient, cfg.MFALockoutTTL),
			Pending:    NewRedisPendingLedger(redisClient),
		}, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
