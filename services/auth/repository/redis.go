package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/piresc/secureword/internal/pkg/constants"
	"github.com/piresc/secureword/internal/pkg/database"
	"github.com/piresc/secureword/internal/pkg/models"
)

const (
	fieldValue    = "value"
	fieldIssuedAt = "issued_at"
)

// consumeScript deletes the challenge hash only when its value matches
var consumeScript = redis.NewScript(`
local v = redis.call('HGET', KEYS[1], 'value')
if v and v == ARGV[1] then
	redis.call('DEL', KEYS[1])
	return 1
end
return 0
`)

// RedisChallengeStore keeps challenges as Redis hashes that expire with the challenge TTL
type RedisChallengeStore struct {
	redisClient *database.RedisClient
}

// NewRedisChallengeStore creates a Redis backed challenge store
func NewRedisChallengeStore(redisClient *database.RedisClient) *RedisChallengeStore {
	return &RedisChallengeStore{redisClient: redisClient}
}

// Get loads the challenge for username
func (s *RedisChallengeStore) Get(ctx context.Context, username string) (*models.Challenge, error) {
	key := fmt.Sprintf(constants.KeyAuthChallenge, username)

	fields, err := s.redisClient.Client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get challenge: %w", err)
	}
	if len(fields) == 0 {
		return nil, nil
	}

	issuedAt, err := strconv.ParseInt(fields[fieldIssuedAt], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse challenge issue time: %w", err)
	}

	return &models.Challenge{
		Username: username,
		Value:    fields[fieldValue],
		IssuedAt: issuedAt,
	}, nil
}

// Put stores the challenge with ttl
func (s *RedisChallengeStore) Put(ctx context.Context, challenge *models.Challenge, ttl time.Duration) error {
	key := fmt.Sprintf(constants.KeyAuthChallenge, challenge.Username)

	_, err := s.redisClient.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, fieldValue, challenge.Value, fieldIssuedAt, challenge.IssuedAt)
		pipe.PExpire(ctx, key, ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to store challenge: %w", err)
	}
	return nil
}

// Delete removes the challenge
func (s *RedisChallengeStore) Delete(ctx context.Context, username string) error {
	key := fmt.Sprintf(constants.KeyAuthChallenge, username)
	if err := s.redisClient.Client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete challenge: %w", err)
	}
	return nil
}

// Consume atomically compares and deletes the challenge
func (s *RedisChallengeStore) Consume(ctx context.Context, username, value string) (bool, error) {
	key := fmt.Sprintf(constants.KeyAuthChallenge, username)

	deleted, err := consumeScript.Run(ctx, s.redisClient.Client, []string{key}, value).Int()
	if err != nil {
		return false, fmt.Errorf("failed to consume challenge: %w", err)
	}
	return deleted == 1, nil
}

// RedisRateLimiter gates keys with SET NX PX so the cooldown is shared by every instance
type RedisRateLimiter struct {
	redisClient *database.RedisClient
	nowF        func() time.Time
}

// NewRedisRateLimiter creates a Redis backed rate limiter
func NewRedisRateLimiter(redisClient *database.RedisClient, nowF func() time.Time) *RedisRateLimiter {
	if nowF == nil {
		nowF = time.Now
	}
	return &RedisRateLimiter{redisClient: redisClient, nowF: nowF}
}

// Allow sets the key only when absent; its TTL is the remaining cooldown
func (l *RedisRateLimiter) Allow(ctx context.Context, key string, cooldown time.Duration) (bool, time.Duration, error) {
	if cooldown <= 0 {
		return true, 0, nil
	}

	redisKey := fmt.Sprintf(constants.KeyAuthRateLimit, key)

	// a second pass covers the key expiring between SETNX and PTTL
	for i := 0; i < 2; i++ {
		ok, err := l.redisClient.Client.SetNX(ctx, redisKey, l.nowF().UnixMilli(), cooldown).Result()
		if err != nil {
			return false, 0, fmt.Errorf("failed to check rate limit: %w", err)
		}
		if ok {
			return true, 0, nil
		}

		ttl, err := l.redisClient.Client.PTTL(ctx, redisKey).Result()
		if err != nil {
			return false, 0, fmt.Errorf("failed to read rate limit ttl: %w", err)
		}
		if ttl > 0 {
			return false, ttl, nil
		}
	}

	return false, cooldown, nil
}

// RedisAttemptCounter counts failures with INCR. With a positive lockoutTTL
// every failure refreshes the key expiry.
type RedisAttemptCounter struct {
	redisClient *database.RedisClient
	lockoutTTL  time.Duration
}

// NewRedisAttemptCounter creates a Redis backed attempt counter
func NewRedisAttemptCounter(redisClient *database.RedisClient, lockoutTTL time.Duration) *RedisAttemptCounter {
	return &RedisAttemptCounter{redisClient: redisClient, lockoutTTL: lockoutTTL}
}

// Get returns the current failure count
func (c *RedisAttemptCounter) Get(ctx context.Context, username string) (int, error) {
	key := fmt.Sprintf(constants.KeyAuthMFAAttempts, username)

	count, err := c.redisClient.Client.Get(ctx, key).Int()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get mfa attempts: %w", err)
	}
	return count, nil
}

// Increment atomically adds one failure
func (c *RedisAttemptCounter) Increment(ctx context.Context, username string) (int, error) {
	key := fmt.Sprintf(constants.KeyAuthMFAAttempts, username)

	var incr *redis.IntCmd
	_, err := c.redisClient.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		if c.lockoutTTL > 0 {
			pipe.Expire(ctx, key, c.lockoutTTL)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to increment mfa attempts: %w", err)
	}
	return int(incr.Val()), nil
}

// Reset clears the failure count
func (c *RedisAttemptCounter) Reset(ctx context.Context, username string) error {
	key := fmt.Sprintf(constants.KeyAuthMFAAttempts, username)
	if err := c.redisClient.Client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to reset mfa attempts: %w", err)
	}
	return nil
}

// RedisPendingLedger marks redeemed token ids with SET NX so a marker is redeemed once across instances
type RedisPendingLedger struct {
	redisClient *database.RedisClient
}

// NewRedisPendingLedger creates a Redis backed pending-marker ledger
func NewRedisPendingLedger(redisClient *database.RedisClient) *RedisPendingLedger {
	return &RedisPendingLedger{redisClient: redisClient}
}

// Redeemed reports whether tokenID is still recorded
func (l *RedisPendingLedger) Redeemed(ctx context.Context, tokenID string) (bool, error) {
	key := fmt.Sprintf(constants.KeyAuthPendingUsed, tokenID)

	n, err := l.redisClient.Client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check pending marker: %w", err)
	}
	return n > 0, nil
}

// Redeem records tokenID until the marker itself would have expired
func (l *RedisPendingLedger) Redeem(ctx context.Context, tokenID string, ttl time.Duration) (bool, error) {
	key := fmt.Sprintf(constants.KeyAuthPendingUsed, tokenID)

	ok, err := l.redisClient.Client.SetNX(ctx, key, 1, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to redeem pending marker: %w", err)
	}
	return ok, nil
}
