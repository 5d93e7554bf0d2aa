package repository

import (
	"context"
	"crypto/subtle"
	"sync"
	"time"

	"github.com/piresc/secureword/internal/pkg/models"
)

// MemoryChallengeStore keeps challenges in process memory. Expiry is lazy:
// entries stay until replaced, consumed or deleted.
type MemoryChallengeStore struct {
	mu         sync.Mutex
	challenges map[string]models.Challenge
}

// NewMemoryChallengeStore creates an empty in-memory challenge store
func NewMemoryChallengeStore() *MemoryChallengeStore {
	return &MemoryChallengeStore{challenges: make(map[string]models.Challenge)}
}

// Get returns a copy of the stored challenge
func (s *MemoryChallengeStore) Get(_ context.Context, username string) (*models.Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	challenge, ok := s.challenges[username]
	if !ok {
		return nil, nil
	}
	return &challenge, nil
}

// Put replaces the stored challenge
func (s *MemoryChallengeStore) Put(_ context.Context, challenge *models.Challenge, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.challenges[challenge.Username] = *challenge
	return nil
}

// Delete removes the stored challenge
func (s *MemoryChallengeStore) Delete(_ context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.challenges, username)
	return nil
}

// Consume deletes the challenge if value matches
func (s *MemoryChallengeStore) Consume(_ context.Context, username, value string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	challenge, ok := s.challenges[username]
	if !ok || subtle.ConstantTimeCompare([]byte(challenge.Value), []byte(value)) != 1 {
		return false, nil
	}

	delete(s.challenges, username)
	return true, nil
}

// MemoryRateLimiter records the last allowed call per key
type MemoryRateLimiter struct {
	mu       sync.Mutex
	lastSeen map[string]time.Time
	nowF     func() time.Time
}

// NewMemoryRateLimiter creates an in-memory rate limiter
func NewMemoryRateLimiter(nowF func() time.Time) *MemoryRateLimiter {
	if nowF == nil {
		nowF = time.Now
	}
	return &MemoryRateLimiter{
		lastSeen: make(map[string]time.Time),
		nowF:     nowF,
	}
}

// Allow checks and records under one lock
func (l *MemoryRateLimiter) Allow(_ context.Context, key string, cooldown time.Duration) (bool, time.Duration, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.nowF()
	if last, ok := l.lastSeen[key]; ok {
		if elapsed := now.Sub(last); elapsed < cooldown {
			return false, cooldown - elapsed, nil
		}
	}

	l.lastSeen[key] = now
	return true, 0, nil
}

type attemptEntry struct {
	count       int
	lastFailure time.Time
}

// MemoryAttemptCounter counts failures per username. With a positive lockoutTTL
// the count is forgotten lockoutTTL after the most recent failure.
type MemoryAttemptCounter struct {
	mu         sync.Mutex
	attempts   map[string]attemptEntry
	lockoutTTL time.Duration
	nowF       func() time.Time
}

// NewMemoryAttemptCounter creates an in-memory attempt counter
func NewMemoryAttemptCounter(lockoutTTL time.Duration, nowF func() time.Time) *MemoryAttemptCounter {
	if nowF == nil {
		nowF = time.Now
	}
	return &MemoryAttemptCounter{
		attempts:   make(map[string]attemptEntry),
		lockoutTTL: lockoutTTL,
		nowF:       nowF,
	}
}

// Get returns the current failure count
func (c *MemoryAttemptCounter) Get(_ context.Context, username string) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.current(username).count, nil
}

// Increment adds one failure and returns the new count
func (c *MemoryAttemptCounter) Increment(_ context.Context, username string) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry := c.current(username)
	entry.count++
	entry.lastFailure = c.nowF()
	c.attempts[username] = entry

	return entry.count, nil
}

// Reset clears the failure count
func (c *MemoryAttemptCounter) Reset(_ context.Context, username string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.attempts, username)
	return nil
}

// current must be called with mu held
func (c *MemoryAttemptCounter) current(username string) attemptEntry {
	entry, ok := c.attempts[username]
	if !ok {
		return attemptEntry{}
	}
	if c.lockoutTTL > 0 && c.nowF().Sub(entry.lastFailure) >= c.lockoutTTL {
		delete(c.attempts, username)
		return attemptEntry{}
	}
	return entry
}

// MemoryPendingLedger remembers redeemed token ids until their expiry.
// Expired ids are swept on each Redeem.
type MemoryPendingLedger struct {
	mu       sync.Mutex
	redeemed map[string]time.Time
	nowF     func() time.Time
}

// NewMemoryPendingLedger creates an empty in-memory ledger
func NewMemoryPendingLedger(nowF func() time.Time) *MemoryPendingLedger {
	if nowF == nil {
		nowF = time.Now
	}
	return &MemoryPendingLedger{
		redeemed: make(map[string]time.Time),
		nowF:     nowF,
	}
}

// Redeemed reports whether tokenID was redeemed and has not expired yet
func (l *MemoryPendingLedger) Redeemed(_ context.Context, tokenID string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	expiresAt, ok := l.redeemed[tokenID]
	return ok && l.nowF().Before(expiresAt), nil
}

// Redeem records tokenID for ttl unless it is already recorded
func (l *MemoryPendingLedger) Redeem(_ context.Context, tokenID string, ttl time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.nowF()
	for id, expiresAt := range l.redeemed {
		if !now.Before(expiresAt) {
			delete(l.redeemed, id)
		}
	}

	if _, ok := l.redeemed[tokenID]; ok {
		return false, nil
	}
	l.redeemed[tokenID] = now.Add(ttl)
	return true, nil
}
