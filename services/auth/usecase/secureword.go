package usecase

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"

	"github.com/piresc/secureword/internal/pkg/models"
)

// deriveSecureWord returns the first length hex chars of HMAC-SHA256(key, username|issuedAt)
func deriveSecureWord(key []byte, username string, issuedAt int64, length int) string {
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(username))
	mac.Write([]byte{'|'})
	mac.Write([]byte(strconv.FormatInt(issuedAt, 10)))

	sum := hex.EncodeToString(mac.Sum(nil))
	if length > len(sum) {
		length = len(sum)
	}
	return sum[:length]
}

// challengeValid reports whether now - issuedAt < ttl
func challengeValid(challenge *models.Challenge, now time.Time, ttl time.Duration) bool {
	return now.Sub(challenge.IssuedTime()) < ttl
}

// expiresIn returns whole seconds left, clamped to [0, ttl]
func expiresIn(challenge *models.Challenge, now time.Time, ttl time.Duration) int {
	ttlSeconds := int(ttl / time.Second)
	age := now.Sub(challenge.IssuedTime())
	if age < 0 {
		return ttlSeconds
	}

	remaining := ttlSeconds - int(age/time.Second)
	if remaining < 0 {
		return 0
	}
	return remaining
}
