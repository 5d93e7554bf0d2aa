// Package secret derives purpose-bound keys from the single configured master secret.
package secret

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// KeySize is the length of every derived key
const KeySize = 32

// Key purposes
const (
	PurposeSecureWord   = "secureword/challenge/v1"
	PurposeSessionToken = "secureword/session-token/v1"
)

// Derive expands master into a KeySize key bound to purpose
func Derive(master []byte, purpose string) ([]byte, error) {
	if len(master) == 0 {
		return nil, errors.New("master secret is empty")
	}

	key := make([]byte, KeySize)
	reader := hkdf.New(sha256.New, master, nil, []byte(purpose))
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, fmt.Errorf("failed to derive %s key: %w", purpose, err)
	}

	return key, nil
}

// Random returns a fresh random master secret. Used when none is configured,
// which means secure words and tokens do not survive a restart.
func Random() ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate secret: %w", err)
	}
	return key, nil
}
