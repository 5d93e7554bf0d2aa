package auth

import (
	"errors"
	"fmt"
	"time"
)

// Login flow failures. Handlers match them with errors.Is.
var (
	// ErrRateLimited is transient: retry after the cooldown
	ErrRateLimited = errors.New("rate limited")
	// ErrChallengeInvalid ends the attempt: restart from challenge issuance
	ErrChallengeInvalid = errors.New("secure word invalid")
	// ErrCredentialsInvalid ends the attempt without mutating state
	ErrCredentialsInvalid = errors.New("invalid credentials")
	// ErrMFARejected is recoverable and has consumed one attempt
	ErrMFARejected = errors.New("invalid one-time code")
	// ErrMFALocked holds until an external reset
	ErrMFALocked = errors.New("mfa locked")
	// ErrPendingRequired means the code step was reached without passing the password step
	ErrPendingRequired = errors.New("password step not completed")
	// ErrSessionInvalid covers any token that fails signature, expiry, issuer or stage checks
	ErrSessionInvalid = errors.New("session invalid")
)

// RateLimitError carries the remaining cooldown
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s: retry after %s", ErrRateLimited, e.RetryAfter)
}

func (e *RateLimitError) Unwrap() error {
	return ErrRateLimited
}

// MFARejectedError carries the remaining attempts as a display hint
type MFARejectedError struct {
	AttemptsRemaining int
}

func (e *MFARejectedError) Error() string {
	return fmt.Sprintf("%s: %d attempts remaining", ErrMFARejected, e.AttemptsRemaining)
}

func (e *MFARejectedError) Unwrap() error {
	return ErrMFARejected
}
