package models

import (
	"time"
)

// Challenge is the secure word issued to a username before the password step
type Challenge struct {
	Username string `json:"username"`
	Value    string `json:"value"`
	IssuedAt int64  `json:"issued_at"` // unix milliseconds
}

// IssuedTime returns the issue timestamp as a time.Time
func (c *Challenge) IssuedTime() time.Time {
	return time.UnixMilli(c.IssuedAt)
}

// SecureWordRequest represents a request for a secure word
type SecureWordRequest struct {
	Username string `json:"username" validate:"required"`
}

// SecureWordResponse is returned to the caller after a challenge is issued or reused
type SecureWordResponse struct {
	SecureWord string `json:"secureWord"`
	ExpiresIn  int    `json:"expiresIn"`
	IssuedAt   int64  `json:"issuedAt"`
}

// LoginRequest represents the password step of the login flow
type LoginRequest struct {
	Username       string `json:"username" validate:"required"`
	HashedPassword string `json:"hashedPassword"`
	SecureWord     string `json:"secureWord"`
}

// VerifyMFARequest represents a one-time code submission
type VerifyMFARequest struct {
	Username string `json:"username" validate:"required"`
	Code     string `json:"code"`
}

// ResetMFARequest represents an operator request to lift a lockout
type ResetMFARequest struct {
	Username string `json:"username" validate:"required"`
}

// PendingGrant is handed out after the password step and admits the caller to the code step
type PendingGrant struct {
	Username  string
	Token     string
	ExpiresAt time.Time
}

// SessionGrant is handed out after the one-time code step
type SessionGrant struct {
	Username  string
	Token     string
	ExpiresAt time.Time
}

// SessionInfo describes a validated token
type SessionInfo struct {
	Username  string    `json:"username"`
	Stage     string    `json:"stage"`
	TokenID   string    `json:"tokenId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Token stages
const (
	StagePending = "mfa_pending"
	StageSession = "session"
)
