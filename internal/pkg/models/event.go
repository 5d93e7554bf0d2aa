package models

import (
	"time"

	"github.com/google/uuid"
)

// Login flow steps recorded in the audit log
const (
	StepChallenge   = "challenge"
	StepCredentials = "credentials"
	StepMFA         = "mfa"
	StepAdmin       = "admin"
)

// Outcomes recorded in the audit log
const (
	OutcomeIssued             = "issued"
	OutcomeReused             = "reused"
	OutcomeRateLimited        = "rate_limited"
	OutcomeChallengeInvalid   = "challenge_invalid"
	OutcomeCredentialsInvalid = "credentials_invalid"
	OutcomePending            = "pending"
	OutcomeVerified           = "verified"
	OutcomeRejected           = "rejected"
	OutcomeLocked             = "locked"
	OutcomeReset              = "reset"
	OutcomePendingRejected    = "pending_rejected"
)

// LoginEvent is one row of the login audit log
type LoginEvent struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Username  string    `json:"username" db:"username"`
	Step      string    `json:"step" db:"step"`
	Outcome   string    `json:"outcome" db:"outcome"`
	ClientIP  string    `json:"client_ip" db:"client_ip"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// LoginEventFilter narrows an audit log listing
type LoginEventFilter struct {
	Username string
	Limit    int
}

// AuthEvent is published to the message bus when a flow reaches a notable state
type AuthEvent struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	Outcome    string    `json:"outcome"`
	Attempts   int       `json:"attempts,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Transaction is one row of the mock dashboard dataset
type Transaction struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	ReferenceID string `json:"referenceId"`
	To          string `json:"to"`
	Type        string `json:"type"`
	Amount      string `json:"amount"`
}

// TransactionHistory is the protected dashboard payload
type TransactionHistory struct {
	Transactions []Transaction `json:"transactions"`
	Total        int           `json:"total"`
}
