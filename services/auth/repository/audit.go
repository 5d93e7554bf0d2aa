package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/jmoiron/sqlx"
	"github.com/piresc/secureword/internal/pkg/models"
)

const (
	defaultEventLimit = 50
	maxEventLimit     = 500
)

const createLoginEventsTable = `
CREATE TABLE IF NOT EXISTS login_events (
	id         UUID PRIMARY KEY,
	username   TEXT NOT NULL,
	step       TEXT NOT NULL,
	outcome    TEXT NOT NULL,
	client_ip  TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS login_events_username_created_at_idx
	ON login_events (username, created_at DESC);
`

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return defaultEventLimit
	}
	if limit > maxEventLimit {
		return maxEventLimit
	}
	return limit
}

// PostgresAuditRepo appends login events to the login_events table
type PostgresAuditRepo struct {
	db *sqlx.DB
}

// NewPostgresAuditRepo creates a Postgres backed audit repository
func NewPostgresAuditRepo(db *sqlx.DB) *PostgresAuditRepo {
	return &PostgresAuditRepo{db: db}
}

// EnsureSchema creates the login_events table if missing
func (r *PostgresAuditRepo) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createLoginEventsTable); err != nil {
		return fmt.Errorf("failed to create login_events table: %w", err)
	}
	return nil
}

// Record inserts one login event
func (r *PostgresAuditRepo) Record(ctx context.Context, event *models.LoginEvent) error {
	query := `
		INSERT INTO login_events (id, username, step, outcome, client_ip, created_at)
		VALUES (:id, :username, :step, :outcome, :client_ip, :created_at)
	`

	if _, err := r.db.NamedExecContext(ctx, query, event); err != nil {
		return fmt.Errorf("failed to record login event: %w", err)
	}
	return nil
}

// List returns the newest events first
func (r *PostgresAuditRepo) List(ctx context.Context, filter models.LoginEventFilter) ([]*models.LoginEvent, error) {
	limit := normalizeLimit(filter.Limit)
	events := []*models.LoginEvent{}

	var err error
	if filter.Username != "" {
		query := `
			SELECT id, username, step, outcome, client_ip, created_at
			FROM login_events
			WHERE username = $1
			ORDER BY created_at DESC
			LIMIT $2
		`
		err = r.db.SelectContext(ctx, &events, query, filter.Username, limit)
	} else {
		query := `
			SELECT id, username, step, outcome, client_ip, created_at
			FROM login_events
			ORDER BY created_at DESC
			LIMIT $1
		`
		err = r.db.SelectContext(ctx, &events, query, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list login events: %w", err)
	}

	return events, nil
}

// MemoryAuditRepo keeps the most recent events in a bounded ring
type MemoryAuditRepo struct {
	mu       sync.Mutex
	events   []*models.LoginEvent
	capacity int
}

// NewMemoryAuditRepo creates an in-memory audit repository holding up to capacity events
func NewMemoryAuditRepo(capacity int) *MemoryAuditRepo {
	if capacity <= 0 {
		capacity = maxEventLimit
	}
	return &MemoryAuditRepo{capacity: capacity}
}

// Record appends an event, dropping the oldest when full
func (r *MemoryAuditRepo) Record(_ context.Context, event *models.LoginEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *event
	r.events = append(r.events, &stored)
	if len(r.events) > r.capacity {
		r.events = r.events[len(r.events)-r.capacity:]
	}
	return nil
}

// List returns the newest events first
func (r *MemoryAuditRepo) List(_ context.Context, filter models.LoginEventFilter) ([]*models.LoginEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	limit := normalizeLimit(filter.Limit)
	events := make([]*models.LoginEvent, 0, limit)
	for i := len(r.events) - 1; i >= 0 && len(events) < limit; i-- {
		if filter.Username != "" && r.events[i].Username != filter.Username {
			continue
		}
		event := *r.events[i]
		events = append(events, &event)
	}
	return events, nil
}
