package gateway

import (
	"context"

	"github.com/piresc/secureword/internal/pkg/models"
	"github.com/piresc/secureword/services/auth"
)

// Publisher sends a JSON message to an NSQ topic
type Publisher interface {
	Publish(topic string, message interface{}) error
}

// NewAuthGW creates a gateway that publishes through the NSQ producer
func NewAuthGW(publisher Publisher) auth.AuthGW {
	return &authGW{publisher: publisher}
}

// nopGW is used when NSQ is disabled
type nopGW struct{}

// NewNopAuthGW returns a gateway that drops every event
func NewNopAuthGW() auth.AuthGW {
	return nopGW{}
}

func (nopGW) PublishMFALocked(context.Context, *models.AuthEvent) error { return nil }

func (nopGW) PublishSessionIssued(context.Context, *models.AuthEvent) error { return nil }
