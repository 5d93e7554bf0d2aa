package http

import (
	"time"

	"github.com/piresc/secureword/internal/pkg/models"
	"github.com/piresc/secureword/services/auth"
)

const defaultSessionMaxAge = time.Hour

// AuthHandler handles HTTP requests for the login flow
type AuthHandler struct {
	authUC         auth.AuthUC
	requirePending bool
	cookieSecure   bool
	pendingTTL     time.Duration
	sessionTTL     time.Duration
}

// NewAuthHandler creates a new auth HTTP handler
func NewAuthHandler(authUC auth.AuthUC, configs *models.Config) *AuthHandler {
	sessionTTL := time.Duration(configs.JWT.Expiration) * time.Minute
	if sessionTTL <= 0 {
		sessionTTL = defaultSessionMaxAge
	}

	return &AuthHandler{
		authUC:         authUC,
		requirePending: configs.Auth.RequirePending,
		cookieSecure:   configs.Auth.CookieSecure,
		pendingTTL:     configs.Auth.PendingTTL,
		sessionTTL:     sessionTTL,
	}
}
