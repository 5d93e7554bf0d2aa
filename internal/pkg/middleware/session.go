package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/piresc/secureword/internal/pkg/constants"
	"github.com/piresc/secureword/internal/pkg/models"
	"github.com/piresc/secureword/internal/utils"
)

const (
	// ContextKeyUsername holds the authenticated username
	ContextKeyUsername = "username"
	// ContextKeySession holds the validated *models.SessionInfo
	ContextKeySession = "session"
)

// SessionValidator validates a presented session credential
type SessionValidator interface {
	ValidateSession(ctx context.Context, token string) (*models.SessionInfo, error)
}

// SessionAuthMiddleware requires a valid session token from the auth cookie or a Bearer header
func SessionAuthMiddleware(validator SessionValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString := ExtractSessionToken(c)
			if tokenString == "" {
				return utils.UnauthorizedResponse(c, "Unauthorized")
			}

			session, err := validator.ValidateSession(c.Request().Context(), tokenString)
			if err != nil {
				return utils.UnauthorizedResponse(c, "Invalid token")
			}

			c.Set(ContextKeyUsername, session.Username)
			c.Set(ContextKeySession, session)
			AddAttribute(c, "user.name", session.Username)

			return next(c)
		}
	}
}

// ExtractSessionToken returns the session token, preferring the cookie over the Authorization header
func ExtractSessionToken(c echo.Context) string {
	if cookie, err := c.Cookie(constants.CookieAuthToken); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// GetSession returns the session set by SessionAuthMiddleware
func GetSession(c echo.Context) *models.SessionInfo {
	if session, ok := c.Get(ContextKeySession).(*models.SessionInfo); ok {
		return session
	}
	return nil
}
