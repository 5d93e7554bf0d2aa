package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/piresc/secureword/internal/pkg/middleware"
	"github.com/piresc/secureword/internal/utils"
)

// SessionResponse tells the guard layer whether the caller is signed in
type SessionResponse struct {
	Authenticated bool       `json:"authenticated"`
	Username      string     `json:"username,omitempty"`
	ExpiresAt     *time.Time `json:"expiresAt,omitempty"`
}

// GetSession reports the caller's session state. An absent or invalid token is not an error here.
func (h *AuthHandler) GetSession(c echo.Context) error {
	token := middleware.ExtractSessionToken(c)
	if token == "" {
		return utils.SuccessResponse(c, http.StatusOK, SessionResponse{})
	}

	session, err := h.authUC.ValidateSession(c.Request().Context(), token)
	if err != nil {
		return utils.SuccessResponse(c, http.StatusOK, SessionResponse{})
	}

	expiresAt := session.ExpiresAt
	return utils.SuccessResponse(c, http.StatusOK, SessionResponse{
		Authenticated: true,
		Username:      session.Username,
		ExpiresAt:     &expiresAt,
	})
}
