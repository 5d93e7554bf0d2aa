package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/piresc/secureword/internal/pkg/middleware"
	"github.com/piresc/secureword/internal/utils"
)

// GetTransactionHistory returns the dashboard dataset. Requires SessionAuthMiddleware.
func (h *AuthHandler) GetTransactionHistory(c echo.Context) error {
	session := middleware.GetSession(c)
	if session == nil {
		return utils.UnauthorizedResponse(c, "")
	}

	history, err := h.authUC.GetTransactionHistory(c.Request().Context(), session.Username)
	if err != nil {
		return handleAuthError(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, history)
}
