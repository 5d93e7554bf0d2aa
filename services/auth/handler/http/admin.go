package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/piresc/secureword/internal/pkg/models"
	"github.com/piresc/secureword/internal/utils"
)

// LoginEventsResponse wraps an audit log listing
type LoginEventsResponse struct {
	Events []*models.LoginEvent `json:"events"`
	Total  int                  `json:"total"`
}

// ResetMFA lifts a lockout for a username
func (h *AuthHandler) ResetMFA(c echo.Context) error {
	var req models.ResetMFARequest
	if msg, ok := bindRequest(c, &req); !ok {
		return utils.BadRequestResponse(c, msg)
	}

	if err := h.authUC.ResetMFA(requestContext(c), req.Username); err != nil {
		return handleAuthError(c, err)
	}

	return utils.OKResponse(c)
}

// ListLoginEvents returns the audit log, optionally filtered by ?username= and capped by ?limit=
func (h *AuthHandler) ListLoginEvents(c echo.Context) error {
	filter := models.LoginEventFilter{Username: c.QueryParam("username")}

	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return utils.BadRequestResponse(c, "Invalid limit")
		}
		filter.Limit = limit
	}

	events, err := h.authUC.ListLoginEvents(c.Request().Context(), filter)
	if err != nil {
		return handleAuthError(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, LoginEventsResponse{
		Events: events,
		Total:  len(events),
	})
}
