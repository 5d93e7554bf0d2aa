package http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/piresc/secureword/internal/pkg/constants"
	"github.com/piresc/secureword/internal/pkg/logger"
	"github.com/piresc/secureword/internal/pkg/middleware"
	"github.com/piresc/secureword/internal/pkg/models"
	"github.com/piresc/secureword/internal/utils"
	"github.com/piresc/secureword/services/auth"
)

// bindRequest binds the JSON body into req and checks its validate tags.
// On failure it returns the 400 message.
func bindRequest(c echo.Context, req interface{}) (string, bool) {
	if err := c.Bind(req); err != nil {
		return msgInvalidPayload, false
	}
	if err := c.Validate(req); err != nil {
		return msgUsernameRequired, false
	}
	return "", true
}

// requestContext carries the caller address into the audit log
func requestContext(c echo.Context) context.Context {
	return auth.WithClientIP(c.Request().Context(), c.RealIP())
}

// GetSecureWord issues or reuses the caller's secure word
func (h *AuthHandler) GetSecureWord(c echo.Context) error {
	var req models.SecureWordRequest
	if msg, ok := bindRequest(c, &req); !ok {
		return utils.BadRequestResponse(c, msg)
	}

	middleware.AddAttribute(c, "user.name", req.Username)

	resp, err := h.authUC.IssueChallenge(requestContext(c), req.Username)
	if err != nil {
		return handleAuthError(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, resp)
}

// Login verifies the secure word and password proof, then sets the MFA-pending cookie
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if msg, ok := bindRequest(c, &req); !ok {
		return utils.BadRequestResponse(c, msg)
	}

	middleware.AddAttribute(c, "user.name", req.Username)

	grant, err := h.authUC.VerifyCredentials(requestContext(c), req.Username, req.SecureWord, req.HashedPassword)
	if err != nil {
		return handleAuthError(c, err)
	}

	h.setCookie(c, constants.CookieMFAPending, grant.Token, h.pendingTTL)
	return utils.OKResponse(c)
}

// VerifyMFA checks the one-time code and sets the session cookie
func (h *AuthHandler) VerifyMFA(c echo.Context) error {
	var req models.VerifyMFARequest
	if msg, ok := bindRequest(c, &req); !ok {
		return utils.BadRequestResponse(c, msg)
	}

	middleware.AddAttribute(c, "user.name", req.Username)
	ctx := requestContext(c)

	if h.requirePending {
		pending, err := h.checkPending(ctx, c, req.Username)
		if err != nil {
			return handleAuthError(c, err)
		}
		ctx = auth.WithPendingToken(ctx, pending)
	}

	grant, err := h.authUC.VerifyMFA(ctx, req.Username, req.Code)
	if err != nil {
		return handleAuthError(c, err)
	}

	h.clearCookie(c, constants.CookieMFAPending)
	h.setCookie(c, constants.CookieAuthToken, grant.Token, h.sessionTTL)
	return utils.OKResponse(c)
}

// checkPending requires an MFA-pending marker issued to username
func (h *AuthHandler) checkPending(ctx context.Context, c echo.Context, username string) (*models.SessionInfo, error) {
	cookie, err := c.Cookie(constants.CookieMFAPending)
	if err != nil || cookie.Value == "" {
		return nil, auth.ErrPendingRequired
	}

	pending, err := h.authUC.ValidatePending(ctx, cookie.Value)
	if err != nil {
		logger.WarnCtx(ctx, "Rejected MFA-pending marker",
			logger.String("username", username),
			logger.Err(err))
		return nil, auth.ErrPendingRequired
	}
	if pending.Username != username {
		logger.WarnCtx(ctx, "MFA-pending marker issued to another user",
			logger.String("username", username))
		return nil, auth.ErrPendingRequired
	}
	return pending, nil
}

// Logout clears the session and pending cookies
func (h *AuthHandler) Logout(c echo.Context) error {
	h.clearCookie(c, constants.CookieAuthToken)
	h.clearCookie(c, constants.CookieMFAPending)
	return utils.OKResponse(c)
}

// ClearSecureWord deletes a stored secure word. Registered outside production only.
func (h *AuthHandler) ClearSecureWord(c echo.Context) error {
	var req models.SecureWordRequest
	if msg, ok := bindRequest(c, &req); !ok {
		return utils.BadRequestResponse(c, msg)
	}

	if err := h.authUC.ClearChallenge(requestContext(c), req.Username); err != nil {
		return handleAuthError(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, echo.Map{
		"message":  "Secure word cleared for testing",
		"username": req.Username,
	})
}
