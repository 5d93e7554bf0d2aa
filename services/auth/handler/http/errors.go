package http

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/piresc/secureword/internal/pkg/logger"
	"github.com/piresc/secureword/internal/pkg/middleware"
	"github.com/piresc/secureword/internal/utils"
	"github.com/piresc/secureword/services/auth"
)

// Response messages
const (
	msgInvalidPayload     = "Invalid request payload"
	msgUsernameRequired   = "Username is required"
	msgRateLimited        = "Rate limited. Try again later."
	msgSecureWordInvalid  = "Invalid secure word"
	msgCredentialsInvalid = "Invalid credentials"
	msgInvalidCode        = "Invalid code"
	msgLocked             = "Account locked. Too many attempts."
	msgPendingRequired    = "Login required"

	codeSecureWordInvalid = "SECURE_WORD_INVALID"
)

// handleAuthError maps login flow errors to responses
func handleAuthError(c echo.Context, err error) error {
	var rateLimitErr *auth.RateLimitError
	var rejectedErr *auth.MFARejectedError

	switch {
	case errors.As(err, &rateLimitErr):
		c.Response().Header().Set("Retry-After", retryAfterSeconds(rateLimitErr))
		return utils.ErrorResponseHandler(c, http.StatusTooManyRequests, msgRateLimited)
	case errors.Is(err, auth.ErrRateLimited):
		return utils.ErrorResponseHandler(c, http.StatusTooManyRequests, msgRateLimited)
	case errors.Is(err, auth.ErrChallengeInvalid):
		return utils.CodedErrorResponse(c, http.StatusUnauthorized, msgSecureWordInvalid, codeSecureWordInvalid)
	case errors.Is(err, auth.ErrCredentialsInvalid):
		return utils.UnauthorizedResponse(c, msgCredentialsInvalid)
	case errors.As(err, &rejectedErr):
		remaining := rejectedErr.AttemptsRemaining
		return c.JSON(http.StatusUnauthorized, utils.ErrorResponse{Error: msgInvalidCode, AttemptsRemaining: &remaining})
	case errors.Is(err, auth.ErrMFARejected):
		return utils.UnauthorizedResponse(c, msgInvalidCode)
	case errors.Is(err, auth.ErrMFALocked):
		return utils.ForbiddenResponse(c, msgLocked)
	case errors.Is(err, auth.ErrPendingRequired):
		return utils.UnauthorizedResponse(c, msgPendingRequired)
	case errors.Is(err, auth.ErrSessionInvalid):
		return utils.UnauthorizedResponse(c, "Invalid token")
	}

	middleware.NoticeError(c, err)
	logger.ErrorCtx(c.Request().Context(), "Auth request failed",
		logger.String("path", c.Path()),
		logger.Err(err))
	return utils.InternalServerErrorResponse(c, "")
}

// retryAfterSeconds rounds up so clients never retry early
func retryAfterSeconds(err *auth.RateLimitError) string {
	seconds := int(math.Ceil(err.RetryAfter.Seconds()))
	if seconds < 1 {
		seconds = 1
	}
	return strconv.Itoa(seconds)
}
