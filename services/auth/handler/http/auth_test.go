package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/piresc/secureword/internal/pkg/constants"
	"github.com/piresc/secureword/internal/pkg/middleware"
	"github.com/piresc/secureword/internal/pkg/models"
	"github.com/piresc/secureword/services/auth"
	"github.com/piresc/secureword/services/auth/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getTestConfig(requirePending bool) *models.Config {
	return &models.Config{
		JWT: models.JWTConfig{Expiration: 60},
		Auth: models.AuthConfig{
			PendingTTL:     5 * time.Minute,
			RequirePending: requirePending,
		},
	}
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = middleware.NewRequestValidator()
	return e
}

func newJSONRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestNewAuthHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuthUC := mocks.NewMockAuthUC(ctrl)
	handler := NewAuthHandler(mockAuthUC, &models.Config{})

	assert.NotNil(t, handler)
	assert.Equal(t, mockAuthUC, handler.authUC)
	assert.Equal(t, time.Hour, handler.sessionTTL)
}

func TestAuthHandler_GetSecureWord(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMock      func(mockAuthUC *mocks.MockAuthUC)
		expectedStatus int
		checkResponse  func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name: "Success",
			body: `{"username":"testuser"}`,
			setupMock: func(mockAuthUC *mocks.MockAuthUC) {
				mockAuthUC.EXPECT().IssueChallenge(gomock.Any(), "testuser").Return(&models.SecureWordResponse{
					SecureWord: "a1b2c3d4e5f6",
					ExpiresIn:  60,
					IssuedAt:   1_700_000_000_000,
				}, nil)
			},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				body := decodeBody(t, rec)
				assert.Equal(t, "a1b2c3d4e5f6", body["secureWord"])
				assert.Equal(t, float64(60), body["expiresIn"])
				assert.Equal(t, float64(1_700_000_000_000), body["issuedAt"])
			},
		},
		{
			name: "Rate limited",
			body: `{"username":"testuser"}`,
			setupMock: func(mockAuthUC *mocks.MockAuthUC) {
				mockAuthUC.EXPECT().IssueChallenge(gomock.Any(), "testuser").
					Return(nil, &auth.RateLimitError{RetryAfter: 6500 * time.Millisecond})
			},
			expectedStatus: http.StatusTooManyRequests,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, "7", rec.Header().Get("Retry-After"))
				assert.Equal(t, "Rate limited. Try again later.", decodeBody(t, rec)["error"])
			},
		},
		{
			name:           "Malformed JSON",
			body:           `{"username":`,
			setupMock:      func(mockAuthUC *mocks.MockAuthUC) {},
			expectedStatus: http.StatusBadRequest,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, "Invalid request payload", decodeBody(t, rec)["error"])
			},
		},
		{
			name:           "Missing username",
			body:           `{}`,
			setupMock:      func(mockAuthUC *mocks.MockAuthUC) {},
			expectedStatus: http.StatusBadRequest,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, "Username is required", decodeBody(t, rec)["error"])
			},
		},
		{
			name: "Store failure",
			body: `{"username":"testuser"}`,
			setupMock: func(mockAuthUC *mocks.MockAuthUC) {
				mockAuthUC.EXPECT().IssueChallenge(gomock.Any(), "testuser").
					Return(nil, errors.New("failed to store challenge: redis down"))
			},
			expectedStatus: http.StatusInternalServerError,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				body := decodeBody(t, rec)
				assert.Equal(t, "Internal server error", body["error"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockAuthUC := mocks.NewMockAuthUC(ctrl)
			tt.setupMock(mockAuthUC)
			handler := NewAuthHandler(mockAuthUC, getTestConfig(false))

			e := newTestEcho()
			rec := httptest.NewRecorder()
			c := e.NewContext(newJSONRequest(http.MethodPost, "/api/getSecureWord", tt.body), rec)

			err := handler.GetSecureWord(c)

			assert.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, rec.Code)
			tt.checkResponse(t, rec)
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMock      func(mockAuthUC *mocks.MockAuthUC)
		expectedStatus int
		checkResponse  func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name: "Success",
			body: `{"username":"alice","hashedPassword":"5e884898da28","secureWord":"a1b2c3d4e5f6"}`,
			setupMock: func(mockAuthUC *mocks.MockAuthUC) {
				mockAuthUC.EXPECT().VerifyCredentials(gomock.Any(), "alice", "a1b2c3d4e5f6", "5e884898da28").
					Return(&models.PendingGrant{Username: "alice", Token: "pending-token"}, nil)
			},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, true, decodeBody(t, rec)["success"])
				cookie := findCookie(rec, constants.CookieMFAPending)
				require.NotNil(t, cookie)
				assert.Equal(t, "pending-token", cookie.Value)
				assert.True(t, cookie.HttpOnly)
				assert.Equal(t, 300, cookie.MaxAge)
				assert.Nil(t, findCookie(rec, constants.CookieAuthToken))
			},
		},
		{
			name: "Invalid secure word",
			body: `{"username":"alice","hashedPassword":"5e884898da28","secureWord":"000000000000"}`,
			setupMock: func(mockAuthUC *mocks.MockAuthUC) {
				mockAuthUC.EXPECT().VerifyCredentials(gomock.Any(), "alice", "000000000000", "5e884898da28").
					Return(nil, auth.ErrChallengeInvalid)
			},
			expectedStatus: http.StatusUnauthorized,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				body := decodeBody(t, rec)
				assert.Equal(t, "Invalid secure word", body["error"])
				assert.Equal(t, "SECURE_WORD_INVALID", body["code"])
			},
		},
		{
			name: "Invalid credentials",
			body: `{"username":"alice","secureWord":"a1b2c3d4e5f6"}`,
			setupMock: func(mockAuthUC *mocks.MockAuthUC) {
				mockAuthUC.EXPECT().VerifyCredentials(gomock.Any(), "alice", "a1b2c3d4e5f6", "").
					Return(nil, auth.ErrCredentialsInvalid)
			},
			expectedStatus: http.StatusUnauthorized,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				body := decodeBody(t, rec)
				assert.Equal(t, "Invalid credentials", body["error"])
				assert.NotContains(t, body, "code")
			},
		},
		{
			name:           "Malformed JSON",
			body:           `not json`,
			setupMock:      func(mockAuthUC *mocks.MockAuthUC) {},
			expectedStatus: http.StatusBadRequest,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, "Invalid request payload", decodeBody(t, rec)["error"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockAuthUC := mocks.NewMockAuthUC(ctrl)
			tt.setupMock(mockAuthUC)
			handler := NewAuthHandler(mockAuthUC, getTestConfig(false))

			e := newTestEcho()
			rec := httptest.NewRecorder()
			c := e.NewContext(newJSONRequest(http.MethodPost, "/api/login", tt.body), rec)

			err := handler.Login(c)

			assert.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, rec.Code)
			tt.checkResponse(t, rec)
		})
	}
}

func TestAuthHandler_VerifyMFA(t *testing.T) {
	tests := []struct {
		name           string
		requirePending bool
		pendingCookie  string
		body           string
		setupMock      func(mockAuthUC *mocks.MockAuthUC)
		expectedStatus int
		checkResponse  func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name: "Success",
			body: `{"username":"alice","code":"123456"}`,
			setupMock: func(mockAuthUC *mocks.MockAuthUC) {
				mockAuthUC.EXPECT().VerifyMFA(gomock.Any(), "alice", "123456").
					Return(&models.SessionGrant{Username: "alice", Token: "session-token"}, nil)
			},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, true, decodeBody(t, rec)["success"])

				session := findCookie(rec, constants.CookieAuthToken)
				require.NotNil(t, session)
				assert.Equal(t, "session-token", session.Value)
				assert.Equal(t, 3600, session.MaxAge)
				assert.True(t, session.HttpOnly)
				assert.Equal(t, http.SameSiteLaxMode, session.SameSite)

				pending := findCookie(rec, constants.CookieMFAPending)
				require.NotNil(t, pending)
				assert.Equal(t, -1, pending.MaxAge)
			},
		},
		{
			name: "Rejected",
			body: `{"username":"alice","code":"000000"}`,
			setupMock: func(mockAuthUC *mocks.MockAuthUC) {
				mockAuthUC.EXPECT().VerifyMFA(gomock.Any(), "alice", "000000").
					Return(nil, &auth.MFARejectedError{AttemptsRemaining: 2})
			},
			expectedStatus: http.StatusUnauthorized,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				body := decodeBody(t, rec)
				assert.Equal(t, "Invalid code", body["error"])
				assert.Equal(t, float64(2), body["attemptsRemaining"])
				assert.Nil(t, findCookie(rec, constants.CookieAuthToken))
			},
		},
		{
			name: "Locked",
			body: `{"username":"alice","code":"123456"}`,
			setupMock: func(mockAuthUC *mocks.MockAuthUC) {
				mockAuthUC.EXPECT().VerifyMFA(gomock.Any(), "alice", "123456").Return(nil, auth.ErrMFALocked)
			},
			expectedStatus: http.StatusForbidden,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, "Account locked. Too many attempts.", decodeBody(t, rec)["error"])
			},
		},
		{
			name:           "Pending marker missing",
			requirePending: true,
			body:           `{"username":"alice","code":"123456"}`,
			setupMock:      func(mockAuthUC *mocks.MockAuthUC) {},
			expectedStatus: http.StatusUnauthorized,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, "Login required", decodeBody(t, rec)["error"])
			},
		},
		{
			name:           "Pending marker for another user",
			requirePending: true,
			pendingCookie:  "bob-pending",
			body:           `{"username":"alice","code":"123456"}`,
			setupMock: func(mockAuthUC *mocks.MockAuthUC) {
				mockAuthUC.EXPECT().ValidatePending(gomock.Any(), "bob-pending").
					Return(&models.SessionInfo{Username: "bob", Stage: models.StagePending}, nil)
			},
			expectedStatus: http.StatusUnauthorized,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, "Login required", decodeBody(t, rec)["error"])
			},
		},
		{
			name:           "Pending marker invalid",
			requirePending: true,
			pendingCookie:  "garbage",
			body:           `{"username":"alice","code":"123456"}`,
			setupMock: func(mockAuthUC *mocks.MockAuthUC) {
				mockAuthUC.EXPECT().ValidatePending(gomock.Any(), "garbage").Return(nil, auth.ErrSessionInvalid)
			},
			expectedStatus: http.StatusUnauthorized,
			checkResponse:  func(t *testing.T, rec *httptest.ResponseRecorder) {},
		},
		{
			name:           "Pending marker valid",
			requirePending: true,
			pendingCookie:  "alice-pending",
			body:           `{"username":"alice","code":"123456"}`,
			setupMock: func(mockAuthUC *mocks.MockAuthUC) {
				gomock.InOrder(
					mockAuthUC.EXPECT().ValidatePending(gomock.Any(), "alice-pending").
						Return(&models.SessionInfo{Username: "alice", Stage: models.StagePending, TokenID: "jti-1"}, nil),
					mockAuthUC.EXPECT().VerifyMFA(gomock.Any(), "alice", "123456").
						DoAndReturn(func(ctx context.Context, username, code string) (*models.SessionGrant, error) {
							pending := auth.PendingTokenFromContext(ctx)
							if pending == nil || pending.TokenID != "jti-1" {
								return nil, auth.ErrPendingRequired
							}
							return &models.SessionGrant{Username: "alice", Token: "session-token"}, nil
						}),
				)
			},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.NotNil(t, findCookie(rec, constants.CookieAuthToken))
			},
		},
		{
			name:           "Pending marker already redeemed",
			requirePending: true,
			pendingCookie:  "alice-pending",
			body:           `{"username":"alice","code":"123456"}`,
			setupMock: func(mockAuthUC *mocks.MockAuthUC) {
				mockAuthUC.EXPECT().ValidatePending(gomock.Any(), "alice-pending").
					Return(&models.SessionInfo{Username: "alice", Stage: models.StagePending, TokenID: "jti-1"}, nil)
				mockAuthUC.EXPECT().VerifyMFA(gomock.Any(), "alice", "123456").Return(nil, auth.ErrPendingRequired)
			},
			expectedStatus: http.StatusUnauthorized,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, "Login required", decodeBody(t, rec)["error"])
				assert.Nil(t, findCookie(rec, constants.CookieAuthToken))
			},
		},
		{
			name:           "Missing username",
			body:           `{"code":"123456"}`,
			setupMock:      func(mockAuthUC *mocks.MockAuthUC) {},
			expectedStatus: http.StatusBadRequest,
			checkResponse:  func(t *testing.T, rec *httptest.ResponseRecorder) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockAuthUC := mocks.NewMockAuthUC(ctrl)
			tt.setupMock(mockAuthUC)
			handler := NewAuthHandler(mockAuthUC, getTestConfig(tt.requirePending))

			e := newTestEcho()
			req := newJSONRequest(http.MethodPost, "/api/verifyMfa", tt.body)
			if tt.pendingCookie != "" {
				req.AddCookie(&http.Cookie{Name: constants.CookieMFAPending, Value: tt.pendingCookie})
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			err := handler.VerifyMFA(c)

			assert.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, rec.Code)
			tt.checkResponse(t, rec)
		})
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	handler := NewAuthHandler(mocks.NewMockAuthUC(ctrl), getTestConfig(true))

	e := newTestEcho()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/api/logout", nil), rec)

	require.NoError(t, handler.Logout(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	session := findCookie(rec, constants.CookieAuthToken)
	require.NotNil(t, session)
	assert.Equal(t, -1, session.MaxAge)
	assert.Empty(t, session.Value)
}

func TestAuthHandler_ClearSecureWord(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuthUC := mocks.NewMockAuthUC(ctrl)
	mockAuthUC.EXPECT().ClearChallenge(gomock.Any(), "testuser").Return(nil)
	handler := NewAuthHandler(mockAuthUC, getTestConfig(true))

	e := newTestEcho()
	rec := httptest.NewRecorder()
	c := e.NewContext(newJSONRequest(http.MethodPost, "/api/test/clearSecureWord", `{"username":"testuser"}`), rec)

	require.NoError(t, handler.ClearSecureWord(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Secure word cleared for testing", body["message"])
	assert.Equal(t, "testuser", body["username"])
}

func TestRetryAfterSeconds(t *testing.T) {
	tests := []struct {
		retryAfter time.Duration
		want       string
	}{
		{retryAfter: 10 * time.Second, want: "10"},
		{retryAfter: 9001 * time.Millisecond, want: "10"},
		{retryAfter: 1 * time.Millisecond, want: "1"},
		{retryAfter: 0, want: "1"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, retryAfterSeconds(&auth.RateLimitError{RetryAfter: tt.retryAfter}))
	}
}
