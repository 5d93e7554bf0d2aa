package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/piresc/secureword/internal/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPinger struct {
	err error
}

func (s stubPinger) Ping(context.Context) error {
	return s.err
}

func newTestServer(checkers map[string]HealthChecker) *echo.Echo {
	e := echo.New()
	svc := NewHealthService(logger.NewNopLogger())
	for name, checker := range checkers {
		svc.AddChecker(name, checker)
	}
	RegisterHealthEndpoints(e, "secureword-auth", "1.0.0", svc)
	return e
}

func TestPingEndpoint(t *testing.T) {
	t.Setenv("GIT_COMMIT", "abc123")
	e := newTestServer(nil)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var info BuildInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.Equal(t, "secureword-auth", info.ServiceName)
	assert.Equal(t, "1.0.0", info.Version)
	assert.Equal(t, "abc123", info.GitCommit)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.False(t, info.ServerTime.IsZero())
}

func TestHealthEndpoint(t *testing.T) {
	e := newTestServer(nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestReadyEndpoint(t *testing.T) {
	tests := []struct {
		name           string
		checkers       map[string]HealthChecker
		expectedStatus int
		expectedHealth string
	}{
		{
			name:           "No dependencies",
			expectedStatus: http.StatusOK,
			expectedHealth: StatusHealthy,
		},
		{
			name: "All dependencies healthy",
			checkers: map[string]HealthChecker{
				"redis":    NewPingChecker(stubPinger{}),
				"postgres": NewPingChecker(stubPinger{}),
			},
			expectedStatus: http.StatusOK,
			expectedHealth: StatusHealthy,
		},
		{
			name: "Redis down",
			checkers: map[string]HealthChecker{
				"redis":    NewPingChecker(stubPinger{err: errors.New("connection refused")}),
				"postgres": NewPingChecker(stubPinger{}),
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedHealth: StatusUnhealthy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestServer(tt.checkers)

			req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)

			var response HealthResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
			assert.Equal(t, tt.expectedHealth, response.Status)
			assert.Len(t, response.Dependencies, len(tt.checkers))
		})
	}
}

func TestPingChecker_NilPinger(t *testing.T) {
	assert.NoError(t, NewPingChecker(nil).CheckHealth(context.Background()))
}

func TestCheckerFunc(t *testing.T) {
	down := errors.New("nsqd unreachable")
	checker := CheckerFunc(func(context.Context) error { return down })

	assert.ErrorIs(t, checker.CheckHealth(context.Background()), down)
}
