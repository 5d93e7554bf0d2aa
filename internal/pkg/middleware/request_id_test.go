package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestRequestIDMiddleware(t *testing.T) {
	t.Run("Generates an id", func(t *testing.T) {
		e := echo.New()
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

		err := RequestIDMiddleware()(func(c echo.Context) error { return nil })(c)

		assert.NoError(t, err)
		_, parseErr := uuid.Parse(rec.Header().Get(echo.HeaderXRequestID))
		assert.NoError(t, parseErr)
		assert.Equal(t, rec.Header().Get(echo.HeaderXRequestID), c.Get("request_id"))
	})

	t.Run("Propagates incoming id", func(t *testing.T) {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(echo.HeaderXRequestID, "upstream-id")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := RequestIDMiddleware()(func(c echo.Context) error { return nil })(c)

		assert.NoError(t, err)
		assert.Equal(t, "upstream-id", rec.Header().Get(echo.HeaderXRequestID))
	})
}
