package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/piresc/secureword/internal/pkg/middleware"
	"github.com/piresc/secureword/internal/pkg/models"
	"github.com/piresc/secureword/services/auth"
	authhttp "github.com/piresc/secureword/services/auth/handler/http"
)

// Handler registers the auth service routes
type Handler struct {
	authHandler *authhttp.AuthHandler
	authUC      auth.AuthUC
	configs     *models.Config
}

// NewHandler creates a new auth route handler
func NewHandler(authUC auth.AuthUC, configs *models.Config) *Handler {
	return &Handler{
		authHandler: authhttp.NewAuthHandler(authUC, configs),
		authUC:      authUC,
		configs:     configs,
	}
}

// RegisterRoutes registers the auth API routes
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	// Login flow (public)
	api := e.Group("/api")
	api.POST("/getSecureWord", h.authHandler.GetSecureWord)
	api.POST("/login", h.authHandler.Login)
	api.POST("/verifyMfa", h.authHandler.VerifyMFA)
	api.POST("/logout", h.authHandler.Logout)
	api.GET("/session", h.authHandler.GetSession)

	// Protected resources (session token)
	api.GET("/transactionsHistory", h.authHandler.GetTransactionHistory, middleware.SessionAuthMiddleware(h.authUC))

	// Test helpers (never in production)
	if !h.configs.App.IsProduction() {
		test := api.Group("/test")
		test.POST("/clearSecureWord", h.authHandler.ClearSecureWord)
	}

	// Operator routes (API key)
	admin := e.Group("/admin")
	admin.Use(middleware.ValidateAPIKey(h.configs.Admin.APIKey))
	admin.POST("/mfa/reset", h.authHandler.ResetMFA)
	admin.GET("/login-events", h.authHandler.ListLoginEvents)
}
