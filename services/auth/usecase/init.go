package usecase

import (
	"fmt"
	"time"

	"github.com/piresc/secureword/internal/pkg/circuitbreaker"
	"github.com/piresc/secureword/internal/pkg/jwt"
	"github.com/piresc/secureword/internal/pkg/logger"
	"github.com/piresc/secureword/internal/pkg/models"
	"github.com/piresc/secureword/internal/pkg/secret"
	"github.com/piresc/secureword/services/auth"
	"github.com/piresc/secureword/services/auth/gateway"
)

const (
	defaultChallengeTTL      = 60 * time.Second
	defaultChallengeCooldown = 10 * time.Second
	defaultChallengeLength   = 12
	defaultMaxAttempts       = 3
	defaultPendingTTL        = 5 * time.Minute
	defaultSessionTTL        = time.Hour
)

var _ auth.AuthUC = (*AuthUC)(nil)

// AuthUC implements the login flow use case
type AuthUC struct {
	cfg        models.AuthConfig
	sessionTTL time.Duration

	challenges auth.ChallengeStore
	limiter    auth.RateLimiter
	attempts   auth.AttemptCounter
	pending    auth.PendingLedger
	auditRepo  auth.AuditRepo
	authGW     auth.AuthGW
	verifier   auth.MFAVerifier

	signer  *jwt.Signer
	wordKey []byte
	locks   *keyedMutex

	auditBreaker *circuitbreaker.CircuitBreaker
	eventBreaker *circuitbreaker.CircuitBreaker

	nowF func() time.Time
}

// Option customizes an AuthUC
type Option func(*AuthUC)

// WithClock replaces time.Now
func WithClock(nowF func() time.Time) Option {
	return func(uc *AuthUC) {
		uc.nowF = nowF
	}
}

// WithVerifier replaces the fixed code verifier
func WithVerifier(verifier auth.MFAVerifier) Option {
	return func(uc *AuthUC) {
		uc.verifier = verifier
	}
}

// NewAuthUC creates a new login flow use case
func NewAuthUC(
	configs *models.Config,
	stores *auth.Stores,
	auditRepo auth.AuditRepo,
	authGW auth.AuthGW,
	zapLogger *logger.ZapLogger,
	opts ...Option,
) (*AuthUC, error) {
	if zapLogger == nil {
		zapLogger = logger.GetGlobalLogger()
	}

	if authGW == nil {
		authGW = gateway.NewNopAuthGW()
	}

	cfg := withDefaults(configs.Auth)

	master := []byte(cfg.SecretKey)
	if len(master) == 0 {
		random, err := secret.Random()
		if err != nil {
			return nil, err
		}
		master = random
		zapLogger.Warn("AUTH_SECRET_KEY is not set, using a random secret; secure words and tokens will not survive a restart")
	}

	wordKey, err := secret.Derive(master, secret.PurposeSecureWord)
	if err != nil {
		return nil, fmt.Errorf("failed to derive secure word key: %w", err)
	}

	tokenKey := []byte(configs.JWT.Secret)
	if len(tokenKey) == 0 {
		tokenKey, err = secret.Derive(master, secret.PurposeSessionToken)
		if err != nil {
			return nil, fmt.Errorf("failed to derive session token key: %w", err)
		}
	}

	sessionTTL := time.Duration(configs.JWT.Expiration) * time.Minute
	if sessionTTL <= 0 {
		sessionTTL = defaultSessionTTL
	}

	uc := &AuthUC{
		cfg:          cfg,
		sessionTTL:   sessionTTL,
		challenges:   stores.Challenges,
		limiter:      stores.Limiter,
		attempts:     stores.Attempts,
		pending:      stores.Pending,
		auditRepo:    auditRepo,
		authGW:       authGW,
		verifier:     NewStaticCodeVerifier(cfg.MFACode),
		signer:       jwt.NewSigner(tokenKey, configs.JWT.Issuer),
		wordKey:      wordKey,
		locks:        newKeyedMutex(),
		auditBreaker: circuitbreaker.New(circuitbreaker.DefaultConfig("login-audit"), zapLogger),
		eventBreaker: circuitbreaker.New(circuitbreaker.DefaultConfig("auth-events"), zapLogger),
		nowF:         time.Now,
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc, nil
}

func withDefaults(cfg models.AuthConfig) models.AuthConfig {
	if cfg.ChallengeTTL <= 0 {
		cfg.ChallengeTTL = defaultChallengeTTL
	}
	if cfg.ChallengeCooldown <= 0 {
		cfg.ChallengeCooldown = defaultChallengeCooldown
	}
	if cfg.ChallengeLength <= 0 {
		cfg.ChallengeLength = defaultChallengeLength
	}
	if cfg.MFAMaxAttempts <= 0 {
		cfg.MFAMaxAttempts = defaultMaxAttempts
	}
	if cfg.PendingTTL <= 0 {
		cfg.PendingTTL = defaultPendingTTL
	}
	return cfg
}
