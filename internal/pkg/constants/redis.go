package constants

// Redis key formats
const (
	// Login flow
	KeyAuthChallenge   = "auth:challenge:%s"   // Format: auth:challenge:{username}
	KeyAuthRateLimit   = "auth:ratelimit:%s"   // Format: auth:ratelimit:{username}
	KeyAuthMFAAttempts = "auth:mfa:attempts:%s" // Format: auth:mfa:attempts:{username}
	KeyAuthPendingUsed = "auth:pending:used:%s" // Format: auth:pending:used:{jti}
)
