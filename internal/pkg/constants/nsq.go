package constants

// NSQ topics
const (
	TopicMFALocked     = "auth.mfa.locked"
	TopicSessionIssued = "auth.session.issued"
)

// Cookie names
const (
	CookieAuthToken  = "auth-token"
	CookieMFAPending = "mfa-pending"
)
