package config

import "time"

type SessionConfig interface {
	GetSessionTTL() time.Duration
	GetSweepInterval() time.Duration
	GetCookieSecure() bool
}

type Session struct{}

var _ SessionConfig = Session{}

// GetSessionTTL is the rolling session lifetime used when a session
// carries no explicit max-age of its own.
func (Session) GetSessionTTL() time.Duration {
	return 24 * time.Hour
}

// GetSweepInterval is how often expired rows are deleted. It is
// deliberately coarser than the session TTL; lazy expiry on load is
// what enforces correctness.
func (Session) GetSweepInterval() time.Duration {
	return 1 * time.Hour
}

func (Session) GetCookieSecure() bool {
	return GetEnv("SESSION_COOKIE_SECURE_OPTION", "false") == "true"
}
