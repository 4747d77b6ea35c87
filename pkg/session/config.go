package session

import "time"

// Config holds session settings loaded from the environment.
type Config struct {
	CookieName      string        `env:"SESSION_COOKIE_NAME" envDefault:"cafehub_session"` // CookieName is the name of the session cookie.
	TTL             time.Duration `env:"SESSION_TTL" envDefault:"24h"`                     // TTL is the session lifetime.
	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"10m"`        // CleanupInterval is how often the memory store sweeps expired sessions.
	SecureCookies   bool          `env:"SESSION_SECURE_COOKIES" envDefault:"true"`         // SecureCookies marks the session cookie Secure.
}

// DefaultConfig returns the settings used when no environment is loaded.
func DefaultConfig() Config {
	return Config{
		CookieName:      "cafehub_session",
		TTL:             24 * time.Hour,
		CleanupInterval: 10 * time.Minute,
		SecureCookies:   true,
	}
}
