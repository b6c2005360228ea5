package domain

import "time"

// SessionPhase classifies how close a session is to its expiry.
type SessionPhase string

const (
	SessionActive  SessionPhase = "active"
	SessionWarning SessionPhase = "warning"
	SessionExpired SessionPhase = "expired"
)

// Session is an authenticated login with a server-side expiry.
type Session struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"displayName,omitempty"`
	IssuedAt    time.Time `json:"issuedAt"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// Remaining returns the time left until expiry; negative once expired.
func (s Session) Remaining(now time.Time) time.Duration {
	return s.ExpiresAt.Sub(now)
}

// Phase classifies the session at the given instant. A session within the
// warning window of its expiry reads as warning; at or past expiry it reads
// as expired.
func (s Session) Phase(now time.Time, warning time.Duration) SessionPhase {
	remaining := s.Remaining(now)
	switch {
	case remaining <= 0:
		return SessionExpired
	case remaining <= warning:
		return SessionWarning
	default:
		return SessionActive
	}
}
