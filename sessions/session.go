package sessions

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"
)

// CookieMeta carries the cookie metadata persisted alongside the
// application fields, mirroring what the browser was told.
type CookieMeta struct {
	MaxAge int `json:"maxAge,omitempty"` // seconds; 0 means "use the default TTL"
}

// Session is the logical shape stored as an opaque payload in the repo.
// The repo never inspects these fields.
type Session struct {
	ID          string     `json:"-"`
	OAuth2State string     `json:"oauth2state,omitempty"`
	UserID      string     `json:"userId,omitempty"`
	UserName    string     `json:"userName,omitempty"`
	Cookie      CookieMeta `json:"cookie"`

	fresh bool
}

// Fresh reports whether this session was minted for the current request
// and has never been persisted.
func (s *Session) Fresh() bool {
	return s.fresh
}

// Authenticated reports whether an identity has been bound to the session.
func (s *Session) Authenticated() bool {
	return s.UserID != ""
}

// MaxAge returns the session's declared lifetime, falling back to
// defaultTTL when the cookie metadata carries none.
func (s *Session) MaxAge(defaultTTL time.Duration) time.Duration {
	if s.Cookie.MaxAge <= 0 {
		return defaultTTL
	}
	return time.Duration(s.Cookie.MaxAge) * time.Second
}

func (s *Session) encode() ([]byte, error) {
	payload, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("[Session encode] failed to marshal session: %w", err)
	}
	return payload, nil
}

func decodeSession(id string, payload []byte) (*Session, error) {
	var s Session
	if err := json.Unmarshal(payload, &s); err != nil {
		return nil, fmt.Errorf("[Session decode] failed to unmarshal session: %w", err)
	}
	s.ID = id
	return &s, nil
}

// GenerateID creates a cryptographically random session identifier.
// 32 bytes = 256 bits of entropy.
func GenerateID() string {
	b := make([]byte, 32)
	rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}
