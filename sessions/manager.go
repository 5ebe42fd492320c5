package sessions

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	gwerrors "github.com/jrsteele09/go-login-gateway/internal/errors"
)

// Manager bridges the request-handling layer's session shape to the
// Repo's opaque payload/expiry storage.
type Manager struct {
	repo       Repo
	defaultTTL time.Duration
}

func NewManager(repo Repo, defaultTTL time.Duration) *Manager {
	return &Manager{
		repo:       repo,
		defaultTTL: defaultTTL,
	}
}

// New mints a fresh, unpersisted session under a new random id.
func (m *Manager) New() *Session {
	return &Session{
		ID:    GenerateID(),
		fresh: true,
	}
}

// Get loads the session for sessionID. A missing or expired record is
// not an error; it returns (nil, nil) and the caller starts fresh.
func (m *Manager) Get(ctx context.Context, sessionID string) (*Session, error) {
	payload, ok, err := m.repo.Load(ctx, sessionID)
	if err != nil {
		return nil, gwerrors.Wrapf(err, "[Manager Get] failed to load session %q", sessionID)
	}
	if !ok {
		return nil, nil
	}
	return decodeSession(sessionID, payload)
}

// Save serializes the full session shape and upserts it with an
// absolute expiry derived from the session's max-age.
func (m *Manager) Save(ctx context.Context, s *Session) error {
	payload, err := s.encode()
	if err != nil {
		return err
	}
	if err := m.repo.Save(ctx, s.ID, payload, m.expiry(s)); err != nil {
		return gwerrors.Wrapf(err, "[Manager Save] failed to save session %q", s.ID)
	}
	s.fresh = false
	return nil
}

// Touch extends the session's expiry without re-serializing the
// payload. Failures are logged and swallowed: a rolling session that
// isn't extended this cycle is acceptable, breaking the request is not.
func (m *Manager) Touch(ctx context.Context, s *Session) {
	if err := m.repo.Touch(ctx, s.ID, m.expiry(s)); err != nil {
		log.Warn().Err(err).Str("session_id", s.ID).Msg("failed to touch session")
	}
}

// Destroy removes the session record. Destroying an absent session is
// not an error.
func (m *Manager) Destroy(ctx context.Context, s *Session) error {
	if err := m.repo.Destroy(ctx, s.ID); err != nil {
		return gwerrors.Wrapf(err, "[Manager Destroy] failed to destroy session %q", s.ID)
	}
	return nil
}

// Regenerate rotates the session identifier: the old record is
// destroyed and a fresh session is minted under a new id, carrying
// forward none of the old content. Used on privilege elevation to
// prevent session fixation.
func (m *Manager) Regenerate(ctx context.Context, s *Session) (*Session, error) {
	if err := m.repo.Destroy(ctx, s.ID); err != nil {
		return nil, gwerrors.Wrapf(err, "[Manager Regenerate] failed to destroy session %q", s.ID)
	}
	return m.New(), nil
}

func (m *Manager) expiry(s *Session) time.Time {
	return time.Now().Add(s.MaxAge(m.defaultTTL))
}
