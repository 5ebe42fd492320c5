package repofakes

import (
	"context"
	"sync"
	"time"

	"github.com/jrsteele09/go-login-gateway/sessions"
)

var _ sessions.Repo = (*FakeSessionRepo)(nil)

type record struct {
	payload   []byte
	expiresAt time.Time
}

// FakeSessionRepo is an in-memory sessions.Repo with the same observable
// semantics as the PostgreSQL store: lazy expiry on Load, update-only
// Touch, idempotent Destroy. The error fields inject failures per
// operation.
type FakeSessionRepo struct {
	lock    sync.RWMutex
	records map[string]record

	LoadErr    error
	SaveErr    error
	TouchErr   error
	DestroyErr error
}

func NewFakeSessionRepo() *FakeSessionRepo {
	return &FakeSessionRepo{
		records: make(map[string]record),
	}
}

func (r *FakeSessionRepo) Load(_ context.Context, sessionID string) ([]byte, bool, error) {
	if r.LoadErr != nil {
		return nil, false, r.LoadErr
	}

	r.lock.RLock()
	defer r.lock.RUnlock()

	rec, ok := r.records[sessionID]
	if !ok || rec.expiresAt.Before(time.Now()) {
		return nil, false, nil
	}
	payload := make([]byte, len(rec.payload))
	copy(payload, rec.payload)
	return payload, true, nil
}

func (r *FakeSessionRepo) Save(_ context.Context, sessionID string, payload []byte, expiresAt time.Time) error {
	if r.SaveErr != nil {
		return r.SaveErr
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	stored := make([]byte, len(payload))
	copy(stored, payload)
	r.records[sessionID] = record{payload: stored, expiresAt: expiresAt}
	return nil
}

func (r *FakeSessionRepo) Touch(_ context.Context, sessionID string, expiresAt time.Time) error {
	if r.TouchErr != nil {
		return r.TouchErr
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	rec, ok := r.records[sessionID]
	if !ok {
		return nil // refreshing a missing session is a no-op
	}
	rec.expiresAt = expiresAt
	r.records[sessionID] = rec
	return nil
}

func (r *FakeSessionRepo) Destroy(_ context.Context, sessionID string) error {
	if r.DestroyErr != nil {
		return r.DestroyErr
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	delete(r.records, sessionID)
	return nil
}

// Expire rewinds a record's expiry so tests can observe lazy expiration
// without waiting.
func (r *FakeSessionRepo) Expire(sessionID string) {
	r.lock.Lock()
	defer r.lock.Unlock()

	if rec, ok := r.records[sessionID]; ok {
		rec.expiresAt = time.Now().Add(-time.Second)
		r.records[sessionID] = rec
	}
}

// ExpiresAt exposes a record's expiry for assertions.
func (r *FakeSessionRepo) ExpiresAt(sessionID string) (time.Time, bool) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	rec, ok := r.records[sessionID]
	return rec.expiresAt, ok
}

// Len reports the number of stored records, expired rows included.
func (r *FakeSessionRepo) Len() int {
	r.lock.RLock()
	defer r.lock.RUnlock()

	return len(r.records)
}
