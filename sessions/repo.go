package sessions

import (
	"context"
	"time"
)

// Repo is durable key/value-with-expiry storage for serialized session
// payloads. Payloads are opaque at this layer.
type Repo interface {
	// Load returns the payload for sessionID if a record exists and has
	// not yet expired. An expired-but-not-yet-swept record reports
	// ok=false; background cleanup never affects correctness.
	Load(ctx context.Context, sessionID string) (payload []byte, ok bool, err error)

	// Save upserts the record, always overwriting payload and expiry
	// together.
	Save(ctx context.Context, sessionID string, payload []byte, expiresAt time.Time) error

	// Touch updates only the expiry, leaving the payload untouched. A
	// missing row is a no-op success, never an insert. Touch is
	// best-effort by contract: callers log failures and carry on rather
	// than failing the request (a session simply isn't extended this
	// cycle).
	Touch(ctx context.Context, sessionID string, expiresAt time.Time) error

	// Destroy deletes the record. Destroying an absent id is not an
	// error.
	Destroy(ctx context.Context, sessionID string) error
}
