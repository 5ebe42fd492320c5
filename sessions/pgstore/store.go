// Package pgstore persists session records in a shared PostgreSQL
// table, one row per session id, with absolute expiry timestamps.
package pgstore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-login-gateway/sessions"
)

// Compile-time interface assertion.
var _ sessions.Repo = (*Store)(nil)

const (
	loadSQL    = `SELECT content FROM sessions WHERE session_id = $1 AND expires >= $2`
	saveSQL    = `INSERT INTO sessions (session_id, content, expires) VALUES ($1, $2, $3) ON CONFLICT (session_id) DO UPDATE SET content = EXCLUDED.content, expires = EXCLUDED.expires`
	touchSQL   = `UPDATE sessions SET expires = $1 WHERE session_id = $2`
	destroySQL = `DELETE FROM sessions WHERE session_id = $1`
	sweepSQL   = `DELETE FROM sessions WHERE expires < $1`
)

const sweepTimeout = 30 * time.Second

// Store is a PostgreSQL-backed sessions.Repo. Each call borrows a
// pooled connection strictly for its own statement and releases it on
// all paths. Every Store owns exactly one background sweeper, started
// at construction and stopped by Close.
type Store struct {
	pool          *pgxpool.Pool
	sweepInterval time.Duration

	done      chan struct{}
	closeOnce sync.Once
	swept     sync.WaitGroup
}

func New(pool *pgxpool.Pool, sweepInterval time.Duration) *Store {
	s := &Store{
		pool:          pool,
		sweepInterval: sweepInterval,
		done:          make(chan struct{}),
	}
	s.swept.Add(1)
	go s.sweepLoop()
	return s
}

func (s *Store) Load(ctx context.Context, sessionID string) ([]byte, bool, error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("[Store Load] failed to acquire connection: %w", err)
	}
	defer conn.Release()

	var content []byte
	err = conn.QueryRow(ctx, loadSQL, sessionID, time.Now()).Scan(&content)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("[Store Load] query failed: %w", err)
	}
	return content, true, nil
}

func (s *Store) Save(ctx context.Context, sessionID string, payload []byte, expiresAt time.Time) error {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("[Store Save] failed to acquire connection: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, saveSQL, sessionID, payload, expiresAt); err != nil {
		return fmt.Errorf("[Store Save] upsert failed: %w", err)
	}
	return nil
}

func (s *Store) Touch(ctx context.Context, sessionID string, expiresAt time.Time) error {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("[Store Touch] failed to acquire connection: %w", err)
	}
	defer conn.Release()

	// Zero rows affected means the session is already gone; refreshing
	// a missing session is a no-op, not an insert.
	if _, err := conn.Exec(ctx, touchSQL, expiresAt, sessionID); err != nil {
		return fmt.Errorf("[Store Touch] update failed: %w", err)
	}
	return nil
}

func (s *Store) Destroy(ctx context.Context, sessionID string) error {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("[Store Destroy] failed to acquire connection: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, destroySQL, sessionID); err != nil {
		return fmt.Errorf("[Store Destroy] delete failed: %w", err)
	}
	return nil
}

// Close stops the background sweeper. It does not close the pool,
// which the Store does not own.
func (s *Store) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
	s.swept.Wait()
}

// sweepLoop bounds storage growth by deleting expired rows. Lazy
// expiry in Load is the authority for correctness, so a failed sweep
// only logs and the next tick tries again.
func (s *Store) sweepLoop() {
	defer s.swept.Done()

	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *Store) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("session sweep: failed to acquire connection")
		return
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, sweepSQL, time.Now())
	if err != nil {
		log.Warn().Err(err).Msg("session sweep failed")
		return
	}
	if deleted := tag.RowsAffected(); deleted > 0 {
		log.Debug().Int64("deleted", deleted).Msg("swept expired sessions")
	}
}
