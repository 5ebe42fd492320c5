package pgstore_test

import (
	"testing"
	"time"

	"github.com/jrsteele09/go-login-gateway/sessions/pgstore"
)

// Close must stop the sweeper goroutine and be safe to call more than
// once. The interval is long enough that the sweeper never fires, so
// no database is needed.
func TestCloseStopsSweeperAndIsIdempotent(t *testing.T) {
	store := pgstore.New(nil, time.Hour)

	done := make(chan struct{})
	go func() {
		store.Close()
		store.Close()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Close did not return")
	}
}
