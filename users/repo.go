package users

import "context"

// Repo stores user credential records. Re-authentication overwrites
// tokens in place; there is never more than one row per subject.
type Repo interface {
	Upsert(ctx context.Context, user User) error
}
