package fakeuserrepo

import (
	"context"
	"sync"

	"github.com/jrsteele09/go-login-gateway/users"
)

var _ users.Repo = (*FakeUserRepo)(nil)

type FakeUserRepo struct {
	lock  sync.RWMutex
	users map[string]users.User

	UpsertErr error
}

func NewFakeUserRepo() *FakeUserRepo {
	return &FakeUserRepo{
		users: make(map[string]users.User),
	}
}

func (ur *FakeUserRepo) Upsert(_ context.Context, user users.User) error {
	if ur.UpsertErr != nil {
		return ur.UpsertErr
	}

	ur.lock.Lock()
	defer ur.lock.Unlock()

	ur.users[user.ID] = user
	return nil
}

// Get returns the stored credential for assertions.
func (ur *FakeUserRepo) Get(id string) (users.User, bool) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	u, ok := ur.users[id]
	return u, ok
}

// Count reports how many credential rows exist.
func (ur *FakeUserRepo) Count() int {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	return len(ur.users)
}
