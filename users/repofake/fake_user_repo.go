package repofake

import (
	"sync"

	"github.com/jrsteele09/go-token-service/users"
)

var _ users.UserRepo = (*FakeUserRepo)(nil)

// FakeUserRepo is an in-memory user repo for tests.
type FakeUserRepo struct {
	users map[string]*users.User
	lock  sync.RWMutex
}

func NewFakeUserRepo() *FakeUserRepo {
	return &FakeUserRepo{
		users: make(map[string]*users.User),
	}
}

func (r *FakeUserRepo) Upsert(user *users.User) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.users[user.Username] = user
	return nil
}

func (r *FakeUserRepo) GetByUsername(username string) (*users.User, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	user, ok := r.users[username]
	if !ok {
		return nil, users.ErrNotFound
	}
	return user, nil
}
