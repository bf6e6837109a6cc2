// Package yamlrepo loads seeded resource owners from a YAML file at
// startup. Intended for small deployments and local development; larger
// installations plug in their own UserRepo.
package yamlrepo

import (
	"os"
	"sync"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/jrsteele09/go-token-service/users"
)

var _ users.UserRepo = (*YAMLRepo)(nil)

type usersFile struct {
	Users []*users.User `yaml:"users"`
}

// YAMLRepo is a user repo seeded from a YAML file. Upserts are held in
// memory only.
type YAMLRepo struct {
	users map[string]*users.User
	lock  sync.RWMutex
}

// Load reads and parses the users file.
func Load(path string) (*YAMLRepo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "[yamlrepo.Load] read %s", path)
	}

	var file usersFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrapf(err, "[yamlrepo.Load] parse %s", path)
	}

	byUsername := make(map[string]*users.User, len(file.Users))
	for _, u := range file.Users {
		if u.Username == "" {
			return nil, errors.Errorf("[yamlrepo.Load] user %q has no username", u.ID)
		}
		byUsername[u.Username] = u
	}

	return &YAMLRepo{users: byUsername}, nil
}

// Upsert implements users.UserRepo.
func (r *YAMLRepo) Upsert(user *users.User) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.users[user.Username] = user
	return nil
}

// GetByUsername implements users.UserRepo.
func (r *YAMLRepo) GetByUsername(username string) (*users.User, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	user, ok := r.users[username]
	if !ok {
		return nil, users.ErrNotFound
	}
	return user, nil
}
