package users

import "github.com/pkg/errors"

// ErrNotFound is returned when no user exists for a username.
var ErrNotFound = errors.New("user not found")

// UserRepo stores resource owners.
type UserRepo interface {
	Upsert(user *User) error
	GetByUsername(username string) (*User, error)
}
