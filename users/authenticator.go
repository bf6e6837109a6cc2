package users

import (
	"context"

	"github.com/pkg/errors"

	"github.com/jrsteele09/go-token-service/profile"
)

// Authenticator verifies resource-owner credentials against the user repo
// and establishes a user profile for the request. It backs the password
// grant's external authentication collaborator.
type Authenticator struct {
	repo UserRepo
}

// NewAuthenticator creates an Authenticator over the given repo.
func NewAuthenticator(repo UserRepo) *Authenticator {
	return &Authenticator{repo: repo}
}

// Authenticate checks the credentials and returns the authenticated user's
// profile. Any failure (unknown user, disabled account, wrong password)
// returns an error without distinguishing the cause to the caller.
func (a *Authenticator) Authenticate(ctx context.Context, username, password string) (*profile.CallerProfile, error) {
	user, err := a.repo.GetByUsername(username)
	if err != nil {
		return nil, errors.Wrap(err, "[Authenticator.Authenticate] GetByUsername")
	}
	if user.Disabled {
		return nil, errors.New("[Authenticator.Authenticate] account disabled")
	}
	if !CheckPasswordHash(password, user.PasswordHash) {
		return nil, errors.New("[Authenticator.Authenticate] password mismatch")
	}
	return profile.NewUserProfile(user.Username), nil
}
