package registry

import "github.com/pkg/errors"

// ErrNotFound is returned when no service is registered under a client id.
var ErrNotFound = errors.New("registered service not found")

// Repo looks registered services up by client id.
type Repo interface {
	Get(clientID string) (*RegisteredService, error)
	List() ([]*RegisteredService, error)
}
