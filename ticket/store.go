package ticket

import (
	"context"

	"github.com/pkg/errors"
)

// ErrNotFound is returned when a ticket id does not resolve, whether it
// never existed, has expired, or has already been consumed.
var ErrNotFound = errors.New("ticket not found")

// Store is the shared persistence contract for codes and tokens.
//
// Implementations must guarantee that Consume on a single id is atomic
// across concurrent callers: exactly one caller receives the ticket, every
// other caller receives ErrNotFound. Get must never return a ticket past
// its expiry.
type Store interface {
	// Add persists a ticket under its id for the ticket's own lifetime.
	Add(ctx context.Context, t *Ticket) error

	// Consume retrieves a single-use ticket and invalidates it in the same
	// operation. The ticket is unusable afterwards regardless of what the
	// caller does with it.
	Consume(ctx context.Context, id string) (*Ticket, error)

	// Get retrieves a reusable ticket without invalidating it.
	Get(ctx context.Context, id string) (*Ticket, error)

	// Delete removes a ticket. Deleting an unknown id is not an error.
	Delete(ctx context.Context, id string) error
}
