// Package profile defines the already-authenticated caller identity handed
// to the token pipeline by the authentication layer. Profiles live for one
// request and are never persisted.
package profile

// Kind distinguishes machine clients from resource owners.
type Kind string

const (
	// KindClient marks a machine client authenticated with its client
	// credentials (authorization_code and refresh_token grants).
	KindClient Kind = "client"

	// KindUser marks a resource owner (password grant).
	KindUser Kind = "user"
)

// CallerProfile is the caller identity established before the pipeline runs.
// For client profiles ID is the client id of the registered service; for
// user profiles it is the resource owner's username.
type CallerProfile struct {
	ID   string
	Kind Kind
}

// NewClientProfile builds a client profile for the given client id.
func NewClientProfile(clientID string) *CallerProfile {
	return &CallerProfile{ID: clientID, Kind: KindClient}
}

// NewUserProfile builds a user profile for the given username.
func NewUserProfile(username string) *CallerProfile {
	return &CallerProfile{ID: username, Kind: KindUser}
}

// IsClient reports whether the profile belongs to a machine client.
func (p *CallerProfile) IsClient() bool {
	return p != nil && p.Kind == KindClient
}

// IsUser reports whether the profile belongs to a resource owner.
func (p *CallerProfile) IsUser() bool {
	return p != nil && p.Kind == KindUser
}
