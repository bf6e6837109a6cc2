// Package registry holds the registered-service metadata the token endpoint
// reads: client identity, allowed callbacks and scope policy. The registry
// is owned elsewhere; this core only ever looks services up.
package registry

import "golang.org/x/crypto/bcrypt"

// RegisteredService describes one client application known to the service
// registry.
type RegisteredService struct {
	ClientID    string `yaml:"client_id" json:"client_id"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// SecretHash is the bcrypt hash of the client secret. Never serialized
	// outward.
	SecretHash string `yaml:"secret_hash" json:"-"`

	// RedirectURIs are the callbacks the service declared; the redirect_uri
	// of an authorization_code request must match one exactly.
	RedirectURIs []string `yaml:"redirect_uris" json:"redirect_uris"`

	// Scopes is the service's scope policy: the scopes granted when a
	// password-grant request is resolved for this service.
	Scopes []string `yaml:"scopes,omitempty" json:"scopes,omitempty"`

	// JWTAccessTokens switches this service's access tokens from opaque
	// ids to signed JWTs.
	JWTAccessTokens bool `yaml:"jwt_access_tokens,omitempty" json:"jwt_access_tokens,omitempty"`

	// Enabled gates the service; disabled services fail validation.
	Enabled bool `yaml:"enabled" json:"enabled"`
}

// CallbackMatches reports whether redirectURI exactly matches one of the
// service's registered callbacks.
func (s *RegisteredService) CallbackMatches(redirectURI string) bool {
	if redirectURI == "" {
		return false
	}
	for _, uri := range s.RedirectURIs {
		if uri == redirectURI {
			return true
		}
	}
	return false
}

// CheckSecret verifies a presented client secret against the stored hash.
func (s *RegisteredService) CheckSecret(secret string) bool {
	return bcrypt.CompareHashAndPassword([]byte(s.SecretHash), []byte(secret)) == nil
}

// HashSecret hashes a client secret for storage.
func HashSecret(secret string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	return string(bytes), err
}
