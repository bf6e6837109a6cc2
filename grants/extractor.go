package grants

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jrsteele09/go-token-service/oauthmodel"
	"github.com/jrsteele09/go-token-service/profile"
)

// Extractor resolves a supported request into an IssuanceContext, performing
// any ticket consumption or credential authentication the grant requires.
type Extractor interface {
	// Supports reports whether this extractor applies to the request. It
	// inspects only the claimed grant type; the validator has already
	// enforced the per-grant preconditions.
	Supports(req *oauthmodel.AccessTokenRequest) bool

	// Extract resolves the request. Failures are invalid_grant class; any
	// side effect already performed (a consumed code) is not rolled back.
	Extract(ctx context.Context, req *oauthmodel.AccessTokenRequest, caller *profile.CallerProfile) (*IssuanceContext, error)
}

// Dispatcher holds the extractors in their fixed priority order and selects
// the first applicable one. The order — authorization_code, refresh_token,
// password — is part of the contract and must not be changed.
type Dispatcher struct {
	extractors []Extractor
	log        zerolog.Logger
}

// NewDispatcher builds the dispatch table.
func NewDispatcher(log zerolog.Logger, extractors ...Extractor) *Dispatcher {
	return &Dispatcher{extractors: extractors, log: log}
}

// Dispatch selects and runs the first extractor whose Supports predicate
// matches. The validator makes a no-match impossible in practice; should it
// happen anyway the failure is classed with extraction failures
// (invalid_grant), not validation failures.
func (d *Dispatcher) Dispatch(ctx context.Context, req *oauthmodel.AccessTokenRequest, caller *profile.CallerProfile) (*IssuanceContext, error) {
	for _, ext := range d.extractors {
		if !ext.Supports(req) {
			continue
		}
		return ext.Extract(ctx, req, caller)
	}
	d.log.Error().Str("grant_type", string(req.GrantType)).Msg("no extractor matched request")
	return nil, oauthmodel.InvalidGrant("request is not supported")
}
