package oauthmodel

import "github.com/pkg/errors"

// The three failure classes the token endpoint distinguishes. Every error
// the pipeline returns wraps exactly one of these sentinels, so call sites
// classify with errors.Is rather than string matching.
//
// ErrInvalidRequest covers validation failures: nothing has been mutated and
// the caller may retry immediately with corrected parameters.
// ErrInvalidGrant covers extraction failures: the underlying ticket may
// already have been consumed, so a retry needs a fresh grant.
// ErrServerError covers storage failures during issuance.
var (
	ErrInvalidRequest = errors.New(CodeInvalidRequest)
	ErrInvalidGrant   = errors.New(CodeInvalidGrant)
	ErrServerError    = errors.New(CodeServerError)
)

// Wire-level error codes.
const (
	CodeInvalidRequest = "invalid_request"
	CodeInvalidGrant   = "invalid_grant"
	CodeServerError    = "server_error"
)

// InvalidRequest wraps a validation failure with the invalid_request class.
func InvalidRequest(msg string) error {
	return errors.Wrap(ErrInvalidRequest, msg)
}

// InvalidGrant wraps an extraction failure with the invalid_grant class.
func InvalidGrant(msg string) error {
	return errors.Wrap(ErrInvalidGrant, msg)
}

// ServerError wraps a storage failure with the server_error class.
func ServerError(err error) error {
	if err == nil {
		return ErrServerError
	}
	return errors.Wrap(ErrServerError, err.Error())
}

// ErrorCode maps a pipeline error to its wire-level code. Unclassified
// errors are reported as server_error rather than leaked to the caller.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return CodeInvalidRequest
	case errors.Is(err, ErrInvalidGrant):
		return CodeInvalidGrant
	default:
		return CodeServerError
	}
}
