package authclient

import "github.com/goliatone/go-errors"

const (
	TextCodeMissingBackend  = "auth_client_missing_backend"
	TextCodeMissingResolver = "auth_client_missing_resolver"
	TextCodeReactivation    = "auth_client_reactivation"
	TextCodeMissingUser     = "auth_client_missing_user"
)

// ErrMissingBackend is returned when a session operation needs a
// CredentialExchanger and none was configured.
var ErrMissingBackend = errors.New("no credential exchanger configured", errors.CategoryOperation).
	WithTextCode(TextCodeMissingBackend).
	WithCode(errors.CodeInternal)

// ErrMissingResolver is returned when Activate is asked to restore a user
// but no UserResolver was configured.
var ErrMissingResolver = errors.New("no user resolver configured", errors.CategoryOperation).
	WithTextCode(TextCodeMissingResolver).
	WithCode(errors.CodeInternal)

// ErrReactivation is returned when Activate is called with a nil user id
// after the session has already been activated.
var ErrReactivation = errors.New("cannot activate nil user after activation", errors.CategoryConflict).
	WithTextCode(TextCodeReactivation).
	WithCode(errors.CodeConflict)

// ErrMissingUser is returned by UserOrFail while unauthenticated.
var ErrMissingUser = errors.New("no authenticated user", errors.CategoryAuth).
	WithTextCode(TextCodeMissingUser).
	WithCode(errors.CodeUnauthorized)

// IsConfigurationError reports whether err means a required port was not
// wired at construction time. These are fixed in the embedding application,
// never retried.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrMissingBackend) || errors.Is(err, ErrMissingResolver)
}
