package cli

import "errors"

// CLI-specific sentinel errors.
// These are validation/usage errors that don't belong to domain packages.

var (
	// ErrAPIURLMissing indicates no API base URL is configured.
	ErrAPIURLMissing = errors.New("api-url not configured")

	// ErrInvalidData indicates a --data value that is not valid JSON.
	ErrInvalidData = errors.New("invalid JSON data")

	// ErrInvalidQuery indicates a --query value that is not key=value.
	ErrInvalidQuery = errors.New("invalid query parameter")

	// ErrInvalidStatus indicates a --status value outside 100-599.
	ErrInvalidStatus = errors.New("invalid HTTP status code")

	// ErrNothingToClassify indicates classify was called without --status
	// or --message.
	ErrNothingToClassify = errors.New("nothing to classify")

	// ErrUnknownConfigKey indicates a config key the CLI does not manage.
	ErrUnknownConfigKey = errors.New("unknown config key")

	// ErrCredentialsMissing indicates login without email or password.
	ErrCredentialsMissing = errors.New("email and password are required")
)
