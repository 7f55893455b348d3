package lang

import "errors"

// ErrInvalid indicates a language the application has no content for.
var ErrInvalid = errors.New("invalid language code")
