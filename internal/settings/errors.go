package settings

import "errors"

// ErrInvalidOptions is wrapped by every options decoding and validation error.
var ErrInvalidOptions = errors.New("invalid options")
