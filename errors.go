package humanfmt

import "errors"

// ErrInvalidRules indicates a rules file decoded but carried unusable data.
var ErrInvalidRules = errors.New("humanfmt: invalid formatting rules")

// ErrUnsupportedRulesFile is returned for rules files with an unknown extension
var ErrUnsupportedRulesFile = errors.New("humanfmt: unsupported rules file")

// ErrInvalidInput marks textual input that could not be parsed into a value.
var ErrInvalidInput = errors.New("humanfmt: invalid input")
