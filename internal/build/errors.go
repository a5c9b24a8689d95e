package build

import "errors"

// ErrConfigRequired is returned when a request carries no configuration.
var ErrConfigRequired = errors.New("build: config required")
