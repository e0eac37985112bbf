package scm

import (
	"errors"
	"fmt"
)

// ErrNoVersion is returned when the repository yields no version and no
// fallback_version was configured.
var ErrNoVersion = errors.New("unable to determine version")

// Error describes a failed git invocation.
type Error struct {
	Op     string
	Stderr string
	Err    error
}

func (e *Error) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Stderr, e.Err)
	}
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
