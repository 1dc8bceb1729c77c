package security

import (
	"errors"
	"fmt"
)

// ErrNoIdentity is returned by Session, SessionIfExists and Invalidate
// when no identity is bound to the current flow.
var ErrNoIdentity = errors.New("no identity bound to the current flow")

// ConfigurationError reports a required collaborator that was never
// wired in.
type ConfigurationError struct {
	Missing string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf(
		"security facade is not fully configured: %s is not set. "+
			"The facade only delegates; the underlying %s must be supplied "+
			"at construction or via the setter before use.",
		e.Missing, e.Missing,
	)
}
