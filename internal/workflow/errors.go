package workflow

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrCapabilityUnavailable marks a failed call to an external capability.
	ErrCapabilityUnavailable = errors.New("capability unavailable")

	// ErrCapabilityTimeout marks a capability call that ran out of time. It
	// routes identically to ErrCapabilityUnavailable.
	ErrCapabilityTimeout = errors.New("capability timeout")

	// ErrFallbackFailed means the fallback pipeline's own generation call
	// failed; the run ends with no answer.
	ErrFallbackFailed = errors.New("fallback pipeline failed")
)

// capabilityErr tags err with the capability name and the right sentinel so
// callers can classify with errors.Is.
func capabilityErr(capability string, err error) error {
	kind := ErrCapabilityUnavailable
	if errors.Is(err, context.DeadlineExceeded) {
		kind = ErrCapabilityTimeout
	}
	return fmt.Errorf("%s: %w: %w", capability, kind, err)
}
