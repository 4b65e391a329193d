package nav

import "errors"

var (
	// ErrUnknownView rejects a navigation to a view outside the configured
	// set. The active view is left unchanged.
	ErrUnknownView = errors.New("unknown view")

	// ErrNoPending is returned by ConfirmPending when no blocked navigation
	// is waiting for confirmation.
	ErrNoPending = errors.New("no pending navigation")

	// ErrMissingGuardID rejects a guard registered without an id.
	ErrMissingGuardID = errors.New("guard id is required")
)
