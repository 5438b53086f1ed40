package projectruntime

import "errors"

var (
	// ErrPrecondition is returned when an operation runs before the state it
	// depends on exists: no endpoint, no session, missing configuration.
	ErrPrecondition = errors.New("precondition failed")

	ErrMultipleRegistration = errors.New("only one endpoint can be registered")
)
