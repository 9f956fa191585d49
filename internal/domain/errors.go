package domain

import "errors"

// Domain errors (no external dependencies). Handlers map these to HTTP codes;
// nothing in the core retries or suppresses them.
var (
	ErrNotFound               = errors.New("resource not found")
	ErrDuplicate              = errors.New("duplicate resource")
	ErrInvalidInput           = errors.New("invalid input")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrForbidden              = errors.New("access denied")
	ErrEmailAlreadyExists     = errors.New("email already registered")
	ErrInvalidStateTransition = errors.New("order is not in a state that allows this transition")
	ErrInvalidStage           = errors.New("unknown production stage")
	ErrBackwardTransition     = errors.New("cannot move production stage backwards")
	ErrOrderNotReady          = errors.New("order is not ready for shipment")
)
