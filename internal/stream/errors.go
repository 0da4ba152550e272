package stream

import (
	"errors"
	"fmt"
)

// ErrAlreadyRunning is returned by Run when the pipeline is already running.
var ErrAlreadyRunning = errors.New("pipeline is already running")

// DecodeError wraps a payload decoding failure with the message position.
type DecodeError struct {
	Message Message
	Err     error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Message, e.Err)
}

// Unwrap returns the underlying decoder error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}
