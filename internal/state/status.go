package state

import (
	"errors"
	"fmt"
)

// AsyncStatus is the lifecycle of a slice's in-flight operation.
type AsyncStatus string

const (
	StatusIdle      AsyncStatus = "idle"
	StatusLoading   AsyncStatus = "loading"
	StatusSucceeded AsyncStatus = "succeeded"
	StatusFailed    AsyncStatus = "failed"
)

// Persisted keys. Each slice owns exactly one.
const (
	KeyAuth       = "@cinedeck/auth"
	KeyFavourites = "@cinedeck/favourites"
	KeyTheme      = "@cinedeck/theme"
)

// ErrPersist marks a failed storage write. In-memory state is unchanged when
// it is returned.
var ErrPersist = errors.New("persist state")

// OpError is a rejected operation. Message is safe to show to the user.
type OpError struct {
	Message string
	Err     error
}

func (e *OpError) Error() string { return e.Message }

func (e *OpError) Unwrap() error { return e.Err }

func persistError(message string, cause error) *OpError {
	return &OpError{Message: message, Err: fmt.Errorf("%w: %w", ErrPersist, cause)}
}

// Message extracts the user-facing text of err.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var op *OpError
	if errors.As(err, &op) {
		return op.Message
	}
	return err.Error()
}
