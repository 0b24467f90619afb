package store

import (
	"errors"
	"fmt"
)

// Kinds of remote failure. Match with errors.Is.
var (
	ErrRetrieval = errors.New("failed to list")
	ErrCreation  = errors.New("failed to create")
	ErrUpdate    = errors.New("failed to update")
	ErrDeletion  = errors.New("failed to delete")
)

// RemoteError is returned by the remote backend when the service answered
// with a non-2xx status or could not be reached at all.
type RemoteError struct {
	Kind       error
	StatusCode int // zero when no response arrived
	Err        error
}

func (e *RemoteError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: status %d", e.Kind, e.StatusCode)
	default:
		return e.Kind.Error()
	}
}

func (e *RemoteError) Is(target error) bool { return target == e.Kind }

func (e *RemoteError) Unwrap() error { return e.Err }
