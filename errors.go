package redbranch

import (
	"errors"
	"fmt"
)

// Workflow errors.
var (
	// ErrNoRemote indicates the repository has no remotes configured.
	ErrNoRemote = errors.New("no git remote configured")

	// ErrAmbiguousRemote indicates more than one remote is configured
	// and none was selected explicitly.
	ErrAmbiguousRemote = errors.New("multiple git remotes configured")

	// ErrRemoteNotFound indicates the requested remote does not exist.
	ErrRemoteNotFound = errors.New("remote not found")

	// ErrBaseBranchNotFound indicates the resolved base branch is not
	// among the repository's remote branches.
	ErrBaseBranchNotFound = errors.New("base branch not found among remote branches")
)

// RemoteError adds the remote names involved to a remote selection
// failure.
type RemoteError struct {
	Remotes   []string // Remotes configured in the repository
	Requested string   // Explicitly requested remote, if any
	Err       error    // ErrNoRemote, ErrAmbiguousRemote or ErrRemoteNotFound
}

func (e *RemoteError) Error() string {
	if e.Requested != "" {
		return fmt.Sprintf("remote %q not found (configured: %v)", e.Requested, e.Remotes)
	}
	if len(e.Remotes) > 1 {
		return fmt.Sprintf("multiple remotes configured (%v), pick one explicitly", e.Remotes)
	}
	return e.Err.Error()
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}
