package branch

import "fmt"

// NameError reports ticket data that cannot produce a valid branch name.
type NameError struct {
	Field  string // Ticket field that failed (e.g., "assignee")
	Value  string // Offending value
	Reason string // Why the value is unusable
}

func (e *NameError) Error() string {
	return fmt.Sprintf("branch name from %s %q: %s", e.Field, e.Value, e.Reason)
}
