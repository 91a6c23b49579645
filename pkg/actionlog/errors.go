package actionlog

import (
	"errors"
	"fmt"
)

// Well-known error codes (§3, §7). These are the values ActionLog.errorCode
// takes on for framework-generated outcomes; application code may supply
// any other short token via Event.ErrorCode.
const (
	ErrorCodeUnassigned  = "UNASSIGNED"
	ErrorCodeError       = "ERROR"
	ErrorCodeCancelled   = "CANCELLED"
	ErrorCodeRemoteFault = "REMOTE_SERVICE_ERROR"
)

var (
	// ErrNoActiveAction names the condition of no ActionLog being bound.
	// No function in this package returns it; Current reports that
	// condition by returning nil.
	ErrNoActiveAction = errors.New("actionlog: no action bound to current thread")

	// ErrActionIDRequired names the condition of a missing action id. No
	// function in this package returns it; Begin generates an id when it
	// receives an empty one.
	ErrActionIDRequired = errors.New("actionlog: action id required")
)

// NestedBeginError is the panic value (fatal, per §5) raised when Begin is
// called on a context that already has a bound, unended ActionLog.
type NestedBeginError struct {
	ExistingActionID string
	NewAction        string
}

func (e *NestedBeginError) Error() string {
	return fmt.Sprintf("actionlog: begin called with action %q already bound (existing id=%s); nested begin without end is a programming error",
		e.NewAction, e.ExistingActionID)
}

// ContextValueTooLongError records the warning raised when a context value
// exceeds MaxContextValueLength (§3).
type ContextValueTooLongError struct {
	Key    string
	Length int
	Limit  int
}

func (e *ContextValueTooLongError) Error() string {
	return fmt.Sprintf("context value is too long, key=%s (len=%d, limit=%d)", e.Key, e.Length, e.Limit)
}
