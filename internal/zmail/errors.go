package zmail

import "fmt"

// APIError is a non-success status returned inside the Zoho response
// envelope. It carries the remote description verbatim.
type APIError struct {
	Code        int
	Description string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error: %s (code %d)", e.Description, e.Code)
}

// TransportError means the helper produced no parseable response envelope:
// either no JSON block at all or one that doesn't match the expected shape.
type TransportError struct {
	Reason string
	Err    error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transport error: %s: %v", e.Reason, e.Err)
	}
	return "transport error: " + e.Reason
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// CapabilityError is returned before any call is attempted when the current
// transport cannot reach the requested operation.
type CapabilityError struct {
	Op Capability
}

func (e *CapabilityError) Error() string {
	return fmt.Sprintf("operation %q is not available through the current helper transport", e.Op)
}

// ValidationError is a caller contract violation caught before any network
// activity, such as a missing destination folder on a move.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid argument %q: %s", e.Field, e.Reason)
}
