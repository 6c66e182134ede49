package eventsource

import "fmt"

// StatusCode represents the category of a command rejection.
type StatusCode int

const (
	StatusInvalidArgument StatusCode = iota
	StatusNotFound
)

func (s StatusCode) String() string {
	switch s {
	case StatusInvalidArgument:
		return "INVALID_ARGUMENT"
	case StatusNotFound:
		return "NOT_FOUND"
	default:
		return "UNKNOWN"
	}
}

// CommandError is returned when a command cannot be decoded or routed.
//
// Domain operations themselves never fail; rejected input at the edges
// (malformed payloads, unknown sessions) is reported through this type.
type CommandError struct {
	Code    StatusCode
	Message string
}

func (e *CommandError) Error() string {
	return e.Message
}

// NewInvalidArgument creates a CommandError for invalid input.
func NewInvalidArgument(message string) *CommandError {
	return &CommandError{Code: StatusInvalidArgument, Message: message}
}

// NewInvalidArgumentf creates an INVALID_ARGUMENT CommandError with a formatted message.
func NewInvalidArgumentf(format string, args ...interface{}) *CommandError {
	return &CommandError{Code: StatusInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

// NewNotFound creates a CommandError for a missing target.
func NewNotFound(message string) *CommandError {
	return &CommandError{Code: StatusNotFound, Message: message}
}
