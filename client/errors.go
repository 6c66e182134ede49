package client

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ClientError is returned by every Client method.
type ClientError struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

// ErrorKind categorizes client errors.
type ErrorKind int

const (
	// ErrTransport indicates the connection could not be set up.
	ErrTransport ErrorKind = iota
	// ErrGRPC indicates the server rejected the call.
	ErrGRPC
	// ErrInvalidArgument indicates a request the client refused to send.
	ErrInvalidArgument
	// ErrBadResponse indicates a response the client could not interpret.
	ErrBadResponse
)

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// Code returns the gRPC status code if this is a gRPC error.
func (e *ClientError) Code() codes.Code {
	if e.Kind != ErrGRPC || e.Cause == nil {
		return codes.Unknown
	}
	if s, ok := status.FromError(e.Cause); ok {
		return s.Code()
	}
	return codes.Unknown
}

// IsNotFound reports whether the session does not exist.
func (e *ClientError) IsNotFound() bool {
	return e.Code() == codes.NotFound
}

// IsInvalidArgument reports whether the request was malformed.
func (e *ClientError) IsInvalidArgument() bool {
	return e.Kind == ErrInvalidArgument || e.Code() == codes.InvalidArgument
}

// TransportError wraps a connection setup error.
func TransportError(err error) *ClientError {
	return &ClientError{Kind: ErrTransport, Message: "transport error", Cause: err}
}

// GRPCError wraps an error returned by the server.
func GRPCError(err error) *ClientError {
	return &ClientError{Kind: ErrGRPC, Message: "grpc error", Cause: err}
}

// InvalidArgumentError creates an invalid argument error.
func InvalidArgumentError(msg string) *ClientError {
	return &ClientError{Kind: ErrInvalidArgument, Message: msg}
}

// BadResponseError creates an error for an unreadable response.
func BadResponseError(msg string) *ClientError {
	return &ClientError{Kind: ErrBadResponse, Message: msg}
}

// AsClientError extracts a ClientError from an error chain.
func AsClientError(err error) *ClientError {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr
	}
	return nil
}
