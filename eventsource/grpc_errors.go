package eventsource

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// MapCommandError converts a CommandError to a gRPC status error.
// Non-CommandError values are wrapped as Internal.
func MapCommandError(err error) error {
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		switch cmdErr.Code {
		case StatusInvalidArgument:
			return status.Error(codes.InvalidArgument, cmdErr.Message)
		case StatusNotFound:
			return status.Error(codes.NotFound, cmdErr.Message)
		}
	}
	return status.Errorf(codes.Internal, "internal error: %v", err)
}
