package eventsource

import (
	"strings"

	"google.golang.org/protobuf/types/known/anypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// Error message constants.
const (
	ErrMsgUnknownCommand = "unknown command type"
	ErrMsgNoCommand      = "no command"
	ErrMsgBadPayload     = "command payload is not a Struct"
)

// CommandHandler applies a decoded command payload to a target.
type CommandHandler[T any] func(target T, payload *structpb.Struct) error

type commandEntry[T any] struct {
	suffix  string
	handler CommandHandler[T]
}

// CommandRouter dispatches commands to handlers by type_url suffix.
//
// Example:
//
//	router := eventsource.NewCommandRouter[*session.Session]("storefront").
//	    On("AddToCart", handleAddToCart).
//	    On("ClearCart", handleClearCart)
//
//	payload, err := eventsource.DecodeCommand(cmd)
//	err = router.Dispatch(sess, cmd.TypeUrl, payload)
type CommandRouter[T any] struct {
	name    string
	entries []commandEntry[T]
}

// NewCommandRouter creates a command router.
func NewCommandRouter[T any](name string) *CommandRouter[T] {
	return &CommandRouter[T]{name: name}
}

// Name returns the router's name.
func (r *CommandRouter[T]) Name() string {
	return r.name
}

// On registers a handler for a command type_url suffix.
func (r *CommandRouter[T]) On(suffix string, handler CommandHandler[T]) *CommandRouter[T] {
	r.entries = append(r.entries, commandEntry[T]{suffix, handler})
	return r
}

// Commands returns the registered command suffixes in registration order.
func (r *CommandRouter[T]) Commands() []string {
	out := make([]string, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.suffix
	}
	return out
}

// Dispatch matches the type URL against registered suffixes and runs the handler.
func (r *CommandRouter[T]) Dispatch(target T, typeURL string, payload *structpb.Struct) error {
	if payload == nil {
		payload = &structpb.Struct{}
	}
	for _, e := range r.entries {
		if strings.HasSuffix(typeURL, e.suffix) {
			return e.handler(target, payload)
		}
	}
	return NewInvalidArgumentf("%s: %s", ErrMsgUnknownCommand, typeURL)
}

// DecodeCommand extracts the Struct payload of a packed command.
func DecodeCommand(cmd *anypb.Any) (*structpb.Struct, error) {
	if cmd == nil || cmd.TypeUrl == "" {
		return nil, NewInvalidArgument(ErrMsgNoCommand)
	}
	payload, err := UnpackPayload(cmd)
	if err != nil {
		return nil, NewInvalidArgument(ErrMsgBadPayload)
	}
	return payload, nil
}
