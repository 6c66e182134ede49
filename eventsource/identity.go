package eventsource

import (
	"github.com/google/uuid"
)

// ErrMsgBadRoot is reported when a root id is not a UUID.
const ErrMsgBadRoot = "root id must be a UUID"

// NewRoot returns a fresh random root id.
func NewRoot() uuid.UUID {
	return uuid.New()
}

// ParseRoot parses a root id received over the wire.
func ParseRoot(value string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, NewInvalidArgument(ErrMsgBadRoot)
	}
	return id, nil
}
