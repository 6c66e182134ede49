package eventsource

import (
	"fmt"

	"github.com/google/uuid"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/anypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// Event is a state transition that can be recorded in a Book.
//
// EventType is the short name used to build the type URL; Payload encodes
// everything needed to re-apply the event during replay.
type Event interface {
	EventType() string
	Payload() (*structpb.Struct, error)
}

// Page is a single journaled event.
type Page struct {
	Sequence  uint32
	Event     *anypb.Any
	CreatedAt *timestamppb.Timestamp
}

// Type returns the short event name of the page.
func (p *Page) Type() string {
	return Name(p.Event.GetTypeUrl())
}

// Book is the ordered event journal of one root.
type Book struct {
	Root  uuid.UUID
	Pages []*Page
}

// NewPayload builds an event or command payload from plain Go values.
func NewPayload(fields map[string]any) (*structpb.Struct, error) {
	return structpb.NewStruct(fields)
}

// PackEvent wraps an event into an Any keyed by its type URL.
func PackEvent(event Event) (*anypb.Any, error) {
	payload, err := event.Payload()
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", event.EventType(), err)
	}
	value, err := proto.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", event.EventType(), err)
	}
	return &anypb.Any{TypeUrl: TypeURL(event.EventType()), Value: value}, nil
}

// UnpackPayload decodes the Struct payload carried by a packed event or command.
func UnpackPayload(msg *anypb.Any) (*structpb.Struct, error) {
	var payload structpb.Struct
	if err := proto.Unmarshal(msg.GetValue(), &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Append packs the event and records it as the next page of the book.
func (b *Book) Append(event Event) (*Page, error) {
	eventAny, err := PackEvent(event)
	if err != nil {
		return nil, err
	}
	page := &Page{
		Sequence:  NextSequence(b),
		Event:     eventAny,
		CreatedAt: timestamppb.Now(),
	}
	b.Pages = append(b.Pages, page)
	return page, nil
}

// Clone returns a copy of the book whose page slice can be appended to
// independently. Pages are shared; they are never mutated after Append.
func (b *Book) Clone() *Book {
	if b == nil {
		return nil
	}
	pages := make([]*Page, len(b.Pages))
	copy(pages, b.Pages)
	return &Book{Root: b.Root, Pages: pages}
}

// NextSequence returns the sequence number the next appended page will get.
func NextSequence(book *Book) uint32 {
	if book == nil || len(book.Pages) == 0 {
		return 0
	}
	return uint32(len(book.Pages))
}
