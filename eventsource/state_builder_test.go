package eventsource

import (
	"testing"

	"google.golang.org/protobuf/types/known/anypb"
	"google.golang.org/protobuf/types/known/structpb"
)

type counterState struct {
	value   int
	applied int
}

func newCounterBuilder() *StateBuilder[counterState] {
	return NewStateBuilder(func() counterState { return counterState{} }).
		On("CounterIncremented", func(s *counterState, p *structpb.Struct) {
			s.value += int(p.Fields["by"].GetNumberValue())
			s.applied++
		}).
		On("CounterReset", func(s *counterState, _ *structpb.Struct) {
			s.value = 0
			s.applied++
		})
}

func TestStateBuilder_RebuildNil(t *testing.T) {
	state := newCounterBuilder().Rebuild(nil)
	if state.value != 0 || state.applied != 0 {
		t.Errorf("expected zero state, got %+v", state)
	}
}

func TestStateBuilder_RebuildAppliesInOrder(t *testing.T) {
	book := &Book{Root: NewRoot()}
	_, _ = book.Append(counterIncremented{By: 2})
	_, _ = book.Append(counterIncremented{By: 5})
	_, _ = book.Append(counterReset{})
	_, _ = book.Append(counterIncremented{By: 4})

	state := newCounterBuilder().Rebuild(book)

	if state.value != 4 {
		t.Errorf("expected value 4, got %d", state.value)
	}
	if state.applied != 4 {
		t.Errorf("expected 4 applied events, got %d", state.applied)
	}
}

func TestStateBuilder_IgnoresUnknownAndBrokenEvents(t *testing.T) {
	book := &Book{Pages: []*Page{
		nil,
		{Event: nil},
		{Event: &anypb.Any{TypeUrl: TypeURL("SomethingElse")}},
		{Event: &anypb.Any{TypeUrl: TypeURL("CounterIncremented"), Value: []byte{0xff, 0xff}}},
	}}

	state := newCounterBuilder().Rebuild(book)

	if state.applied != 0 {
		t.Errorf("expected nothing applied, got %d", state.applied)
	}
}

func TestStateBuilder_ApplyReportsMatch(t *testing.T) {
	b := newCounterBuilder()
	var state counterState

	packed, _ := PackEvent(counterIncremented{By: 1})
	if !b.Apply(&state, packed) {
		t.Error("expected known event to apply")
	}
	if b.Apply(&state, &anypb.Any{TypeUrl: TypeURL("Unknown")}) {
		t.Error("expected unknown event to be ignored")
	}
	if b.Apply(&state, nil) {
		t.Error("expected nil event to be ignored")
	}
	if !b.Handles(TypeURL("CounterReset")) || b.Handles(TypeURL("Unknown")) {
		t.Error("Handles disagrees with registrations")
	}
}
