package eventsource

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogEvent(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	book := &Book{Root: NewRoot()}
	page, _ := book.Append(counterIncremented{By: 2})

	LogEvent(zap.New(core), book, page)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	ctx := entries[0].ContextMap()
	if ctx["event"] != "CounterIncremented" {
		t.Errorf("unexpected event field %v", ctx["event"])
	}
	if ctx["root"] != book.Root.String() {
		t.Errorf("unexpected root field %v", ctx["root"])
	}
	if ctx["seq"] != uint32(0) {
		t.Errorf("unexpected seq field %v (%T)", ctx["seq"], ctx["seq"])
	}
}

func TestLogEvent_NilSafe(t *testing.T) {
	LogEvent(nil, &Book{}, &Page{})
	LogEvent(zap.NewNop(), &Book{}, nil)
}
