package telemetry

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestNewTracerProvider_ExportsSpans(t *testing.T) {
	var buf bytes.Buffer
	tp, err := NewTracerProvider(&buf, "storefront-test")
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}

	_, span := tp.Tracer("test").Start(context.Background(), "storefront.Handle")
	span.End()

	if err := tp.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "storefront.Handle") {
		t.Errorf("span not exported: %s", out)
	}
	if !strings.Contains(out, "storefront-test") {
		t.Errorf("service name missing: %s", out)
	}
}

func TestSetup_Disabled(t *testing.T) {
	var buf bytes.Buffer
	shutdown, err := Setup(false, &buf, "storefront")
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("shutdown: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("disabled tracing wrote output: %s", buf.String())
	}
}
