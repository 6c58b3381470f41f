package common

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

func TestNewPropagator_Fields(t *testing.T) {
	fields := strings.Join(NewPropagator().Fields(), ",")

	for _, want := range []string{"traceparent", "baggage", "x-b3-traceid"} {
		if !strings.Contains(fields, want) {
			t.Errorf("Fields() = %s, expected %s", fields, want)
		}
	}
}

func TestNewPropagator_ExtractsB3(t *testing.T) {
	header := http.Header{}
	header.Set("X-B3-TraceId", "4bf92f3577b34da6a3ce929d0e0e4736")
	header.Set("X-B3-SpanId", "00f067aa0ba902b7")
	header.Set("X-B3-Sampled", "1")

	ctx := NewPropagator().Extract(context.Background(), propagation.HeaderCarrier(header))

	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		t.Fatal("expected a valid span context from B3 headers")
	}
	if sc.TraceID().String() != "4bf92f3577b34da6a3ce929d0e0e4736" {
		t.Errorf("TraceID = %s", sc.TraceID())
	}
}

func TestNewTracerProvider_NoExporter(t *testing.T) {
	tp, err := NewTracerProvider("hydration-challenge", "test", 1, "")
	if err != nil {
		t.Fatalf("NewTracerProvider() error = %v", err)
	}

	_, span := tp.Tracer("test").Start(context.Background(), "op")
	if !span.SpanContext().IsValid() {
		t.Error("expected sampled span to carry a valid context")
	}
	span.End()

	if err := tp.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}
