// Copyright (c) 2023 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package common

import (
	"context"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
)

const (
	traceIdLogField   = "traceID"
	operationLogField = "op"
	tracerName        = "hydration-challenge"
)

// Scope bundles the span and log entry of one session operation.
type Scope struct {
	Ctx     context.Context
	TraceID string
	span    oteltrace.Span
	Log     *log.Entry
}

// NewScope starts a span named op under ctx.
// Without a configured tracer provider the span is a no-op and TraceID is all zeros.
func NewScope(ctx context.Context, op string) *Scope {
	tracerCtx, span := otel.Tracer(tracerName).Start(ctx, op)
	traceID := span.SpanContext().TraceID().String()

	return &Scope{
		Ctx:     tracerCtx,
		TraceID: traceID,
		span:    span,
		Log: log.WithFields(log.Fields{
			traceIdLogField:   traceID,
			operationLogField: op,
		}),
	}
}

// Finish ends the span.
func (s *Scope) Finish() {
	s.span.End()
}

// TraceEvent adds a named event to the span.
func (s *Scope) TraceEvent(eventMessage string) {
	s.span.AddEvent(eventMessage)
}

// TraceError records err on the span and marks it failed.
func (s *Scope) TraceError(err error) {
	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}

// SetAttributes tags the span. Unsupported value types are logged and dropped.
func (s *Scope) SetAttributes(key string, value interface{}) {
	switch v := value.(type) {
	case bool:
		s.span.SetAttributes(attribute.Bool(key, v))
	case string:
		s.span.SetAttributes(attribute.String(key, v))
	case int:
		s.span.SetAttributes(attribute.Int(key, v))
	case int64:
		s.span.SetAttributes(attribute.Int64(key, v))
	case fmtStringer:
		s.span.SetAttributes(attribute.String(key, v.String()))
	default:
		s.Log.Errorf("could not set a span attribute of type %T", value)
	}
}

type fmtStringer interface {
	String() string
}
