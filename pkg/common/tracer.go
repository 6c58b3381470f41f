// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package common

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/propagators/b3"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/zipkin"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// NewTracerProvider builds a tracer provider tagged with the service identity.
// Spans are exported to zipkinEndpoint when it is set; otherwise they are
// recorded and dropped.
func NewTracerProvider(serviceName, environment string, id int64, zipkinEndpoint string) (*sdktrace.TracerProvider, error) {
	res := resource.NewSchemaless(
		attribute.String("service.name", serviceName),
		attribute.String("environment", environment),
		attribute.Int64("ID", id),
	)

	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	}

	if zipkinEndpoint != "" {
		exporter, err := zipkin.New(zipkinEndpoint)
		if err != nil {
			return nil, fmt.Errorf("failed to create zipkin exporter: %w", err)
		}
		opts = append(opts, sdktrace.WithBatcher(exporter))
		logrus.Infof("exporting traces to zipkin at %s", zipkinEndpoint)
	}

	return sdktrace.NewTracerProvider(opts...), nil
}

// NewPropagator accepts B3 headers from Zipkin clients as well as W3C trace
// context and baggage.
func NewPropagator() propagation.TextMapPropagator {
	return propagation.NewCompositeTextMapPropagator(
		b3.New(),
		propagation.TraceContext{},
		propagation.Baggage{},
	)
}
