// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package server

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"

	"github.com/AccelByte/extend-hydration-challenge/pkg/common"
)

// TracingConfig identifies this process in exported spans.
type TracingConfig struct {
	ServiceName    string
	Environment    string
	InstanceID     int64
	ZipkinEndpoint string
}

// StartTracing installs the global tracer provider and propagator used by
// common.Scope. Session operations get a traceID on their log entries even
// when no Zipkin endpoint is configured.
//
// The returned stop func flushes pending spans.
func StartTracing(cfg TracingConfig) (stop func(context.Context) error, err error) {
	provider, err := common.NewTracerProvider(cfg.ServiceName, cfg.Environment, cfg.InstanceID, cfg.ZipkinEndpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer provider: %w", err)
	}

	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(common.NewPropagator())
	logrus.Infof("tracing enabled for %s (%s)", cfg.ServiceName, cfg.Environment)

	return func(ctx context.Context) error {
		if err := provider.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to flush spans: %w", err)
		}
		logrus.Info("tracing stopped")
		return nil
	}, nil
}
