// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-hydration-challenge/pkg/metrics"
)

const healthEndpoint = "/healthz"

// HealthCheck reports whether the process can still reach its state backend.
type HealthCheck interface {
	Check(ctx context.Context) error
}

// MetricsServer manages the Prometheus metrics HTTP server.
type MetricsServer struct {
	server   *http.Server
	port     int
	endpoint string
	health   HealthCheck
}

// NewMetricsServer creates a new metrics server instance. health may be nil.
func NewMetricsServer(port int, endpoint string, health HealthCheck) *MetricsServer {
	return &MetricsServer{
		port:     port,
		endpoint: endpoint,
		health:   health,
	}
}

// Setup registers the runtime and challenge collectors and builds the handler.
func (m *MetricsServer) Setup() error {
	registry := prometheus.NewRegistry()

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics.Register(registry)

	m.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", m.port),
		Handler: m.handler(registry),
	}

	return nil
}

func (m *MetricsServer) handler(gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle(m.endpoint, promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	mux.HandleFunc(healthEndpoint, m.serveHealth)
	return mux
}

func (m *MetricsServer) serveHealth(w http.ResponseWriter, r *http.Request) {
	if m.health != nil {
		if err := m.health.Check(r.Context()); err != nil {
			http.Error(w, "state backend unavailable", http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Start begins serving metrics on the configured port.
func (m *MetricsServer) Start(ctx context.Context) error {
	go func() {
		logrus.Infof("metrics server listening on port %d%s", m.port, m.endpoint)
		if err := m.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("metrics server failed: %v", err)
		}
	}()
	return nil
}

// Shutdown gracefully stops the metrics server.
func (m *MetricsServer) Shutdown(ctx context.Context) error {
	logrus.Info("shutting down metrics server...")
	if err := m.server.Shutdown(ctx); err != nil {
		return err
	}
	logrus.Info("metrics server stopped")
	return nil
}
