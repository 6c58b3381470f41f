// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package app

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-hydration-challenge/internal/bootstrap"
	"github.com/AccelByte/extend-hydration-challenge/internal/config"
	"github.com/AccelByte/extend-hydration-challenge/internal/server"
	"github.com/AccelByte/extend-hydration-challenge/pkg/common"
	"github.com/AccelByte/extend-hydration-challenge/pkg/session"
)

// App holds all application dependencies and manages the application lifecycle.
type App struct {
	cfg               *config.Config
	storage           *bootstrap.Storage
	watcher           *session.Watcher
	metricsServer     *server.MetricsServer
	shutdownTelemetry func(context.Context) error
}

// New creates and initializes a new application instance.
//
// ============================================================
// Application initialization order
// ============================================================
// 1. Telemetry (so session spans recorded at startup are exported)
// 2. State storage (redis, file or memory)
// 3. Session (load, catch up on day changes, seed from roster)
// 4. Rollover watcher
// 5. Metrics server with /healthz
// ============================================================
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	logrus.Info("initializing application...")

	app := &App{cfg: cfg}

	// ============================================================
	// Step 1: Setup telemetry
	// ============================================================
	if cfg.OtelEnabled {
		shutdownTelemetry, err := server.StartTracing(server.TracingConfig{
			ServiceName:    cfg.ServiceName,
			Environment:    cfg.Environment,
			ZipkinEndpoint: cfg.ZipkinEndpoint,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to setup telemetry: %w", err)
		}
		app.shutdownTelemetry = shutdownTelemetry
	}

	// ============================================================
	// Step 2: Initialize state storage
	// ============================================================
	storage, err := bootstrap.InitStorage(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to init state storage: %w", err)
	}
	app.storage = storage

	// ============================================================
	// Step 3: Open the challenge session
	// ============================================================
	sess, err := bootstrap.InitSession(ctx, cfg, storage.Store, common.SystemClock{})
	if err != nil {
		storage.Close()
		return nil, fmt.Errorf("failed to init session: %w", err)
	}

	// ============================================================
	// Step 4: Rollover watcher
	// ============================================================
	app.watcher = session.NewWatcher(sess, cfg.RolloverCheckInterval)

	// ============================================================
	// Step 5: Setup servers
	// ============================================================
	app.metricsServer = server.NewMetricsServer(cfg.MetricsPort, "/metrics", storage.Health)
	if err := app.metricsServer.Setup(); err != nil {
		storage.Close()
		return nil, fmt.Errorf("failed to setup metrics server: %w", err)
	}

	logrus.Info("application initialized successfully")

	return app, nil
}
