// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package app

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

// Run starts the application and blocks until a shutdown signal is received.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.metricsServer.Start(ctx); err != nil {
		return err
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		a.watcher.Run(ctx)
	}()

	logrus.Info("application started successfully")

	<-ctx.Done()
	logrus.Info("shutdown signal received")

	wg.Wait()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return a.Shutdown(shutdownCtx)
}

// Shutdown gracefully shuts down all application components.
//
// ============================================================
// Shutdown order
// ============================================================
// 1. Stop serving metrics
// 2. Close the state backend
// 3. Flush telemetry data
//
// Shutdown errors are logged but don't stop the sequence.
// ============================================================
func (a *App) Shutdown(ctx context.Context) error {
	logrus.Info("shutting down application...")

	if a.metricsServer != nil {
		if err := a.metricsServer.Shutdown(ctx); err != nil {
			logrus.Errorf("metrics server shutdown error: %v", err)
		}
	}

	if a.storage != nil {
		if err := a.storage.Close(); err != nil {
			logrus.Errorf("state backend close error: %v", err)
		}
	}

	if a.shutdownTelemetry != nil {
		if err := a.shutdownTelemetry(ctx); err != nil {
			logrus.Errorf("telemetry shutdown error: %v", err)
		}
	}

	logrus.Info("application shutdown complete")
	return nil
}
