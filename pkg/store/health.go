// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package store

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// HealthChecker provides backend health check functionality
type HealthChecker struct {
	backend Backend
}

// NewHealthChecker creates a new health checker
func NewHealthChecker(backend Backend) *HealthChecker {
	return &HealthChecker{backend: backend}
}

// Check performs a backend health check
func (h *HealthChecker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := h.backend.Ping(ctx); err != nil {
		logrus.Errorf("state backend health check failed: %v", err)
		return err
	}

	logrus.Debugf("state backend health check passed")
	return nil
}

// IsHealthy returns true if the backend is accessible
func (h *HealthChecker) IsHealthy(ctx context.Context) bool {
	return h.Check(ctx) == nil
}
