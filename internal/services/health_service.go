package services

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"ratpdash/pkg/contracts"
)

// DatasetChecker reports whether the dashboard data is loaded
type DatasetChecker interface {
	Ready() bool
	Rows() int
}

// HealthService provides health check functionality
type HealthService struct {
	version   string
	dataPath  string
	dataset   DatasetChecker
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime,omitempty"`
	Services  map[string]interface{} `json:"services,omitempty"`
}

// ServiceHealth represents individual service health
type ServiceHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Uptime  string `json:"uptime,omitempty"`
}

// NewHealthService creates a new health service
func NewHealthService(version, dataPath string, dataset DatasetChecker, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("HealthService initialized",
		slog.String("version", version),
		slog.String("data_path", dataPath))

	return &HealthService{
		version:   version,
		dataPath:  dataPath,
		dataset:   dataset,
		startTime: time.Now(),
		logger:    logger,
	}
}

// HealthCheck returns overall health status
func (hs *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   hs.version,
	}

	hs.logger.DebugContext(ctx, "HealthCheck: completed",
		slog.String("status", status.Status),
		slog.String("uptime", time.Since(hs.startTime).String()))

	return status
}

// ReadinessCheck returns readiness status
func (hs *HealthService) ReadinessCheck(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "ready",
		Timestamp: time.Now(),
		Version:   hs.version,
		Services:  make(map[string]interface{}),
	}

	data := hs.checkDataHealth()
	status.Services["data"] = data
	if data.Status != "ready" {
		status.Status = "not_ready"
	}

	return status
}

// LivenessCheck returns liveness status
func (hs *HealthService) LivenessCheck(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   hs.version,
		Runtime: map[string]interface{}{
			"uptime":     time.Since(hs.startTime).Seconds(),
			"go_version": runtime.Version(),
			"goroutines": runtime.NumGoroutine(),
		},
	}
}

// Version returns version information
func (hs *HealthService) Version() contracts.VersionInfo {
	info := contracts.GetVersionInfo()
	if hs.version != "" {
		info.Version = hs.version
	}
	return info
}

// checkDataHealth checks that the validations export was loaded
func (hs *HealthService) checkDataHealth() ServiceHealth {
	if hs.dataset == nil || !hs.dataset.Ready() {
		return ServiceHealth{
			Status:  "not_ready",
			Message: fmt.Sprintf("no validations loaded from %s", hs.dataPath),
		}
	}

	return ServiceHealth{
		Status:  "ready",
		Message: fmt.Sprintf("%d validations rows loaded", hs.dataset.Rows()),
		Uptime:  time.Since(hs.startTime).String(),
	}
}
