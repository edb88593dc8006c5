package grpc

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ReadinessCheck returns nil while the service can take traffic.
type ReadinessCheck func(ctx context.Context) error

// HealthReporter keeps the standard gRPC health service in step with the
// same readiness check the HTTP /readyz endpoint uses.
type HealthReporter struct {
	server   *health.Server
	check    ReadinessCheck
	interval time.Duration
	logger   *slog.Logger
}

func NewHealthReporter(logger *slog.Logger, check ReadinessCheck, interval time.Duration) *HealthReporter {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &HealthReporter{
		server:   health.NewServer(),
		check:    check,
		interval: interval,
		logger:   logger,
	}
}

func (h *HealthReporter) Register(server grpc.ServiceRegistrar) {
	healthpb.RegisterHealthServer(server, h.server)
}

func (h *HealthReporter) Server() *health.Server {
	return h.server
}

// Refresh runs the readiness check once and publishes the result for the
// overall service ("").
func (h *HealthReporter) Refresh(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	status := healthpb.HealthCheckResponse_SERVING
	if h.check != nil {
		if err := h.check(ctx); err != nil {
			status = healthpb.HealthCheckResponse_NOT_SERVING
			h.logger.WarnContext(ctx, "readiness check failed",
				"module", "marketplace.grpc.health",
				"layer", "adapter",
				"operation", "refresh_health",
				"outcome", "failure",
				"error", err,
			)
		}
	}
	h.server.SetServingStatus("", status)
	return status
}

func (h *HealthReporter) Run(ctx context.Context) error {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()
	for {
		h.Refresh(ctx)
		select {
		case <-ctx.Done():
			h.server.Shutdown()
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
