package eventsource

import (
	"context"
	"fmt"
	"net"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// RegisterFunc registers gRPC services on a server.
type RegisterFunc func(*grpc.Server)

// ServerConfig configures a gRPC server.
type ServerConfig struct {
	Name            string
	Port            string
	ShutdownTimeout time.Duration
	Logger          *zap.Logger
	Options         []grpc.ServerOption
}

// NewServer creates a gRPC server with health checking and reflection, and
// registers the services.
func NewServer(cfg ServerConfig, register RegisterFunc) *grpc.Server {
	s := grpc.NewServer(cfg.Options...)
	register(s)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(s, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	if cfg.Name != "" {
		healthServer.SetServingStatus(cfg.Name, grpc_health_v1.HealthCheckResponse_SERVING)
	}

	reflection.Register(s)
	return s
}

// RunServer listens on cfg.Port and serves until ctx is cancelled.
//
// On cancellation the server is stopped gracefully; if that takes longer
// than cfg.ShutdownTimeout, in-flight RPCs are cut off.
func RunServer(ctx context.Context, cfg ServerConfig, register RegisterFunc) error {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%s", cfg.Port))
	if err != nil {
		return fmt.Errorf("failed to listen on port %s: %w", cfg.Port, err)
	}

	s := NewServer(cfg, register)

	logger.Info("server started",
		zap.String("service", cfg.Name),
		zap.String("port", cfg.Port),
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Serve(lis)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("server stopping", zap.String("service", cfg.Name))
	stopped := make(chan struct{})
	go func() {
		s.GracefulStop()
		close(stopped)
	}()

	timeout := cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	select {
	case <-stopped:
	case <-time.After(timeout):
		logger.Warn("graceful stop timed out", zap.Duration("timeout", timeout))
		s.Stop()
	}
	return nil
}
