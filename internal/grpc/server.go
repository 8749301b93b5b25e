package grpcserver

import (
	"context"
	"net"
	"time"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	"taskAssignment/internal/auth"
	"taskAssignment/internal/config"
	"taskAssignment/internal/observability"
)

const healthCheckMethod = "/grpc.health.v1.Health/Check"

// NewServer builds a gRPC server exposing TaskService and the standard health
// service. Every method except the health check requires a bearer token.
func NewServer(tokens auth.Verifier, tasks TaskAPI, metrics *observability.Metrics, log logrus.FieldLogger) (*grpc.Server, *health.Server) {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(
		loggingInterceptor(metrics, log),
		auth.NewUnaryAuthInterceptor(tokens, healthCheckMethod),
	))

	RegisterTaskServiceServer(srv, &Server{Tasks: tasks})

	hs := health.NewServer()
	hs.SetServingStatus(TaskServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, hs)
	return srv, hs
}

// StartGRPC starts the gRPC server on the configured address and returns a shutdown function.
func StartGRPC(cfg *config.Config, tokens auth.Verifier, tasks TaskAPI, metrics *observability.Metrics, log logrus.FieldLogger) (func(context.Context) error, error) {
	if cfg == nil {
		panic("config is required")
	}

	addr := cfg.GRPC.Address
	if addr == "" {
		addr = ":50051"
	}

	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	// Plaintext; terminate TLS in front of the service.
	srv, hs := NewServer(tokens, tasks, metrics, log)

	go func() {
		if err := srv.Serve(lis); err != nil {
			log.WithError(err).Error("grpc server stopped")
		}
	}()

	return func(ctx context.Context) error {
		hs.Shutdown()
		done := make(chan struct{})
		go func() { srv.GracefulStop(); close(done) }()
		select {
		case <-done:
			return nil
		case <-ctx.Done():
			srv.Stop()
			return ctx.Err()
		}
	}, nil
}

// loggingInterceptor records one metric and one log line per call, after the
// auth interceptor has run so rejected calls are counted too.
func loggingInterceptor(metrics *observability.Metrics, log logrus.FieldLogger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		code := status.Code(err)
		metrics.RecordGRPC(info.FullMethod, code.String())
		entry := log.WithFields(logrus.Fields{
			"method":   info.FullMethod,
			"code":     code.String(),
			"duration": time.Since(start).String(),
		})
		if err != nil {
			entry.Info("grpc request failed")
		} else {
			entry.Debug("grpc request")
		}
		return resp, err
	}
}
