// Package server wires the EventPollService gRPC server and its lifecycle.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"

	"event-polling-api/internal/middleware"
	"event-polling-api/internal/rpc"
)

type Options struct {
	Secret  string
	Limiter *middleware.RateLimiter
	Logger  *slog.Logger
}

// Server hosts the service next to the standard health service.
type Server struct {
	grpcServer *grpc.Server
	health     *health.Server
}

func New(svc rpc.EventPollServiceServer, opts Options) *Server {
	interceptors := []grpc.UnaryServerInterceptor{middleware.Logging(opts.Logger)}
	if opts.Limiter != nil {
		interceptors = append(interceptors, middleware.RateLimit(opts.Limiter))
	}
	interceptors = append(interceptors, middleware.Auth(opts.Secret))

	grpcServer := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ForceServerCodec(rpc.Codec{}),
		grpc.ChainUnaryInterceptor(interceptors...),
	)
	rpc.RegisterEventPollServiceServer(grpcServer, svc)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(rpc.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	return &Server{grpcServer: grpcServer, health: healthServer}
}

// Serve accepts connections on lis until ctx is cancelled, then drains
// in-flight calls.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	log.Printf("grpc on %v", lis.Addr())
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.grpcServer.Serve(lis)
	}()

	select {
	case <-ctx.Done():
		s.health.Shutdown()
		s.grpcServer.GracefulStop()
		err := <-serveErr
		if err == nil || errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return fmt.Errorf("serve gRPC: %w", err)
	case err := <-serveErr:
		if err == nil || errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return fmt.Errorf("serve gRPC: %w", err)
	}
}
