package middleware

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Logging records one line per unary call.
func Logging(logger *slog.Logger) grpc.UnaryServerInterceptor {
	if logger == nil {
		logger = slog.Default()
	}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := next(ctx, req)

		code := status.Code(err)
		level := slog.LevelInfo
		switch code {
		case codes.OK, codes.NotFound, codes.InvalidArgument, codes.PermissionDenied,
			codes.FailedPrecondition, codes.Unauthenticated, codes.AlreadyExists:
		case codes.Aborted, codes.ResourceExhausted, codes.Canceled, codes.DeadlineExceeded:
			level = slog.LevelWarn
		default:
			level = slog.LevelError
		}

		attrs := []any{
			"method", info.FullMethod,
			"code", code.String(),
			"duration", time.Since(start),
		}
		if err != nil {
			attrs = append(attrs, "error", status.Convert(err).Message())
		}
		logger.Log(ctx, level, "rpc", attrs...)
		return resp, err
	}
}
