package middleware

import (
	"context"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"event-polling-api/internal/auth"
	"event-polling-api/internal/model"
	"event-polling-api/internal/rpc"
)

type ctxKey struct{}

var identityKey = ctxKey{}

func WithIdentity(ctx context.Context, who model.Identity) context.Context {
	return context.WithValue(ctx, identityKey, who)
}

// IdentityFrom returns the requester attached by Auth.
func IdentityFrom(ctx context.Context) (model.Identity, bool) {
	who, ok := ctx.Value(identityKey).(model.Identity)
	return who, ok && who.UserID != ""
}

// skip auth for these
var open = map[string]bool{
	rpc.FullMethod("Register"): true,
	rpc.FullMethod("Login"):    true,
	rpc.FullMethod("Refresh"):  true,
}

const healthPrefix = "/grpc.health.v1.Health/"

func Auth(secret string) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
		if open[info.FullMethod] || strings.HasPrefix(info.FullMethod, healthPrefix) {
			return next(ctx, req)
		}

		raw := BearerToken(ctx)
		if raw == "" {
			return nil, status.Error(codes.Unauthenticated, "no token")
		}

		claims, err := auth.ParseToken(raw, secret)
		if err != nil {
			return nil, status.Error(codes.Unauthenticated, "bad token")
		}

		return next(WithIdentity(ctx, model.Identity{UserID: claims.UserID}), req)
	}
}

// BearerToken reads "authorization: Bearer <jwt>" from incoming metadata.
func BearerToken(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	vals := md.Get("authorization")
	if len(vals) == 0 {
		return ""
	}
	raw, found := strings.CutPrefix(vals[0], "Bearer ")
	if !found {
		return ""
	}
	return strings.TrimSpace(raw)
}
