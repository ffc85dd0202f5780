package handler

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"event-polling-api/internal/middleware"
	"event-polling-api/internal/model"
	"event-polling-api/internal/rpc"
	"event-polling-api/internal/service"
	"event-polling-api/internal/storage"
)

// Handler implements rpc.EventPollServiceServer on top of the services.
type Handler struct {
	store    storage.Store
	registry *service.Registry
	invites  *service.Coordinator
	polls    *service.Engine
	secret   string
	log      *slog.Logger
	now      func() time.Time
}

var _ rpc.EventPollServiceServer = (*Handler)(nil)

func New(st storage.Store, secret string, opts service.Options) *Handler {
	h := &Handler{
		store:    st,
		registry: service.NewRegistry(st, st, opts),
		invites:  service.NewCoordinator(st, st, st, opts),
		polls:    service.NewEngine(st, st, st, opts),
		secret:   secret,
		log:      opts.Logger,
		now:      opts.Now,
	}
	if h.log == nil {
		h.log = slog.Default()
	}
	if h.now == nil {
		h.now = func() time.Time { return time.Now().UTC() }
	}
	return h
}

func identity(ctx context.Context) (model.Identity, error) {
	who, ok := middleware.IdentityFrom(ctx)
	if !ok {
		return model.Identity{}, status.Error(codes.Unauthenticated, "not signed in")
	}
	return who, nil
}
