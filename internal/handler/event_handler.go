package handler

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"event-polling-api/internal/apperr"
	"event-polling-api/internal/rpc"
	"event-polling-api/internal/service"
)

func (h *Handler) CreateEvent(ctx context.Context, req *rpc.CreateEventRequest) (*rpc.EventResponse, error) {
	who, err := identity(ctx)
	if err != nil {
		return nil, err
	}
	e, err := h.registry.Create(ctx, who, service.CreateEventInput{
		Title:        req.Title,
		Description:  req.Description,
		DateOptions:  req.DateOptions,
		Participants: req.ParticipantIds,
	})
	if err != nil {
		return nil, apperr.ToStatus(err)
	}
	return &rpc.EventResponse{Event: toEvent(e)}, nil
}

func (h *Handler) UpdateEvent(ctx context.Context, req *rpc.UpdateEventRequest) (*rpc.EventResponse, error) {
	who, err := identity(ctx)
	if err != nil {
		return nil, err
	}
	if req.Id == "" {
		return nil, status.Error(codes.InvalidArgument, "id required")
	}
	patch, err := eventPatch(req)
	if err != nil {
		return nil, err
	}
	e, err := h.registry.Update(ctx, who, req.Id, patch)
	if err != nil {
		return nil, apperr.ToStatus(err)
	}
	return &rpc.EventResponse{Event: toEvent(e)}, nil
}

// eventPatch honours update_mask when present. Without one, every non-empty
// field is applied.
func eventPatch(req *rpc.UpdateEventRequest) (service.EventPatch, error) {
	var patch service.EventPatch
	paths := req.UpdateMask.GetPaths()
	if len(paths) == 0 {
		if req.Title != "" {
			patch.Title = &req.Title
		}
		if req.Description != "" {
			patch.Description = &req.Description
		}
		if len(req.DateOptions) > 0 {
			patch.DateOptions = &req.DateOptions
		}
		if len(req.ParticipantIds) > 0 {
			patch.Participants = &req.ParticipantIds
		}
		return patch, nil
	}
	for _, p := range paths {
		switch p {
		case "title":
			patch.Title = &req.Title
		case "description":
			patch.Description = &req.Description
		case "date_options":
			patch.DateOptions = &req.DateOptions
		case "participant_ids":
			patch.Participants = &req.ParticipantIds
		default:
			return service.EventPatch{}, status.Errorf(codes.InvalidArgument, "unknown update path %q", p)
		}
	}
	return patch, nil
}

func (h *Handler) DeleteEvent(ctx context.Context, req *rpc.IDRequest) (*rpc.Empty, error) {
	who, err := identity(ctx)
	if err != nil {
		return nil, err
	}
	if err := h.registry.Delete(ctx, who, req.Id); err != nil {
		return nil, apperr.ToStatus(err)
	}
	return &rpc.Empty{}, nil
}

func (h *Handler) GetEvent(ctx context.Context, req *rpc.IDRequest) (*rpc.GetEventResponse, error) {
	who, err := identity(ctx)
	if err != nil {
		return nil, err
	}
	d, err := h.registry.Get(ctx, who, req.Id)
	if err != nil {
		return nil, apperr.ToStatus(err)
	}
	return &rpc.GetEventResponse{
		Event:        toEvent(d.Event),
		Creator:      toProfile(d.Creator),
		Participants: toProfiles(d.Participants),
	}, nil
}

func (h *Handler) ListMyEvents(ctx context.Context, _ *rpc.Empty) (*rpc.ListEventsResponse, error) {
	who, err := identity(ctx)
	if err != nil {
		return nil, err
	}
	events, err := h.registry.ListByCreator(ctx, who)
	if err != nil {
		return nil, apperr.ToStatus(err)
	}
	return toEvents(events), nil
}

func (h *Handler) ListInvitedEvents(ctx context.Context, _ *rpc.Empty) (*rpc.ListEventsResponse, error) {
	who, err := identity(ctx)
	if err != nil {
		return nil, err
	}
	events, err := h.registry.ListByParticipant(ctx, who)
	if err != nil {
		return nil, apperr.ToStatus(err)
	}
	return toEvents(events), nil
}
