package handler

import (
	"context"

	"event-polling-api/internal/apperr"
	"event-polling-api/internal/rpc"
)

func (h *Handler) InviteUsers(ctx context.Context, req *rpc.InviteUsersRequest) (*rpc.InviteUsersResponse, error) {
	who, err := identity(ctx)
	if err != nil {
		return nil, err
	}
	res, err := h.invites.Invite(ctx, who, req.EventId, req.UserIds, req.Message)
	if err != nil {
		return nil, apperr.ToStatus(err)
	}
	resp := &rpc.InviteUsersResponse{EventId: res.EventID, Results: make([]*rpc.InviteOutcome, 0, len(res.Outcomes))}
	for _, o := range res.Outcomes {
		resp.Results = append(resp.Results, &rpc.InviteOutcome{
			UserId:       o.UserID,
			Status:       o.Status,
			InvitationId: o.InvitationID,
		})
	}
	return resp, nil
}

func (h *Handler) RespondInvitation(ctx context.Context, req *rpc.RespondInvitationRequest) (*rpc.InvitationResponse, error) {
	who, err := identity(ctx)
	if err != nil {
		return nil, err
	}
	inv, err := h.invites.Respond(ctx, who, req.InvitationId, req.Response)
	if err != nil {
		return nil, apperr.ToStatus(err)
	}
	return &rpc.InvitationResponse{Invitation: toInvitation(inv)}, nil
}

func (h *Handler) ListInvitations(ctx context.Context, req *rpc.ListInvitationsRequest) (*rpc.ListInvitationsResponse, error) {
	who, err := identity(ctx)
	if err != nil {
		return nil, err
	}
	views, err := h.invites.List(ctx, who, req.Status)
	if err != nil {
		return nil, apperr.ToStatus(err)
	}
	resp := &rpc.ListInvitationsResponse{Invitations: make([]*rpc.InvitationView, 0, len(views))}
	for _, v := range views {
		resp.Invitations = append(resp.Invitations, &rpc.InvitationView{
			Invitation: toInvitation(v.Invitation),
			Event:      toSummary(v.Event),
			Sender:     toProfile(v.Sender),
		})
	}
	return resp, nil
}
