package handler

import (
	"context"

	"event-polling-api/internal/apperr"
	"event-polling-api/internal/rpc"
)

func (h *Handler) CreatePoll(ctx context.Context, req *rpc.CreatePollRequest) (*rpc.PollResponse, error) {
	who, err := identity(ctx)
	if err != nil {
		return nil, err
	}
	p, err := h.polls.CreatePoll(ctx, who, req.EventId, req.Question, req.Options)
	if err != nil {
		return nil, apperr.ToStatus(err)
	}
	return &rpc.PollResponse{Poll: toPoll(p)}, nil
}

func (h *Handler) Vote(ctx context.Context, req *rpc.VoteRequest) (*rpc.PollResponse, error) {
	who, err := identity(ctx)
	if err != nil {
		return nil, err
	}
	p, err := h.polls.Vote(ctx, who, req.PollId, int(req.OptionIndex))
	if err != nil {
		return nil, apperr.ToStatus(err)
	}
	return &rpc.PollResponse{Poll: toPoll(p)}, nil
}

func (h *Handler) GetPollResults(ctx context.Context, req *rpc.GetPollResultsRequest) (*rpc.GetPollResultsResponse, error) {
	if _, err := identity(ctx); err != nil {
		return nil, err
	}
	res, err := h.polls.Results(ctx, req.PollId, req.Compact)
	if err != nil {
		return nil, apperr.ToStatus(err)
	}
	return toResults(res), nil
}

func (h *Handler) ListEventPolls(ctx context.Context, req *rpc.IDRequest) (*rpc.ListPollsResponse, error) {
	if _, err := identity(ctx); err != nil {
		return nil, err
	}
	polls, err := h.polls.ListByEvent(ctx, req.Id)
	if err != nil {
		return nil, apperr.ToStatus(err)
	}
	resp := &rpc.ListPollsResponse{Polls: make([]*rpc.Poll, 0, len(polls))}
	for _, p := range polls {
		resp.Polls = append(resp.Polls, toPoll(p))
	}
	return resp, nil
}
