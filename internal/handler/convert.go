package handler

import (
	"event-polling-api/internal/model"
	"event-polling-api/internal/rpc"
	"event-polling-api/internal/service"
)

func toProfile(p model.Profile) *rpc.Profile {
	return &rpc.Profile{Id: p.ID, Name: p.Name, Email: p.Email}
}

func toProfiles(ps []model.Profile) []*rpc.Profile {
	out := make([]*rpc.Profile, 0, len(ps))
	for _, p := range ps {
		out = append(out, toProfile(p))
	}
	return out
}

func toEvent(e model.Event) *rpc.Event {
	return &rpc.Event{
		Id:             e.ID,
		Title:          e.Title,
		Description:    e.Description,
		DateOptions:    e.DateOptions,
		ParticipantIds: e.Participants,
		CreatorId:      e.CreatorID,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
		Version:        e.Version,
	}
}

func toEvents(es []model.Event) *rpc.ListEventsResponse {
	resp := &rpc.ListEventsResponse{Events: make([]*rpc.Event, 0, len(es))}
	for _, e := range es {
		resp.Events = append(resp.Events, toEvent(e))
	}
	return resp
}

func toSummary(s *service.EventSummary) *rpc.EventSummary {
	if s == nil {
		return nil
	}
	return &rpc.EventSummary{Id: s.ID, Title: s.Title, Description: s.Description, CreatorId: s.CreatorID}
}

func toInvitation(inv model.Invitation) *rpc.Invitation {
	return &rpc.Invitation{
		Id:        inv.ID,
		EventId:   inv.EventID,
		FromId:    inv.FromID,
		ToId:      inv.ToID,
		Message:   inv.Message,
		Status:    string(inv.Status),
		Read:      inv.Read,
		CreatedAt: inv.CreatedAt,
		UpdatedAt: inv.UpdatedAt,
	}
}

func toPoll(p model.Poll) *rpc.Poll {
	out := &rpc.Poll{
		Id:        p.ID,
		EventId:   p.EventID,
		Question:  p.Question,
		Options:   make([]*rpc.PollOption, 0, len(p.Options)),
		CreatedBy: p.CreatedBy,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	for _, o := range p.Options {
		out.Options = append(out.Options, &rpc.PollOption{
			Text:      o.Text,
			VoteCount: int32(len(o.Votes)),
			VoterIds:  o.Votes,
		})
	}
	return out
}

func toResults(r service.PollResults) *rpc.GetPollResultsResponse {
	poll := &rpc.Poll{
		Id:        r.PollID,
		EventId:   r.EventID,
		Question:  r.Question,
		Options:   make([]*rpc.PollOption, 0, len(r.Options)),
		CreatedBy: r.Creator.ID,
		CreatedAt: r.CreatedAt,
	}
	for _, o := range r.Options {
		opt := &rpc.PollOption{Text: o.Text, VoteCount: int32(o.Count)}
		if !r.Compact {
			opt.Voters = toProfiles(o.Voters)
		}
		poll.Options = append(poll.Options, opt)
	}
	return &rpc.GetPollResultsResponse{
		Poll:    poll,
		Event:   toSummary(r.Event),
		Creator: toProfile(r.Creator),
		Compact: r.Compact,
	}
}
