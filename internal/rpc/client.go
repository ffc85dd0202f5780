package rpc

import (
	"context"

	"google.golang.org/grpc"
)

// Client calls EventPollService over any connection; the wire codec is
// forced per call.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func invoke[Resp any, PResp interface {
	*Resp
	Message
}](ctx context.Context, c *Client, method string, in Message, opts ...grpc.CallOption) (PResp, error) {
	out := PResp(new(Resp))
	opts = append(opts, grpc.ForceCodec(Codec{}))
	if err := c.cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*AuthResponse, error) {
	return invoke[AuthResponse](ctx, c, "Register", in, opts...)
}

func (c *Client) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*AuthResponse, error) {
	return invoke[AuthResponse](ctx, c, "Login", in, opts...)
}

func (c *Client) Refresh(ctx context.Context, in *RefreshRequest, opts ...grpc.CallOption) (*AuthResponse, error) {
	return invoke[AuthResponse](ctx, c, "Refresh", in, opts...)
}

func (c *Client) Logout(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c, "Logout", in, opts...)
}

func (c *Client) Me(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*Profile, error) {
	return invoke[Profile](ctx, c, "Me", in, opts...)
}

func (c *Client) SearchUsers(ctx context.Context, in *SearchUsersRequest, opts ...grpc.CallOption) (*SearchUsersResponse, error) {
	return invoke[SearchUsersResponse](ctx, c, "SearchUsers", in, opts...)
}

func (c *Client) CreateEvent(ctx context.Context, in *CreateEventRequest, opts ...grpc.CallOption) (*EventResponse, error) {
	return invoke[EventResponse](ctx, c, "CreateEvent", in, opts...)
}

func (c *Client) UpdateEvent(ctx context.Context, in *UpdateEventRequest, opts ...grpc.CallOption) (*EventResponse, error) {
	return invoke[EventResponse](ctx, c, "UpdateEvent", in, opts...)
}

func (c *Client) DeleteEvent(ctx context.Context, in *IDRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c, "DeleteEvent", in, opts...)
}

func (c *Client) GetEvent(ctx context.Context, in *IDRequest, opts ...grpc.CallOption) (*GetEventResponse, error) {
	return invoke[GetEventResponse](ctx, c, "GetEvent", in, opts...)
}

func (c *Client) ListMyEvents(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ListEventsResponse, error) {
	return invoke[ListEventsResponse](ctx, c, "ListMyEvents", in, opts...)
}

func (c *Client) ListInvitedEvents(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ListEventsResponse, error) {
	return invoke[ListEventsResponse](ctx, c, "ListInvitedEvents", in, opts...)
}

func (c *Client) InviteUsers(ctx context.Context, in *InviteUsersRequest, opts ...grpc.CallOption) (*InviteUsersResponse, error) {
	return invoke[InviteUsersResponse](ctx, c, "InviteUsers", in, opts...)
}

func (c *Client) RespondInvitation(ctx context.Context, in *RespondInvitationRequest, opts ...grpc.CallOption) (*InvitationResponse, error) {
	return invoke[InvitationResponse](ctx, c, "RespondInvitation", in, opts...)
}

func (c *Client) ListInvitations(ctx context.Context, in *ListInvitationsRequest, opts ...grpc.CallOption) (*ListInvitationsResponse, error) {
	return invoke[ListInvitationsResponse](ctx, c, "ListInvitations", in, opts...)
}

func (c *Client) CreatePoll(ctx context.Context, in *CreatePollRequest, opts ...grpc.CallOption) (*PollResponse, error) {
	return invoke[PollResponse](ctx, c, "CreatePoll", in, opts...)
}

func (c *Client) Vote(ctx context.Context, in *VoteRequest, opts ...grpc.CallOption) (*PollResponse, error) {
	return invoke[PollResponse](ctx, c, "Vote", in, opts...)
}

func (c *Client) GetPollResults(ctx context.Context, in *GetPollResultsRequest, opts ...grpc.CallOption) (*GetPollResultsResponse, error) {
	return invoke[GetPollResultsResponse](ctx, c, "GetPollResults", in, opts...)
}

func (c *Client) ListEventPolls(ctx context.Context, in *IDRequest, opts ...grpc.CallOption) (*ListPollsResponse, error) {
	return invoke[ListPollsResponse](ctx, c, "ListEventPolls", in, opts...)
}
