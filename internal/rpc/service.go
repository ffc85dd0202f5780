// Package rpc declares the EventPollService gRPC surface: its messages, the
// wire codec and the service descriptor.
package rpc

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "eventpoll.v1.EventPollService"

// FullMethod returns the gRPC path of a method of the service.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

type EventPollServiceServer interface {
	Register(context.Context, *RegisterRequest) (*AuthResponse, error)
	Login(context.Context, *LoginRequest) (*AuthResponse, error)
	Refresh(context.Context, *RefreshRequest) (*AuthResponse, error)
	Logout(context.Context, *Empty) (*Empty, error)
	Me(context.Context, *Empty) (*Profile, error)
	SearchUsers(context.Context, *SearchUsersRequest) (*SearchUsersResponse, error)

	CreateEvent(context.Context, *CreateEventRequest) (*EventResponse, error)
	UpdateEvent(context.Context, *UpdateEventRequest) (*EventResponse, error)
	DeleteEvent(context.Context, *IDRequest) (*Empty, error)
	GetEvent(context.Context, *IDRequest) (*GetEventResponse, error)
	ListMyEvents(context.Context, *Empty) (*ListEventsResponse, error)
	ListInvitedEvents(context.Context, *Empty) (*ListEventsResponse, error)

	InviteUsers(context.Context, *InviteUsersRequest) (*InviteUsersResponse, error)
	RespondInvitation(context.Context, *RespondInvitationRequest) (*InvitationResponse, error)
	ListInvitations(context.Context, *ListInvitationsRequest) (*ListInvitationsResponse, error)

	CreatePoll(context.Context, *CreatePollRequest) (*PollResponse, error)
	Vote(context.Context, *VoteRequest) (*PollResponse, error)
	GetPollResults(context.Context, *GetPollResultsRequest) (*GetPollResultsResponse, error)
	ListEventPolls(context.Context, *IDRequest) (*ListPollsResponse, error)
}

// unary builds the method descriptor for one RPC from a method expression of
// the server interface.
func unary[Req any, PReq interface {
	*Req
	Message
}, Resp Message](name string, call func(EventPollServiceServer, context.Context, PReq) (Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := PReq(new(Req))
			if err := dec(in); err != nil {
				return nil, err
			}
			s := srv.(EventPollServiceServer)
			if interceptor == nil {
				return call(s, ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(name)}
			return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
				return call(s, ctx, req.(PReq))
			})
		},
	}
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*EventPollServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Register", EventPollServiceServer.Register),
		unary("Login", EventPollServiceServer.Login),
		unary("Refresh", EventPollServiceServer.Refresh),
		unary("Logout", EventPollServiceServer.Logout),
		unary("Me", EventPollServiceServer.Me),
		unary("SearchUsers", EventPollServiceServer.SearchUsers),
		unary("CreateEvent", EventPollServiceServer.CreateEvent),
		unary("UpdateEvent", EventPollServiceServer.UpdateEvent),
		unary("DeleteEvent", EventPollServiceServer.DeleteEvent),
		unary("GetEvent", EventPollServiceServer.GetEvent),
		unary("ListMyEvents", EventPollServiceServer.ListMyEvents),
		unary("ListInvitedEvents", EventPollServiceServer.ListInvitedEvents),
		unary("InviteUsers", EventPollServiceServer.InviteUsers),
		unary("RespondInvitation", EventPollServiceServer.RespondInvitation),
		unary("ListInvitations", EventPollServiceServer.ListInvitations),
		unary("CreatePoll", EventPollServiceServer.CreatePoll),
		unary("Vote", EventPollServiceServer.Vote),
		unary("GetPollResults", EventPollServiceServer.GetPollResults),
		unary("ListEventPolls", EventPollServiceServer.ListEventPolls),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "eventpoll/v1/service.proto",
}

func RegisterEventPollServiceServer(s grpc.ServiceRegistrar, srv EventPollServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}
