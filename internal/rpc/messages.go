package rpc

import (
	"time"

	"google.golang.org/protobuf/types/known/fieldmaskpb"
)

type Empty struct{}

func (m *Empty) MarshalWire(b []byte) []byte { return b }

func (m *Empty) UnmarshalWire(b []byte) error {
	d := decoder{buf: b}
	for d.next() {
		d.skip()
	}
	return d.err
}

type Profile struct {
	Id    string
	Name  string
	Email string
}

func (m *Profile) MarshalWire(b []byte) []byte {
	b = putString(b, 1, m.Id)
	b = putString(b, 2, m.Name)
	return putString(b, 3, m.Email)
}

func (m *Profile) UnmarshalWire(b []byte) error {
	d := decoder{buf: b}
	for d.next() {
		switch d.num {
		case 1:
			m.Id = d.readString()
		case 2:
			m.Name = d.readString()
		case 3:
			m.Email = d.readString()
		default:
			d.skip()
		}
	}
	return d.err
}

type Event struct {
	Id             string
	Title          string
	Description    string
	DateOptions    []time.Time
	ParticipantIds []string
	CreatorId      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Version        int64
}

func (m *Event) MarshalWire(b []byte) []byte {
	b = putString(b, 1, m.Id)
	b = putString(b, 2, m.Title)
	b = putString(b, 3, m.Description)
	b = putTimes(b, 4, m.DateOptions)
	b = putStrings(b, 5, m.ParticipantIds)
	b = putString(b, 6, m.CreatorId)
	b = putTime(b, 7, m.CreatedAt)
	b = putTime(b, 8, m.UpdatedAt)
	return putInt(b, 9, m.Version)
}

func (m *Event) UnmarshalWire(b []byte) error {
	d := decoder{buf: b}
	for d.next() {
		switch d.num {
		case 1:
			m.Id = d.readString()
		case 2:
			m.Title = d.readString()
		case 3:
			m.Description = d.readString()
		case 4:
			m.DateOptions = append(m.DateOptions, d.readTime())
		case 5:
			m.ParticipantIds = append(m.ParticipantIds, d.readString())
		case 6:
			m.CreatorId = d.readString()
		case 7:
			m.CreatedAt = d.readTime()
		case 8:
			m.UpdatedAt = d.readTime()
		case 9:
			m.Version = d.readInt64()
		default:
			d.skip()
		}
	}
	return d.err
}

type EventSummary struct {
	Id          string
	Title       string
	Description string
	CreatorId   string
}

func (m *EventSummary) MarshalWire(b []byte) []byte {
	b = putString(b, 1, m.Id)
	b = putString(b, 2, m.Title)
	b = putString(b, 3, m.Description)
	return putString(b, 4, m.CreatorId)
}

func (m *EventSummary) UnmarshalWire(b []byte) error {
	d := decoder{buf: b}
	for d.next() {
		switch d.num {
		case 1:
			m.Id = d.readString()
		case 2:
			m.Title = d.readString()
		case 3:
			m.Description = d.readString()
		case 4:
			m.CreatorId = d.readString()
		default:
			d.skip()
		}
	}
	return d.err
}

type Invitation struct {
	Id        string
	EventId   string
	FromId    string
	ToId      string
	Message   string
	Status    string
	Read      bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (m *Invitation) MarshalWire(b []byte) []byte {
	b = putString(b, 1, m.Id)
	b = putString(b, 2, m.EventId)
	b = putString(b, 3, m.FromId)
	b = putString(b, 4, m.ToId)
	b = putString(b, 5, m.Message)
	b = putString(b, 6, m.Status)
	b = putBool(b, 7, m.Read)
	b = putTime(b, 8, m.CreatedAt)
	return putTime(b, 9, m.UpdatedAt)
}

func (m *Invitation) UnmarshalWire(b []byte) error {
	d := decoder{buf: b}
	for d.next() {
		switch d.num {
		case 1:
			m.Id = d.readString()
		case 2:
			m.EventId = d.readString()
		case 3:
			m.FromId = d.readString()
		case 4:
			m.ToId = d.readString()
		case 5:
			m.Message = d.readString()
		case 6:
			m.Status = d.readString()
		case 7:
			m.Read = d.readBool()
		case 8:
			m.CreatedAt = d.readTime()
		case 9:
			m.UpdatedAt = d.readTime()
		default:
			d.skip()
		}
	}
	return d.err
}

type InvitationView struct {
	Invitation *Invitation
	Event      *EventSummary
	Sender     *Profile
}

func (m *InvitationView) MarshalWire(b []byte) []byte {
	b = putMessage(b, 1, m.Invitation)
	b = putMessage(b, 2, m.Event)
	return putMessage(b, 3, m.Sender)
}

func (m *InvitationView) UnmarshalWire(b []byte) error {
	d := decoder{buf: b}
	for d.next() {
		switch d.num {
		case 1:
			m.Invitation = &Invitation{}
			d.readMessage(m.Invitation)
		case 2:
			m.Event = &EventSummary{}
			d.readMessage(m.Event)
		case 3:
			m.Sender = &Profile{}
			d.readMessage(m.Sender)
		default:
			d.skip()
		}
	}
	return d.err
}

type InviteOutcome struct {
	UserId       string
	Status       string
	InvitationId string
}

func (m *InviteOutcome) MarshalWire(b []byte) []byte {
	b = putString(b, 1, m.UserId)
	b = putString(b, 2, m.Status)
	return putString(b, 3, m.InvitationId)
}

func (m *InviteOutcome) UnmarshalWire(b []byte) error {
	d := decoder{buf: b}
	for d.next() {
		switch d.num {
		case 1:
			m.UserId = d.readString()
		case 2:
			m.Status = d.readString()
		case 3:
			m.InvitationId = d.readString()
		default:
			d.skip()
		}
	}
	return d.err
}

// PollOption carries raw voter ids on polls and resolved voters on full
// results; compact results fill neither.
type PollOption struct {
	Text      string
	VoteCount int32
	VoterIds  []string
	Voters    []*Profile
}

func (m *PollOption) MarshalWire(b []byte) []byte {
	b = putString(b, 1, m.Text)
	b = putInt(b, 2, int64(m.VoteCount))
	b = putStrings(b, 3, m.VoterIds)
	for _, v := range m.Voters {
		b = putMessage(b, 4, v)
	}
	return b
}

func (m *PollOption) UnmarshalWire(b []byte) error {
	d := decoder{buf: b}
	for d.next() {
		switch d.num {
		case 1:
			m.Text = d.readString()
		case 2:
			m.VoteCount = d.readInt32()
		case 3:
			m.VoterIds = append(m.VoterIds, d.readString())
		case 4:
			v := &Profile{}
			d.readMessage(v)
			m.Voters = append(m.Voters, v)
		default:
			d.skip()
		}
	}
	return d.err
}

type Poll struct {
	Id        string
	EventId   string
	Question  string
	Options   []*PollOption
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (m *Poll) MarshalWire(b []byte) []byte {
	b = putString(b, 1, m.Id)
	b = putString(b, 2, m.EventId)
	b = putString(b, 3, m.Question)
	for _, o := range m.Options {
		b = putMessage(b, 4, o)
	}
	b = putString(b, 5, m.CreatedBy)
	b = putTime(b, 6, m.CreatedAt)
	return putTime(b, 7, m.UpdatedAt)
}

func (m *Poll) UnmarshalWire(b []byte) error {
	d := decoder{buf: b}
	for d.next() {
		switch d.num {
		case 1:
			m.Id = d.readString()
		case 2:
			m.EventId = d.readString()
		case 3:
			m.Question = d.readString()
		case 4:
			o := &PollOption{}
			d.readMessage(o)
			m.Options = append(m.Options, o)
		case 5:
			m.CreatedBy = d.readString()
		case 6:
			m.CreatedAt = d.readTime()
		case 7:
			m.UpdatedAt = d.readTime()
		default:
			d.skip()
		}
	}
	return d.err
}

// auth

type RegisterRequest struct {
	Email    string
	Password string
	Name     string
}

func (m *RegisterRequest) MarshalWire(b []byte) []byte {
	b = putString(b, 1, m.Email)
	b = putString(b, 2, m.Password)
	return putString(b, 3, m.Name)
}

func (m *RegisterRequest) UnmarshalWire(b []byte) error {
	d := decoder{buf: b}
	for d.next() {
		switch d.num {
		case 1:
			m.Email = d.readString()
		case 2:
			m.Password = d.readString()
		case 3:
			m.Name = d.readString()
		default:
			d.skip()
		}
	}
	return d.err
}

type LoginRequest struct {
	Email    string
	Password string
}

func (m *LoginRequest) MarshalWire(b []byte) []byte {
	b = putString(b, 1, m.Email)
	return putString(b, 2, m.Password)
}

func (m *LoginRequest) UnmarshalWire(b []byte) error {
	d := decoder{buf: b}
	for d.next() {
		switch d.num {
		case 1:
			m.Email = d.readString()
		case 2:
			m.Password = d.readString()
		default:
			d.skip()
		}
	}
	return d.err
}

type RefreshRequest struct {
	RefreshToken string
}

func (m *RefreshRequest) MarshalWire(b []byte) []byte {
	return putString(b, 1, m.RefreshToken)
}

func (m *RefreshRequest) UnmarshalWire(b []byte) error {
	d := decoder{buf: b}
	for d.next() {
		if d.num == 1 {
			m.RefreshToken = d.readString()
			continue
		}
		d.skip()
	}
	return d.err
}

// AuthResponse answers Register, Login and Refresh.
type AuthResponse struct {
	UserId       string
	Name         string
	AccessToken  string
	RefreshToken string
}

func (m *AuthResponse) MarshalWire(b []byte) []byte {
	b = putString(b, 1, m.UserId)
	b = putString(b, 2, m.Name)
	b = putString(b, 3, m.AccessToken)
	return putString(b, 4, m.RefreshToken)
}

func (m *AuthResponse) UnmarshalWire(b []byte) error {
	d := decoder{buf: b}
	for d.next() {
		switch d.num {
		case 1:
			m.UserId = d.readString()
		case 2:
			m.Name = d.readString()
		case 3:
			m.AccessToken = d.readString()
		case 4:
			m.RefreshToken = d.readString()
		default:
			d.skip()
		}
	}
	return d.err
}

type SearchUsersRequest struct {
	Query string
	Limit int32
}

func (m *SearchUsersRequest) MarshalWire(b []byte) []byte {
	b = putString(b, 1, m.Query)
	return putInt(b, 2, int64(m.Limit))
}

func (m *SearchUsersRequest) UnmarshalWire(b []byte) error {
	d := decoder{buf: b}
	for d.next() {
		switch d.num {
		case 1:
			m.Query = d.readString()
		case 2:
			m.Limit = d.readInt32()
		default:
			d.skip()
		}
	}
	return d.err
}

type SearchUsersResponse struct {
	Users []*Profile
}

func (m *SearchUsersResponse) MarshalWire(b []byte) []byte {
	for _, u := range m.Users {
		b = putMessage(b, 1, u)
	}
	return b
}

func (m *SearchUsersResponse) UnmarshalWire(b []byte) error {
	d := decoder{buf: b}
	for d.next() {
		if d.num == 1 {
			u := &Profile{}
			d.readMessage(u)
			m.Users = append(m.Users, u)
			continue
		}
		d.skip()
	}
	return d.err
}

// events

type CreateEventRequest struct {
	Title          string
	Description    string
	DateOptions    []time.Time
	ParticipantIds []string
}

func (m *CreateEventRequest) MarshalWire(b []byte) []byte {
	b = putString(b, 1, m.Title)
	b = putString(b, 2, m.Description)
	b = putTimes(b, 3, m.DateOptions)
	return putStrings(b, 4, m.ParticipantIds)
}

func (m *CreateEventRequest) UnmarshalWire(b []byte) error {
	d := decoder{buf: b}
	for d.next() {
		switch d.num {
		case 1:
			m.Title = d.readString()
		case 2:
			m.Description = d.readString()
		case 3:
			m.DateOptions = append(m.DateOptions, d.readTime())
		case 4:
			m.ParticipantIds = append(m.ParticipantIds, d.readString())
		default:
			d.skip()
		}
	}
	return d.err
}

// UpdateEventRequest applies only the fields named in UpdateMask. Valid paths
// are title, description, date_options and participant_ids.
type UpdateEventRequest struct {
	Id             string
	Title          string
	Description    string
	DateOptions    []time.Time
	ParticipantIds []string
	UpdateMask     *fieldmaskpb.FieldMask
}

func (m *UpdateEventRequest) MarshalWire(b []byte) []byte {
	b = putString(b, 1, m.Id)
	b = putString(b, 2, m.Title)
	b = putString(b, 3, m.Description)
	b = putTimes(b, 4, m.DateOptions)
	b = putStrings(b, 5, m.ParticipantIds)
	return putFieldMask(b, 6, m.UpdateMask)
}

func (m *UpdateEventRequest) UnmarshalWire(b []byte) error {
	d := decoder{buf: b}
	for d.next() {
		switch d.num {
		case 1:
			m.Id = d.readString()
		case 2:
			m.Title = d.readString()
		case 3:
			m.Description = d.readString()
		case 4:
			m.DateOptions = append(m.DateOptions, d.readTime())
		case 5:
			m.ParticipantIds = append(m.ParticipantIds, d.readString())
		case 6:
			m.UpdateMask = d.readFieldMask()
		default:
			d.skip()
		}
	}
	return d.err
}

// IDRequest addresses a single resource by id.
type IDRequest struct {
	Id string
}

func (m *IDRequest) MarshalWire(b []byte) []byte {
	return putString(b, 1, m.Id)
}

func (m *IDRequest) UnmarshalWire(b []byte) error {
	d := decoder{buf: b}
	for d.next() {
		if d.num == 1 {
			m.Id = d.readString()
			continue
		}
		d.skip()
	}
	return d.err
}

type EventResponse struct {
	Event *Event
}

func (m *EventResponse) MarshalWire(b []byte) []byte {
	return putMessage(b, 1, m.Event)
}

func (m *EventResponse) UnmarshalWire(b []byte) error {
	d := decoder{buf: b}
	for d.next() {
		if d.num == 1 {
			m.Event = &Event{}
			d.readMessage(m.Event)
			continue
		}
		d.skip()
	}
	return d.err
}

type GetEventResponse struct {
	Event        *Event
	Creator      *Profile
	Participants []*Profile
}

func (m *GetEventResponse) MarshalWire(b []byte) []byte {
	b = putMessage(b, 1, m.Event)
	b = putMessage(b, 2, m.Creator)
	for _, p := range m.Participants {
		b = putMessage(b, 3, p)
	}
	return b
}

func (m *GetEventResponse) UnmarshalWire(b []byte) error {
	d := decoder{buf: b}
	for d.next() {
		switch d.num {
		case 1:
			m.Event = &Event{}
			d.readMessage(m.Event)
		case 2:
			m.Creator = &Profile{}
			d.readMessage(m.Creator)
		case 3:
			p := &Profile{}
			d.readMessage(p)
			m.Participants = append(m.Participants, p)
		default:
			d.skip()
		}
	}
	return d.err
}

type ListEventsResponse struct {
	Events []*Event
}

func (m *ListEventsResponse) MarshalWire(b []byte) []byte {
	for _, e := range m.Events {
		b = putMessage(b, 1, e)
	}
	return b
}

func (m *ListEventsResponse) UnmarshalWire(b []byte) error {
	d := decoder{buf: b}
	for d.next() {
		if d.num == 1 {
			e := &Event{}
			d.readMessage(e)
			m.Events = append(m.Events, e)
			continue
		}
		d.skip()
	}
	return d.err
}

// invitations

type InviteUsersRequest struct {
	EventId string
	UserIds []string
	Message string
}

func (m *InviteUsersRequest) MarshalWire(b []byte) []byte {
	b = putString(b, 1, m.EventId)
	b = putStrings(b, 2, m.UserIds)
	return putString(b, 3, m.Message)
}

func (m *InviteUsersRequest) UnmarshalWire(b []byte) error {
	d := decoder{buf: b}
	for d.next() {
		switch d.num {
		case 1:
			m.EventId = d.readString()
		case 2:
			m.UserIds = append(m.UserIds, d.readString())
		case 3:
			m.Message = d.readString()
		default:
			d.skip()
		}
	}
	return d.err
}

type InviteUsersResponse struct {
	EventId string
	Results []*InviteOutcome
}

func (m *InviteUsersResponse) MarshalWire(b []byte) []byte {
	b = putString(b, 1, m.EventId)
	for _, r := range m.Results {
		b = putMessage(b, 2, r)
	}
	return b
}

func (m *InviteUsersResponse) UnmarshalWire(b []byte) error {
	d := decoder{buf: b}
	for d.next() {
		switch d.num {
		case 1:
			m.EventId = d.readString()
		case 2:
			r := &InviteOutcome{}
			d.readMessage(r)
			m.Results = append(m.Results, r)
		default:
			d.skip()
		}
	}
	return d.err
}

type RespondInvitationRequest struct {
	InvitationId string
	Response     string
}

func (m *RespondInvitationRequest) MarshalWire(b []byte) []byte {
	b = putString(b, 1, m.InvitationId)
	return putString(b, 2, m.Response)
}

func (m *RespondInvitationRequest) UnmarshalWire(b []byte) error {
	d := decoder{buf: b}
	for d.next() {
		switch d.num {
		case 1:
			m.InvitationId = d.readString()
		case 2:
			m.Response = d.readString()
		default:
			d.skip()
		}
	}
	return d.err
}

type InvitationResponse struct {
	Invitation *Invitation
}

func (m *InvitationResponse) MarshalWire(b []byte) []byte {
	return putMessage(b, 1, m.Invitation)
}

func (m *InvitationResponse) UnmarshalWire(b []byte) error {
	d := decoder{buf: b}
	for d.next() {
		if d.num == 1 {
			m.Invitation = &Invitation{}
			d.readMessage(m.Invitation)
			continue
		}
		d.skip()
	}
	return d.err
}

type ListInvitationsRequest struct {
	Status string
}

func (m *ListInvitationsRequest) MarshalWire(b []byte) []byte {
	return putString(b, 1, m.Status)
}

func (m *ListInvitationsRequest) UnmarshalWire(b []byte) error {
	d := decoder{buf: b}
	for d.next() {
		if d.num == 1 {
			m.Status = d.readString()
			continue
		}
		d.skip()
	}
	return d.err
}

type ListInvitationsResponse struct {
	Invitations []*InvitationView
}

func (m *ListInvitationsResponse) MarshalWire(b []byte) []byte {
	for _, v := range m.Invitations {
		b = putMessage(b, 1, v)
	}
	return b
}

func (m *ListInvitationsResponse) UnmarshalWire(b []byte) error {
	d := decoder{buf: b}
	for d.next() {
		if d.num == 1 {
			v := &InvitationView{}
			d.readMessage(v)
			m.Invitations = append(m.Invitations, v)
			continue
		}
		d.skip()
	}
	return d.err
}

// polls

type CreatePollRequest struct {
	EventId  string
	Question string
	Options  []string
}

func (m *CreatePollRequest) MarshalWire(b []byte) []byte {
	b = putString(b, 1, m.EventId)
	b = putString(b, 2, m.Question)
	return putStrings(b, 3, m.Options)
}

func (m *CreatePollRequest) UnmarshalWire(b []byte) error {
	d := decoder{buf: b}
	for d.next() {
		switch d.num {
		case 1:
			m.EventId = d.readString()
		case 2:
			m.Question = d.readString()
		case 3:
			m.Options = append(m.Options, d.readString())
		default:
			d.skip()
		}
	}
	return d.err
}

type VoteRequest struct {
	PollId      string
	OptionIndex int32
}

func (m *VoteRequest) MarshalWire(b []byte) []byte {
	b = putString(b, 1, m.PollId)
	return putInt(b, 2, int64(m.OptionIndex))
}

func (m *VoteRequest) UnmarshalWire(b []byte) error {
	d := decoder{buf: b}
	for d.next() {
		switch d.num {
		case 1:
			m.PollId = d.readString()
		case 2:
			m.OptionIndex = d.readInt32()
		default:
			d.skip()
		}
	}
	return d.err
}

type PollResponse struct {
	Poll *Poll
}

func (m *PollResponse) MarshalWire(b []byte) []byte {
	return putMessage(b, 1, m.Poll)
}

func (m *PollResponse) UnmarshalWire(b []byte) error {
	d := decoder{buf: b}
	for d.next() {
		if d.num == 1 {
			m.Poll = &Poll{}
			d.readMessage(m.Poll)
			continue
		}
		d.skip()
	}
	return d.err
}

type GetPollResultsRequest struct {
	PollId  string
	Compact bool
}

func (m *GetPollResultsRequest) MarshalWire(b []byte) []byte {
	b = putString(b, 1, m.PollId)
	return putBool(b, 2, m.Compact)
}

func (m *GetPollResultsRequest) UnmarshalWire(b []byte) error {
	d := decoder{buf: b}
	for d.next() {
		switch d.num {
		case 1:
			m.PollId = d.readString()
		case 2:
			m.Compact = d.readBool()
		default:
			d.skip()
		}
	}
	return d.err
}

type GetPollResultsResponse struct {
	Poll    *Poll
	Event   *EventSummary
	Creator *Profile
	Compact bool
}

func (m *GetPollResultsResponse) MarshalWire(b []byte) []byte {
	b = putMessage(b, 1, m.Poll)
	b = putMessage(b, 2, m.Event)
	b = putMessage(b, 3, m.Creator)
	return putBool(b, 4, m.Compact)
}

func (m *GetPollResultsResponse) UnmarshalWire(b []byte) error {
	d := decoder{buf: b}
	for d.next() {
		switch d.num {
		case 1:
			m.Poll = &Poll{}
			d.readMessage(m.Poll)
		case 2:
			m.Event = &EventSummary{}
			d.readMessage(m.Event)
		case 3:
			m.Creator = &Profile{}
			d.readMessage(m.Creator)
		case 4:
			m.Compact = d.readBool()
		default:
			d.skip()
		}
	}
	return d.err
}

type ListPollsResponse struct {
	Polls []*Poll
}

func (m *ListPollsResponse) MarshalWire(b []byte) []byte {
	for _, p := range m.Polls {
		b = putMessage(b, 1, p)
	}
	return b
}

func (m *ListPollsResponse) UnmarshalWire(b []byte) error {
	d := decoder{buf: b}
	for d.next() {
		if d.num == 1 {
			p := &Poll{}
			d.readMessage(p)
			m.Polls = append(m.Polls, p)
			continue
		}
		d.skip()
	}
	return d.err
}
