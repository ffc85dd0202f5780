package model

import (
	"errors"
	"slices"
	"time"
)

var ErrOptionOutOfRange = errors.New("option index out of range")

// PollOption is addressed by its position in Poll.Options; positions never move.
type PollOption struct {
	Text  string
	Votes []string
}

type Poll struct {
	ID        string
	EventID   string
	Question  string
	Options   []PollOption
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
	Version   int64
}

// CastVote moves userID's single active vote to option idx. The poll is left
// untouched when idx is out of range.
func (p *Poll) CastVote(idx int, userID string) error {
	if idx < 0 || idx >= len(p.Options) {
		return ErrOptionOutOfRange
	}
	for i := range p.Options {
		p.Options[i].Votes = slices.DeleteFunc(p.Options[i].Votes, func(v string) bool { return v == userID })
	}
	p.Options[idx].Votes = append(p.Options[idx].Votes, userID)
	return nil
}

// VotedOption returns the option index holding userID's vote, or -1.
func (p *Poll) VotedOption(userID string) int {
	for i, o := range p.Options {
		if slices.Contains(o.Votes, userID) {
			return i
		}
	}
	return -1
}

func (p *Poll) TotalVotes() int {
	n := 0
	for _, o := range p.Options {
		n += len(o.Votes)
	}
	return n
}

func (p Poll) Clone() Poll {
	opts := make([]PollOption, len(p.Options))
	for i, o := range p.Options {
		opts[i] = PollOption{Text: o.Text, Votes: slices.Clone(o.Votes)}
	}
	p.Options = opts
	return p
}
