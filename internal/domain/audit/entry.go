// Package audit is the append-only trail of state-changing ticket events.
package audit

import (
	"fmt"
	"maps"
	"time"
)

type Action string

const (
	ActionCreated         Action = "CREATED"
	ActionStatusChanged   Action = "STATUS_CHANGED"
	ActionCommentAdded    Action = "COMMENT_ADDED"
	ActionAttachmentAdded Action = "ATTACHMENT_ADDED"
	ActionAssigned        Action = "ASSIGNED"
)

func (a Action) String() string {
	return string(a)
}

func (a Action) IsValid() bool {
	switch a {
	case ActionCreated, ActionStatusChanged, ActionCommentAdded, ActionAttachmentAdded, ActionAssigned:
		return true
	}
	return false
}

// Entry is immutable once created. A nil actor marks a system event.
type Entry struct {
	id        uint
	ticketID  uint
	action    Action
	actorID   *uint
	note      string
	meta      map[string]any
	createdAt time.Time
}

func NewEntry(ticketID uint, action Action, actorID *uint, note string, meta map[string]any, at time.Time) (*Entry, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("audit entry requires a ticket")
	}
	if !action.IsValid() {
		return nil, fmt.Errorf("invalid audit action %q", action)
	}
	if meta == nil {
		meta = map[string]any{}
	}
	return &Entry{
		ticketID:  ticketID,
		action:    action,
		actorID:   copyID(actorID),
		note:      note,
		meta:      maps.Clone(meta),
		createdAt: at,
	}, nil
}

func ReconstructEntry(id, ticketID uint, action Action, actorID *uint, note string, meta map[string]any, createdAt time.Time) *Entry {
	if meta == nil {
		meta = map[string]any{}
	}
	return &Entry{
		id:        id,
		ticketID:  ticketID,
		action:    action,
		actorID:   actorID,
		note:      note,
		meta:      meta,
		createdAt: createdAt,
	}
}

func (e *Entry) ID() uint             { return e.id }
func (e *Entry) TicketID() uint       { return e.ticketID }
func (e *Entry) Action() Action       { return e.action }
func (e *Entry) ActorID() *uint       { return copyID(e.actorID) }
func (e *Entry) Note() string         { return e.note }
func (e *Entry) CreatedAt() time.Time { return e.createdAt }

// Meta returns a copy of the structured payload.
func (e *Entry) Meta() map[string]any {
	return maps.Clone(e.meta)
}

func (e *Entry) SetID(id uint) {
	e.id = id
}

func copyID(id *uint) *uint {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
