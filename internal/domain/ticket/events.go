package ticket

import "time"

// EventKind names a notification-worthy change.
type EventKind string

const (
	EventTicketCreated    EventKind = "ticket_created"
	EventStatusChanged    EventKind = "status_changed"
	EventCommentAdded     EventKind = "comment_added"
	EventAttachmentsAdded EventKind = "attachments_added"
	EventTicketAssigned   EventKind = "ticket_assigned"
)

// Event is handed to notifiers after the change committed. Ticket is a
// snapshot taken at commit time.
type Event struct {
	Kind       EventKind
	Ticket     *Ticket
	ActorID    uint
	OldStatus  string
	NewStatus  string
	Comment    *Comment
	Files      []string
	OccurredAt time.Time
}

func NewTicketCreatedEvent(t *Ticket, actorID uint) Event {
	return Event{Kind: EventTicketCreated, Ticket: t, ActorID: actorID, OccurredAt: t.CreatedAt()}
}

func NewStatusChangedEvent(t *Ticket, actorID uint, tr Transition) Event {
	return Event{
		Kind:       EventStatusChanged,
		Ticket:     t,
		ActorID:    actorID,
		OldStatus:  tr.From.String(),
		NewStatus:  tr.To.String(),
		OccurredAt: tr.At,
	}
}

func NewCommentAddedEvent(t *Ticket, c *Comment) Event {
	return Event{Kind: EventCommentAdded, Ticket: t, ActorID: c.AuthorID(), Comment: c, OccurredAt: c.CreatedAt()}
}

func NewAttachmentsAddedEvent(t *Ticket, actorID uint, files []string, at time.Time) Event {
	return Event{Kind: EventAttachmentsAdded, Ticket: t, ActorID: actorID, Files: files, OccurredAt: at}
}

func NewTicketAssignedEvent(t *Ticket, actorID uint, at time.Time) Event {
	return Event{Kind: EventTicketAssigned, Ticket: t, ActorID: actorID, OccurredAt: at}
}
