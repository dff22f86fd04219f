// Package notification delivers ticket events to people and to other
// services after the change that produced them has committed.
package notification

import (
	"context"

	"github.com/orris-inc/aticket/internal/domain/ticket"
)

// Message is a rendered notification ready for a Sender.
type Message struct {
	Kind    ticket.EventKind
	To      []string
	Subject string
	Text    string
	HTML    string
}

// Sender delivers a rendered message to its recipients.
type Sender interface {
	Send(ctx context.Context, msg Message) error
	Name() string
}

// EventPublisher fans ticket events out to other services.
type EventPublisher interface {
	Publish(ctx context.Context, event ticket.Event) error
}
