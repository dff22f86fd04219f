package notification

import (
	"fmt"
	"strings"

	"github.com/orris-inc/aticket/internal/domain/ticket"
	"github.com/orris-inc/aticket/internal/shared/i18n"
	"github.com/orris-inc/aticket/internal/shared/services/markdown"
)

// TicketLink builds the public URL of a ticket page.
type TicketLink func(ticketID uint) string

// Renderer turns an event into a localized multipart message. The text part
// is markdown; the HTML part is the same markdown rendered and sanitized.
type Renderer struct {
	tr       *i18n.Translator
	markdown markdown.Renderer
	link     TicketLink
}

func NewRenderer(tr *i18n.Translator, md markdown.Renderer, link TicketLink) *Renderer {
	return &Renderer{tr: tr, markdown: md, link: link}
}

func (r *Renderer) Render(event ticket.Event, aud Audience) (Message, error) {
	t := event.Ticket

	var b strings.Builder
	line := func(field, value string) {
		fmt.Fprintf(&b, "**%s:** %s  \n", r.tr.Label("field", field), value)
	}

	line("protocol", t.Protocol())
	line("title", t.Title())
	line("department", t.Department().String())
	line("status", r.tr.Label("status", t.Status().String()))
	line("priority", r.tr.Label("priority", t.Priority().String()))

	switch event.Kind {
	case ticket.EventTicketCreated:
		fmt.Fprintf(&b, "\n%s\n", t.Description())
	case ticket.EventStatusChanged:
		line("change", fmt.Sprintf("%s → %s",
			r.tr.Label("status", event.OldStatus), r.tr.Label("status", event.NewStatus)))
		line("actor", aud.ActorName)
	case ticket.EventCommentAdded:
		line("actor", aud.ActorName)
		if event.Comment != nil {
			fmt.Fprintf(&b, "\n%s\n", event.Comment.Body())
		}
	case ticket.EventAttachmentsAdded:
		line("files", strings.Join(event.Files, ", "))
		line("actor", aud.ActorName)
	case ticket.EventTicketAssigned:
		assignee := aud.AssigneeName
		if assignee == "" {
			assignee = "-"
		}
		line("assignee", assignee)
		line("actor", aud.ActorName)
	}

	fmt.Fprintf(&b, "\n[%s](%s)\n", r.tr.Label("field", "link"), r.link(t.ID()))

	text := b.String()
	html, err := r.markdown.ToSafeHTML(text)
	if err != nil {
		return Message{}, fmt.Errorf("failed to render %s message: %w", event.Kind, err)
	}

	return Message{
		Kind:    event.Kind,
		To:      aud.To,
		Subject: r.subject(event),
		Text:    text,
		HTML:    html,
	}, nil
}

func (r *Renderer) subject(event ticket.Event) string {
	t := event.Ticket
	key := "subject." + string(event.Kind)
	switch event.Kind {
	case ticket.EventTicketCreated:
		return r.tr.Sprintf(key, t.Protocol(), t.Title())
	case ticket.EventStatusChanged:
		return r.tr.Sprintf(key, t.Protocol(), r.tr.Label("status", event.NewStatus))
	default:
		return r.tr.Sprintf(key, t.Protocol())
	}
}
