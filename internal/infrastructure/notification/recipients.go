package notification

import (
	"context"
	"fmt"
	"strings"

	"github.com/orris-inc/aticket/internal/domain/department"
	"github.com/orris-inc/aticket/internal/domain/ticket"
	"github.com/orris-inc/aticket/internal/domain/user"
)

// MailboxLookup returns the shared mailbox of a department, "" when none.
type MailboxLookup func(code department.Code) string

// Audience is who receives a message plus the names shown in it.
type Audience struct {
	To           []string
	ActorName    string
	AssigneeName string
}

type RecipientResolver struct {
	directory user.Directory
	mailbox   MailboxLookup
}

func NewRecipientResolver(directory user.Directory, mailbox MailboxLookup) *RecipientResolver {
	if mailbox == nil {
		mailbox = func(department.Code) string { return "" }
	}
	return &RecipientResolver{directory: directory, mailbox: mailbox}
}

// Resolve builds the recipient list: department mailbox, creator, assignee.
// Duplicates and empty addresses are dropped; order is kept.
func (r *RecipientResolver) Resolve(ctx context.Context, event ticket.Event) (Audience, error) {
	t := event.Ticket

	ids := []uint{t.CreatedBy()}
	assigneeID := t.AssigneeID()
	if assigneeID != nil {
		ids = append(ids, *assigneeID)
	}
	if event.ActorID != 0 {
		ids = append(ids, event.ActorID)
	}

	users, err := r.directory.Lookup(ctx, ids...)
	if err != nil {
		return Audience{}, fmt.Errorf("failed to look up recipients: %w", err)
	}

	candidates := []string{r.mailbox(t.Department())}
	if creator, ok := users[t.CreatedBy()]; ok {
		candidates = append(candidates, creator.Email())
	}

	aud := Audience{}
	if assigneeID != nil {
		if assignee, ok := users[*assigneeID]; ok {
			candidates = append(candidates, assignee.Email())
			aud.AssigneeName = assignee.DisplayName()
		} else {
			aud.AssigneeName = fmt.Sprintf("#%d", *assigneeID)
		}
	}
	if event.ActorID != 0 {
		if actor, ok := users[event.ActorID]; ok {
			aud.ActorName = actor.DisplayName()
		} else {
			aud.ActorName = fmt.Sprintf("#%d", event.ActorID)
		}
	}

	aud.To = dedupeAddresses(candidates)
	return aud, nil
}

func dedupeAddresses(addrs []string) []string {
	seen := make(map[string]struct{}, len(addrs))
	out := make([]string, 0, len(addrs))
	for _, addr := range addrs {
		addr = strings.TrimSpace(addr)
		if addr == "" {
			continue
		}
		key := strings.ToLower(addr)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, addr)
	}
	return out
}
