package audit

import "context"

// Repository is the audit log store. It exposes no update or delete.
type Repository interface {
	// Append inserts e inside the transaction carried by ctx, if any.
	Append(ctx context.Context, e *Entry) error
	// ListByTicket returns a snapshot ordered by creation time, oldest first.
	ListByTicket(ctx context.Context, ticketID uint) ([]*Entry, error)
}
