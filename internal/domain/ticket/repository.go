package ticket

import (
	"context"
	"time"

	"github.com/orris-inc/aticket/internal/domain/department"
	vo "github.com/orris-inc/aticket/internal/domain/ticket/valueobjects"
	"github.com/orris-inc/aticket/internal/shared/query"
)

type Repository interface {
	// Create inserts t and sets its ID. The protocol must already be assigned.
	Create(ctx context.Context, t *Ticket) error
	// UpdateStatus writes status and updated_at. Other columns are left to
	// whichever transaction owns them.
	UpdateStatus(ctx context.Context, t *Ticket) error
	// UpdateAssignee writes assignee_id and updated_at.
	UpdateAssignee(ctx context.Context, t *Ticket) error
	// Touch moves updated_at forward to at; it never moves it back.
	Touch(ctx context.Context, id uint, at time.Time) error
	GetByID(ctx context.Context, id uint) (*Ticket, error)
	// GetByIDForUpdate reads the row and holds an exclusive lock on it until
	// the transaction in ctx ends.
	GetByIDForUpdate(ctx context.Context, id uint) (*Ticket, error)
	GetByProtocol(ctx context.Context, protocol string) (*Ticket, error)
	List(ctx context.Context, filter ListFilter) ([]*Ticket, int64, error)
}

type ListFilter struct {
	query.BaseFilter
	Status         *vo.Status
	Department     *department.Code
	AssigneeID     *uint
	CreatedBy      *uint
	ProtocolPrefix string
}

type CommentRepository interface {
	Create(ctx context.Context, c *Comment) error
	ListByTicket(ctx context.Context, ticketID uint, includeInternal bool) ([]*Comment, error)
}

type AttachmentRepository interface {
	CreateBatch(ctx context.Context, attachments []*Attachment) error
	ListByTicket(ctx context.Context, ticketID uint) ([]*Attachment, error)
}
