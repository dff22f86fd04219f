package mappers

import (
	"fmt"

	"github.com/orris-inc/aticket/internal/domain/department"
	"github.com/orris-inc/aticket/internal/domain/ticket"
	vo "github.com/orris-inc/aticket/internal/domain/ticket/valueobjects"
	"github.com/orris-inc/aticket/internal/infrastructure/persistence/models"
)

// TicketMapper handles the conversion between ticket aggregates and
// persistence models.
type TicketMapper interface {
	ToModel(t *ticket.Ticket) *models.TicketModel
	ToDomain(model *models.TicketModel) (*ticket.Ticket, error)
	ToDomainList(list []models.TicketModel) ([]*ticket.Ticket, error)

	CommentToModel(c *ticket.Comment) *models.CommentModel
	CommentToDomain(model *models.CommentModel) *ticket.Comment

	AttachmentToModel(a *ticket.Attachment) *models.AttachmentModel
	AttachmentToDomain(model *models.AttachmentModel) *ticket.Attachment
}

type TicketMapperImpl struct{}

func NewTicketMapper() TicketMapper {
	return &TicketMapperImpl{}
}

func (m *TicketMapperImpl) ToModel(t *ticket.Ticket) *models.TicketModel {
	attrs := t.Attributes()
	return &models.TicketModel{
		ID:             t.ID(),
		Protocol:       t.Protocol(),
		Title:          t.Title(),
		Description:    t.Description(),
		Status:         t.Status().String(),
		Priority:       attrs.Priority.String(),
		Impact:         attrs.Impact.String(),
		Urgency:        attrs.Urgency.String(),
		Source:         attrs.Source.String(),
		DepartmentID:   t.DepartmentID(),
		DepartmentCode: t.Department().String(),
		CreatedBy:      t.CreatedBy(),
		AssigneeID:     t.AssigneeID(),
		Location:       t.Location(),
		AssetCode:      t.AssetCode(),
		CreatedAt:      toMillis(t.CreatedAt()),
		UpdatedAt:      toMillis(t.UpdatedAt()),
	}
}

func (m *TicketMapperImpl) ToDomain(model *models.TicketModel) (*ticket.Ticket, error) {
	t, err := ticket.ReconstructTicket(
		model.ID,
		model.Protocol,
		model.Title,
		model.Description,
		vo.Status(model.Status),
		vo.Attributes{
			Priority: vo.Priority(model.Priority),
			Impact:   vo.Impact(model.Impact),
			Urgency:  vo.Urgency(model.Urgency),
			Source:   vo.Source(model.Source),
		},
		model.DepartmentID,
		department.Code(model.DepartmentCode),
		model.CreatedBy,
		model.AssigneeID,
		model.Location,
		model.AssetCode,
		fromMillis(model.CreatedAt),
		fromMillis(model.UpdatedAt),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct ticket (id=%d): %w", model.ID, err)
	}
	return t, nil
}

func (m *TicketMapperImpl) ToDomainList(list []models.TicketModel) ([]*ticket.Ticket, error) {
	tickets := make([]*ticket.Ticket, 0, len(list))
	for i := range list {
		t, err := m.ToDomain(&list[i])
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, nil
}

func (m *TicketMapperImpl) CommentToModel(c *ticket.Comment) *models.CommentModel {
	return &models.CommentModel{
		ID:         c.ID(),
		TicketID:   c.TicketID(),
		AuthorID:   c.AuthorID(),
		Body:       c.Body(),
		IsInternal: c.IsInternal(),
		CreatedAt:  toMillis(c.CreatedAt()),
	}
}

func (m *TicketMapperImpl) CommentToDomain(model *models.CommentModel) *ticket.Comment {
	return ticket.ReconstructComment(
		model.ID,
		model.TicketID,
		model.AuthorID,
		model.Body,
		model.IsInternal,
		fromMillis(model.CreatedAt),
	)
}

func (m *TicketMapperImpl) AttachmentToModel(a *ticket.Attachment) *models.AttachmentModel {
	return &models.AttachmentModel{
		ID:            a.ID(),
		TicketID:      a.TicketID(),
		FileReference: a.FileReference(),
		OriginalName:  a.OriginalName(),
		MimeType:      a.MimeType(),
		Size:          a.Size(),
		UploadedBy:    a.UploadedBy(),
		UploadedAt:    toMillis(a.UploadedAt()),
	}
}

func (m *TicketMapperImpl) AttachmentToDomain(model *models.AttachmentModel) *ticket.Attachment {
	return ticket.ReconstructAttachment(
		model.ID,
		model.TicketID,
		model.FileReference,
		model.OriginalName,
		model.MimeType,
		model.Size,
		model.UploadedBy,
		fromMillis(model.UploadedAt),
	)
}
