package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/orris-inc/aticket/internal/domain/ticket"
	"github.com/orris-inc/aticket/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/aticket/internal/infrastructure/persistence/models"
	"github.com/orris-inc/aticket/internal/shared/db"
)

type AttachmentRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

var _ ticket.AttachmentRepository = (*AttachmentRepository)(nil)

func NewAttachmentRepository(db *gorm.DB) *AttachmentRepository {
	return &AttachmentRepository{db: db, mapper: mappers.NewTicketMapper()}
}

// CreateBatch inserts all records in one statement.
func (r *AttachmentRepository) CreateBatch(ctx context.Context, attachments []*ticket.Attachment) error {
	if len(attachments) == 0 {
		return nil
	}

	list := make([]*models.AttachmentModel, len(attachments))
	for i, a := range attachments {
		list[i] = r.mapper.AttachmentToModel(a)
	}
	if err := db.GetTxFromContext(ctx, r.db).Create(&list).Error; err != nil {
		return fmt.Errorf("failed to create attachments: %w", err)
	}
	for i, a := range attachments {
		a.SetID(list[i].ID)
	}
	return nil
}

func (r *AttachmentRepository) ListByTicket(ctx context.Context, ticketID uint) ([]*ticket.Attachment, error) {
	var list []models.AttachmentModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("ticket_id = ?", ticketID).
		Order("uploaded_at ASC").
		Order("id ASC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list attachments: %w", err)
	}

	attachments := make([]*ticket.Attachment, 0, len(list))
	for i := range list {
		attachments = append(attachments, r.mapper.AttachmentToDomain(&list[i]))
	}
	return attachments, nil
}
