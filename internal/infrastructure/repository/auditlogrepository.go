package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/orris-inc/aticket/internal/domain/audit"
	"github.com/orris-inc/aticket/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/aticket/internal/infrastructure/persistence/models"
	"github.com/orris-inc/aticket/internal/shared/db"
)

// AuditLogRepository only inserts and reads; there is no update path.
type AuditLogRepository struct {
	db     *gorm.DB
	mapper mappers.AuditMapper
}

var _ audit.Repository = (*AuditLogRepository)(nil)

func NewAuditLogRepository(db *gorm.DB) *AuditLogRepository {
	return &AuditLogRepository{db: db, mapper: mappers.NewAuditMapper()}
}

func (r *AuditLogRepository) Append(ctx context.Context, e *audit.Entry) error {
	model := r.mapper.ToModel(e)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}
	e.SetID(model.ID)
	return nil
}

// ListByTicket orders by created_at and then id, so entries written in the
// same millisecond keep insertion order.
func (r *AuditLogRepository) ListByTicket(ctx context.Context, ticketID uint) ([]*audit.Entry, error) {
	var list []models.AuditLogModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("ticket_id = ?", ticketID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}

	entries := make([]*audit.Entry, 0, len(list))
	for i := range list {
		entries = append(entries, r.mapper.ToDomain(&list[i]))
	}
	return entries, nil
}
