package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/orris-inc/aticket/internal/domain/ticket"
	"github.com/orris-inc/aticket/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/aticket/internal/infrastructure/persistence/models"
	"github.com/orris-inc/aticket/internal/shared/db"
)

// allowedTicketOrderByFields maps API sort keys to columns. Anything else
// falls back to newest first.
var allowedTicketOrderByFields = map[string]string{
	"id":         "id",
	"protocol":   "protocol",
	"status":     "status",
	"priority":   "priority",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

type TicketRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

var _ ticket.Repository = (*TicketRepository)(nil)

func NewTicketRepository(db *gorm.DB) *TicketRepository {
	return &TicketRepository{
		db:     db,
		mapper: mappers.NewTicketMapper(),
	}
}

func (r *TicketRepository) Create(ctx context.Context, t *ticket.Ticket) error {
	if t.Protocol() == "" {
		return fmt.Errorf("failed to create ticket: %w: protocol not assigned", ticket.ErrInvalidTicket)
	}
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create ticket: %w", err)
	}
	return t.SetID(model.ID)
}

func (r *TicketRepository) UpdateStatus(ctx context.Context, t *ticket.Ticket) error {
	tx := db.GetTxFromContext(ctx, r.db)

	// RowsAffected may be 0 on MySQL when the values are unchanged, so it is
	// not a reliable existence check. Callers load the ticket first.
	if err := tx.Model(&models.TicketModel{}).
		Where("id = ?", t.ID()).
		Updates(map[string]any{
			"status":     t.Status().String(),
			"updated_at": t.UpdatedAt().UnixMilli(),
		}).Error; err != nil {
		return fmt.Errorf("failed to update ticket status: %w", err)
	}
	return nil
}

func (r *TicketRepository) UpdateAssignee(ctx context.Context, t *ticket.Ticket) error {
	tx := db.GetTxFromContext(ctx, r.db)

	// A map writes NULL when the assignee is cleared.
	if err := tx.Model(&models.TicketModel{}).
		Where("id = ?", t.ID()).
		Updates(map[string]any{
			"assignee_id": t.AssigneeID(),
			"updated_at":  t.UpdatedAt().UnixMilli(),
		}).Error; err != nil {
		return fmt.Errorf("failed to update ticket assignee: %w", err)
	}
	return nil
}

func (r *TicketRepository) Touch(ctx context.Context, id uint, at time.Time) error {
	tx := db.GetTxFromContext(ctx, r.db)

	ms := at.UnixMilli()
	if err := tx.Model(&models.TicketModel{}).
		Where("id = ? AND updated_at < ?", id, ms).
		Update("updated_at", ms).Error; err != nil {
		return fmt.Errorf("failed to touch ticket: %w", err)
	}
	return nil
}

func (r *TicketRepository) GetByID(ctx context.Context, id uint) (*ticket.Ticket, error) {
	return r.getByID(db.GetTxFromContext(ctx, r.db), id)
}

// GetByIDForUpdate locks the row with SELECT ... FOR UPDATE. SQLite has no
// row locks; its database-wide write lock serializes the transaction instead.
func (r *TicketRepository) GetByIDForUpdate(ctx context.Context, id uint) (*ticket.Ticket, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	return r.getByID(tx.Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *TicketRepository) getByID(tx *gorm.DB, id uint) (*ticket.Ticket, error) {
	var model models.TicketModel
	if err := tx.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ticket.ErrTicketNotFound
		}
		return nil, fmt.Errorf("failed to find ticket: %w", err)
	}
	return r.mapper.ToDomain(&model)
}

func (r *TicketRepository) GetByProtocol(ctx context.Context, protocol string) (*ticket.Ticket, error) {
	var model models.TicketModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("protocol = ?", protocol).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ticket.ErrTicketNotFound
		}
		return nil, fmt.Errorf("failed to find ticket: %w", err)
	}
	return r.mapper.ToDomain(&model)
}

func (r *TicketRepository) List(ctx context.Context, filter ticket.ListFilter) ([]*ticket.Ticket, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.TicketModel{})

	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.Department != nil {
		query = query.Where("department_code = ?", filter.Department.String())
	}
	if filter.AssigneeID != nil {
		query = query.Where("assignee_id = ?", *filter.AssigneeID)
	}
	if filter.CreatedBy != nil {
		query = query.Where("created_by = ?", *filter.CreatedBy)
	}
	if prefix := sanitizeLikePrefix(filter.ProtocolPrefix); prefix != "" {
		query = query.Where("protocol LIKE ?", prefix+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count tickets: %w", err)
	}

	order := filter.OrderClause(allowedTicketOrderByFields, "created_at DESC")
	var list []models.TicketModel
	if err := query.
		Order(order).
		Order("id DESC").
		Limit(filter.Limit()).
		Offset(filter.Offset()).
		Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list tickets: %w", err)
	}

	tickets, err := r.mapper.ToDomainList(list)
	if err != nil {
		return nil, 0, err
	}
	return tickets, total, nil
}

// sanitizeLikePrefix drops LIKE wildcards; protocols never contain them.
func sanitizeLikePrefix(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	return strings.NewReplacer("%", "", "_", "", "\\", "").Replace(s)
}
