package models

import (
	"gorm.io/datatypes"

	"github.com/orris-inc/aticket/internal/shared/constants"
)

// AuditLogModel is insert-only. The composite index serves the per-ticket
// listing in creation order.
type AuditLogModel struct {
	ID        uint              `gorm:"primarykey"`
	TicketID  uint              `gorm:"not null;index:idx_audit_ticket_created,priority:1"`
	Action    string            `gorm:"size:32;not null"`
	ActorID   *uint             `gorm:"index:idx_audit_actor"`
	Note      string            `gorm:"size:255"`
	Meta      datatypes.JSONMap `gorm:"column:meta"`
	CreatedAt int64             `gorm:"not null;index:idx_audit_ticket_created,priority:2"`
}

func (AuditLogModel) TableName() string {
	return constants.TableAuditLogs
}
