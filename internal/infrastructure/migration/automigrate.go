package migration

import (
	"github.com/orris-inc/aticket/internal/infrastructure/persistence/models"
)

// AutoMigrateModels lists the models in dependency order.
func AutoMigrateModels() []any {
	return []any{
		&models.DepartmentModel{},
		&models.UserModel{},
		&models.ProtocolCounterModel{},
		&models.TicketModel{},
		&models.CommentModel{},
		&models.AttachmentModel{},
		&models.AuditLogModel{},
	}
}
