package mappers

import (
	"gorm.io/datatypes"

	"github.com/orris-inc/aticket/internal/domain/audit"
	"github.com/orris-inc/aticket/internal/infrastructure/persistence/models"
)

type AuditMapper interface {
	ToModel(e *audit.Entry) *models.AuditLogModel
	ToDomain(model *models.AuditLogModel) *audit.Entry
}

type AuditMapperImpl struct{}

func NewAuditMapper() AuditMapper {
	return &AuditMapperImpl{}
}

func (m *AuditMapperImpl) ToModel(e *audit.Entry) *models.AuditLogModel {
	return &models.AuditLogModel{
		ID:        e.ID(),
		TicketID:  e.TicketID(),
		Action:    e.Action().String(),
		ActorID:   e.ActorID(),
		Note:      e.Note(),
		Meta:      datatypes.JSONMap(e.Meta()),
		CreatedAt: toMillis(e.CreatedAt()),
	}
}

// ToDomain restores an entry. Numbers inside meta come back as float64
// after the JSON round trip.
func (m *AuditMapperImpl) ToDomain(model *models.AuditLogModel) *audit.Entry {
	return audit.ReconstructEntry(
		model.ID,
		model.TicketID,
		audit.Action(model.Action),
		model.ActorID,
		model.Note,
		map[string]any(model.Meta),
		fromMillis(model.CreatedAt),
	)
}
