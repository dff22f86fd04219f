package usecases

import (
	"context"

	"github.com/orris-inc/aticket/internal/application/ticket/dto"
	"github.com/orris-inc/aticket/internal/domain/audit"
	"github.com/orris-inc/aticket/internal/domain/ticket"
	"github.com/orris-inc/aticket/internal/shared/authorization"
	apperrors "github.com/orris-inc/aticket/internal/shared/errors"
	"github.com/orris-inc/aticket/internal/shared/logger"
)

type ListAuditQuery struct {
	TicketID uint
	Actor    authorization.Actor
}

type ListAuditUseCase struct {
	ticketRepo ticket.Repository
	auditRepo  audit.Repository
	logger     logger.Interface
}

func NewListAuditUseCase(ticketRepo ticket.Repository, auditRepo audit.Repository, logger logger.Interface) *ListAuditUseCase {
	return &ListAuditUseCase{ticketRepo: ticketRepo, auditRepo: auditRepo, logger: logger}
}

// Execute returns the trail oldest first. Staff only.
func (uc *ListAuditUseCase) Execute(ctx context.Context, q ListAuditQuery) ([]dto.AuditEntryDTO, error) {
	if err := requirePrivileged(q.Actor, "read the audit log"); err != nil {
		return nil, err
	}

	t, err := loadTicket(ctx, uc.ticketRepo, q.TicketID)
	if err != nil {
		return nil, err
	}

	entries, err := uc.auditRepo.ListByTicket(ctx, t.ID())
	if err != nil {
		uc.logger.Errorw("failed to list audit entries", "ticket_id", t.ID(), "error", err)
		return nil, apperrors.NewInternalError("failed to list audit entries").WithCause(err)
	}

	result := dto.ToAuditEntryDTOs(entries)
	if result == nil {
		result = []dto.AuditEntryDTO{}
	}
	return result, nil
}
