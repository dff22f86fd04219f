package usecases

import (
	"context"

	"github.com/orris-inc/aticket/internal/application/ticket/dto"
	"github.com/orris-inc/aticket/internal/domain/audit"
	"github.com/orris-inc/aticket/internal/domain/ticket"
	"github.com/orris-inc/aticket/internal/infrastructure/metrics"
	"github.com/orris-inc/aticket/internal/shared/authorization"
	"github.com/orris-inc/aticket/internal/shared/logger"
)

type ChangeStatusCommand struct {
	TicketID  uint
	NewStatus string
	Actor     authorization.Actor
}

type ChangeStatusUseCase struct {
	txMgr      TransactionRunner
	ticketRepo ticket.Repository
	auditRepo  audit.Repository
	lifecycle  *ticket.Lifecycle
	notifier   Notifier
	labels     dto.Labeler
	logger     logger.Interface
}

func NewChangeStatusUseCase(
	txMgr TransactionRunner,
	ticketRepo ticket.Repository,
	auditRepo audit.Repository,
	lifecycle *ticket.Lifecycle,
	notifier Notifier,
	labels dto.Labeler,
	logger logger.Interface,
) *ChangeStatusUseCase {
	return &ChangeStatusUseCase{
		txMgr:      txMgr,
		ticketRepo: ticketRepo,
		auditRepo:  auditRepo,
		lifecycle:  lifecycle,
		notifier:   notifier,
		labels:     labels,
		logger:     logger,
	}
}

// Execute applies the transition and its STATUS_CHANGED entry atomically.
// Requesting the current status is a no-op: nothing is written or sent.
func (uc *ChangeStatusUseCase) Execute(ctx context.Context, cmd ChangeStatusCommand) (*dto.ChangeStatusResult, error) {
	uc.logger.Infow("executing change status use case",
		"ticket_id", cmd.TicketID,
		"new_status", cmd.NewStatus,
		"user_id", cmd.Actor.UserID,
		"role", cmd.Actor.Role,
	)

	if err := requirePrivileged(cmd.Actor, "change ticket status"); err != nil {
		uc.logger.Warnw("status change denied", "ticket_id", cmd.TicketID, "user_id", cmd.Actor.UserID)
		return nil, err
	}

	var (
		t  *ticket.Ticket
		tr ticket.Transition
	)
	err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		t, err = lockTicket(txCtx, uc.ticketRepo, cmd.TicketID)
		if err != nil {
			return err
		}

		tr, err = uc.lifecycle.Transition(t, cmd.NewStatus, cmd.Actor.Role)
		if err != nil {
			return err
		}
		if !tr.Changed() {
			return nil
		}

		if err := uc.ticketRepo.UpdateStatus(txCtx, t); err != nil {
			return err
		}
		entry, err := audit.StatusChanged(t.ID(), cmd.Actor.UserID, tr.From.String(), tr.To.String(), tr.At)
		if err != nil {
			return err
		}
		return uc.auditRepo.Append(txCtx, entry)
	})
	if err != nil {
		uc.logger.Warnw("failed to change ticket status", "ticket_id", cmd.TicketID, "error", err)
		return nil, translateDomainError(err, "failed to change ticket status")
	}

	result := &dto.ChangeStatusResult{
		Ticket:    dto.ToTicketDTO(t, uc.labels),
		OldStatus: tr.From.String(),
		NewStatus: tr.To.String(),
		Changed:   tr.Changed(),
	}
	if !tr.Changed() {
		uc.logger.Infow("ticket status unchanged", "ticket_id", t.ID(), "status", tr.To)
		return result, nil
	}

	uc.logger.Infow("ticket status changed successfully",
		"ticket_id", t.ID(),
		"protocol", t.Protocol(),
		"old_status", tr.From,
		"new_status", tr.To,
	)
	metrics.StatusChanged(tr.From.String(), tr.To.String())
	uc.notifier.Notify(ctx, ticket.NewStatusChangedEvent(t, cmd.Actor.UserID, tr))

	return result, nil
}
