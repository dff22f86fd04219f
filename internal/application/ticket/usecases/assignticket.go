package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/aticket/internal/application/ticket/dto"
	"github.com/orris-inc/aticket/internal/domain/audit"
	"github.com/orris-inc/aticket/internal/domain/ticket"
	"github.com/orris-inc/aticket/internal/domain/user"
	"github.com/orris-inc/aticket/internal/shared/authorization"
	"github.com/orris-inc/aticket/internal/shared/biztime"
	apperrors "github.com/orris-inc/aticket/internal/shared/errors"
	"github.com/orris-inc/aticket/internal/shared/logger"
)

type AssignTicketCommand struct {
	TicketID   uint
	// AssigneeID nil clears the assignment.
	AssigneeID *uint
	Actor      authorization.Actor
}

type AssignTicketUseCase struct {
	txMgr      TransactionRunner
	ticketRepo ticket.Repository
	auditRepo  audit.Repository
	users      user.Directory
	notifier   Notifier
	labels     dto.Labeler
	clock      biztime.Clock
	logger     logger.Interface
}

func NewAssignTicketUseCase(
	txMgr TransactionRunner,
	ticketRepo ticket.Repository,
	auditRepo audit.Repository,
	users user.Directory,
	notifier Notifier,
	labels dto.Labeler,
	clock biztime.Clock,
	logger logger.Interface,
) *AssignTicketUseCase {
	return &AssignTicketUseCase{
		txMgr:      txMgr,
		ticketRepo: ticketRepo,
		auditRepo:  auditRepo,
		users:      users,
		notifier:   notifier,
		labels:     labels,
		clock:      clock,
		logger:     logger,
	}
}

func (uc *AssignTicketUseCase) Execute(ctx context.Context, cmd AssignTicketCommand) (*dto.TicketDTO, error) {
	uc.logger.Infow("executing assign ticket use case",
		"ticket_id", cmd.TicketID,
		"assignee_id", cmd.AssigneeID,
		"user_id", cmd.Actor.UserID,
	)

	if err := requirePrivileged(cmd.Actor, "assign tickets"); err != nil {
		return nil, err
	}

	if cmd.AssigneeID != nil {
		found, err := uc.users.Lookup(ctx, *cmd.AssigneeID)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to look up assignee").WithCause(err)
		}
		if _, ok := found[*cmd.AssigneeID]; !ok {
			return nil, apperrors.NewValidationError("unknown assignee", fmt.Sprintf("user %d", *cmd.AssigneeID))
		}
	}

	now := uc.clock()
	var (
		t       *ticket.Ticket
		changed bool
	)
	err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		t, err = lockTicket(txCtx, uc.ticketRepo, cmd.TicketID)
		if err != nil {
			return err
		}

		var previous *uint
		previous, changed = t.Assign(cmd.AssigneeID, now)
		if !changed {
			return nil
		}
		if err := uc.ticketRepo.UpdateAssignee(txCtx, t); err != nil {
			return err
		}
		entry, err := audit.Assigned(t.ID(), cmd.Actor.UserID, previous, cmd.AssigneeID, now)
		if err != nil {
			return err
		}
		return uc.auditRepo.Append(txCtx, entry)
	})
	if err != nil {
		uc.logger.Errorw("failed to assign ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, translateDomainError(err, "failed to assign ticket")
	}

	if changed {
		uc.logger.Infow("ticket assigned successfully", "ticket_id", t.ID(), "assignee_id", cmd.AssigneeID)
		uc.notifier.Notify(ctx, ticket.NewTicketAssignedEvent(t, cmd.Actor.UserID, now))
	}

	return dto.ToTicketDTO(t, uc.labels), nil
}
