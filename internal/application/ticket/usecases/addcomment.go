package usecases

import (
	"context"

	"github.com/orris-inc/aticket/internal/application/ticket/dto"
	"github.com/orris-inc/aticket/internal/domain/audit"
	"github.com/orris-inc/aticket/internal/domain/ticket"
	"github.com/orris-inc/aticket/internal/shared/authorization"
	"github.com/orris-inc/aticket/internal/shared/biztime"
	"github.com/orris-inc/aticket/internal/shared/logger"
)

type AddCommentCommand struct {
	TicketID   uint
	Body       string
	IsInternal bool
	Actor      authorization.Actor
}

type AddCommentUseCase struct {
	txMgr       TransactionRunner
	ticketRepo  ticket.Repository
	commentRepo ticket.CommentRepository
	auditRepo   audit.Repository
	notifier    Notifier
	clock       biztime.Clock
	logger      logger.Interface
}

func NewAddCommentUseCase(
	txMgr TransactionRunner,
	ticketRepo ticket.Repository,
	commentRepo ticket.CommentRepository,
	auditRepo audit.Repository,
	notifier Notifier,
	clock biztime.Clock,
	logger logger.Interface,
) *AddCommentUseCase {
	return &AddCommentUseCase{
		txMgr:       txMgr,
		ticketRepo:  ticketRepo,
		commentRepo: commentRepo,
		auditRepo:   auditRepo,
		notifier:    notifier,
		clock:       clock,
		logger:      logger,
	}
}

func (uc *AddCommentUseCase) Execute(ctx context.Context, cmd AddCommentCommand) (*dto.CommentDTO, error) {
	uc.logger.Infow("executing add comment use case",
		"ticket_id", cmd.TicketID,
		"user_id", cmd.Actor.UserID,
		"internal", cmd.IsInternal,
	)

	if cmd.IsInternal {
		if err := requirePrivileged(cmd.Actor, "post internal comments"); err != nil {
			return nil, err
		}
	}

	now := uc.clock()
	var (
		t *ticket.Ticket
		c *ticket.Comment
	)
	err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		t, err = lockVisibleTicket(txCtx, uc.ticketRepo, cmd.TicketID, cmd.Actor)
		if err != nil {
			return err
		}

		c, err = ticket.NewComment(t.ID(), cmd.Actor.UserID, cmd.Body, cmd.IsInternal, now)
		if err != nil {
			return err
		}
		if err := uc.commentRepo.Create(txCtx, c); err != nil {
			return err
		}

		entry, err := audit.CommentAdded(t.ID(), cmd.Actor.UserID, cmd.IsInternal, now)
		if err != nil {
			return err
		}
		if err := uc.auditRepo.Append(txCtx, entry); err != nil {
			return err
		}

		t.Touch(now)
		return uc.ticketRepo.Touch(txCtx, t.ID(), now)
	})
	if err != nil {
		uc.logger.Warnw("failed to add comment", "ticket_id", cmd.TicketID, "error", err)
		return nil, translateDomainError(err, "failed to add comment")
	}

	uc.logger.Infow("comment added successfully", "ticket_id", t.ID(), "comment_id", c.ID())
	if !c.IsInternal() {
		uc.notifier.Notify(ctx, ticket.NewCommentAddedEvent(t, c))
	}

	result := dto.ToCommentDTO(c)
	return &result, nil
}
