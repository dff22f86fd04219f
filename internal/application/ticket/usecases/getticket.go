package usecases

import (
	"context"

	"github.com/orris-inc/aticket/internal/application/ticket/dto"
	"github.com/orris-inc/aticket/internal/domain/ticket"
	"github.com/orris-inc/aticket/internal/shared/authorization"
	apperrors "github.com/orris-inc/aticket/internal/shared/errors"
	"github.com/orris-inc/aticket/internal/shared/logger"
)

type GetTicketQuery struct {
	TicketID uint
	Actor    authorization.Actor
}

type GetTicketUseCase struct {
	ticketRepo  ticket.Repository
	commentRepo ticket.CommentRepository
	fileRepo    ticket.AttachmentRepository
	labels      dto.Labeler
	logger      logger.Interface
}

func NewGetTicketUseCase(
	ticketRepo ticket.Repository,
	commentRepo ticket.CommentRepository,
	fileRepo ticket.AttachmentRepository,
	labels dto.Labeler,
	logger logger.Interface,
) *GetTicketUseCase {
	return &GetTicketUseCase{
		ticketRepo:  ticketRepo,
		commentRepo: commentRepo,
		fileRepo:    fileRepo,
		labels:      labels,
		logger:      logger,
	}
}

// Execute returns the ticket with its comments and attachments. Internal
// comments are included for staff only.
func (uc *GetTicketUseCase) Execute(ctx context.Context, query GetTicketQuery) (*dto.TicketDTO, error) {
	t, err := loadVisibleTicket(ctx, uc.ticketRepo, query.TicketID, query.Actor)
	if err != nil {
		return nil, err
	}

	comments, err := uc.commentRepo.ListByTicket(ctx, t.ID(), query.Actor.IsPrivileged())
	if err != nil {
		uc.logger.Errorw("failed to load comments", "ticket_id", t.ID(), "error", err)
		return nil, apperrors.NewInternalError("failed to load comments").WithCause(err)
	}

	files, err := uc.fileRepo.ListByTicket(ctx, t.ID())
	if err != nil {
		uc.logger.Errorw("failed to load attachments", "ticket_id", t.ID(), "error", err)
		return nil, apperrors.NewInternalError("failed to load attachments").WithCause(err)
	}

	result := dto.ToTicketDTO(t, uc.labels)
	result.Comments = dto.ToCommentDTOs(comments)
	result.Attachments = dto.ToAttachmentDTOs(files)
	return result, nil
}
