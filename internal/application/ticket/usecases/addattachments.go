package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/orris-inc/aticket/internal/application/ticket/dto"
	"github.com/orris-inc/aticket/internal/domain/audit"
	"github.com/orris-inc/aticket/internal/domain/ticket"
	"github.com/orris-inc/aticket/internal/shared/authorization"
	"github.com/orris-inc/aticket/internal/shared/biztime"
	apperrors "github.com/orris-inc/aticket/internal/shared/errors"
	"github.com/orris-inc/aticket/internal/shared/logger"
)

type AddAttachmentsCommand struct {
	TicketID uint
	Files    []AttachmentInput
	Actor    authorization.Actor
}

type AddAttachmentsUseCase struct {
	txMgr      TransactionRunner
	ticketRepo ticket.Repository
	fileRepo   ticket.AttachmentRepository
	auditRepo  audit.Repository
	notifier   Notifier
	policy     ticket.AttachmentPolicy
	clock      biztime.Clock
	logger     logger.Interface
}

func NewAddAttachmentsUseCase(
	txMgr TransactionRunner,
	ticketRepo ticket.Repository,
	fileRepo ticket.AttachmentRepository,
	auditRepo audit.Repository,
	notifier Notifier,
	policy ticket.AttachmentPolicy,
	clock biztime.Clock,
	logger logger.Interface,
) *AddAttachmentsUseCase {
	return &AddAttachmentsUseCase{
		txMgr:      txMgr,
		ticketRepo: ticketRepo,
		fileRepo:   fileRepo,
		auditRepo:  auditRepo,
		notifier:   notifier,
		policy:     policy,
		clock:      clock,
		logger:     logger,
	}
}

func (uc *AddAttachmentsUseCase) Execute(ctx context.Context, cmd AddAttachmentsCommand) ([]dto.AttachmentDTO, error) {
	uc.logger.Infow("executing add attachments use case",
		"ticket_id", cmd.TicketID,
		"files", len(cmd.Files),
		"user_id", cmd.Actor.UserID,
	)

	if len(cmd.Files) == 0 {
		return nil, apperrors.NewValidationError("at least one file is required")
	}

	now := uc.clock()
	files, err := buildAttachments(cmd.Files, cmd.Actor.UserID, uc.policy, now)
	if err != nil {
		return nil, err
	}

	var t *ticket.Ticket
	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		t, err = lockVisibleTicket(txCtx, uc.ticketRepo, cmd.TicketID, cmd.Actor)
		if err != nil {
			return err
		}
		if err := appendAttachments(txCtx, uc.fileRepo, uc.auditRepo, t.ID(), cmd.Actor.UserID, files, now); err != nil {
			return err
		}
		t.Touch(now)
		return uc.ticketRepo.Touch(txCtx, t.ID(), now)
	})
	if err != nil {
		uc.logger.Errorw("failed to add attachments", "ticket_id", cmd.TicketID, "error", err)
		return nil, translateDomainError(err, "failed to add attachments")
	}

	uc.logger.Infow("attachments added successfully", "ticket_id", t.ID(), "protocol", t.Protocol(), "files", len(files))
	uc.notifier.Notify(ctx, ticket.NewAttachmentsAddedEvent(t, cmd.Actor.UserID, attachmentNames(files), now))

	return dto.ToAttachmentDTOs(files), nil
}

// buildAttachments validates every file against policy and reports all
// rejections at once.
func buildAttachments(inputs []AttachmentInput, uploadedBy uint, policy ticket.AttachmentPolicy, now time.Time) ([]*ticket.Attachment, error) {
	if len(inputs) == 0 {
		return nil, nil
	}

	var problems []string
	files := make([]*ticket.Attachment, 0, len(inputs))
	for _, in := range inputs {
		problems = append(problems, policy.Check(in.OriginalName, in.Size)...)

		ref := in.FileReference
		if ref == "" {
			ref = fmt.Sprintf("attachments/%s/%s", uuid.NewString(), in.OriginalName)
		}
		a, err := ticket.NewAttachment(ticket.NewAttachmentParams{
			FileReference: ref,
			OriginalName:  in.OriginalName,
			MimeType:      in.MimeType,
			Size:          in.Size,
			UploadedBy:    uploadedBy,
		}, now)
		if err != nil {
			problems = append(problems, err.Error())
			continue
		}
		files = append(files, a)
	}

	if len(problems) > 0 {
		return nil, apperrors.NewValidationError("invalid attachments", problems...)
	}
	return files, nil
}

// appendAttachments stores files for ticketID with one ATTACHMENT_ADDED entry.
// It must run inside a transaction.
func appendAttachments(
	ctx context.Context,
	fileRepo ticket.AttachmentRepository,
	auditRepo audit.Repository,
	ticketID, actorID uint,
	files []*ticket.Attachment,
	now time.Time,
) error {
	for _, f := range files {
		f.BindTo(ticketID)
	}
	if err := fileRepo.CreateBatch(ctx, files); err != nil {
		return err
	}

	entry, err := audit.AttachmentsAdded(ticketID, actorID, attachmentNames(files), now)
	if err != nil {
		return err
	}
	return auditRepo.Append(ctx, entry)
}

func attachmentNames(files []*ticket.Attachment) []string {
	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, f.OriginalName())
	}
	return names
}
