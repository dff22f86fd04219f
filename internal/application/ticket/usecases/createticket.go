package usecases

import (
	"context"
	"errors"
	"strings"

	"github.com/orris-inc/aticket/internal/application/ticket/dto"
	"github.com/orris-inc/aticket/internal/domain/audit"
	"github.com/orris-inc/aticket/internal/domain/department"
	"github.com/orris-inc/aticket/internal/domain/ticket"
	vo "github.com/orris-inc/aticket/internal/domain/ticket/valueobjects"
	"github.com/orris-inc/aticket/internal/infrastructure/metrics"
	"github.com/orris-inc/aticket/internal/shared/authorization"
	"github.com/orris-inc/aticket/internal/shared/biztime"
	apperrors "github.com/orris-inc/aticket/internal/shared/errors"
	"github.com/orris-inc/aticket/internal/shared/logger"
)

type CreateTicketCommand struct {
	Title       string
	Description string
	Department  string
	Priority    string
	Impact      string
	Urgency     string
	Source      string
	Location    string
	AssetCode   string
	Attachments []AttachmentInput
	Actor       authorization.Actor
}

type CreateTicketUseCase struct {
	txMgr       TransactionRunner
	protocols   ProtocolAllocator
	ticketRepo  ticket.Repository
	fileRepo    ticket.AttachmentRepository
	auditRepo   audit.Repository
	departments department.Repository
	notifier    Notifier
	policy      ticket.AttachmentPolicy
	labels      dto.Labeler
	clock       biztime.Clock
	logger      logger.Interface
}

func NewCreateTicketUseCase(
	txMgr TransactionRunner,
	protocols ProtocolAllocator,
	ticketRepo ticket.Repository,
	fileRepo ticket.AttachmentRepository,
	auditRepo audit.Repository,
	departments department.Repository,
	notifier Notifier,
	policy ticket.AttachmentPolicy,
	labels dto.Labeler,
	clock biztime.Clock,
	logger logger.Interface,
) *CreateTicketUseCase {
	return &CreateTicketUseCase{
		txMgr:       txMgr,
		protocols:   protocols,
		ticketRepo:  ticketRepo,
		fileRepo:    fileRepo,
		auditRepo:   auditRepo,
		departments: departments,
		notifier:    notifier,
		policy:      policy,
		labels:      labels,
		clock:       clock,
		logger:      logger,
	}
}

// Execute validates the request, then reserves the protocol, inserts the
// ticket, its attachments and their audit entries in one transaction.
// The notification is sent only after commit.
func (uc *CreateTicketUseCase) Execute(ctx context.Context, cmd CreateTicketCommand) (*dto.TicketDTO, error) {
	uc.logger.Infow("executing create ticket use case",
		"department", cmd.Department,
		"creator_id", cmd.Actor.UserID,
	)

	dept, err := uc.resolveDepartment(ctx, cmd.Department)
	if err != nil {
		return nil, err
	}

	now := uc.clock()
	t, err := ticket.NewTicket(ticket.NewTicketParams{
		Title:        cmd.Title,
		Description:  cmd.Description,
		DepartmentID: dept.ID(),
		Department:   dept.Code(),
		Attributes: vo.Attributes{
			Priority: vo.Priority(strings.ToUpper(cmd.Priority)),
			Impact:   vo.Impact(strings.ToUpper(cmd.Impact)),
			Urgency:  vo.Urgency(strings.ToUpper(cmd.Urgency)),
			Source:   vo.Source(strings.ToUpper(cmd.Source)),
		},
		CreatedBy: cmd.Actor.UserID,
		Location:  cmd.Location,
		AssetCode: cmd.AssetCode,
	}, now)
	if err != nil {
		uc.logger.Warnw("invalid create ticket command", "error", err)
		return nil, translateDomainError(err, "failed to create ticket")
	}

	files, err := buildAttachments(cmd.Attachments, cmd.Actor.UserID, uc.policy, now)
	if err != nil {
		return nil, err
	}

	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		protocol, err := uc.protocols.Generate(txCtx, dept.Code())
		if err != nil {
			return err
		}
		if err := t.AssignProtocol(protocol); err != nil {
			return err
		}
		if err := uc.ticketRepo.Create(txCtx, t); err != nil {
			return err
		}

		created, err := audit.Created(t.ID(), cmd.Actor.UserID, now)
		if err != nil {
			return err
		}
		if err := uc.auditRepo.Append(txCtx, created); err != nil {
			return err
		}

		if len(files) == 0 {
			return nil
		}
		return appendAttachments(txCtx, uc.fileRepo, uc.auditRepo, t.ID(), cmd.Actor.UserID, files, now)
	})
	if err != nil {
		uc.logger.Errorw("failed to create ticket", "department", dept.Code(), "error", err)
		return nil, translateDomainError(err, "failed to create ticket")
	}

	uc.logger.Infow("ticket created successfully",
		"ticket_id", t.ID(),
		"protocol", t.Protocol(),
		"attachments", len(files),
	)
	metrics.TicketCreated(dept.Code().String())

	uc.notifier.Notify(ctx, ticket.NewTicketCreatedEvent(t, cmd.Actor.UserID))
	if len(files) > 0 {
		uc.notifier.Notify(ctx, ticket.NewAttachmentsAddedEvent(t, cmd.Actor.UserID, attachmentNames(files), now))
	}

	result := dto.ToTicketDTO(t, uc.labels)
	result.Attachments = dto.ToAttachmentDTOs(files)
	return result, nil
}

func (uc *CreateTicketUseCase) resolveDepartment(ctx context.Context, raw string) (*department.Department, error) {
	code, err := department.ParseCode(raw)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid department", err.Error())
	}
	dept, err := uc.departments.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, department.ErrDepartmentNotFound) {
			return nil, apperrors.NewValidationError("unknown department", code.String())
		}
		return nil, apperrors.NewInternalError("failed to load department").WithCause(err)
	}
	return dept, nil
}
