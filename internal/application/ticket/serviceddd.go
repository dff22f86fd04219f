// Package ticket is the application service of the ticketing core.
package ticket

import (
	"context"

	"github.com/orris-inc/aticket/internal/application/ticket/dto"
	"github.com/orris-inc/aticket/internal/application/ticket/usecases"
	"github.com/orris-inc/aticket/internal/domain/audit"
	"github.com/orris-inc/aticket/internal/domain/department"
	"github.com/orris-inc/aticket/internal/domain/ticket"
	"github.com/orris-inc/aticket/internal/domain/user"
	"github.com/orris-inc/aticket/internal/shared/biztime"
	"github.com/orris-inc/aticket/internal/shared/logger"
)

// Dependencies groups the collaborators of ServiceDDD.
type Dependencies struct {
	TxManager   usecases.TransactionRunner
	Protocols   usecases.ProtocolAllocator
	Tickets     ticket.Repository
	Comments    ticket.CommentRepository
	Attachments ticket.AttachmentRepository
	Audit       audit.Repository
	Departments department.Repository
	Users       user.Directory
	Notifier    usecases.Notifier
	Policy      ticket.AttachmentPolicy
	Labels      dto.Labeler
	Clock       biztime.Clock
}

type ServiceDDD struct {
	logger logger.Interface

	createTicket   *usecases.CreateTicketUseCase
	changeStatus   *usecases.ChangeStatusUseCase
	assignTicket   *usecases.AssignTicketUseCase
	addComment     *usecases.AddCommentUseCase
	addAttachments *usecases.AddAttachmentsUseCase

	getTicket       *usecases.GetTicketUseCase
	listTickets     *usecases.ListTicketsUseCase
	listAudit       *usecases.ListAuditUseCase
	listDepartments *usecases.ListDepartmentsUseCase
}

func NewServiceDDD(deps Dependencies, logger logger.Interface) *ServiceDDD {
	clock := deps.Clock
	if clock == nil {
		clock = biztime.SystemClock
	}
	lifecycle := ticket.NewLifecycle(clock)

	return &ServiceDDD{
		logger: logger,

		createTicket: usecases.NewCreateTicketUseCase(deps.TxManager, deps.Protocols, deps.Tickets, deps.Attachments,
			deps.Audit, deps.Departments, deps.Notifier, deps.Policy, deps.Labels, clock, logger),
		changeStatus: usecases.NewChangeStatusUseCase(deps.TxManager, deps.Tickets, deps.Audit, lifecycle,
			deps.Notifier, deps.Labels, logger),
		assignTicket: usecases.NewAssignTicketUseCase(deps.TxManager, deps.Tickets, deps.Audit, deps.Users,
			deps.Notifier, deps.Labels, clock, logger),
		addComment: usecases.NewAddCommentUseCase(deps.TxManager, deps.Tickets, deps.Comments, deps.Audit,
			deps.Notifier, clock, logger),
		addAttachments: usecases.NewAddAttachmentsUseCase(deps.TxManager, deps.Tickets, deps.Attachments, deps.Audit,
			deps.Notifier, deps.Policy, clock, logger),

		getTicket:       usecases.NewGetTicketUseCase(deps.Tickets, deps.Comments, deps.Attachments, deps.Labels, logger),
		listTickets:     usecases.NewListTicketsUseCase(deps.Tickets, deps.Labels, logger),
		listAudit:       usecases.NewListAuditUseCase(deps.Tickets, deps.Audit, logger),
		listDepartments: usecases.NewListDepartmentsUseCase(deps.Departments, logger),
	}
}

func (s *ServiceDDD) CreateTicket(ctx context.Context, cmd usecases.CreateTicketCommand) (*dto.TicketDTO, error) {
	return s.createTicket.Execute(ctx, cmd)
}

func (s *ServiceDDD) ChangeStatus(ctx context.Context, cmd usecases.ChangeStatusCommand) (*dto.ChangeStatusResult, error) {
	return s.changeStatus.Execute(ctx, cmd)
}

func (s *ServiceDDD) Assign(ctx context.Context, cmd usecases.AssignTicketCommand) (*dto.TicketDTO, error) {
	return s.assignTicket.Execute(ctx, cmd)
}

func (s *ServiceDDD) AddComment(ctx context.Context, cmd usecases.AddCommentCommand) (*dto.CommentDTO, error) {
	return s.addComment.Execute(ctx, cmd)
}

func (s *ServiceDDD) AddAttachments(ctx context.Context, cmd usecases.AddAttachmentsCommand) ([]dto.AttachmentDTO, error) {
	return s.addAttachments.Execute(ctx, cmd)
}

func (s *ServiceDDD) GetTicket(ctx context.Context, query usecases.GetTicketQuery) (*dto.TicketDTO, error) {
	return s.getTicket.Execute(ctx, query)
}

func (s *ServiceDDD) ListTickets(ctx context.Context, query usecases.ListTicketsQuery) (*dto.ListTicketsResult, error) {
	return s.listTickets.Execute(ctx, query)
}

func (s *ServiceDDD) ListAudit(ctx context.Context, query usecases.ListAuditQuery) ([]dto.AuditEntryDTO, error) {
	return s.listAudit.Execute(ctx, query)
}

func (s *ServiceDDD) ListDepartments(ctx context.Context) ([]dto.DepartmentDTO, error) {
	return s.listDepartments.Execute(ctx)
}
