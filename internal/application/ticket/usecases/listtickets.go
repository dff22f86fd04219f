package usecases

import (
	"context"
	"strings"

	"github.com/orris-inc/aticket/internal/application/ticket/dto"
	"github.com/orris-inc/aticket/internal/domain/department"
	"github.com/orris-inc/aticket/internal/domain/ticket"
	vo "github.com/orris-inc/aticket/internal/domain/ticket/valueobjects"
	"github.com/orris-inc/aticket/internal/shared/authorization"
	apperrors "github.com/orris-inc/aticket/internal/shared/errors"
	"github.com/orris-inc/aticket/internal/shared/logger"
	"github.com/orris-inc/aticket/internal/shared/mapper"
	"github.com/orris-inc/aticket/internal/shared/query"
)

type ListTicketsQuery struct {
	Status         string
	Department     string
	AssigneeID     *uint
	CreatedBy      *uint
	ProtocolPrefix string
	Page           int
	PageSize       int
	SortBy         string
	SortOrder      string
	Actor          authorization.Actor
}

type ListTicketsUseCase struct {
	ticketRepo ticket.Repository
	labels     dto.Labeler
	logger     logger.Interface
}

func NewListTicketsUseCase(ticketRepo ticket.Repository, labels dto.Labeler, logger logger.Interface) *ListTicketsUseCase {
	return &ListTicketsUseCase{ticketRepo: ticketRepo, labels: labels, logger: logger}
}

// Execute lists tickets. Operators only ever see their own tickets, whatever
// filter they pass.
func (uc *ListTicketsUseCase) Execute(ctx context.Context, q ListTicketsQuery) (*dto.ListTicketsResult, error) {
	filter := ticket.ListFilter{
		BaseFilter: query.BaseFilter{
			PageFilter: query.PageFilter{Page: q.Page, PageSize: q.PageSize},
			SortFilter: query.SortFilter{SortBy: q.SortBy, SortOrder: q.SortOrder},
		},
		AssigneeID:     q.AssigneeID,
		CreatedBy:      q.CreatedBy,
		ProtocolPrefix: strings.ToUpper(strings.TrimSpace(q.ProtocolPrefix)),
	}

	if q.Status != "" {
		status, err := vo.ParseStatus(q.Status)
		if err != nil {
			return nil, apperrors.NewValidationError("invalid status filter", err.Error())
		}
		filter.Status = &status
	}
	if q.Department != "" {
		code, err := department.ParseCode(q.Department)
		if err != nil {
			return nil, apperrors.NewValidationError("invalid department filter", err.Error())
		}
		filter.Department = &code
	}
	if !q.Actor.IsPrivileged() {
		self := q.Actor.UserID
		filter.CreatedBy = &self
	}

	tickets, total, err := uc.ticketRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list tickets", "error", err)
		return nil, apperrors.NewInternalError("failed to list tickets").WithCause(err)
	}

	page := q.Page
	if page <= 0 {
		page = 1
	}
	return &dto.ListTicketsResult{
		Items: mapper.MapSlice(tickets, func(t *ticket.Ticket) *dto.TicketDTO {
			return dto.ToTicketDTO(t, uc.labels)
		}),
		Total:    total,
		Page:     page,
		PageSize: filter.Limit(),
	}, nil
}
