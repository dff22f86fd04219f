package ticket

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/aticket/internal/application/ticket/dto"
	"github.com/orris-inc/aticket/internal/application/ticket/usecases"
	"github.com/orris-inc/aticket/internal/shared/authorization"
	"github.com/orris-inc/aticket/internal/shared/errors"
	"github.com/orris-inc/aticket/internal/shared/logger"
	"github.com/orris-inc/aticket/internal/shared/utils"
)

// Service is the slice of the ticket application service used over HTTP.
type Service interface {
	CreateTicket(ctx context.Context, cmd usecases.CreateTicketCommand) (*dto.TicketDTO, error)
	ChangeStatus(ctx context.Context, cmd usecases.ChangeStatusCommand) (*dto.ChangeStatusResult, error)
	Assign(ctx context.Context, cmd usecases.AssignTicketCommand) (*dto.TicketDTO, error)
	AddComment(ctx context.Context, cmd usecases.AddCommentCommand) (*dto.CommentDTO, error)
	AddAttachments(ctx context.Context, cmd usecases.AddAttachmentsCommand) ([]dto.AttachmentDTO, error)
	GetTicket(ctx context.Context, query usecases.GetTicketQuery) (*dto.TicketDTO, error)
	ListTickets(ctx context.Context, query usecases.ListTicketsQuery) (*dto.ListTicketsResult, error)
	ListAudit(ctx context.Context, query usecases.ListAuditQuery) ([]dto.AuditEntryDTO, error)
	ListDepartments(ctx context.Context) ([]dto.DepartmentDTO, error)
}

type TicketHandler struct {
	service Service
	logger  logger.Interface
}

func NewTicketHandler(service Service, logger logger.Interface) *TicketHandler {
	RegisterValidators()
	return &TicketHandler{
		service: service,
		logger:  logger,
	}
}

// CreateTicket handles POST /tickets
// @Summary Open a ticket
// @Description Reserves the next protocol of the department for the current ISO week and stores the ticket with its attachments
// @Tags Tickets
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body CreateTicketRequest true "Ticket data"
// @Success 201 {object} utils.APIResponse{data=dto.TicketDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /tickets [post]
func (h *TicketHandler) CreateTicket(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create ticket", "error", err, "user_id", actor.UserID)
		utils.ErrorResponseWithError(c, utils.TranslateValidationError(err))
		return
	}

	result, err := h.service.CreateTicket(c.Request.Context(), req.ToCommand(actor))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Ticket created successfully")
}

// GetTicket handles GET /tickets/:id
// @Summary Get a ticket
// @Tags Tickets
// @Produce json
// @Security Bearer
// @Param id path int true "Ticket ID"
// @Success 200 {object} utils.APIResponse{data=dto.TicketDTO}
// @Failure 404 {object} utils.APIResponse
// @Router /tickets/{id} [get]
func (h *TicketHandler) GetTicket(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.GetTicket(c.Request.Context(), usecases.GetTicketQuery{TicketID: ticketID, Actor: actor})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListTickets handles GET /tickets
// @Summary List tickets
// @Description Operators only see their own tickets
// @Tags Tickets
// @Produce json
// @Security Bearer
// @Param status query string false "Status code"
// @Param department query string false "Department code"
// @Param protocol query string false "Protocol prefix"
// @Param assignee_id query int false "Assignee user ID"
// @Param page query int false "Page" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} utils.APIResponse{data=utils.ListResponse}
// @Router /tickets [get]
func (h *TicketHandler) ListTickets(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	query, err := parseListTicketsQuery(c, actor)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.ListTickets(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Items, result.Total, result.Page, result.PageSize)
}

// ChangeStatus handles PATCH /tickets/:id/status
// @Summary Change ticket status
// @Tags Tickets
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Ticket ID"
// @Param request body ChangeStatusRequest true "New status"
// @Success 200 {object} utils.APIResponse{data=dto.ChangeStatusResult}
// @Failure 403 {object} utils.APIResponse
// @Router /tickets/{id}/status [patch]
func (h *TicketHandler) ChangeStatus(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.TranslateValidationError(err))
		return
	}

	result, err := h.service.ChangeStatus(c.Request.Context(), usecases.ChangeStatusCommand{
		TicketID:  ticketID,
		NewStatus: req.Status,
		Actor:     actor,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	message := "Ticket status updated successfully"
	if !result.Changed {
		message = "Ticket status unchanged"
	}
	utils.SuccessResponse(c, http.StatusOK, message, result)
}

// AssignTicket handles PATCH /tickets/:id/assignee
// @Summary Assign or unassign a ticket
// @Tags Tickets
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Ticket ID"
// @Param request body AssignTicketRequest true "Assignee, null to clear"
// @Success 200 {object} utils.APIResponse{data=dto.TicketDTO}
// @Failure 403 {object} utils.APIResponse
// @Router /tickets/{id}/assignee [patch]
func (h *TicketHandler) AssignTicket(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req AssignTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.TranslateValidationError(err))
		return
	}

	result, err := h.service.Assign(c.Request.Context(), usecases.AssignTicketCommand{
		TicketID:   ticketID,
		AssigneeID: req.AssigneeID,
		Actor:      actor,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket assignment updated", result)
}

// AddComment handles POST /tickets/:id/comments
// @Summary Comment on a ticket
// @Tags Tickets
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Ticket ID"
// @Param request body AddCommentRequest true "Comment"
// @Success 201 {object} utils.APIResponse{data=dto.CommentDTO}
// @Router /tickets/{id}/comments [post]
func (h *TicketHandler) AddComment(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.TranslateValidationError(err))
		return
	}

	result, err := h.service.AddComment(c.Request.Context(), usecases.AddCommentCommand{
		TicketID:   ticketID,
		Body:       req.Body,
		IsInternal: req.IsInternal,
		Actor:      actor,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Comment added successfully")
}

// AddAttachments handles POST /tickets/:id/attachments
// @Summary Attach files to a ticket
// @Tags Tickets
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Ticket ID"
// @Param request body AddAttachmentsRequest true "File metadata"
// @Success 201 {object} utils.APIResponse{data=[]dto.AttachmentDTO}
// @Router /tickets/{id}/attachments [post]
func (h *TicketHandler) AddAttachments(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req AddAttachmentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.TranslateValidationError(err))
		return
	}

	result, err := h.service.AddAttachments(c.Request.Context(), usecases.AddAttachmentsCommand{
		TicketID: ticketID,
		Files:    toAttachmentInputs(req.Files),
		Actor:    actor,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Attachments added successfully")
}

// ListAudit handles GET /tickets/:id/audit
// @Summary Ticket audit trail
// @Tags Tickets
// @Produce json
// @Security Bearer
// @Param id path int true "Ticket ID"
// @Success 200 {object} utils.APIResponse{data=[]dto.AuditEntryDTO}
// @Failure 403 {object} utils.APIResponse
// @Router /tickets/{id}/audit [get]
func (h *TicketHandler) ListAudit(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.ListAudit(c.Request.Context(), usecases.ListAuditQuery{TicketID: ticketID, Actor: actor})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListDepartments handles GET /departments
// @Summary List departments with their categories
// @Tags Departments
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.APIResponse{data=[]dto.DepartmentDTO}
// @Router /departments [get]
func (h *TicketHandler) ListDepartments(c *gin.Context) {
	result, err := h.service.ListDepartments(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func parseTicketID(c *gin.Context) (uint, error) {
	return utils.ParseUintParam(c, "id", "ticket")
}

func requireActor(c *gin.Context) (authorization.Actor, bool) {
	actor, ok := authorization.ActorFromContext(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("user not authenticated"))
		return authorization.Actor{}, false
	}
	return actor, true
}
