package ticket

import (
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/orris-inc/aticket/internal/application/ticket/usecases"
	"github.com/orris-inc/aticket/internal/domain/department"
	vo "github.com/orris-inc/aticket/internal/domain/ticket/valueobjects"
	"github.com/orris-inc/aticket/internal/shared/authorization"
	"github.com/orris-inc/aticket/internal/shared/errors"
	"github.com/orris-inc/aticket/internal/shared/utils"
)

type AttachmentRequest struct {
	FileReference string `json:"file_reference" binding:"omitempty,max=512"`
	OriginalName  string `json:"original_name" binding:"required,max=255"`
	MimeType      string `json:"mime_type" binding:"omitempty,max=127"`
	Size          int64  `json:"size" binding:"min=0"`
}

type CreateTicketRequest struct {
	Title       string              `json:"title" binding:"required,max=120"`
	Description string              `json:"description" binding:"required"`
	Department  string              `json:"department" binding:"required,deptcode"`
	Priority    string              `json:"priority,omitempty"`
	Impact      string              `json:"impact,omitempty"`
	Urgency     string              `json:"urgency,omitempty"`
	Source      string              `json:"source_channel,omitempty"`
	Location    string              `json:"location,omitempty" binding:"max=120"`
	AssetCode   string              `json:"asset_code,omitempty" binding:"max=60"`
	Attachments []AttachmentRequest `json:"attachments,omitempty" binding:"dive"`
}

func (r *CreateTicketRequest) ToCommand(actor authorization.Actor) usecases.CreateTicketCommand {
	return usecases.CreateTicketCommand{
		Title:       r.Title,
		Description: r.Description,
		Department:  r.Department,
		Priority:    r.Priority,
		Impact:      r.Impact,
		Urgency:     r.Urgency,
		Source:      r.Source,
		Location:    r.Location,
		AssetCode:   r.AssetCode,
		Attachments: toAttachmentInputs(r.Attachments),
		Actor:       actor,
	}
}

type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required,ticketstatus"`
}

// AssignTicketRequest clears the assignee when AssigneeID is null.
type AssignTicketRequest struct {
	AssigneeID *uint `json:"assignee_id"`
}

type AddCommentRequest struct {
	Body       string `json:"body" binding:"required,max=10000"`
	IsInternal bool   `json:"is_internal"`
}

type AddAttachmentsRequest struct {
	Files []AttachmentRequest `json:"files" binding:"required,min=1,dive"`
}

func toAttachmentInputs(files []AttachmentRequest) []usecases.AttachmentInput {
	if len(files) == 0 {
		return nil
	}
	inputs := make([]usecases.AttachmentInput, 0, len(files))
	for _, f := range files {
		inputs = append(inputs, usecases.AttachmentInput{
			FileReference: f.FileReference,
			OriginalName:  f.OriginalName,
			MimeType:      f.MimeType,
			Size:          f.Size,
		})
	}
	return inputs
}

func parseListTicketsQuery(c *gin.Context, actor authorization.Actor) (usecases.ListTicketsQuery, error) {
	pagination := utils.ParsePagination(c)

	query := usecases.ListTicketsQuery{
		Status:         c.Query("status"),
		Department:     c.Query("department"),
		ProtocolPrefix: c.Query("protocol"),
		Page:           pagination.Page,
		PageSize:       pagination.PageSize,
		SortBy:         c.Query("sort_by"),
		SortOrder:      c.Query("sort_order"),
		Actor:          actor,
	}

	var err error
	if query.AssigneeID, err = optionalUintQuery(c, "assignee_id"); err != nil {
		return query, err
	}
	if query.CreatedBy, err = optionalUintQuery(c, "created_by"); err != nil {
		return query, err
	}
	return query, nil
}

func optionalUintQuery(c *gin.Context, key string) (*uint, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, errors.NewValidationError("invalid " + key)
	}
	id := uint(n)
	return &id, nil
}

var registerOnce sync.Once

// RegisterValidators installs the deptcode and ticketstatus binding tags on
// gin's validator and reports fields by their json names.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(utils.JSONTagName)
		_ = v.RegisterValidation("deptcode", func(fl validator.FieldLevel) bool {
			_, err := department.ParseCode(fl.Field().String())
			return err == nil
		})
		_ = v.RegisterValidation("ticketstatus", func(fl validator.FieldLevel) bool {
			_, err := vo.ParseStatus(fl.Field().String())
			return err == nil
		})
	})
}
