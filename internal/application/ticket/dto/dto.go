package dto

import (
	"time"

	"github.com/orris-inc/aticket/internal/domain/audit"
	"github.com/orris-inc/aticket/internal/domain/department"
	"github.com/orris-inc/aticket/internal/domain/ticket"
	"github.com/orris-inc/aticket/internal/shared/mapper"
)

// Labeler renders display labels for stored codes.
type Labeler interface {
	Label(kind, code string) string
}

type TicketDTO struct {
	ID            uint            `json:"id"`
	Protocol      string          `json:"protocol"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Status        string          `json:"status"`
	StatusLabel   string          `json:"status_label"`
	Priority      string          `json:"priority"`
	PriorityLabel string          `json:"priority_label"`
	Impact        string          `json:"impact"`
	Urgency       string          `json:"urgency"`
	Source        string          `json:"source_channel"`
	Department    string          `json:"department"`
	CreatedBy     uint            `json:"created_by"`
	AssigneeID    *uint           `json:"assignee_id"`
	Location      string          `json:"location,omitempty"`
	AssetCode     string          `json:"asset_code,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	Comments      []CommentDTO    `json:"comments,omitempty"`
	Attachments   []AttachmentDTO `json:"attachments,omitempty"`
}

type CommentDTO struct {
	ID         uint      `json:"id"`
	AuthorID   uint      `json:"author_id"`
	Body       string    `json:"body"`
	IsInternal bool      `json:"is_internal"`
	CreatedAt  time.Time `json:"created_at"`
}

type AttachmentDTO struct {
	ID            uint      `json:"id"`
	FileReference string    `json:"file_reference"`
	OriginalName  string    `json:"original_name"`
	MimeType      string    `json:"mime_type,omitempty"`
	Size          int64     `json:"size"`
	UploadedBy    uint      `json:"uploaded_by"`
	UploadedAt    time.Time `json:"uploaded_at"`
}

type AuditEntryDTO struct {
	ID        uint           `json:"id"`
	Action    string         `json:"action"`
	ActorID   *uint          `json:"actor_id"`
	Note      string         `json:"note"`
	Meta      map[string]any `json:"meta"`
	CreatedAt time.Time      `json:"created_at"`
}

type CategoryDTO struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

type DepartmentDTO struct {
	ID         uint          `json:"id"`
	Code       string        `json:"code"`
	Name       string        `json:"name"`
	Categories []CategoryDTO `json:"categories"`
}

type ListTicketsResult struct {
	Items    []*TicketDTO
	Total    int64
	Page     int
	PageSize int
}

// ChangeStatusResult reports the transition. Changed is false when the
// ticket already had the requested status.
type ChangeStatusResult struct {
	Ticket    *TicketDTO `json:"ticket"`
	OldStatus string     `json:"old_status"`
	NewStatus string     `json:"new_status"`
	Changed   bool       `json:"changed"`
}

func ToTicketDTO(t *ticket.Ticket, labels Labeler) *TicketDTO {
	if t == nil {
		return nil
	}

	return &TicketDTO{
		ID:            t.ID(),
		Protocol:      t.Protocol(),
		Title:         t.Title(),
		Description:   t.Description(),
		Status:        t.Status().String(),
		StatusLabel:   labels.Label("status", t.Status().String()),
		Priority:      t.Priority().String(),
		PriorityLabel: labels.Label("priority", t.Priority().String()),
		Impact:        t.Impact().String(),
		Urgency:       t.Urgency().String(),
		Source:        t.Source().String(),
		Department:    t.Department().String(),
		CreatedBy:     t.CreatedBy(),
		AssigneeID:    t.AssigneeID(),
		Location:      t.Location(),
		AssetCode:     t.AssetCode(),
		CreatedAt:     t.CreatedAt(),
		UpdatedAt:     t.UpdatedAt(),
	}
}

func ToCommentDTO(c *ticket.Comment) CommentDTO {
	return CommentDTO{
		ID:         c.ID(),
		AuthorID:   c.AuthorID(),
		Body:       c.Body(),
		IsInternal: c.IsInternal(),
		CreatedAt:  c.CreatedAt(),
	}
}

func ToAttachmentDTO(a *ticket.Attachment) AttachmentDTO {
	return AttachmentDTO{
		ID:            a.ID(),
		FileReference: a.FileReference(),
		OriginalName:  a.OriginalName(),
		MimeType:      a.MimeType(),
		Size:          a.Size(),
		UploadedBy:    a.UploadedBy(),
		UploadedAt:    a.UploadedAt(),
	}
}

func ToAuditEntryDTO(e *audit.Entry) AuditEntryDTO {
	return AuditEntryDTO{
		ID:        e.ID(),
		Action:    e.Action().String(),
		ActorID:   e.ActorID(),
		Note:      e.Note(),
		Meta:      e.Meta(),
		CreatedAt: e.CreatedAt(),
	}
}

func ToDepartmentDTO(d *department.Department) DepartmentDTO {
	return DepartmentDTO{
		ID:   d.ID(),
		Code: d.Code().String(),
		Name: d.Name(),
		Categories: mapper.MapSlice(d.Categories(), func(c department.Category) CategoryDTO {
			return CategoryDTO{Code: c.Code, Label: c.Label}
		}),
	}
}

func ToCommentDTOs(comments []*ticket.Comment) []CommentDTO {
	return mapper.MapSlice(comments, ToCommentDTO)
}

func ToAttachmentDTOs(attachments []*ticket.Attachment) []AttachmentDTO {
	return mapper.MapSlice(attachments, ToAttachmentDTO)
}

func ToAuditEntryDTOs(entries []*audit.Entry) []AuditEntryDTO {
	return mapper.MapSlice(entries, ToAuditEntryDTO)
}
