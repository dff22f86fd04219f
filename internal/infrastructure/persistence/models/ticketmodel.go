package models

import (
	"github.com/orris-inc/aticket/internal/shared/constants"
)

// TicketModel represents the database persistence model for tickets.
// Timestamps are stored as Unix milliseconds.
type TicketModel struct {
	ID             uint   `gorm:"primarykey"`
	Protocol       string `gorm:"uniqueIndex:idx_ticket_protocol;size:40;not null"`
	Title          string `gorm:"size:120;not null"`
	Description    string `gorm:"type:text;not null"`
	Status         string `gorm:"size:3;not null;index:idx_ticket_status"`
	Priority       string `gorm:"size:4;not null"`
	Impact         string `gorm:"size:4;not null"`
	Urgency        string `gorm:"size:4;not null"`
	Source         string `gorm:"size:3;not null"`
	DepartmentID   uint   `gorm:"not null;index:idx_ticket_department"`
	DepartmentCode string `gorm:"size:3;not null"`
	CreatedBy      uint   `gorm:"not null;index:idx_ticket_creator"`
	AssigneeID     *uint  `gorm:"index:idx_ticket_assignee"`
	Location       string `gorm:"size:120"`
	AssetCode      string `gorm:"size:60"`
	CreatedAt      int64  `gorm:"not null;index:idx_ticket_created;autoCreateTime:false"`
	UpdatedAt      int64  `gorm:"not null;autoUpdateTime:false"`
}

func (TicketModel) TableName() string {
	return constants.TableTickets
}

type CommentModel struct {
	ID         uint   `gorm:"primarykey"`
	TicketID   uint   `gorm:"not null;index:idx_comment_ticket"`
	AuthorID   uint   `gorm:"not null"`
	Body       string `gorm:"type:text;not null"`
	IsInternal bool   `gorm:"not null;default:false"`
	CreatedAt  int64  `gorm:"not null"`
}

func (CommentModel) TableName() string {
	return constants.TableComments
}

type AttachmentModel struct {
	ID            uint   `gorm:"primarykey"`
	TicketID      uint   `gorm:"not null;index:idx_attachment_ticket"`
	FileReference string `gorm:"size:255;not null"`
	OriginalName  string `gorm:"size:255;not null"`
	MimeType      string `gorm:"size:100"`
	Size          int64  `gorm:"not null;default:0"`
	UploadedBy    uint   `gorm:"not null"`
	UploadedAt    int64  `gorm:"not null"`
}

func (AttachmentModel) TableName() string {
	return constants.TableAttachments
}
