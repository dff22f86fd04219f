package ticket

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// Attachment is the metadata of an uploaded file. The bytes live in external
// storage under FileReference.
type Attachment struct {
	id            uint
	ticketID      uint
	fileReference string
	originalName  string
	mimeType      string
	size          int64
	uploadedBy    uint
	uploadedAt    time.Time
}

type NewAttachmentParams struct {
	TicketID      uint
	FileReference string
	OriginalName  string
	MimeType      string
	Size          int64
	UploadedBy    uint
}

func NewAttachment(p NewAttachmentParams, now time.Time) (*Attachment, error) {
	name := filepath.Base(strings.TrimSpace(p.OriginalName))
	if name == "" || name == "." || name == "/" {
		return nil, fmt.Errorf("%w: file name is required", ErrInvalidFile)
	}
	if p.FileReference == "" {
		return nil, fmt.Errorf("%w: file reference is required for %s", ErrInvalidFile, name)
	}
	if p.Size < 0 {
		return nil, fmt.Errorf("%w: negative size for %s", ErrInvalidFile, name)
	}
	if p.UploadedBy == 0 {
		return nil, fmt.Errorf("%w: uploader is required", ErrInvalidFile)
	}

	return &Attachment{
		ticketID:      p.TicketID,
		fileReference: p.FileReference,
		originalName:  name,
		mimeType:      p.MimeType,
		size:          p.Size,
		uploadedBy:    p.UploadedBy,
		uploadedAt:    now,
	}, nil
}

func ReconstructAttachment(
	id, ticketID uint,
	fileReference, originalName, mimeType string,
	size int64,
	uploadedBy uint,
	uploadedAt time.Time,
) *Attachment {
	return &Attachment{
		id:            id,
		ticketID:      ticketID,
		fileReference: fileReference,
		originalName:  originalName,
		mimeType:      mimeType,
		size:          size,
		uploadedBy:    uploadedBy,
		uploadedAt:    uploadedAt,
	}
}

func (a *Attachment) ID() uint              { return a.id }
func (a *Attachment) TicketID() uint        { return a.ticketID }
func (a *Attachment) FileReference() string { return a.fileReference }
func (a *Attachment) OriginalName() string  { return a.originalName }
func (a *Attachment) MimeType() string      { return a.mimeType }
func (a *Attachment) Size() int64           { return a.size }
func (a *Attachment) UploadedBy() uint      { return a.uploadedBy }
func (a *Attachment) UploadedAt() time.Time { return a.uploadedAt }

func (a *Attachment) SetID(id uint) {
	a.id = id
}

// BindTo attaches a record built before its ticket existed.
func (a *Attachment) BindTo(ticketID uint) {
	a.ticketID = ticketID
}

// AttachmentPolicy limits what may be attached.
type AttachmentPolicy struct {
	MaxSizeBytes      int64
	AllowedExtensions []string
}

// Check returns one message per rejected file, nil if all pass.
func (p AttachmentPolicy) Check(name string, size int64) []string {
	var problems []string
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	if len(p.AllowedExtensions) > 0 && !slices.Contains(p.AllowedExtensions, ext) {
		problems = append(problems, fmt.Sprintf("file not allowed: %s (extension .%s)", name, ext))
	}
	if p.MaxSizeBytes > 0 && size > p.MaxSizeBytes {
		problems = append(problems, fmt.Sprintf("%s: size %dMB exceeds the %dMB limit",
			name, size/1024/1024, p.MaxSizeBytes/1024/1024))
	}
	return problems
}
