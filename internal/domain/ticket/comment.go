package ticket

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const MaxCommentLength = 10000

// Comment is immutable once created.
type Comment struct {
	id         uint
	ticketID   uint
	authorID   uint
	body       string
	isInternal bool
	createdAt  time.Time
}

func NewComment(ticketID, authorID uint, body string, isInternal bool, now time.Time) (*Comment, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("%w: ticket ID is required", ErrInvalidComment)
	}
	if authorID == 0 {
		return nil, fmt.Errorf("%w: author is required", ErrInvalidComment)
	}
	if strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf("%w: body cannot be empty", ErrInvalidComment)
	}
	if utf8.RuneCountInString(body) > MaxCommentLength {
		return nil, fmt.Errorf("%w: body exceeds maximum length of %d characters", ErrInvalidComment, MaxCommentLength)
	}

	return &Comment{
		ticketID:   ticketID,
		authorID:   authorID,
		body:       body,
		isInternal: isInternal,
		createdAt:  now,
	}, nil
}

func ReconstructComment(id, ticketID, authorID uint, body string, isInternal bool, createdAt time.Time) *Comment {
	return &Comment{
		id:         id,
		ticketID:   ticketID,
		authorID:   authorID,
		body:       body,
		isInternal: isInternal,
		createdAt:  createdAt,
	}
}

func (c *Comment) ID() uint             { return c.id }
func (c *Comment) TicketID() uint       { return c.ticketID }
func (c *Comment) AuthorID() uint       { return c.authorID }
func (c *Comment) Body() string         { return c.body }
func (c *Comment) IsInternal() bool     { return c.isInternal }
func (c *Comment) CreatedAt() time.Time { return c.createdAt }

func (c *Comment) SetID(id uint) {
	c.id = id
}
