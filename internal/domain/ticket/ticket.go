package ticket

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/orris-inc/aticket/internal/domain/department"
	vo "github.com/orris-inc/aticket/internal/domain/ticket/valueobjects"
)

const (
	MaxTitleLength       = 120
	MaxDescriptionLength = 10000
	MaxLocationLength    = 120
	MaxAssetCodeLength   = 60
)

type Ticket struct {
	id           uint
	protocol     string
	title        string
	description  string
	status       vo.Status
	attributes   vo.Attributes
	departmentID uint
	department   department.Code
	createdBy    uint
	assigneeID   *uint
	location     string
	assetCode    string
	createdAt    time.Time
	updatedAt    time.Time
}

// NewTicketParams carries the user-supplied fields of a new ticket.
type NewTicketParams struct {
	Title        string
	Description  string
	DepartmentID uint
	Department   department.Code
	Attributes   vo.Attributes
	CreatedBy    uint
	AssigneeID   *uint
	Location     string
	AssetCode    string
}

// NewTicket validates params and returns a NEW ticket without a protocol.
// The protocol is assigned inside the creation transaction.
func NewTicket(p NewTicketParams, now time.Time) (*Ticket, error) {
	p.Title = strings.TrimSpace(p.Title)
	p.Location = strings.TrimSpace(p.Location)
	p.AssetCode = strings.TrimSpace(p.AssetCode)
	p.Attributes = p.Attributes.WithDefaults()

	var problems []string
	switch {
	case p.Title == "":
		problems = append(problems, "title is required")
	case utf8.RuneCountInString(p.Title) > MaxTitleLength:
		problems = append(problems, fmt.Sprintf("title exceeds maximum length of %d characters", MaxTitleLength))
	}
	switch {
	case strings.TrimSpace(p.Description) == "":
		problems = append(problems, "description is required")
	case utf8.RuneCountInString(p.Description) > MaxDescriptionLength:
		problems = append(problems, fmt.Sprintf("description exceeds maximum length of %d characters", MaxDescriptionLength))
	}
	if !p.Department.IsValid() || p.DepartmentID == 0 {
		problems = append(problems, "department is required")
	}
	if p.CreatedBy == 0 {
		problems = append(problems, "creator is required")
	}
	if utf8.RuneCountInString(p.Location) > MaxLocationLength {
		problems = append(problems, fmt.Sprintf("location exceeds maximum length of %d characters", MaxLocationLength))
	}
	if utf8.RuneCountInString(p.AssetCode) > MaxAssetCodeLength {
		problems = append(problems, fmt.Sprintf("asset code exceeds maximum length of %d characters", MaxAssetCodeLength))
	}
	problems = append(problems, p.Attributes.Validate()...)
	if len(problems) > 0 {
		return nil, &ValidationError{Problems: problems}
	}

	return &Ticket{
		title:        p.Title,
		description:  p.Description,
		status:       vo.StatusNew,
		attributes:   p.Attributes,
		departmentID: p.DepartmentID,
		department:   p.Department,
		createdBy:    p.CreatedBy,
		assigneeID:   p.AssigneeID,
		location:     p.Location,
		assetCode:    p.AssetCode,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructTicket rebuilds a persisted ticket. Stored values are trusted
// except for the status, which must still be one of the defined codes.
func ReconstructTicket(
	id uint,
	protocol string,
	title string,
	description string,
	status vo.Status,
	attributes vo.Attributes,
	departmentID uint,
	dept department.Code,
	createdBy uint,
	assigneeID *uint,
	location string,
	assetCode string,
	createdAt, updatedAt time.Time,
) (*Ticket, error) {
	if id == 0 {
		return nil, fmt.Errorf("%w: ticket ID cannot be zero", ErrInvalidTicket)
	}
	if protocol == "" {
		return nil, fmt.Errorf("%w: protocol is required", ErrInvalidTicket)
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	return &Ticket{
		id:           id,
		protocol:     protocol,
		title:        title,
		description:  description,
		status:       status,
		attributes:   attributes,
		departmentID: departmentID,
		department:   dept,
		createdBy:    createdBy,
		assigneeID:   assigneeID,
		location:     location,
		assetCode:    assetCode,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func (t *Ticket) ID() uint                    { return t.id }
func (t *Ticket) Protocol() string            { return t.protocol }
func (t *Ticket) Title() string               { return t.title }
func (t *Ticket) Description() string         { return t.description }
func (t *Ticket) Status() vo.Status           { return t.status }
func (t *Ticket) Attributes() vo.Attributes   { return t.attributes }
func (t *Ticket) Priority() vo.Priority       { return t.attributes.Priority }
func (t *Ticket) Impact() vo.Impact           { return t.attributes.Impact }
func (t *Ticket) Urgency() vo.Urgency         { return t.attributes.Urgency }
func (t *Ticket) Source() vo.Source           { return t.attributes.Source }
func (t *Ticket) DepartmentID() uint          { return t.departmentID }
func (t *Ticket) Department() department.Code { return t.department }
func (t *Ticket) CreatedBy() uint             { return t.createdBy }
func (t *Ticket) Location() string            { return t.location }
func (t *Ticket) AssetCode() string           { return t.assetCode }
func (t *Ticket) CreatedAt() time.Time        { return t.createdAt }
func (t *Ticket) UpdatedAt() time.Time        { return t.updatedAt }

func (t *Ticket) AssigneeID() *uint {
	if t.assigneeID == nil {
		return nil
	}
	id := *t.assigneeID
	return &id
}

func (t *Ticket) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("ticket ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("ticket ID cannot be zero")
	}
	t.id = id
	return nil
}

// AssignProtocol sets the protocol exactly once, before the ticket is first
// persisted.
func (t *Ticket) AssignProtocol(protocol string) error {
	if t.protocol != "" {
		return fmt.Errorf("%w: %s", ErrProtocolSet, t.protocol)
	}
	parsed, err := ParseProtocol(protocol)
	if err != nil {
		return err
	}
	if parsed.Key.Department != t.department {
		return fmt.Errorf("%w: %s does not belong to department %s", ErrInvalidProtocol, protocol, t.department)
	}
	t.protocol = protocol
	return nil
}

// IsOwnedBy reports whether userID opened the ticket.
func (t *Ticket) IsOwnedBy(userID uint) bool {
	return t.createdBy == userID
}

func (t *Ticket) setStatus(s vo.Status, now time.Time) {
	t.status = s
	t.updatedAt = now
}

// Assign sets or clears the assignee. It returns the previous assignee and
// whether anything changed.
func (t *Ticket) Assign(assigneeID *uint, now time.Time) (previous *uint, changed bool) {
	previous = t.AssigneeID()
	if sameAssignee(previous, assigneeID) {
		return previous, false
	}
	if assigneeID != nil {
		id := *assigneeID
		t.assigneeID = &id
	} else {
		t.assigneeID = nil
	}
	t.updatedAt = now
	return previous, true
}

// Touch refreshes updated_at after a child record was added.
func (t *Ticket) Touch(now time.Time) {
	t.updatedAt = now
}

func sameAssignee(a, b *uint) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// ValidationError lists every problem found in user input.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid ticket: " + strings.Join(e.Problems, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidTicket
}
