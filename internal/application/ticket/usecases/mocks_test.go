package usecases

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/orris-inc/aticket/internal/domain/audit"
	"github.com/orris-inc/aticket/internal/domain/department"
	"github.com/orris-inc/aticket/internal/domain/ticket"
	vo "github.com/orris-inc/aticket/internal/domain/ticket/valueobjects"
	"github.com/orris-inc/aticket/internal/domain/user"
	"github.com/orris-inc/aticket/internal/shared/authorization"
	"github.com/orris-inc/aticket/internal/shared/biztime"
)

var (
	testNow   = time.Date(2024, 9, 12, 9, 30, 0, 0, time.UTC)
	testClock = biztime.FixedClock(testNow)

	operator    = authorization.Actor{UserID: 10, Username: "mrossi", Role: authorization.RoleOperator}
	otherUser   = authorization.Actor{UserID: 11, Username: "gneri", Role: authorization.RoleOperator}
	coordinator = authorization.Actor{UserID: 30, Username: "averdi", Role: authorization.RoleCoordinator}
)

type codeLabels struct{}

func (codeLabels) Label(_, code string) string { return code }

type mockTicketRepository struct {
	CreateFunc        func(ctx context.Context, t *ticket.Ticket) error
	UpdateFunc        func(ctx context.Context, t *ticket.Ticket) error
	GetByIDFunc       func(ctx context.Context, id uint) (*ticket.Ticket, error)
	GetByProtocolFunc func(ctx context.Context, protocol string) (*ticket.Ticket, error)
	ListFunc          func(ctx context.Context, filter ticket.ListFilter) ([]*ticket.Ticket, int64, error)

	// updated collects status and assignee writes, touched the ids whose
	// updated_at alone was bumped, locked the ids read FOR UPDATE.
	updated []*ticket.Ticket
	columns []string
	touched []uint
	locked  []uint
}

func (m *mockTicketRepository) Create(ctx context.Context, t *ticket.Ticket) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, t)
	}
	return t.SetID(100)
}

func (m *mockTicketRepository) UpdateStatus(ctx context.Context, t *ticket.Ticket) error {
	return m.update(ctx, t, "status")
}

func (m *mockTicketRepository) UpdateAssignee(ctx context.Context, t *ticket.Ticket) error {
	return m.update(ctx, t, "assignee_id")
}

func (m *mockTicketRepository) update(ctx context.Context, t *ticket.Ticket, column string) error {
	m.updated = append(m.updated, t)
	m.columns = append(m.columns, column)
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, t)
	}
	return nil
}

func (m *mockTicketRepository) Touch(_ context.Context, id uint, _ time.Time) error {
	m.touched = append(m.touched, id)
	return nil
}

func (m *mockTicketRepository) GetByID(ctx context.Context, id uint) (*ticket.Ticket, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, ticket.ErrTicketNotFound
}

func (m *mockTicketRepository) GetByIDForUpdate(ctx context.Context, id uint) (*ticket.Ticket, error) {
	m.locked = append(m.locked, id)
	return m.GetByID(ctx, id)
}

func (m *mockTicketRepository) GetByProtocol(ctx context.Context, protocol string) (*ticket.Ticket, error) {
	if m.GetByProtocolFunc != nil {
		return m.GetByProtocolFunc(ctx, protocol)
	}
	return nil, ticket.ErrTicketNotFound
}

func (m *mockTicketRepository) List(ctx context.Context, filter ticket.ListFilter) ([]*ticket.Ticket, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

type mockCommentRepository struct {
	CreateFunc       func(ctx context.Context, c *ticket.Comment) error
	ListByTicketFunc func(ctx context.Context, ticketID uint, includeInternal bool) ([]*ticket.Comment, error)

	created []*ticket.Comment
}

func (m *mockCommentRepository) Create(ctx context.Context, c *ticket.Comment) error {
	m.created = append(m.created, c)
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, c)
	}
	c.SetID(uint(len(m.created)))
	return nil
}

func (m *mockCommentRepository) ListByTicket(ctx context.Context, ticketID uint, includeInternal bool) ([]*ticket.Comment, error) {
	if m.ListByTicketFunc != nil {
		return m.ListByTicketFunc(ctx, ticketID, includeInternal)
	}
	return nil, nil
}

type mockAttachmentRepository struct {
	CreateBatchFunc  func(ctx context.Context, attachments []*ticket.Attachment) error
	ListByTicketFunc func(ctx context.Context, ticketID uint) ([]*ticket.Attachment, error)

	created []*ticket.Attachment
}

func (m *mockAttachmentRepository) CreateBatch(ctx context.Context, attachments []*ticket.Attachment) error {
	m.created = append(m.created, attachments...)
	if m.CreateBatchFunc != nil {
		return m.CreateBatchFunc(ctx, attachments)
	}
	return nil
}

func (m *mockAttachmentRepository) ListByTicket(ctx context.Context, ticketID uint) ([]*ticket.Attachment, error) {
	if m.ListByTicketFunc != nil {
		return m.ListByTicketFunc(ctx, ticketID)
	}
	return nil, nil
}

type mockAuditRepository struct {
	AppendFunc       func(ctx context.Context, e *audit.Entry) error
	ListByTicketFunc func(ctx context.Context, ticketID uint) ([]*audit.Entry, error)

	appended []*audit.Entry
}

func (m *mockAuditRepository) Append(ctx context.Context, e *audit.Entry) error {
	if m.AppendFunc != nil {
		if err := m.AppendFunc(ctx, e); err != nil {
			return err
		}
	}
	m.appended = append(m.appended, e)
	return nil
}

func (m *mockAuditRepository) ListByTicket(ctx context.Context, ticketID uint) ([]*audit.Entry, error) {
	if m.ListByTicketFunc != nil {
		return m.ListByTicketFunc(ctx, ticketID)
	}
	return m.appended, nil
}

func (m *mockAuditRepository) actions() []audit.Action {
	out := make([]audit.Action, 0, len(m.appended))
	for _, e := range m.appended {
		out = append(out, e.Action())
	}
	return out
}

type mockDepartmentRepository struct {
	departments map[department.Code]*department.Department
	err         error
}

func newMockDepartments() *mockDepartmentRepository {
	return &mockDepartmentRepository{departments: map[department.Code]*department.Department{
		"ICT": department.ReconstructDepartment(1, "ICT", "ICT", testNow),
		"WH":  department.ReconstructDepartment(2, "WH", "Magazzino", testNow),
	}}
}

func (m *mockDepartmentRepository) GetByCode(_ context.Context, code department.Code) (*department.Department, error) {
	if m.err != nil {
		return nil, m.err
	}
	d, ok := m.departments[code]
	if !ok {
		return nil, department.ErrDepartmentNotFound
	}
	return d, nil
}

func (m *mockDepartmentRepository) GetByID(_ context.Context, id uint) (*department.Department, error) {
	for _, d := range m.departments {
		if d.ID() == id {
			return d, nil
		}
	}
	return nil, department.ErrDepartmentNotFound
}

func (m *mockDepartmentRepository) List(context.Context) ([]*department.Department, error) {
	if m.err != nil {
		return nil, m.err
	}
	return []*department.Department{m.departments["ICT"], m.departments["WH"]}, nil
}

func (m *mockDepartmentRepository) Upsert(context.Context, *department.Department) error {
	return nil
}

type mockUserDirectory struct {
	users map[uint]*user.User
	err   error
}

func (m *mockUserDirectory) Lookup(_ context.Context, ids ...uint) (map[uint]*user.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make(map[uint]*user.User)
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

func (m *mockUserDirectory) GetByUsername(context.Context, string) (*user.User, error) {
	return nil, user.ErrUserNotFound
}

func (m *mockUserDirectory) Upsert(context.Context, *user.User) error {
	return nil
}

type mockNotifier struct {
	mu     sync.Mutex
	events []ticket.Event
}

func (m *mockNotifier) Notify(_ context.Context, event ticket.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
}

func (m *mockNotifier) kinds() []ticket.EventKind {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ticket.EventKind, 0, len(m.events))
	for _, e := range m.events {
		out = append(out, e.Kind)
	}
	return out
}

// mockTxRunner runs fn directly and records whether it failed, the way a
// rollback would be observed.
type mockTxRunner struct {
	calls      int
	rolledBack bool
}

func (m *mockTxRunner) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	err := fn(ctx)
	m.rolledBack = err != nil
	return err
}

type mockProtocols struct {
	GenerateFunc func(ctx context.Context, dept department.Code) (string, error)
	calls        int
}

func (m *mockProtocols) Generate(ctx context.Context, dept department.Code) (string, error) {
	m.calls++
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, dept)
	}
	return dept.String() + "-2024-37-0001", nil
}

func newStoredTicket(t *testing.T, id, createdBy uint, status vo.Status) *ticket.Ticket {
	t.Helper()
	tk, err := ticket.ReconstructTicket(
		id,
		"ICT-2024-37-0001",
		"Stampante bloccata",
		"La stampante del secondo piano non stampa.",
		status,
		vo.Attributes{}.WithDefaults(),
		1,
		"ICT",
		createdBy,
		nil,
		"",
		"",
		testNow.Add(-time.Hour),
		testNow.Add(-time.Hour),
	)
	require.NoError(t, err)
	return tk
}

func repoReturning(tk *ticket.Ticket) *mockTicketRepository {
	return &mockTicketRepository{
		GetByIDFunc: func(_ context.Context, id uint) (*ticket.Ticket, error) {
			if id != tk.ID() {
				return nil, ticket.ErrTicketNotFound
			}
			return tk, nil
		},
	}
}
