package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/aticket/internal/domain/audit"
	"github.com/orris-inc/aticket/internal/domain/ticket"
	vo "github.com/orris-inc/aticket/internal/domain/ticket/valueobjects"
	"github.com/orris-inc/aticket/internal/domain/user"
	apperrors "github.com/orris-inc/aticket/internal/shared/errors"
	"github.com/orris-inc/aticket/internal/shared/logger"
)

func newAssignUseCase(tickets *mockTicketRepository, auditRepo *mockAuditRepository, users *mockUserDirectory, notifier *mockNotifier) *AssignTicketUseCase {
	return NewAssignTicketUseCase(&mockTxRunner{}, tickets, auditRepo, users, notifier, codeLabels{}, testClock, logger.NewNopLogger())
}

func technicians() *mockUserDirectory {
	return &mockUserDirectory{users: map[uint]*user.User{
		30: user.ReconstructUser(30, "averdi", "averdi@example.com", "Anna Verdi"),
		31: user.ReconstructUser(31, "lbianchi", "lbianchi@example.com", "Luca Bianchi"),
	}}
}

func uintPtr(v uint) *uint { return &v }

func TestAssignTicketUseCase_Execute(t *testing.T) {
	tests := []struct {
		name        string
		current     *uint
		assignee    *uint
		wantChanged bool
		wantNote    string
	}{
		{name: "assign unassigned ticket", assignee: uintPtr(31), wantChanged: true, wantNote: "- → 31"},
		{name: "reassign", current: uintPtr(30), assignee: uintPtr(31), wantChanged: true, wantNote: "30 → 31"},
		{name: "clear assignment", current: uintPtr(30), assignee: nil, wantChanged: true, wantNote: "30 → -"},
		{name: "same assignee", current: uintPtr(31), assignee: uintPtr(31), wantChanged: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tk := newStoredTicket(t, 7, operator.UserID, vo.StatusNew)
			tk.Assign(tt.current, testNow.Add(-30*time.Minute))
			auditRepo := &mockAuditRepository{}
			notifier := &mockNotifier{}
			tickets := repoReturning(tk)
			uc := newAssignUseCase(tickets, auditRepo, technicians(), notifier)

			result, err := uc.Execute(context.Background(), AssignTicketCommand{
				TicketID:   7,
				AssigneeID: tt.assignee,
				Actor:      coordinator,
			})

			require.NoError(t, err)
			assert.Equal(t, tt.assignee, result.AssigneeID)
			if !tt.wantChanged {
				assert.Empty(t, tickets.updated)
				assert.Empty(t, auditRepo.appended)
				assert.Empty(t, notifier.kinds())
				return
			}
			assert.Equal(t, []string{"assignee_id"}, tickets.columns)
			require.Len(t, auditRepo.appended, 1)
			assert.Equal(t, audit.ActionAssigned, auditRepo.appended[0].Action())
			assert.Equal(t, tt.wantNote, auditRepo.appended[0].Note())
			assert.Equal(t, []ticket.EventKind{ticket.EventTicketAssigned}, notifier.kinds())
		})
	}
}

func TestAssignTicketUseCase_Execute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		cmd     AssignTicketCommand
		users   *mockUserDirectory
		isError func(error) bool
	}{
		{
			name:    "operator cannot assign",
			cmd:     AssignTicketCommand{TicketID: 7, AssigneeID: uintPtr(31), Actor: operator},
			users:   technicians(),
			isError: apperrors.IsForbiddenError,
		},
		{
			name:    "unknown assignee",
			cmd:     AssignTicketCommand{TicketID: 7, AssigneeID: uintPtr(99), Actor: coordinator},
			users:   technicians(),
			isError: apperrors.IsValidationError,
		},
		{
			name:    "directory failure",
			cmd:     AssignTicketCommand{TicketID: 7, AssigneeID: uintPtr(31), Actor: coordinator},
			users:   &mockUserDirectory{err: errors.New("connection refused")},
			isError: apperrors.IsInternalError,
		},
		{
			name:    "missing ticket",
			cmd:     AssignTicketCommand{TicketID: 8, AssigneeID: uintPtr(31), Actor: coordinator},
			users:   technicians(),
			isError: apperrors.IsNotFoundError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tk := newStoredTicket(t, 7, operator.UserID, vo.StatusNew)
			auditRepo := &mockAuditRepository{}
			notifier := &mockNotifier{}
			uc := newAssignUseCase(repoReturning(tk), auditRepo, tt.users, notifier)

			_, err := uc.Execute(context.Background(), tt.cmd)

			require.Error(t, err)
			assert.True(t, tt.isError(err), "got %v", err)
			assert.Nil(t, tk.AssigneeID())
			assert.Empty(t, auditRepo.appended)
			assert.Empty(t, notifier.kinds())
		})
	}
}
