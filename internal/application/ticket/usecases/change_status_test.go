package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/aticket/internal/domain/audit"
	"github.com/orris-inc/aticket/internal/domain/ticket"
	vo "github.com/orris-inc/aticket/internal/domain/ticket/valueobjects"
	"github.com/orris-inc/aticket/internal/shared/authorization"
	apperrors "github.com/orris-inc/aticket/internal/shared/errors"
	"github.com/orris-inc/aticket/internal/shared/logger"
)

type statusFixture struct {
	tx       *mockTxRunner
	tickets  *mockTicketRepository
	audit    *mockAuditRepository
	notifier *mockNotifier
	uc       *ChangeStatusUseCase
}

func newStatusFixture(tickets *mockTicketRepository) *statusFixture {
	f := &statusFixture{
		tx:       &mockTxRunner{},
		tickets:  tickets,
		audit:    &mockAuditRepository{},
		notifier: &mockNotifier{},
	}
	f.uc = NewChangeStatusUseCase(f.tx, f.tickets, f.audit, ticket.NewLifecycle(testClock),
		f.notifier, codeLabels{}, logger.NewNopLogger())
	return f
}

func TestChangeStatusUseCase_Execute_Success(t *testing.T) {
	tests := []struct {
		name string
		from vo.Status
		to   string
	}{
		{name: "take in charge", from: vo.StatusNew, to: "INP"},
		{name: "wait for reply", from: vo.StatusInProgress, to: "WAI"},
		{name: "resolve", from: vo.StatusWaiting, to: "RES"},
		{name: "close", from: vo.StatusResolved, to: "CLO"},
		{name: "reopen closed ticket", from: vo.StatusClosed, to: "NEW"},
		{name: "skip straight to closed", from: vo.StatusNew, to: "CLO"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tk := newStoredTicket(t, 7, operator.UserID, tt.from)
			f := newStatusFixture(repoReturning(tk))

			result, err := f.uc.Execute(context.Background(), ChangeStatusCommand{
				TicketID:  7,
				NewStatus: tt.to,
				Actor:     coordinator,
			})

			require.NoError(t, err)
			assert.True(t, result.Changed)
			assert.Equal(t, tt.from.String(), result.OldStatus)
			assert.Equal(t, tt.to, result.NewStatus)
			assert.Equal(t, tt.to, result.Ticket.Status)
			assert.Equal(t, testNow, tk.UpdatedAt())

			assert.Equal(t, []uint{7}, f.tickets.locked)
			assert.Equal(t, []string{"status"}, f.tickets.columns)
			require.Len(t, f.audit.appended, 1)
			entry := f.audit.appended[0]
			assert.Equal(t, audit.ActionStatusChanged, entry.Action())
			assert.Equal(t, map[string]any{"old": tt.from.String(), "new": tt.to}, entry.Meta())
			require.NotNil(t, entry.ActorID())
			assert.Equal(t, coordinator.UserID, *entry.ActorID())

			assert.Equal(t, []ticket.EventKind{ticket.EventStatusChanged}, f.notifier.kinds())
			event := f.notifier.events[0]
			assert.Equal(t, tt.from.String(), event.OldStatus)
			assert.Equal(t, tt.to, event.NewStatus)
		})
	}
}

func TestChangeStatusUseCase_Execute_OperatorForbidden(t *testing.T) {
	tk := newStoredTicket(t, 7, operator.UserID, vo.StatusNew)
	f := newStatusFixture(repoReturning(tk))

	_, err := f.uc.Execute(context.Background(), ChangeStatusCommand{TicketID: 7, NewStatus: "CLO", Actor: operator})

	require.Error(t, err)
	assert.True(t, apperrors.IsForbiddenError(err), "got %v", err)
	assert.Equal(t, vo.StatusNew, tk.Status())
	assert.Zero(t, f.tx.calls)
	assert.Empty(t, f.audit.appended)
	assert.Empty(t, f.notifier.kinds())
}

func TestChangeStatusUseCase_Execute_RoleCheckedBeforeStatusCode(t *testing.T) {
	f := newStatusFixture(&mockTicketRepository{})

	_, err := f.uc.Execute(context.Background(), ChangeStatusCommand{TicketID: 7, NewStatus: "XYZ", Actor: operator})

	assert.True(t, apperrors.IsForbiddenError(err), "got %v", err)
}

func TestChangeStatusUseCase_Execute_InvalidStatus(t *testing.T) {
	for _, code := range []string{"XYZ", "", "new", "OPEN"} {
		t.Run(code, func(t *testing.T) {
			tk := newStoredTicket(t, 7, operator.UserID, vo.StatusInProgress)
			f := newStatusFixture(repoReturning(tk))

			_, err := f.uc.Execute(context.Background(), ChangeStatusCommand{
				TicketID:  7,
				NewStatus: code,
				Actor:     authorization.Actor{UserID: 1, Role: authorization.RoleAdmin},
			})

			require.Error(t, err)
			assert.True(t, apperrors.IsValidationError(err), "got %v", err)
			assert.Equal(t, vo.StatusInProgress, tk.Status())
			assert.Empty(t, f.tickets.updated)
			assert.Empty(t, f.audit.appended)
			assert.Empty(t, f.notifier.kinds())
		})
	}
}

func TestChangeStatusUseCase_Execute_SameStatusIsNoop(t *testing.T) {
	tk := newStoredTicket(t, 7, operator.UserID, vo.StatusWaiting)
	before := tk.UpdatedAt()
	f := newStatusFixture(repoReturning(tk))

	result, err := f.uc.Execute(context.Background(), ChangeStatusCommand{TicketID: 7, NewStatus: "WAI", Actor: coordinator})

	require.NoError(t, err)
	assert.False(t, result.Changed)
	assert.Equal(t, "WAI", result.OldStatus)
	assert.Equal(t, "WAI", result.NewStatus)
	assert.Equal(t, before, tk.UpdatedAt())
	assert.Empty(t, f.tickets.updated)
	assert.Empty(t, f.audit.appended)
	assert.Empty(t, f.notifier.kinds())
}

func TestChangeStatusUseCase_Execute_TicketNotFound(t *testing.T) {
	f := newStatusFixture(&mockTicketRepository{})

	_, err := f.uc.Execute(context.Background(), ChangeStatusCommand{TicketID: 404, NewStatus: "CLO", Actor: coordinator})

	assert.True(t, apperrors.IsNotFoundError(err), "got %v", err)
	assert.Empty(t, f.notifier.kinds())
}

func TestChangeStatusUseCase_Execute_AuditFailureRollsBack(t *testing.T) {
	tk := newStoredTicket(t, 7, operator.UserID, vo.StatusNew)
	f := newStatusFixture(repoReturning(tk))
	f.audit.AppendFunc = func(context.Context, *audit.Entry) error {
		return errors.New("database is locked")
	}

	_, err := f.uc.Execute(context.Background(), ChangeStatusCommand{TicketID: 7, NewStatus: "INP", Actor: coordinator})

	assert.True(t, apperrors.IsInternalError(err), "got %v", err)
	assert.True(t, f.tx.rolledBack)
	assert.Empty(t, f.notifier.kinds())
}
