package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/aticket/internal/domain/audit"
	"github.com/orris-inc/aticket/internal/domain/department"
	"github.com/orris-inc/aticket/internal/domain/ticket"
	vo "github.com/orris-inc/aticket/internal/domain/ticket/valueobjects"
	"github.com/orris-inc/aticket/internal/shared/authorization"
	apperrors "github.com/orris-inc/aticket/internal/shared/errors"
	"github.com/orris-inc/aticket/internal/shared/logger"
)

func TestGetTicketUseCase_Execute(t *testing.T) {
	tests := []struct {
		name         string
		actor        authorization.Actor
		wantInternal bool
		wantNotFound bool
	}{
		{name: "creator sees public comments only", actor: operator, wantInternal: false},
		{name: "staff sees internal comments", actor: coordinator, wantInternal: true},
		{name: "other operator gets not found", actor: otherUser, wantNotFound: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tk := newStoredTicket(t, 7, operator.UserID, vo.StatusNew)
			var gotInternal *bool
			comments := &mockCommentRepository{
				ListByTicketFunc: func(_ context.Context, ticketID uint, includeInternal bool) ([]*ticket.Comment, error) {
					gotInternal = &includeInternal
					return []*ticket.Comment{
						ticket.ReconstructComment(1, ticketID, operator.UserID, "Grazie", false, testNow),
					}, nil
				},
			}
			files := &mockAttachmentRepository{
				ListByTicketFunc: func(_ context.Context, ticketID uint) ([]*ticket.Attachment, error) {
					return []*ticket.Attachment{
						ticket.ReconstructAttachment(3, ticketID, "attachments/x/log.txt", "log.txt", "text/plain", 12, operator.UserID, testNow),
					}, nil
				},
			}
			uc := NewGetTicketUseCase(repoReturning(tk), comments, files, codeLabels{}, logger.NewNopLogger())

			result, err := uc.Execute(context.Background(), GetTicketQuery{TicketID: 7, Actor: tt.actor})

			if tt.wantNotFound {
				assert.True(t, apperrors.IsNotFoundError(err), "got %v", err)
				assert.Nil(t, gotInternal)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "ICT-2024-37-0001", result.Protocol)
			require.NotNil(t, gotInternal)
			assert.Equal(t, tt.wantInternal, *gotInternal)
			assert.Len(t, result.Comments, 1)
			require.Len(t, result.Attachments, 1)
			assert.Equal(t, "log.txt", result.Attachments[0].OriginalName)
		})
	}
}

func TestListTicketsUseCase_Execute_FilterMapping(t *testing.T) {
	assignee := uint(31)
	someoneElse := uint(99)

	tests := []struct {
		name  string
		query ListTicketsQuery
		check func(t *testing.T, f ticket.ListFilter)
	}{
		{
			name: "staff filters pass through",
			query: ListTicketsQuery{
				Status:         "INP",
				Department:     "wh",
				AssigneeID:     &assignee,
				ProtocolPrefix: " wh-2024 ",
				Actor:          coordinator,
			},
			check: func(t *testing.T, f ticket.ListFilter) {
				require.NotNil(t, f.Status)
				assert.Equal(t, vo.StatusInProgress, *f.Status)
				require.NotNil(t, f.Department)
				assert.Equal(t, department.Code("WH"), *f.Department)
				assert.Equal(t, &assignee, f.AssigneeID)
				assert.Nil(t, f.CreatedBy)
				assert.Equal(t, "WH-2024", f.ProtocolPrefix)
			},
		},
		{
			name:  "operator is pinned to own tickets",
			query: ListTicketsQuery{CreatedBy: &someoneElse, Actor: operator},
			check: func(t *testing.T, f ticket.ListFilter) {
				require.NotNil(t, f.CreatedBy)
				assert.Equal(t, operator.UserID, *f.CreatedBy)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got ticket.ListFilter
			repo := &mockTicketRepository{
				ListFunc: func(_ context.Context, f ticket.ListFilter) ([]*ticket.Ticket, int64, error) {
					got = f
					return nil, 0, nil
				},
			}
			uc := NewListTicketsUseCase(repo, codeLabels{}, logger.NewNopLogger())

			_, err := uc.Execute(context.Background(), tt.query)

			require.NoError(t, err)
			tt.check(t, got)
		})
	}
}

func TestListTicketsUseCase_Execute_Paging(t *testing.T) {
	tk := newStoredTicket(t, 7, operator.UserID, vo.StatusNew)
	repo := &mockTicketRepository{
		ListFunc: func(context.Context, ticket.ListFilter) ([]*ticket.Ticket, int64, error) {
			return []*ticket.Ticket{tk}, 41, nil
		},
	}
	uc := NewListTicketsUseCase(repo, codeLabels{}, logger.NewNopLogger())

	result, err := uc.Execute(context.Background(), ListTicketsQuery{Actor: coordinator})

	require.NoError(t, err)
	assert.Equal(t, int64(41), result.Total)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 20, result.PageSize)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "NEW", result.Items[0].StatusLabel)
}

func TestListTicketsUseCase_Execute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		query   ListTicketsQuery
		repoErr error
		isError func(error) bool
	}{
		{name: "bad status", query: ListTicketsQuery{Status: "DONE", Actor: coordinator}, isError: apperrors.IsValidationError},
		{name: "bad department", query: ListTicketsQuery{Department: "X", Actor: coordinator}, isError: apperrors.IsValidationError},
		{name: "repository failure", query: ListTicketsQuery{Actor: coordinator}, repoErr: errors.New("timeout"), isError: apperrors.IsInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockTicketRepository{
				ListFunc: func(context.Context, ticket.ListFilter) ([]*ticket.Ticket, int64, error) {
					return nil, 0, tt.repoErr
				},
			}
			uc := NewListTicketsUseCase(repo, codeLabels{}, logger.NewNopLogger())

			_, err := uc.Execute(context.Background(), tt.query)

			assert.True(t, tt.isError(err), "got %v", err)
		})
	}
}

func TestListAuditUseCase_Execute(t *testing.T) {
	tk := newStoredTicket(t, 7, operator.UserID, vo.StatusNew)
	actor := coordinator.UserID
	auditRepo := &mockAuditRepository{
		ListByTicketFunc: func(_ context.Context, ticketID uint) ([]*audit.Entry, error) {
			return []*audit.Entry{
				audit.ReconstructEntry(1, ticketID, audit.ActionCreated, &actor, "", nil, testNow),
				audit.ReconstructEntry(2, ticketID, audit.ActionStatusChanged, &actor, "NEW → INP",
					map[string]any{"old": "NEW", "new": "INP"}, testNow),
			}, nil
		},
	}
	uc := NewListAuditUseCase(repoReturning(tk), auditRepo, logger.NewNopLogger())

	t.Run("staff reads the trail in order", func(t *testing.T) {
		result, err := uc.Execute(context.Background(), ListAuditQuery{TicketID: 7, Actor: coordinator})

		require.NoError(t, err)
		require.Len(t, result, 2)
		assert.Equal(t, "CREATED", result[0].Action)
		assert.Equal(t, "STATUS_CHANGED", result[1].Action)
		assert.Equal(t, "INP", result[1].Meta["new"])
	})

	t.Run("operator is forbidden", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), ListAuditQuery{TicketID: 7, Actor: operator})

		assert.True(t, apperrors.IsForbiddenError(err), "got %v", err)
	})

	t.Run("missing ticket", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), ListAuditQuery{TicketID: 8, Actor: coordinator})

		assert.True(t, apperrors.IsNotFoundError(err), "got %v", err)
	})
}

func TestListAuditUseCase_Execute_EmptyTrail(t *testing.T) {
	tk := newStoredTicket(t, 7, operator.UserID, vo.StatusNew)
	uc := NewListAuditUseCase(repoReturning(tk), &mockAuditRepository{}, logger.NewNopLogger())

	result, err := uc.Execute(context.Background(), ListAuditQuery{TicketID: 7, Actor: coordinator})

	require.NoError(t, err)
	assert.NotNil(t, result)
	assert.Empty(t, result)
}

func TestListDepartmentsUseCase_Execute(t *testing.T) {
	uc := NewListDepartmentsUseCase(newMockDepartments(), logger.NewNopLogger())

	result, err := uc.Execute(context.Background())

	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "ICT", result[0].Code)
	assert.Equal(t, "Magazzino", result[1].Name)
	assert.NotEmpty(t, result[0].Categories)

	failing := newMockDepartments()
	failing.err = errors.New("connection refused")
	_, err = NewListDepartmentsUseCase(failing, logger.NewNopLogger()).Execute(context.Background())
	assert.True(t, apperrors.IsInternalError(err), "got %v", err)
}
