package ticket

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/aticket/internal/application/ticket/dto"
	"github.com/orris-inc/aticket/internal/application/ticket/usecases"
	"github.com/orris-inc/aticket/internal/interfaces/http/handlers/testutil"
	"github.com/orris-inc/aticket/internal/shared/authorization"
	apperrors "github.com/orris-inc/aticket/internal/shared/errors"
	"github.com/orris-inc/aticket/internal/shared/logger"
)

var (
	operator    = authorization.Actor{UserID: 10, Username: "mrossi", Role: authorization.RoleOperator}
	coordinator = authorization.Actor{UserID: 20, Username: "gneri", Role: authorization.RoleCoordinator}
	createdAt   = time.Date(2024, 9, 12, 9, 30, 0, 0, time.UTC)
)

type mockService struct {
	CreateTicketFunc    func(ctx context.Context, cmd usecases.CreateTicketCommand) (*dto.TicketDTO, error)
	ChangeStatusFunc    func(ctx context.Context, cmd usecases.ChangeStatusCommand) (*dto.ChangeStatusResult, error)
	AssignFunc          func(ctx context.Context, cmd usecases.AssignTicketCommand) (*dto.TicketDTO, error)
	AddCommentFunc      func(ctx context.Context, cmd usecases.AddCommentCommand) (*dto.CommentDTO, error)
	AddAttachmentsFunc  func(ctx context.Context, cmd usecases.AddAttachmentsCommand) ([]dto.AttachmentDTO, error)
	GetTicketFunc       func(ctx context.Context, query usecases.GetTicketQuery) (*dto.TicketDTO, error)
	ListTicketsFunc     func(ctx context.Context, query usecases.ListTicketsQuery) (*dto.ListTicketsResult, error)
	ListAuditFunc       func(ctx context.Context, query usecases.ListAuditQuery) ([]dto.AuditEntryDTO, error)
	ListDepartmentsFunc func(ctx context.Context) ([]dto.DepartmentDTO, error)

	calls int
}

func (m *mockService) CreateTicket(ctx context.Context, cmd usecases.CreateTicketCommand) (*dto.TicketDTO, error) {
	m.calls++
	return m.CreateTicketFunc(ctx, cmd)
}

func (m *mockService) ChangeStatus(ctx context.Context, cmd usecases.ChangeStatusCommand) (*dto.ChangeStatusResult, error) {
	m.calls++
	return m.ChangeStatusFunc(ctx, cmd)
}

func (m *mockService) Assign(ctx context.Context, cmd usecases.AssignTicketCommand) (*dto.TicketDTO, error) {
	m.calls++
	return m.AssignFunc(ctx, cmd)
}

func (m *mockService) AddComment(ctx context.Context, cmd usecases.AddCommentCommand) (*dto.CommentDTO, error) {
	m.calls++
	return m.AddCommentFunc(ctx, cmd)
}

func (m *mockService) AddAttachments(ctx context.Context, cmd usecases.AddAttachmentsCommand) ([]dto.AttachmentDTO, error) {
	m.calls++
	return m.AddAttachmentsFunc(ctx, cmd)
}

func (m *mockService) GetTicket(ctx context.Context, query usecases.GetTicketQuery) (*dto.TicketDTO, error) {
	m.calls++
	return m.GetTicketFunc(ctx, query)
}

func (m *mockService) ListTickets(ctx context.Context, query usecases.ListTicketsQuery) (*dto.ListTicketsResult, error) {
	m.calls++
	return m.ListTicketsFunc(ctx, query)
}

func (m *mockService) ListAudit(ctx context.Context, query usecases.ListAuditQuery) ([]dto.AuditEntryDTO, error) {
	m.calls++
	return m.ListAuditFunc(ctx, query)
}

func (m *mockService) ListDepartments(ctx context.Context) ([]dto.DepartmentDTO, error) {
	m.calls++
	return m.ListDepartmentsFunc(ctx)
}

func sampleTicket() *dto.TicketDTO {
	return &dto.TicketDTO{
		ID:         7,
		Protocol:   "ICT-2024-37-0001",
		Title:      "Stampante bloccata",
		Status:     "NEW",
		Department: "ICT",
		CreatedBy:  operator.UserID,
		CreatedAt:  createdAt,
		UpdatedAt:  createdAt,
	}
}

func TestTicketHandler_CreateTicket(t *testing.T) {
	var got usecases.CreateTicketCommand
	svc := &mockService{
		CreateTicketFunc: func(_ context.Context, cmd usecases.CreateTicketCommand) (*dto.TicketDTO, error) {
			got = cmd
			return sampleTicket(), nil
		},
	}
	handler := NewTicketHandler(svc, logger.NewNopLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/tickets", map[string]any{
		"title":       "Stampante bloccata",
		"description": "La stampante del secondo piano non stampa.",
		"department":  "ict",
		"attachments": []map[string]any{{"original_name": "foto.png", "size": 2048}},
	})
	testutil.SetActor(c, operator)

	handler.CreateTicket(c)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "ict", got.Department)
	assert.Equal(t, operator, got.Actor)
	require.Len(t, got.Attachments, 1)
	assert.Equal(t, "foto.png", got.Attachments[0].OriginalName)
	assert.Equal(t, int64(2048), got.Attachments[0].Size)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.True(t, resp.Success)
	var body dto.TicketDTO
	require.NoError(t, json.Unmarshal(resp.Data, &body))
	assert.Equal(t, "ICT-2024-37-0001", body.Protocol)
}

func TestTicketHandler_CreateTicket_BindingErrors(t *testing.T) {
	tests := []struct {
		name        string
		body        any
		wantDetails string
	}{
		{
			name:        "missing title",
			body:        map[string]any{"description": "x", "department": "ICT"},
			wantDetails: "title is required",
		},
		{
			name:        "bad department code",
			body:        map[string]any{"title": "t", "description": "x", "department": "I1"},
			wantDetails: "department must be a department code",
		},
		{
			name:        "attachment without name",
			body:        map[string]any{"title": "t", "description": "x", "department": "ICT", "attachments": []map[string]any{{"size": 1}}},
			wantDetails: "original_name is required",
		},
		{
			name: "malformed json",
			body: `{"title": `,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			handler := NewTicketHandler(svc, logger.NewNopLogger())
			c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/tickets", tt.body)
			testutil.SetActor(c, operator)

			handler.CreateTicket(c)

			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.Zero(t, svc.calls)
			var resp testutil.APIResponse
			require.NoError(t, testutil.ParseResponse(w, &resp))
			require.NotNil(t, resp.Error)
			assert.Equal(t, string(apperrors.ErrorTypeValidation), resp.Error.Type)
			if tt.wantDetails != "" {
				assert.Contains(t, resp.Error.Details, tt.wantDetails)
			}
		})
	}
}

func TestTicketHandler_RequiresActor(t *testing.T) {
	handler := NewTicketHandler(&mockService{}, logger.NewNopLogger())
	c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/tickets/7", nil)
	testutil.SetURLParam(c, "id", "7")

	handler.GetTicket(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTicketHandler_ChangeStatus(t *testing.T) {
	tests := []struct {
		name        string
		body        any
		serviceErr  error
		changed     bool
		wantStatus  int
		wantMessage string
	}{
		{name: "status changed", body: map[string]string{"status": "INP"}, changed: true, wantStatus: http.StatusOK, wantMessage: "Ticket status updated successfully"},
		{name: "same status", body: map[string]string{"status": "NEW"}, wantStatus: http.StatusOK, wantMessage: "Ticket status unchanged"},
		{name: "unknown status", body: map[string]string{"status": "OPEN"}, wantStatus: http.StatusBadRequest},
		{name: "lowercase status", body: map[string]string{"status": "inp"}, wantStatus: http.StatusBadRequest},
		{name: "operator forbidden", body: map[string]string{"status": "CLO"}, serviceErr: apperrors.NewForbiddenError("forbidden"), wantStatus: http.StatusForbidden},
		{name: "ticket missing", body: map[string]string{"status": "CLO"}, serviceErr: apperrors.NewNotFoundError("ticket not found"), wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got usecases.ChangeStatusCommand
			svc := &mockService{
				ChangeStatusFunc: func(_ context.Context, cmd usecases.ChangeStatusCommand) (*dto.ChangeStatusResult, error) {
					got = cmd
					if tt.serviceErr != nil {
						return nil, tt.serviceErr
					}
					return &dto.ChangeStatusResult{Ticket: sampleTicket(), OldStatus: "NEW", NewStatus: cmd.NewStatus, Changed: tt.changed}, nil
				},
			}
			handler := NewTicketHandler(svc, logger.NewNopLogger())
			c, w := testutil.NewTestContext(http.MethodPatch, "/api/v1/tickets/7/status", tt.body)
			testutil.SetURLParam(c, "id", "7")
			testutil.SetActor(c, coordinator)

			handler.ChangeStatus(c)

			require.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusBadRequest {
				assert.Zero(t, svc.calls)
				return
			}
			assert.Equal(t, uint(7), got.TicketID)
			assert.Equal(t, coordinator, got.Actor)
			if tt.wantMessage != "" {
				var resp testutil.APIResponse
				require.NoError(t, testutil.ParseResponse(w, &resp))
				assert.Equal(t, tt.wantMessage, resp.Message)
			}
		})
	}
}

func TestTicketHandler_AssignTicket(t *testing.T) {
	tests := []struct {
		name string
		body string
		want *uint
	}{
		{name: "assign", body: `{"assignee_id": 31}`, want: func() *uint { v := uint(31); return &v }()},
		{name: "clear", body: `{"assignee_id": null}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got usecases.AssignTicketCommand
			svc := &mockService{
				AssignFunc: func(_ context.Context, cmd usecases.AssignTicketCommand) (*dto.TicketDTO, error) {
					got = cmd
					return sampleTicket(), nil
				},
			}
			handler := NewTicketHandler(svc, logger.NewNopLogger())
			c, w := testutil.NewTestContext(http.MethodPatch, "/api/v1/tickets/7/assignee", tt.body)
			testutil.SetURLParam(c, "id", "7")
			testutil.SetActor(c, coordinator)

			handler.AssignTicket(c)

			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.want, got.AssigneeID)
		})
	}
}

func TestTicketHandler_GetTicket(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		serviceErr error
		wantStatus int
	}{
		{name: "found", id: "7", wantStatus: http.StatusOK},
		{name: "non numeric id", id: "abc", wantStatus: http.StatusBadRequest},
		{name: "zero id", id: "0", wantStatus: http.StatusBadRequest},
		{name: "not visible", id: "7", serviceErr: apperrors.NewNotFoundError("ticket not found"), wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{
				GetTicketFunc: func(_ context.Context, query usecases.GetTicketQuery) (*dto.TicketDTO, error) {
					assert.Equal(t, operator, query.Actor)
					return sampleTicket(), tt.serviceErr
				},
			}
			handler := NewTicketHandler(svc, logger.NewNopLogger())
			c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/tickets/"+tt.id, nil)
			testutil.SetURLParam(c, "id", tt.id)
			testutil.SetActor(c, operator)

			handler.GetTicket(c)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestTicketHandler_ListTickets(t *testing.T) {
	var got usecases.ListTicketsQuery
	svc := &mockService{
		ListTicketsFunc: func(_ context.Context, query usecases.ListTicketsQuery) (*dto.ListTicketsResult, error) {
			got = query
			return &dto.ListTicketsResult{Items: []*dto.TicketDTO{sampleTicket()}, Total: 41, Page: 2, PageSize: 20}, nil
		},
	}
	handler := NewTicketHandler(svc, logger.NewNopLogger())
	c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/tickets", nil)
	testutil.SetQueryParams(c, map[string]string{
		"status":      "INP",
		"department":  "wh",
		"assignee_id": "31",
		"protocol":    "WH-2024",
		"page":        "2",
		"page_size":   "500",
		"sort_by":     "protocol",
	})
	testutil.SetActor(c, coordinator)

	handler.ListTickets(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "INP", got.Status)
	assert.Equal(t, "wh", got.Department)
	require.NotNil(t, got.AssigneeID)
	assert.Equal(t, uint(31), *got.AssigneeID)
	assert.Nil(t, got.CreatedBy)
	assert.Equal(t, "WH-2024", got.ProtocolPrefix)
	assert.Equal(t, 2, got.Page)
	assert.Equal(t, 100, got.PageSize)
	assert.Equal(t, "protocol", got.SortBy)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var list testutil.ListData
	require.NoError(t, json.Unmarshal(resp.Data, &list))
	assert.Equal(t, int64(41), list.Total)
	assert.Equal(t, 3, list.TotalPages)
}

func TestTicketHandler_ListTickets_BadAssignee(t *testing.T) {
	svc := &mockService{}
	handler := NewTicketHandler(svc, logger.NewNopLogger())
	c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/tickets", nil)
	testutil.SetQueryParams(c, map[string]string{"assignee_id": "me"})
	testutil.SetActor(c, coordinator)

	handler.ListTickets(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, svc.calls)
}

func TestTicketHandler_AddComment(t *testing.T) {
	var got usecases.AddCommentCommand
	svc := &mockService{
		AddCommentFunc: func(_ context.Context, cmd usecases.AddCommentCommand) (*dto.CommentDTO, error) {
			got = cmd
			return &dto.CommentDTO{ID: 1, AuthorID: cmd.Actor.UserID, Body: cmd.Body, IsInternal: cmd.IsInternal, CreatedAt: createdAt}, nil
		},
	}
	handler := NewTicketHandler(svc, logger.NewNopLogger())
	c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/tickets/7/comments", map[string]any{
		"body":        "Toner ordinato.",
		"is_internal": true,
	})
	testutil.SetURLParam(c, "id", "7")
	testutil.SetActor(c, coordinator)

	handler.AddComment(c)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, uint(7), got.TicketID)
	assert.True(t, got.IsInternal)
	assert.Equal(t, "Toner ordinato.", got.Body)
}

func TestTicketHandler_AddAttachments(t *testing.T) {
	tests := []struct {
		name       string
		body       any
		wantStatus int
		wantFiles  int
	}{
		{
			name: "two files",
			body: map[string]any{"files": []map[string]any{
				{"original_name": "log.txt", "mime_type": "text/plain", "size": 512},
				{"original_name": "foto.png", "file_reference": "s3://bucket/foto.png", "size": 4096},
			}},
			wantStatus: http.StatusCreated,
			wantFiles:  2,
		},
		{name: "empty list", body: map[string]any{"files": []map[string]any{}}, wantStatus: http.StatusBadRequest},
		{name: "missing list", body: map[string]any{}, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got usecases.AddAttachmentsCommand
			svc := &mockService{
				AddAttachmentsFunc: func(_ context.Context, cmd usecases.AddAttachmentsCommand) ([]dto.AttachmentDTO, error) {
					got = cmd
					return make([]dto.AttachmentDTO, len(cmd.Files)), nil
				},
			}
			handler := NewTicketHandler(svc, logger.NewNopLogger())
			c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/tickets/7/attachments", tt.body)
			testutil.SetURLParam(c, "id", "7")
			testutil.SetActor(c, operator)

			handler.AddAttachments(c)

			require.Equal(t, tt.wantStatus, w.Code)
			assert.Len(t, got.Files, tt.wantFiles)
			if tt.wantFiles == 2 {
				assert.Equal(t, "s3://bucket/foto.png", got.Files[1].FileReference)
			}
		})
	}
}

func TestTicketHandler_ListAudit(t *testing.T) {
	actorID := coordinator.UserID
	svc := &mockService{
		ListAuditFunc: func(_ context.Context, query usecases.ListAuditQuery) ([]dto.AuditEntryDTO, error) {
			if !query.Actor.IsPrivileged() {
				return nil, apperrors.NewForbiddenError("forbidden")
			}
			return []dto.AuditEntryDTO{
				{ID: 1, Action: "CREATED", ActorID: &actorID, Meta: map[string]any{}, CreatedAt: createdAt},
				{ID: 2, Action: "STATUS_CHANGED", ActorID: &actorID, Note: "NEW → INP", Meta: map[string]any{"old": "NEW", "new": "INP"}, CreatedAt: createdAt},
			}, nil
		},
	}
	handler := NewTicketHandler(svc, logger.NewNopLogger())

	for _, tc := range []struct {
		actor      authorization.Actor
		wantStatus int
	}{
		{actor: coordinator, wantStatus: http.StatusOK},
		{actor: operator, wantStatus: http.StatusForbidden},
	} {
		c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/tickets/7/audit", nil)
		testutil.SetURLParam(c, "id", "7")
		testutil.SetActor(c, tc.actor)

		handler.ListAudit(c)

		require.Equal(t, tc.wantStatus, w.Code)
		if tc.wantStatus != http.StatusOK {
			continue
		}
		var resp testutil.APIResponse
		require.NoError(t, testutil.ParseResponse(w, &resp))
		var entries []dto.AuditEntryDTO
		require.NoError(t, json.Unmarshal(resp.Data, &entries))
		require.Len(t, entries, 2)
		assert.Equal(t, "STATUS_CHANGED", entries[1].Action)
	}
}

func TestTicketHandler_InternalErrorHidesDetails(t *testing.T) {
	svc := &mockService{
		ListDepartmentsFunc: func(context.Context) ([]dto.DepartmentDTO, error) {
			return nil, apperrors.NewInternalError("failed to list departments", "dial tcp 10.0.0.5:3306: connection refused")
		},
	}
	handler := NewTicketHandler(svc, logger.NewNopLogger())
	c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/departments", nil)
	testutil.SetActor(c, operator)

	handler.ListDepartments(c)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	require.NotNil(t, resp.Error)
	assert.Empty(t, resp.Error.Details)
	assert.NotContains(t, w.Body.String(), "10.0.0.5")
}

func TestTicketHandler_UnknownErrorIsOpaque(t *testing.T) {
	svc := &mockService{
		ListDepartmentsFunc: func(context.Context) ([]dto.DepartmentDTO, error) {
			return nil, errors.New("boom")
		},
	}
	handler := NewTicketHandler(svc, logger.NewNopLogger())
	c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/departments", nil)

	handler.ListDepartments(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "boom")
}

func TestRegisterValidators_Idempotent(t *testing.T) {
	RegisterValidators()
	RegisterValidators()

	engine := gin.New()
	engine.POST("/status", func(c *gin.Context) {
		var req ChangeStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/status", strings.NewReader(`{"status":"WAI"}`))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}
