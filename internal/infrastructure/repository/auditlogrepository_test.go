package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/aticket/internal/domain/audit"
	"github.com/orris-inc/aticket/internal/domain/department"
)

func TestAuditLogRepository_AppendAndList(t *testing.T) {
	gdb, _ := setupTestDB(t)
	ctx := context.Background()
	ict := seedDepartment(t, gdb, department.CodeICT)
	tk := newTestTicket(t, ict, "ICT-2024-37-0001", 1)
	require.NoError(t, NewTicketRepository(gdb).Create(ctx, tk))

	repo := NewAuditLogRepository(gdb)
	actor := uint(3)

	created, err := audit.NewEntry(tk.ID(), audit.ActionCreated, &actor, "Ticket created", nil, testNow)
	require.NoError(t, err)
	// Same millisecond as the creation entry: id breaks the tie.
	changed, err := audit.NewEntry(tk.ID(), audit.ActionStatusChanged, &actor, "NEW → INP",
		map[string]any{"old": "NEW", "new": "INP"}, testNow)
	require.NoError(t, err)
	system, err := audit.NewEntry(tk.ID(), audit.ActionAssigned, nil, "- → 7",
		map[string]any{"old": nil, "new": 7}, testNow.Add(time.Second))
	require.NoError(t, err)

	for _, e := range []*audit.Entry{created, changed, system} {
		require.NoError(t, repo.Append(ctx, e))
		assert.NotZero(t, e.ID())
	}

	entries, err := repo.ListByTicket(ctx, tk.ID())
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, audit.ActionCreated, entries[0].Action())
	assert.Equal(t, audit.ActionStatusChanged, entries[1].Action())
	assert.Equal(t, map[string]any{"old": "NEW", "new": "INP"}, entries[1].Meta())
	assert.Equal(t, "NEW → INP", entries[1].Note())
	require.NotNil(t, entries[1].ActorID())
	assert.Equal(t, uint(3), *entries[1].ActorID())

	assert.Nil(t, entries[2].ActorID())
	assert.Equal(t, float64(7), entries[2].Meta()["new"])
	assert.True(t, testNow.Add(time.Second).Equal(entries[2].CreatedAt()))

	none, err := repo.ListByTicket(ctx, tk.ID()+100)
	require.NoError(t, err)
	assert.Empty(t, none)
}
