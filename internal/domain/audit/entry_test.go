package audit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var at = time.Date(2024, 9, 12, 10, 0, 0, 0, time.UTC)

func TestNewEntry_Validation(t *testing.T) {
	_, err := NewEntry(0, ActionCreated, nil, "", nil, at)
	assert.Error(t, err)

	_, err = NewEntry(1, Action("DELETED"), nil, "", nil, at)
	assert.Error(t, err)

	e, err := NewEntry(1, ActionCreated, nil, "", nil, at)
	require.NoError(t, err)
	assert.Nil(t, e.ActorID())
	assert.Empty(t, e.Meta())
}

func TestStatusChanged(t *testing.T) {
	e, err := StatusChanged(5, 3, "CLO", "NEW", at)
	require.NoError(t, err)

	assert.Equal(t, ActionStatusChanged, e.Action())
	assert.Equal(t, map[string]any{"old": "CLO", "new": "NEW"}, e.Meta())
	assert.Equal(t, "CLO → NEW", e.Note())
	require.NotNil(t, e.ActorID())
	assert.Equal(t, uint(3), *e.ActorID())
}

func TestCreated_SystemActor(t *testing.T) {
	e, err := Created(5, 0, at)
	require.NoError(t, err)
	assert.Nil(t, e.ActorID())
}

func TestCommentAdded(t *testing.T) {
	e, err := CommentAdded(5, 3, true, at)
	require.NoError(t, err)
	assert.Equal(t, "Commento interno", e.Note())
	assert.Equal(t, true, e.Meta()["internal"])
}

func TestAttachmentsAdded(t *testing.T) {
	e, err := AttachmentsAdded(5, 3, []string{"a.pdf", "b.png"}, at)
	require.NoError(t, err)
	assert.Equal(t, "2 allegato/i", e.Note())
	assert.Equal(t, []any{"a.pdf", "b.png"}, e.Meta()["files"])
}

func TestAssigned(t *testing.T) {
	seven := uint(7)
	e, err := Assigned(5, 3, nil, &seven, at)
	require.NoError(t, err)
	assert.Equal(t, "- → 7", e.Note())
	assert.Equal(t, map[string]any{"old": nil, "new": uint(7)}, e.Meta())
}

func TestEntry_MetaIsCopy(t *testing.T) {
	meta := map[string]any{"old": "NEW"}
	e, err := NewEntry(1, ActionStatusChanged, nil, "", meta, at)
	require.NoError(t, err)

	meta["old"] = "tampered"
	got := e.Meta()
	got["new"] = "tampered"
	assert.Equal(t, map[string]any{"old": "NEW"}, e.Meta())
}
