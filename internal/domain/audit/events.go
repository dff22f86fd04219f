package audit

import (
	"fmt"
	"strconv"
	"time"
)

func actorRef(actorID uint) *uint {
	if actorID == 0 {
		return nil
	}
	return &actorID
}

// Created records ticket creation.
func Created(ticketID, actorID uint, at time.Time) (*Entry, error) {
	return NewEntry(ticketID, ActionCreated, actorRef(actorID), "", nil, at)
}

// StatusChanged records a status transition with meta {old, new}.
func StatusChanged(ticketID, actorID uint, oldStatus, newStatus string, at time.Time) (*Entry, error) {
	return NewEntry(ticketID, ActionStatusChanged, actorRef(actorID),
		fmt.Sprintf("%s → %s", oldStatus, newStatus),
		map[string]any{"old": oldStatus, "new": newStatus}, at)
}

func CommentAdded(ticketID, actorID uint, internal bool, at time.Time) (*Entry, error) {
	note := "Commento pubblico"
	if internal {
		note = "Commento interno"
	}
	return NewEntry(ticketID, ActionCommentAdded, actorRef(actorID), note,
		map[string]any{"internal": internal}, at)
}

func AttachmentsAdded(ticketID, actorID uint, files []string, at time.Time) (*Entry, error) {
	names := make([]any, 0, len(files))
	for _, f := range files {
		names = append(names, f)
	}
	return NewEntry(ticketID, ActionAttachmentAdded, actorRef(actorID),
		fmt.Sprintf("%d allegato/i", len(files)),
		map[string]any{"files": names}, at)
}

// Assigned records an assignee change. Unassigned sides are stored as nil.
func Assigned(ticketID, actorID uint, oldAssignee, newAssignee *uint, at time.Time) (*Entry, error) {
	return NewEntry(ticketID, ActionAssigned, actorRef(actorID),
		fmt.Sprintf("%s → %s", assigneeLabel(oldAssignee), assigneeLabel(newAssignee)),
		map[string]any{"old": assigneeValue(oldAssignee), "new": assigneeValue(newAssignee)}, at)
}

func assigneeLabel(id *uint) string {
	if id == nil {
		return "-"
	}
	return strconv.FormatUint(uint64(*id), 10)
}

func assigneeValue(id *uint) any {
	if id == nil {
		return nil
	}
	return *id
}
