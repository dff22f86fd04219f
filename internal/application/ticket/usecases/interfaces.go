package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/orris-inc/aticket/internal/domain/department"
	"github.com/orris-inc/aticket/internal/domain/sequence"
	"github.com/orris-inc/aticket/internal/domain/ticket"
	"github.com/orris-inc/aticket/internal/shared/authorization"
	apperrors "github.com/orris-inc/aticket/internal/shared/errors"
)

// Notifier receives committed ticket events. Implementations deliver on
// their own schedule and never report failures back.
type Notifier interface {
	Notify(ctx context.Context, event ticket.Event)
}

// ProtocolAllocator reserves the next protocol for a department inside the
// transaction carried by ctx.
type ProtocolAllocator interface {
	Generate(ctx context.Context, dept department.Code) (string, error)
}

type TransactionRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// AttachmentInput describes one already stored file.
type AttachmentInput struct {
	FileReference string
	OriginalName  string
	MimeType      string
	Size          int64
}

func requirePrivileged(actor authorization.Actor, what string) error {
	if !actor.IsPrivileged() {
		return apperrors.NewForbiddenError(fmt.Sprintf("only staff can %s", what))
	}
	return nil
}

// loadTicket maps a missing ticket to NotFound.
func loadTicket(ctx context.Context, repo ticket.Repository, id uint) (*ticket.Ticket, error) {
	return fetchTicket(ctx, repo.GetByID, id)
}

// lockTicket is loadTicket for write paths: the row stays locked until the
// transaction in ctx ends, so concurrent writers see each other's changes.
func lockTicket(ctx context.Context, repo ticket.Repository, id uint) (*ticket.Ticket, error) {
	return fetchTicket(ctx, repo.GetByIDForUpdate, id)
}

func fetchTicket(ctx context.Context, get func(context.Context, uint) (*ticket.Ticket, error), id uint) (*ticket.Ticket, error) {
	t, err := get(ctx, id)
	if err != nil {
		if errors.Is(err, ticket.ErrTicketNotFound) {
			return nil, apperrors.NewNotFoundError("ticket not found", fmt.Sprintf("ticket %d", id))
		}
		return nil, apperrors.NewInternalError("failed to load ticket").WithCause(err)
	}
	return t, nil
}

// loadVisibleTicket also hides tickets the actor may not see. Operators get
// NotFound rather than Forbidden so ticket ids cannot be probed.
func loadVisibleTicket(ctx context.Context, repo ticket.Repository, id uint, actor authorization.Actor) (*ticket.Ticket, error) {
	t, err := loadTicket(ctx, repo, id)
	if err != nil {
		return nil, err
	}
	return checkVisible(t, actor)
}

func lockVisibleTicket(ctx context.Context, repo ticket.Repository, id uint, actor authorization.Actor) (*ticket.Ticket, error) {
	t, err := lockTicket(ctx, repo, id)
	if err != nil {
		return nil, err
	}
	return checkVisible(t, actor)
}

func checkVisible(t *ticket.Ticket, actor authorization.Actor) (*ticket.Ticket, error) {
	if !actor.CanAccess(t.CreatedBy()) {
		return nil, apperrors.NewNotFoundError("ticket not found", fmt.Sprintf("ticket %d", t.ID()))
	}
	return t, nil
}

// translateDomainError turns domain sentinels into AppErrors. Anything it
// does not recognize is a persistence failure.
func translateDomainError(err error, fallback string) error {
	if err == nil {
		return nil
	}
	if apperrors.IsAppError(err) {
		return err
	}

	var ve *ticket.ValidationError
	switch {
	case errors.As(err, &ve):
		return apperrors.NewValidationError("invalid ticket", ve.Problems...)
	case errors.Is(err, ticket.ErrNotPrivileged):
		return apperrors.NewForbiddenError(err.Error())
	case errors.Is(err, ticket.ErrInvalidStatus),
		errors.Is(err, ticket.ErrInvalidComment),
		errors.Is(err, ticket.ErrInvalidFile),
		errors.Is(err, ticket.ErrInvalidTicket),
		errors.Is(err, sequence.ErrInvalidPartition):
		return apperrors.NewValidationError(err.Error())
	case errors.Is(err, ticket.ErrTicketNotFound):
		return apperrors.NewNotFoundError("ticket not found")
	default:
		return apperrors.NewInternalError(fallback).WithCause(err)
	}
}
