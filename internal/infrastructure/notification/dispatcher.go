package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/orris-inc/aticket/internal/domain/ticket"
	"github.com/orris-inc/aticket/internal/infrastructure/metrics"
	"github.com/orris-inc/aticket/internal/shared/goroutine"
	"github.com/orris-inc/aticket/internal/shared/logger"
)

// Dispatcher is the ticket service's notifier. Delivery happens in the
// background after commit; failures are logged and counted, never returned
// to the caller.
type Dispatcher struct {
	sender     Sender
	publisher  EventPublisher
	recipients *RecipientResolver
	renderer   *Renderer
	timeout    time.Duration
	logger     logger.Interface
}

// NewDispatcher wires the delivery path. sender and publisher may each be
// nil to disable that channel.
func NewDispatcher(
	sender Sender,
	publisher EventPublisher,
	recipients *RecipientResolver,
	renderer *Renderer,
	timeout time.Duration,
	log logger.Interface,
) *Dispatcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Dispatcher{
		sender:     sender,
		publisher:  publisher,
		recipients: recipients,
		renderer:   renderer,
		timeout:    timeout,
		logger:     log,
	}
}

// Notify schedules delivery of event and returns immediately.
func (d *Dispatcher) Notify(ctx context.Context, event ticket.Event) {
	detached := context.WithoutCancel(ctx)
	goroutine.SafeGo(d.logger, "notify-"+string(event.Kind), func() {
		ctx, cancel := context.WithTimeout(detached, d.timeout)
		defer cancel()

		if err := d.Deliver(ctx, event); err != nil {
			d.logger.Warnw("ticket notification failed",
				"event", event.Kind,
				"ticket_id", event.Ticket.ID(),
				"protocol", event.Ticket.Protocol(),
				"error", err,
			)
		}
	})
}

// Deliver publishes and mails event synchronously.
func (d *Dispatcher) Deliver(ctx context.Context, event ticket.Event) error {
	if event.Ticket == nil {
		return fmt.Errorf("event %s carries no ticket", event.Kind)
	}

	var errs []error
	if d.publisher != nil {
		if err := d.publisher.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if err := d.mail(ctx, event); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (d *Dispatcher) mail(ctx context.Context, event ticket.Event) error {
	kind := string(event.Kind)

	// Internal comments never leave the staff.
	if d.sender == nil || (event.Comment != nil && event.Comment.IsInternal()) {
		metrics.NotificationDelivered(kind, metrics.ResultSkipped)
		return nil
	}

	aud, err := d.recipients.Resolve(ctx, event)
	if err != nil {
		metrics.NotificationDelivered(kind, metrics.ResultFailed)
		return err
	}
	if len(aud.To) == 0 {
		d.logger.Debugw("no recipients for ticket notification", "event", kind, "protocol", event.Ticket.Protocol())
		metrics.NotificationDelivered(kind, metrics.ResultSkipped)
		return nil
	}

	msg, err := d.renderer.Render(event, aud)
	if err != nil {
		metrics.NotificationDelivered(kind, metrics.ResultFailed)
		return err
	}

	if err := d.sender.Send(ctx, msg); err != nil {
		metrics.NotificationDelivered(kind, metrics.ResultFailed)
		return fmt.Errorf("%s backend: %w", d.sender.Name(), err)
	}

	metrics.NotificationDelivered(kind, metrics.ResultSent)
	d.logger.Debugw("ticket notification sent",
		"event", kind,
		"protocol", event.Ticket.Protocol(),
		"backend", d.sender.Name(),
		"recipients", len(msg.To),
	)
	return nil
}
