package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/orris-inc/aticket/internal/domain/ticket"
	"github.com/orris-inc/aticket/internal/shared/logger"
)

const DefaultEventChannel = "aticket:ticket:events"

// TicketEventMessage is the JSON payload published for every ticket event.
type TicketEventMessage struct {
	Kind       ticket.EventKind `json:"kind"`
	TicketID   uint             `json:"ticket_id"`
	Protocol   string           `json:"protocol"`
	Department string           `json:"department"`
	Status     string           `json:"status"`
	OldStatus  string           `json:"old_status,omitempty"`
	NewStatus  string           `json:"new_status,omitempty"`
	ActorID    uint             `json:"actor_id"`
	AssigneeID *uint            `json:"assignee_id,omitempty"`
	Internal   bool             `json:"internal,omitempty"`
	Files      []string         `json:"files,omitempty"`
	Timestamp  int64            `json:"timestamp"`
}

func NewTicketEventMessage(event ticket.Event) TicketEventMessage {
	t := event.Ticket
	msg := TicketEventMessage{
		Kind:       event.Kind,
		TicketID:   t.ID(),
		Protocol:   t.Protocol(),
		Department: t.Department().String(),
		Status:     t.Status().String(),
		OldStatus:  event.OldStatus,
		NewStatus:  event.NewStatus,
		ActorID:    event.ActorID,
		AssigneeID: t.AssigneeID(),
		Files:      event.Files,
		Timestamp:  event.OccurredAt.UnixMilli(),
	}
	if event.Comment != nil {
		msg.Internal = event.Comment.IsInternal()
	}
	return msg
}

// TicketEventHandler receives decoded events from Subscribe.
type TicketEventHandler func(ctx context.Context, msg TicketEventMessage)

// RedisEventBus publishes ticket events on a redis channel and lets other
// processes follow them.
type RedisEventBus struct {
	client  *redis.Client
	channel string
	logger  logger.Interface
}

func NewRedisEventBus(client *redis.Client, channel string, log logger.Interface) *RedisEventBus {
	if channel == "" {
		channel = DefaultEventChannel
	}
	return &RedisEventBus{client: client, channel: channel, logger: log}
}

func (b *RedisEventBus) Channel() string { return b.channel }

func (b *RedisEventBus) Publish(ctx context.Context, event ticket.Event) error {
	msg := NewTicketEventMessage(event)
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := b.client.Publish(ctx, b.channel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	b.logger.Debugw("ticket event published",
		"channel", b.channel,
		"event", msg.Kind,
		"protocol", msg.Protocol,
	)
	return nil
}

// Subscribe blocks, calling handler for every event, until ctx is done.
func (b *RedisEventBus) Subscribe(ctx context.Context, handler TicketEventHandler) error {
	sub := b.client.Subscribe(ctx, b.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to channel: %w", err)
	}
	b.logger.Infow("subscribed to ticket events", "channel", b.channel)

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case m, ok := <-ch:
			if !ok {
				b.logger.Warnw("ticket event channel closed", "channel", b.channel)
				return nil
			}
			var msg TicketEventMessage
			if err := json.Unmarshal([]byte(m.Payload), &msg); err != nil {
				b.logger.Warnw("failed to unmarshal ticket event", "payload", m.Payload, "error", err)
				continue
			}
			handler(ctx, msg)
		}
	}
}
