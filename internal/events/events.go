package events

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

const (
	ResourceMember  = "member"
	ResourceSession = "session"
)

const (
	MemberCreated    = "member.created"
	MemberUpdated    = "member.updated"
	MemberDeleted    = "member.deleted"
	SessionScheduled = "session.scheduled"
	SessionUpdated   = "session.updated"
	SessionDeleted   = "session.deleted"
)

// Event announces a committed write to a member or a workout session.
type Event struct {
	Type       string    `json:"type"`
	Resource   string    `json:"resource"`
	ID         int64     `json:"id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Key groups events of the same entity, e.g. "member-7".
func (e Event) Key() string {
	return fmt.Sprintf("%s-%d", e.Resource, e.ID)
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// Noop drops every event.
type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }
func (Noop) Close() error                         { return nil }

// Notifier stamps and publishes events on behalf of the services. A failed
// publish is logged and never reaches the caller.
type Notifier struct {
	publisher Publisher
	logger    *slog.Logger
	now       func() time.Time
}

func NewNotifier(publisher Publisher, logger *slog.Logger) *Notifier {
	if publisher == nil {
		publisher = Noop{}
	}
	return &Notifier{
		publisher: publisher,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the timestamp source.
func (n *Notifier) WithClock(now func() time.Time) *Notifier {
	n.now = now
	return n
}

func (n *Notifier) Notify(ctx context.Context, eventType, resource string, id int64) {
	if n == nil {
		return
	}

	event := Event{
		Type:       eventType,
		Resource:   resource,
		ID:         id,
		OccurredAt: n.now(),
	}

	if err := n.publisher.Publish(ctx, event); err != nil {
		n.logger.WarnContext(ctx, "failed to publish change event",
			"type", event.Type,
			"id", event.ID,
			"error", err,
		)
	}
}
