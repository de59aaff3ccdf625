package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"fitness-scheduler/common/metrics"
	"fitness-scheduler/internal/events"

	"github.com/nats-io/nats.go"
)

// Producer publishes change events to a NATS subject.
type Producer struct {
	conn    *nats.Conn
	subject string
	logger  *slog.Logger
	metrics *metrics.MessagingMetrics
}

func NewProducer(url string, subject string, logger *slog.Logger, m *metrics.MessagingMetrics) (*Producer, error) {
	nc, err := nats.Connect(url,
		nats.Name("fitness-scheduler"),
		nats.Timeout(5*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to nats: %w", err)
	}

	logger.Info("NATS producer initialized", "url", url, "subject", subject)

	return &Producer{
		conn:    nc,
		subject: subject,
		logger:  logger,
		metrics: m,
	}, nil
}

func (p *Producer) Publish(ctx context.Context, event events.Event) error {
	start := time.Now()
	err := p.publish(event)
	p.metrics.RecordPublish(ctx, "nats", p.subject, time.Since(start), err)
	if err != nil {
		p.logger.ErrorContext(ctx, "failed to send event to NATS", "type", event.Type, "error", err)
		return err
	}

	p.logger.DebugContext(ctx, "event sent to NATS", "subject", p.subject, "type", event.Type, "id", event.ID)
	return nil
}

func (p *Producer) publish(event events.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	msg := nats.NewMsg(p.subject)
	msg.Header.Set("Event-Type", event.Type)
	msg.Header.Set("Event-Key", event.Key())
	msg.Data = data

	return p.conn.PublishMsg(msg)
}

func (p *Producer) Close() error {
	if err := p.conn.Drain(); err != nil {
		p.conn.Close()
		return err
	}
	return nil
}
