package messaging_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"fitness-scheduler/common/metrics"
	"fitness-scheduler/internal/events"
	"fitness-scheduler/internal/messaging"
	"fitness-scheduler/testing/testnats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNATSProducerIntegration(t *testing.T) {
	natsContainer := testnats.SetupSharedNATS(t)
	defer natsContainer.Cleanup(t)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	subject := "test.fitness.events"

	producer, err := messaging.NewProducer(natsContainer.URL, subject, logger, metrics.NewMock().Messaging)
	require.NoError(t, err)
	defer func() { _ = producer.Close() }()

	t.Run("Publish_DeliversEventWithHeaders", func(t *testing.T) {
		conn := natsContainer.Connect(t)
		sub, err := conn.SubscribeSync(subject)
		require.NoError(t, err)
		require.NoError(t, conn.Flush())

		event := events.Event{
			Type:       events.MemberCreated,
			Resource:   events.ResourceMember,
			ID:         9,
			OccurredAt: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
		}
		require.NoError(t, producer.Publish(context.Background(), event))

		msg, err := sub.NextMsg(2 * time.Second)
		require.NoError(t, err)

		var got events.Event
		require.NoError(t, json.Unmarshal(msg.Data, &got))
		assert.Equal(t, event, got)
		assert.Equal(t, "member.created", msg.Header.Get("Event-Type"))
		assert.Equal(t, "member-9", msg.Header.Get("Event-Key"))
	})
}

func TestNewProducerUnreachable(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	_, err := messaging.NewProducer("nats://127.0.0.1:1", "s", logger, metrics.NewMock().Messaging)
	assert.Error(t, err)
}
