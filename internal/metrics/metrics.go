package metrics

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type Metrics struct {
	membersCreated  metric.Int64Counter
	membersViewed   metric.Int64Counter
	membersDeleted  metric.Int64Counter
	sessionsBooked  metric.Int64Counter
	sessionsViewed  metric.Int64Counter
	sessionsDeleted metric.Int64Counter
	requestErrors   metric.Int64Counter
}

func New(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.membersCreated, err = meter.Int64Counter(
		"fitness_scheduler.members.created",
		metric.WithDescription("Total number of members added"),
		metric.WithUnit("{member}"),
	)
	if err != nil {
		return nil, err
	}

	m.membersViewed, err = meter.Int64Counter(
		"fitness_scheduler.members.viewed",
		metric.WithDescription("Member reads, labelled by list or single view"),
		metric.WithUnit("{view}"),
	)
	if err != nil {
		return nil, err
	}

	m.membersDeleted, err = meter.Int64Counter(
		"fitness_scheduler.members.deleted",
		metric.WithDescription("Total number of members removed"),
		metric.WithUnit("{member}"),
	)
	if err != nil {
		return nil, err
	}

	m.sessionsBooked, err = meter.Int64Counter(
		"fitness_scheduler.sessions.scheduled",
		metric.WithDescription("Total number of workout sessions scheduled"),
		metric.WithUnit("{session}"),
	)
	if err != nil {
		return nil, err
	}

	m.sessionsViewed, err = meter.Int64Counter(
		"fitness_scheduler.sessions.viewed",
		metric.WithDescription("Session reads, labelled by list or single view"),
		metric.WithUnit("{view}"),
	)
	if err != nil {
		return nil, err
	}

	m.sessionsDeleted, err = meter.Int64Counter(
		"fitness_scheduler.sessions.deleted",
		metric.WithDescription("Total number of workout sessions removed"),
		metric.WithUnit("{session}"),
	)
	if err != nil {
		return nil, err
	}

	m.requestErrors, err = meter.Int64Counter(
		"fitness_scheduler.requests.errors",
		metric.WithDescription("Failed API requests by resource and kind"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	return m, nil
}

func (m *Metrics) RecordMemberCreated(ctx context.Context) {
	if m != nil && m.membersCreated != nil {
		m.membersCreated.Add(ctx, 1)
	}
}

func (m *Metrics) RecordMembersViewed(ctx context.Context, view string) {
	if m != nil && m.membersViewed != nil {
		m.membersViewed.Add(ctx, 1, metric.WithAttributes(attribute.String("view", view)))
	}
}

func (m *Metrics) RecordMemberDeleted(ctx context.Context) {
	if m != nil && m.membersDeleted != nil {
		m.membersDeleted.Add(ctx, 1)
	}
}

func (m *Metrics) RecordSessionScheduled(ctx context.Context) {
	if m != nil && m.sessionsBooked != nil {
		m.sessionsBooked.Add(ctx, 1)
	}
}

func (m *Metrics) RecordSessionsViewed(ctx context.Context, view string) {
	if m != nil && m.sessionsViewed != nil {
		m.sessionsViewed.Add(ctx, 1, metric.WithAttributes(attribute.String("view", view)))
	}
}

func (m *Metrics) RecordSessionDeleted(ctx context.Context) {
	if m != nil && m.sessionsDeleted != nil {
		m.sessionsDeleted.Add(ctx, 1)
	}
}

// RecordRequestError counts a failed request; kind is validation, not_found or internal.
func (m *Metrics) RecordRequestError(ctx context.Context, resource, kind string) {
	if m != nil && m.requestErrors != nil {
		m.requestErrors.Add(ctx, 1, metric.WithAttributes(
			attribute.String("resource", resource),
			attribute.String("kind", kind),
		))
	}
}

// NewMock creates a no-op Metrics instance for testing
// The returned Metrics will safely ignore all Record* calls
func NewMock() *Metrics {
	return &Metrics{}
}
